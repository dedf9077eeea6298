package sharing

import "github.com/xiaoyuteam/companion/backend/internal/model/companion"

// Shared returns the subset of memories flagged for family visibility,
// preserving the store's ordering. Pure filter, no side effects.
func Shared(memories []companion.MemoryEntry) []companion.MemoryEntry {
	out := make([]companion.MemoryEntry, 0, len(memories))
	for _, mem := range memories {
		if mem.SharedWithFamily {
			out = append(out, mem)
		}
	}
	return out
}
