package companion

import "time"

// MemoryType 回忆分类。
type MemoryType string

const (
	MemoryDailyLife MemoryType = "daily_life"
	MemoryFamily    MemoryType = "family"
	MemoryTravel    MemoryType = "travel"
	MemoryFood      MemoryType = "food"
	MemoryFestival  MemoryType = "festival"
	MemoryChildhood MemoryType = "childhood"
)

// EmotionalTone 回忆附带的情绪基调。
type EmotionalTone string

const (
	ToneHappy     EmotionalTone = "happy"
	ToneNostalgic EmotionalTone = "nostalgic"
	TonePeaceful  EmotionalTone = "peaceful"
	ToneExcited   EmotionalTone = "excited"
	ToneGrateful  EmotionalTone = "grateful"
	ToneProud     EmotionalTone = "proud"
)

// MemoryEntry is a journaled memory. Title and content are always non-empty;
// entries are mutable through partial updates and never deleted.
type MemoryEntry struct {
	ID                   string        `json:"id"`
	PatientID            string        `json:"patient_id"`
	Title                string        `json:"title"`
	Content              string        `json:"content"`
	MemoryType           MemoryType    `json:"memory_type"`
	EmotionalTone        EmotionalTone `json:"emotional_tone"`
	Location             string        `json:"location,omitempty"`
	Photos               []string      `json:"photos,omitempty"`
	AudioNote            string        `json:"audio_note,omitempty"`
	PeopleInvolved       []string      `json:"people_involved,omitempty"`
	CulturalSignificance string        `json:"cultural_significance,omitempty"`
	SharedWithFamily     bool          `json:"shared_with_family"`
	Tags                 []string      `json:"tags,omitempty"`
	CreatedDate          time.Time     `json:"created_date"`
	UpdatedDate          time.Time     `json:"updated_date"`
}

// MemoryPatch carries a partial update for a memory entry. Nil fields are
// left untouched by the merge.
type MemoryPatch struct {
	Title                *string        `json:"title,omitempty"`
	Content              *string        `json:"content,omitempty"`
	MemoryType           *MemoryType    `json:"memory_type,omitempty"`
	EmotionalTone        *EmotionalTone `json:"emotional_tone,omitempty"`
	Location             *string        `json:"location,omitempty"`
	Photos               []string       `json:"photos,omitempty"`
	AudioNote            *string        `json:"audio_note,omitempty"`
	PeopleInvolved       []string       `json:"people_involved,omitempty"`
	CulturalSignificance *string        `json:"cultural_significance,omitempty"`
	SharedWithFamily     *bool          `json:"shared_with_family,omitempty"`
	Tags                 []string       `json:"tags,omitempty"`
}
