package store

import (
	"sync"
	"time"

	"github.com/xiaoyuteam/companion/backend/internal/model/companion"
)

// SessionState mirrors the transient UI flags the frontend renders while a
// turn is in flight.
type SessionState struct {
	Recording         bool   `json:"recording"`
	CurrentTranscript string `json:"current_transcript"`
}

// Store owns every domain collection for the session. All reads and writes
// go through it; readers always get copies, so no caller ever observes a
// partially applied mutation. Single writer, many readers.
type Store struct {
	mu sync.RWMutex

	patient       *companion.Patient
	conversations []companion.Conversation
	memories      []companion.MemoryEntry
	family        []companion.FamilyMember
	cultural      []companion.CulturalContent
	reminders     []companion.Reminder
	trends        []companion.EmotionTrend
	session       SessionState
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Patient returns the active patient, or nil before session init.
func (s *Store) Patient() *companion.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.patient == nil {
		return nil
	}
	p := *s.patient
	return &p
}

// SetPatient replaces the active patient wholesale.
func (s *Store) SetPatient(p *companion.Patient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		s.patient = nil
		return
	}
	copied := *p
	s.patient = &copied
}

// Conversations returns the conversation list, newest first.
func (s *Store) Conversations() []companion.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]companion.Conversation(nil), s.conversations...)
}

// SetConversations replaces the collection wholesale, used on initial load.
// The caller is expected to hand over a newest-first list.
func (s *Store) SetConversations(items []companion.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = append([]companion.Conversation(nil), items...)
}

// AddConversation prepends a committed conversation so the newest turn is
// always at the head.
func (s *Store) AddConversation(conv companion.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = append([]companion.Conversation{conv}, s.conversations...)
}

// Memories returns the memory journal, newest first.
func (s *Store) Memories() []companion.MemoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]companion.MemoryEntry(nil), s.memories...)
}

// SetMemories replaces the collection wholesale.
func (s *Store) SetMemories(items []companion.MemoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memories = append([]companion.MemoryEntry(nil), items...)
}

// AddMemory prepends a journaled memory.
func (s *Store) AddMemory(entry companion.MemoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memories = append([]companion.MemoryEntry{entry}, s.memories...)
}

// UpdateMemory merges the patch into the memory with the given id and bumps
// its UpdatedDate. A missing id is not an error: the store is left untouched
// and false is returned so callers can tell the miss apart from a merge.
func (s *Store) UpdateMemory(id string, patch companion.MemoryPatch, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.memories {
		if s.memories[i].ID != id {
			continue
		}
		applyPatch(&s.memories[i], patch)
		s.memories[i].UpdatedDate = now
		return true
	}
	return false
}

func applyPatch(entry *companion.MemoryEntry, patch companion.MemoryPatch) {
	if patch.Title != nil {
		entry.Title = *patch.Title
	}
	if patch.Content != nil {
		entry.Content = *patch.Content
	}
	if patch.MemoryType != nil {
		entry.MemoryType = *patch.MemoryType
	}
	if patch.EmotionalTone != nil {
		entry.EmotionalTone = *patch.EmotionalTone
	}
	if patch.Location != nil {
		entry.Location = *patch.Location
	}
	if patch.Photos != nil {
		entry.Photos = append([]string(nil), patch.Photos...)
	}
	if patch.AudioNote != nil {
		entry.AudioNote = *patch.AudioNote
	}
	if patch.PeopleInvolved != nil {
		entry.PeopleInvolved = append([]string(nil), patch.PeopleInvolved...)
	}
	if patch.CulturalSignificance != nil {
		entry.CulturalSignificance = *patch.CulturalSignificance
	}
	if patch.SharedWithFamily != nil {
		entry.SharedWithFamily = *patch.SharedWithFamily
	}
	if patch.Tags != nil {
		entry.Tags = append([]string(nil), patch.Tags...)
	}
}

// FamilyMembers returns the family roster.
func (s *Store) FamilyMembers() []companion.FamilyMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]companion.FamilyMember(nil), s.family...)
}

// SetFamilyMembers replaces the roster wholesale.
func (s *Store) SetFamilyMembers(items []companion.FamilyMember) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.family = append([]companion.FamilyMember(nil), items...)
}

// CulturalContent returns the reference content library.
func (s *Store) CulturalContent() []companion.CulturalContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]companion.CulturalContent(nil), s.cultural...)
}

// SetCulturalContent loads the reference content library.
func (s *Store) SetCulturalContent(items []companion.CulturalContent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cultural = append([]companion.CulturalContent(nil), items...)
}

// Reminders returns today's reminder list.
func (s *Store) Reminders() []companion.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]companion.Reminder(nil), s.reminders...)
}

// SetReminders replaces the reminder list wholesale.
func (s *Store) SetReminders(items []companion.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders = append([]companion.Reminder(nil), items...)
}

// EmotionTrends returns the sampled mood trend data.
func (s *Store) EmotionTrends() []companion.EmotionTrend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]companion.EmotionTrend(nil), s.trends...)
}

// SetEmotionTrends loads the mood trend samples.
func (s *Store) SetEmotionTrends(items []companion.EmotionTrend) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trends = append([]companion.EmotionTrend(nil), items...)
}

// Session returns the transient turn flags.
func (s *Store) Session() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// SetRecording flips the recording flag.
func (s *Store) SetRecording(recording bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Recording = recording
}

// SetCurrentTranscript publishes the transcript of the in-flight turn.
func (s *Store) SetCurrentTranscript(transcript string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.CurrentTranscript = transcript
}

// ClearTurnState resets the transient flags once a turn has committed or
// been abandoned.
func (s *Store) ClearTurnState() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = SessionState{}
}
