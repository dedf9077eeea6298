package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	model "github.com/xiaoyuteam/companion/backend/internal/model/companion"
	"github.com/xiaoyuteam/companion/backend/internal/store"
)

// Defaults applied when the submitted form leaves a field empty. They are
// part of the contract, not an artifact of UI pre-filled state.
const (
	DefaultMemoryType    = model.MemoryDailyLife
	DefaultEmotionalTone = model.ToneHappy
)

// Form 是回忆日志表单提交的数据。除标题与内容外均为可选。
type Form struct {
	Title                string              `json:"title"`
	Content              string              `json:"content"`
	MemoryType           model.MemoryType    `json:"memory_type,omitempty"`
	EmotionalTone        model.EmotionalTone `json:"emotional_tone,omitempty"`
	Location             string              `json:"location,omitempty"`
	Photos               []string            `json:"photos,omitempty"`
	AudioNote            string              `json:"audio_note,omitempty"`
	PeopleInvolved       []string            `json:"people_involved,omitempty"`
	CulturalSignificance string              `json:"cultural_significance,omitempty"`
	SharedWithFamily     bool                `json:"shared_with_family"`
	Tags                 []string            `json:"tags,omitempty"`
}

// ValidationError reports which required fields were missing. No store
// mutation happens when it is returned.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Manager validates journal submissions and writes them into the store.
type Manager struct {
	store *store.Store
	now   func() time.Time
	newID func() string
}

// Options 允许注入时钟与 ID 生成器。
type Options struct {
	Now   func() time.Time
	NewID func() string
}

// NewManager 创建回忆日志管理器。
func NewManager(st *store.Store, opts Options) *Manager {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return &Manager{store: st, now: now, newID: newID}
}

// Submit validates the form, fills defaults, and commits a new MemoryEntry.
// Title and content must be non-empty after trimming; tags are de-duplicated
// case-sensitively with their order preserved.
func (m *Manager) Submit(form Form) (model.MemoryEntry, error) {
	title := strings.TrimSpace(form.Title)
	content := strings.TrimSpace(form.Content)

	var missing []string
	if title == "" {
		missing = append(missing, "title")
	}
	if content == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return model.MemoryEntry{}, &ValidationError{Fields: missing}
	}

	memoryType := form.MemoryType
	if memoryType == "" {
		memoryType = DefaultMemoryType
	}
	tone := form.EmotionalTone
	if tone == "" {
		tone = DefaultEmotionalTone
	}

	patientID := ""
	if patient := m.store.Patient(); patient != nil {
		patientID = patient.ID
	}

	now := m.now()
	entry := model.MemoryEntry{
		ID:                   m.newID(),
		PatientID:            patientID,
		Title:                title,
		Content:              content,
		MemoryType:           memoryType,
		EmotionalTone:        tone,
		Location:             strings.TrimSpace(form.Location),
		Photos:               append([]string(nil), form.Photos...),
		AudioNote:            strings.TrimSpace(form.AudioNote),
		PeopleInvolved:       append([]string(nil), form.PeopleInvolved...),
		CulturalSignificance: strings.TrimSpace(form.CulturalSignificance),
		SharedWithFamily:     form.SharedWithFamily,
		Tags:                 dedupeTags(form.Tags),
		CreatedDate:          now,
		UpdatedDate:          now,
	}

	m.store.AddMemory(entry)
	return entry, nil
}

// Update applies a partial edit to an existing entry. Emptied-out title or
// content is rejected the same way Submit rejects it. The returned bool is
// false when no entry has the id; the store stays untouched in that case.
func (m *Manager) Update(id string, patch model.MemoryPatch) (bool, error) {
	var missing []string
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		missing = append(missing, "title")
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return false, &ValidationError{Fields: missing}
	}

	if patch.Tags != nil {
		patch.Tags = dedupeTags(patch.Tags)
	}

	return m.store.UpdateMemory(id, patch, m.now()), nil
}

// dedupeTags 去掉重复标签，大小写敏感，保留首次出现的顺序。
func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
