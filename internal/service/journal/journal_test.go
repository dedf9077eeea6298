package journal

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/xiaoyuteam/companion/backend/internal/analysis/sharing"
	model "github.com/xiaoyuteam/companion/backend/internal/model/companion"
	"github.com/xiaoyuteam/companion/backend/internal/store"
)

func newManager(st *store.Store) *Manager {
	seq := 0
	return NewManager(st, Options{
		Now: func() time.Time { return time.Date(2025, 9, 15, 18, 0, 0, 0, time.UTC) },
		NewID: func() string {
			seq++
			return fmt.Sprintf("mem-%d", seq)
		},
	})
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	st := store.New()
	m := newManager(st)

	_, err := m.Submit(Form{Title: "  ", Content: ""})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !reflect.DeepEqual(verr.Fields, []string{"title", "content"}) {
		t.Fatalf("unexpected missing fields: %v", verr.Fields)
	}
	if len(st.Memories()) != 0 {
		t.Fatal("store must stay untouched on validation failure")
	}
}

func TestSubmitAppliesDefaults(t *testing.T) {
	st := store.New()
	st.SetPatient(&model.Patient{ID: "patient-1"})
	m := newManager(st)

	entry, err := m.Submit(Form{Title: "早晨泡茶", Content: "和鄰居一起喝茶聊天"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if entry.MemoryType != DefaultMemoryType {
		t.Fatalf("expected default memory type, got %s", entry.MemoryType)
	}
	if entry.EmotionalTone != DefaultEmotionalTone {
		t.Fatalf("expected default emotional tone, got %s", entry.EmotionalTone)
	}
	if entry.PatientID != "patient-1" {
		t.Fatalf("expected patient id bound, got %q", entry.PatientID)
	}
	if entry.SharedWithFamily {
		t.Fatal("sharing must be opt-in")
	}
}

func TestSubmitDedupesTags(t *testing.T) {
	st := store.New()
	m := newManager(st)

	entry, err := m.Submit(Form{
		Title:   "看老照片",
		Content: "翻出了舊相簿",
		Tags:    []string{"家人", "回憶", "家人", " 回憶 ", ""},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !reflect.DeepEqual(entry.Tags, []string{"家人", "回憶"}) {
		t.Fatalf("unexpected tags: %v", entry.Tags)
	}
}

func TestSubmitSharedMemoryVisibleToFamily(t *testing.T) {
	st := store.New()
	st.SetMemories([]model.MemoryEntry{{ID: "old", Title: "舊回憶", SharedWithFamily: false}})
	m := newManager(st)

	entry, err := m.Submit(Form{
		Title:            "中秋節家族聚餐",
		Content:          "全家一起賞月吃月餅",
		MemoryType:       model.MemoryFestival,
		EmotionalTone:    model.ToneHappy,
		SharedWithFamily: true,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	memories := st.Memories()
	if len(memories) != 2 {
		t.Fatalf("expected 2 memories, got %d", len(memories))
	}
	if memories[0].ID != entry.ID {
		t.Fatal("new memory should be at the head")
	}

	shared := sharing.Shared(memories)
	if len(shared) != 1 || shared[0].Title != "中秋節家族聚餐" {
		t.Fatalf("family view should contain exactly the new shared memory, got %v", shared)
	}
}

func TestUpdateRejectsEmptiedTitle(t *testing.T) {
	st := store.New()
	st.SetMemories([]model.MemoryEntry{{ID: "m1", Title: "原標題", Content: "內容"}})
	m := newManager(st)

	empty := "   "
	_, err := m.Update("m1", model.MemoryPatch{Title: &empty})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := st.Memories()[0].Title; got != "原標題" {
		t.Fatalf("store mutated on invalid patch: %q", got)
	}
}

func TestUpdateUnknownIDReturnsFalse(t *testing.T) {
	st := store.New()
	m := newManager(st)

	title := "新標題"
	found, err := m.Update("no-such-id", model.MemoryPatch{Title: &title})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected miss for unknown id")
	}
}

func TestUpdateDedupesTags(t *testing.T) {
	st := store.New()
	st.SetMemories([]model.MemoryEntry{{ID: "m1", Title: "標題", Content: "內容"}})
	m := newManager(st)

	found, err := m.Update("m1", model.MemoryPatch{Tags: []string{"茶", "茶", "朋友"}})
	if err != nil || !found {
		t.Fatalf("update failed: found=%v err=%v", found, err)
	}
	if got := st.Memories()[0].Tags; !reflect.DeepEqual(got, []string{"茶", "朋友"}) {
		t.Fatalf("unexpected tags after update: %v", got)
	}
}
