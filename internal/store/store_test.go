package store

import (
	"testing"
	"time"

	"github.com/xiaoyuteam/companion/backend/internal/model/companion"
)

func TestAddConversationNewestFirst(t *testing.T) {
	s := New()
	s.AddConversation(companion.Conversation{ID: "c1"})
	s.AddConversation(companion.Conversation{ID: "c2"})

	convs := s.Conversations()
	if len(convs) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(convs))
	}
	if convs[0].ID != "c2" || convs[1].ID != "c1" {
		t.Fatalf("expected newest-first ordering, got %s, %s", convs[0].ID, convs[1].ID)
	}
}

func TestAddMemoryGrowsByOne(t *testing.T) {
	s := New()
	s.SetMemories([]companion.MemoryEntry{{ID: "m1"}, {ID: "m2"}})

	s.AddMemory(companion.MemoryEntry{ID: "m3"})

	memories := s.Memories()
	if len(memories) != 3 {
		t.Fatalf("expected 3 memories, got %d", len(memories))
	}
	if memories[0].ID != "m3" {
		t.Fatalf("expected new memory at head, got %s", memories[0].ID)
	}
}

func TestUpdateMemoryMergesPatch(t *testing.T) {
	s := New()
	created := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	s.SetMemories([]companion.MemoryEntry{{
		ID:               "m1",
		Title:            "公園散步",
		Content:          "在附近的公園散步",
		SharedWithFamily: false,
		CreatedDate:      created,
		UpdatedDate:      created,
	}})

	shared := true
	title := "公園散步遇到老朋友"
	now := created.Add(24 * time.Hour)
	found := s.UpdateMemory("m1", companion.MemoryPatch{Title: &title, SharedWithFamily: &shared}, now)
	if !found {
		t.Fatal("expected update to find the memory")
	}

	got := s.Memories()[0]
	if got.Title != title {
		t.Fatalf("title not merged, got %q", got.Title)
	}
	if !got.SharedWithFamily {
		t.Fatal("shared flag not merged")
	}
	if got.Content != "在附近的公園散步" {
		t.Fatalf("untouched field changed: %q", got.Content)
	}
	if !got.UpdatedDate.Equal(now) {
		t.Fatalf("expected UpdatedDate bumped to %v, got %v", now, got.UpdatedDate)
	}
	if !got.CreatedDate.Equal(created) {
		t.Fatal("CreatedDate must not change on update")
	}
}

func TestUpdateMemoryMissingIDLeavesStoreUntouched(t *testing.T) {
	s := New()
	s.SetMemories([]companion.MemoryEntry{{ID: "m1", Title: "原標題"}})

	title := "新標題"
	found := s.UpdateMemory("no-such-id", companion.MemoryPatch{Title: &title}, time.Now())
	if found {
		t.Fatal("expected miss on unknown id")
	}
	if got := s.Memories()[0].Title; got != "原標題" {
		t.Fatalf("store mutated on miss: %q", got)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	s := New()
	s.SetConversations([]companion.Conversation{{ID: "c1", Transcript: "原文"}})

	convs := s.Conversations()
	convs[0].Transcript = "被改掉"

	if got := s.Conversations()[0].Transcript; got != "原文" {
		t.Fatalf("store observed external mutation: %q", got)
	}
}

func TestPatientCopyOnReadAndWrite(t *testing.T) {
	s := New()
	p := &companion.Patient{ID: "p1", Name: "王爺爺"}
	s.SetPatient(p)
	p.Name = "改名"

	got := s.Patient()
	if got.Name != "王爺爺" {
		t.Fatalf("store shared caller's pointer: %q", got.Name)
	}

	got.Name = "再改"
	if s.Patient().Name != "王爺爺" {
		t.Fatal("store handed out its internal pointer")
	}
}

func TestSessionTurnState(t *testing.T) {
	s := New()
	s.SetRecording(true)
	s.SetCurrentTranscript("今天天氣真好")

	session := s.Session()
	if !session.Recording || session.CurrentTranscript != "今天天氣真好" {
		t.Fatalf("unexpected session state: %+v", session)
	}

	s.ClearTurnState()
	session = s.Session()
	if session.Recording || session.CurrentTranscript != "" {
		t.Fatalf("turn state not cleared: %+v", session)
	}
}
