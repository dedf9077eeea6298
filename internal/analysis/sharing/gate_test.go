package sharing

import (
	"reflect"
	"testing"

	"github.com/xiaoyuteam/companion/backend/internal/model/companion"
)

func TestSharedFiltersAndPreservesOrder(t *testing.T) {
	memories := []companion.MemoryEntry{
		{ID: "m1", Title: "中秋節家族聚餐", SharedWithFamily: true},
		{ID: "m2", Title: "公園散步", SharedWithFamily: false},
		{ID: "m3", Title: "泡茶", SharedWithFamily: true},
	}

	shared := Shared(memories)
	if len(shared) != 2 {
		t.Fatalf("expected 2 shared memories, got %d", len(shared))
	}
	if shared[0].ID != "m1" || shared[1].ID != "m3" {
		t.Fatalf("order not preserved: %s, %s", shared[0].ID, shared[1].ID)
	}
}

func TestSharedAllFlagged(t *testing.T) {
	memories := []companion.MemoryEntry{
		{ID: "m1", SharedWithFamily: true},
		{ID: "m2", SharedWithFamily: true},
	}
	if got := Shared(memories); len(got) != len(memories) {
		t.Fatalf("expected full set, got %d of %d", len(got), len(memories))
	}
}

func TestSharedDoesNotMutateInput(t *testing.T) {
	memories := []companion.MemoryEntry{
		{ID: "m1", SharedWithFamily: true},
		{ID: "m2", SharedWithFamily: false},
	}
	snapshot := append([]companion.MemoryEntry(nil), memories...)

	first := Shared(memories)
	second := Shared(memories)

	if !reflect.DeepEqual(memories, snapshot) {
		t.Fatal("input slice mutated")
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated calls disagree")
	}
}
