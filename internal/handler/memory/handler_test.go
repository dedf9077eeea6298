package memory

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	model "github.com/xiaoyuteam/companion/backend/internal/model/companion"
	"github.com/xiaoyuteam/companion/backend/internal/service/journal"
	"github.com/xiaoyuteam/companion/backend/internal/store"
)

func setupRouter() (*chi.Mux, *store.Store) {
	st := store.New()
	st.SetPatient(&model.Patient{ID: "patient-1", Name: "王爺爺"})
	handler := New(journal.NewManager(st, journal.Options{}), st)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, st
}

func TestSubmitMemoryCreated(t *testing.T) {
	r, st := setupRouter()
	payload, _ := json.Marshal(map[string]any{
		"title":              "中秋節家族聚餐",
		"content":            "全家一起賞月吃月餅",
		"memory_type":        "festival",
		"shared_with_family": true,
	})

	req := httptest.NewRequest(http.MethodPost, "/memories", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if len(st.Memories()) != 1 {
		t.Fatalf("expected 1 memory in store, got %d", len(st.Memories()))
	}
}

func TestSubmitMemoryMissingFields(t *testing.T) {
	r, st := setupRouter()
	payload := []byte(`{"title":"  "}`)

	req := httptest.NewRequest(http.MethodPost, "/memories", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	var body struct {
		MissingFields []string `json:"missing_fields"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if len(body.MissingFields) != 2 {
		t.Fatalf("expected title and content reported, got %v", body.MissingFields)
	}
	if len(st.Memories()) != 0 {
		t.Fatal("store must stay untouched on validation failure")
	}
}

func TestUpdateMemoryNotFound(t *testing.T) {
	r, _ := setupRouter()
	payload := []byte(`{"shared_with_family":true}`)

	req := httptest.NewRequest(http.MethodPatch, "/memories/no-such-id", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestSharedMemoriesSubset(t *testing.T) {
	r, st := setupRouter()
	st.SetMemories([]model.MemoryEntry{
		{ID: "m1", Title: "中秋節家族聚餐", SharedWithFamily: true},
		{ID: "m2", Title: "公園散步", SharedWithFamily: false},
	})

	req := httptest.NewRequest(http.MethodGet, "/memories/shared", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var shared []model.MemoryEntry
	if err := json.Unmarshal(resp.Body.Bytes(), &shared); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(shared) != 1 || shared[0].ID != "m1" {
		t.Fatalf("expected only the shared memory, got %v", shared)
	}
}
