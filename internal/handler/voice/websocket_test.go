package voice

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	model "github.com/xiaoyuteam/companion/backend/internal/model/companion"
	pipeline "github.com/xiaoyuteam/companion/backend/internal/service/companion"
	"github.com/xiaoyuteam/companion/backend/internal/service/speech"
	"github.com/xiaoyuteam/companion/backend/internal/store"
)

type fixedTranscriber struct{ text string }

func (t fixedTranscriber) Transcribe(context.Context, []byte, string) (string, error) {
	return t.text, nil
}

type fixedResponder struct{}

func (fixedResponder) Respond(context.Context, string, *model.Patient) (pipeline.Reply, error) {
	return pipeline.Reply{Text: "說給我聽聽好嗎？"}, nil
}

func setupServer(t *testing.T) (*httptest.Server, *pipeline.Pipeline, *store.Store) {
	st := store.New()
	st.SetPatient(&model.Patient{ID: "patient-1", Name: "王爺爺", PrimaryLanguage: "zh-TW"})

	device := speech.NewBufferDevice()
	pipe := pipeline.NewPipeline(st, device, fixedTranscriber{text: "我想起小時候的事"}, fixedResponder{}, pipeline.Options{})

	r := chi.NewRouter()
	New(pipe, device).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, pipe, st
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/companion/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) outgoingMessage {
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg outgoingMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return msg
}

func TestVoiceTurnOverWebSocket(t *testing.T) {
	srv, _, st := setupServer(t)
	conn := dial(t, srv)

	if err := conn.WriteJSON(controlMessage{Type: "start"}); err != nil {
		t.Fatalf("write start failed: %v", err)
	}
	if msg := readMessage(t, conn); msg.Type != "recording_started" {
		t.Fatalf("expected recording_started, got %s", msg.Type)
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, []byte("audio-chunk")); err != nil {
		t.Fatalf("write audio failed: %v", err)
	}
	if err := conn.WriteJSON(controlMessage{Type: "stop"}); err != nil {
		t.Fatalf("write stop failed: %v", err)
	}

	msg := readMessage(t, conn)
	if msg.Type != "committed" {
		t.Fatalf("expected committed, got %s (%s)", msg.Type, msg.Error)
	}
	if msg.Data == nil {
		t.Fatal("committed message must carry the conversation")
	}
	if len(st.Conversations()) != 1 {
		t.Fatalf("expected 1 stored conversation, got %d", len(st.Conversations()))
	}
}

func TestStopWithoutAudioSendsCancelled(t *testing.T) {
	srv, pipe, st := setupServer(t)
	conn := dial(t, srv)

	if err := conn.WriteJSON(controlMessage{Type: "start"}); err != nil {
		t.Fatalf("write start failed: %v", err)
	}
	if msg := readMessage(t, conn); msg.Type != "recording_started" {
		t.Fatalf("expected recording_started, got %s", msg.Type)
	}

	if err := conn.WriteJSON(controlMessage{Type: "stop"}); err != nil {
		t.Fatalf("write stop failed: %v", err)
	}
	if msg := readMessage(t, conn); msg.Type != "cancelled" {
		t.Fatalf("expected cancelled, got %s", msg.Type)
	}

	if got := pipe.State(); got != pipeline.StateIdle {
		t.Fatalf("expected idle after cancellation, got %s", got)
	}
	if len(st.Conversations()) != 0 {
		t.Fatal("cancelled turn must not commit")
	}
}

func TestDisconnectCancelsInFlightTurn(t *testing.T) {
	srv, pipe, st := setupServer(t)
	conn := dial(t, srv)

	if err := conn.WriteJSON(controlMessage{Type: "start"}); err != nil {
		t.Fatalf("write start failed: %v", err)
	}
	if msg := readMessage(t, conn); msg.Type != "recording_started" {
		t.Fatalf("expected recording_started, got %s", msg.Type)
	}

	// 客户端在 stop 前断线，连接清理必须把流水线放回 Idle。
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for pipe.State() != pipeline.StateIdle {
		if time.Now().After(deadline) {
			t.Fatalf("pipeline stuck in %s after disconnect", pipe.State())
		}
		time.Sleep(10 * time.Millisecond)
	}

	if len(st.Conversations()) != 0 {
		t.Fatal("abandoned turn must not commit")
	}

	// 文字回合必须重新可用。
	if _, err := pipe.SendText(context.Background(), "那我用打字"); err != nil {
		t.Fatalf("text turn rejected after disconnect: %v", err)
	}
}

func TestSecondStartWhileRecordingIsBusy(t *testing.T) {
	srv, _, _ := setupServer(t)
	conn := dial(t, srv)

	if err := conn.WriteJSON(controlMessage{Type: "start"}); err != nil {
		t.Fatalf("write start failed: %v", err)
	}
	if msg := readMessage(t, conn); msg.Type != "recording_started" {
		t.Fatalf("expected recording_started, got %s", msg.Type)
	}

	other := dial(t, srv)
	if err := other.WriteJSON(controlMessage{Type: "start"}); err != nil {
		t.Fatalf("write start failed: %v", err)
	}
	if msg := readMessage(t, other); msg.Type != "busy" {
		t.Fatalf("expected busy for overlapping start, got %s", msg.Type)
	}
}
