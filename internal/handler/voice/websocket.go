package voice

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	pipeline "github.com/xiaoyuteam/companion/backend/internal/service/companion"
	"github.com/xiaoyuteam/companion/backend/internal/service/speech"
)

// Handler 语音回合的WebSocket处理器：前端用 MediaRecorder 录音，
// 通过这条通道推送音频分片，由流水线完成转写与回复。
type Handler struct {
	pipe     *pipeline.Pipeline
	device   *speech.BufferDevice
	upgrader websocket.Upgrader
}

// New 创建WebSocket语音处理器
func New(pipe *pipeline.Pipeline, device *speech.BufferDevice) *Handler {
	return &Handler{
		pipe:   pipe,
		device: device,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/companion/ws", h.handleWebSocket)
}

type controlMessage struct {
	Type string `json:"type"` // start | stop
}

type outgoingMessage struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// handleWebSocket 处理一条语音通道连接。
// 协议：文本帧携带 {"type":"start"|"stop"}，二进制帧是音频分片。
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[voice] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()

	// 本连接是否有尚未 stop 的录音。连接断开时必须取消它，
	// 否则流水线会停在 Capturing，拒绝后续所有回合。
	recording := false
	defer func() {
		if recording {
			h.pipe.CancelRecording()
		}
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[voice] websocket read failed: %v", err)
			}
			return
		}

		switch messageType {
		case websocket.BinaryMessage:
			if err := h.device.Push(data); err != nil {
				h.send(conn, outgoingMessage{Type: "error", Error: err.Error()})
			}

		case websocket.TextMessage:
			var msg controlMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				h.send(conn, outgoingMessage{Type: "error", Error: "invalid control message"})
				continue
			}
			h.handleControl(ctx, conn, msg, &recording)
		}
	}
}

func (h *Handler) handleControl(ctx context.Context, conn *websocket.Conn, msg controlMessage, recording *bool) {
	switch msg.Type {
	case "start":
		if err := h.pipe.StartRecording(ctx); err != nil {
			h.sendTurnError(conn, err)
			return
		}
		*recording = true
		h.send(conn, outgoingMessage{Type: "recording_started"})

	case "stop":
		*recording = false
		conv, err := h.pipe.StopRecording(ctx)
		if err != nil {
			h.sendTurnError(conn, err)
			return
		}
		if conv == nil {
			// 没有录到声音，回合被取消。
			h.send(conn, outgoingMessage{Type: "cancelled"})
			return
		}
		h.send(conn, outgoingMessage{Type: "committed", Data: conv})

	default:
		h.send(conn, outgoingMessage{Type: "error", Error: "unknown control type"})
	}
}

func (h *Handler) sendTurnError(conn *websocket.Conn, err error) {
	msg := outgoingMessage{Type: "error", Error: err.Error()}
	switch {
	case errors.Is(err, pipeline.ErrCaptureUnavailable):
		// 提示前端回退到文字输入。
		msg.Type = "capture_unavailable"
	case errors.Is(err, pipeline.ErrTurnInFlight):
		msg.Type = "busy"
	}
	h.send(conn, msg)
}

func (h *Handler) send(conn *websocket.Conn, msg outgoingMessage) {
	msg.Timestamp = time.Now().UnixMilli()
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("[voice] websocket write failed: %v", err)
	}
}
