package companion

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	pipeline "github.com/xiaoyuteam/companion/backend/internal/service/companion"
	"github.com/xiaoyuteam/companion/backend/internal/store"
	"github.com/xiaoyuteam/companion/backend/pkg/utils"
)

// Handler 对话流水线的HTTP处理器
type Handler struct {
	pipe  *pipeline.Pipeline
	store *store.Store
}

// New 创建对话处理器
func New(pipe *pipeline.Pipeline, st *store.Store) *Handler {
	return &Handler{pipe: pipe, store: st}
}

// RegisterRoutes 注册对话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/companion/text", h.handleText)
	r.Get("/companion/state", h.handleState)
	r.Get("/companion/stream", h.handleStream)
	r.Get("/conversations", h.handleListConversations)
}

// handleText 处理文字输入的对话回合
func (h *Handler) handleText(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conv, err := h.pipe.SendText(r.Context(), payload.Text)
	if err != nil {
		utils.RespondError(w, turnErrorStatus(err), err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, conv)
}

// handleState 返回流水线状态与会话瞬时标志，供界面轮询。
func (h *Handler) handleState(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"state":      h.pipe.State(),
		"session":    h.store.Session(),
		"last_error": h.pipe.LastError(),
	})
}

// handleStream 以SSE形式执行一个文字回合：先回执，再推送提交的对话。
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	message := r.URL.Query().Get("message")
	if message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	utils.SetupSSEHeaders(w)
	utils.SendSSEEvent(w, flusher, "start", map[string]string{"transcript": message})

	conv, err := h.pipe.SendText(r.Context(), message)
	if err != nil {
		utils.SendSSEEvent(w, flusher, "error", map[string]string{"error": err.Error()})
		return
	}

	utils.SendSSEEvent(w, flusher, "committed", conv)
}

// handleListConversations 返回对话记录，最新在前。
func (h *Handler) handleListConversations(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Conversations())
}

func turnErrorStatus(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrTurnInFlight):
		return http.StatusConflict
	case errors.Is(err, pipeline.ErrEmptyInput):
		return http.StatusBadRequest
	case errors.Is(err, pipeline.ErrNoPatient):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
