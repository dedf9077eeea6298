package memory

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xiaoyuteam/companion/backend/internal/analysis/sharing"
	model "github.com/xiaoyuteam/companion/backend/internal/model/companion"
	"github.com/xiaoyuteam/companion/backend/internal/service/journal"
	"github.com/xiaoyuteam/companion/backend/internal/store"
	"github.com/xiaoyuteam/companion/backend/pkg/utils"
)

// Handler 回忆日志的HTTP处理器
type Handler struct {
	journal *journal.Manager
	store   *store.Store
}

// New 创建回忆日志处理器
func New(manager *journal.Manager, st *store.Store) *Handler {
	return &Handler{journal: manager, store: st}
}

// RegisterRoutes 注册回忆日志相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/memories", h.handleList)
	r.Post("/memories", h.handleSubmit)
	r.Patch("/memories/{memoryID}", h.handleUpdate)
	r.Get("/memories/shared", h.handleListShared)
}

// handleList 返回全部回忆，最新在前。
func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Memories())
}

// handleListShared 返回开放给家人的回忆子集。
func (h *Handler) handleListShared(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, sharing.Shared(h.store.Memories()))
}

// handleSubmit 提交新的回忆
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var form journal.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.journal.Submit(form)
	if err != nil {
		var verr *journal.ValidationError
		if errors.As(err, &verr) {
			utils.RespondJSON(w, http.StatusBadRequest, map[string]any{
				"error":          "validation failed",
				"missing_fields": verr.Fields,
			})
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, entry)
}

// handleUpdate 对既有回忆做部分更新
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	memoryID := chi.URLParam(r, "memoryID")

	var patch model.MemoryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	found, err := h.journal.Update(memoryID, patch)
	if err != nil {
		var verr *journal.ValidationError
		if errors.As(err, &verr) {
			utils.RespondJSON(w, http.StatusBadRequest, map[string]any{
				"error":          "validation failed",
				"missing_fields": verr.Fields,
			})
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		utils.RespondError(w, http.StatusNotFound, "memory not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
