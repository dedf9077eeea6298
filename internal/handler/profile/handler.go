package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xiaoyuteam/companion/backend/internal/store"
	"github.com/xiaoyuteam/companion/backend/pkg/utils"
)

// Handler exposes the patient profile, family roster, and cultural library.
type Handler struct {
	store *store.Store
}

// New 创建档案处理器
func New(st *store.Store) *Handler {
	return &Handler{store: st}
}

// RegisterRoutes 注册档案相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/patient", h.handlePatient)
	r.Get("/family", h.handleFamily)
	r.Get("/cultural", h.handleCultural)
}

func (h *Handler) handlePatient(w http.ResponseWriter, _ *http.Request) {
	patient := h.store.Patient()
	if patient == nil {
		utils.RespondError(w, http.StatusNotFound, "no active patient")
		return
	}
	utils.RespondJSON(w, http.StatusOK, patient)
}

func (h *Handler) handleFamily(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.FamilyMembers())
}

func (h *Handler) handleCultural(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.CulturalContent())
}
