package dashboard

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xiaoyuteam/companion/backend/internal/analysis/dashboard"
	"github.com/xiaoyuteam/companion/backend/internal/store"
	"github.com/xiaoyuteam/companion/backend/pkg/utils"
)

// Handler 首页汇总的HTTP处理器。每次请求现算，不落存储。
type Handler struct {
	store          *store.Store
	highlightLimit int
	now            func() time.Time
}

// New 创建首页汇总处理器
func New(st *store.Store, highlightLimit int, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{store: st, highlightLimit: highlightLimit, now: now}
}

// RegisterRoutes 注册首页相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.handleSummary)
	r.Get("/emotion-trends", h.handleTrends)
}

// handleSummary 汇总今日数据
func (h *Handler) handleSummary(w http.ResponseWriter, _ *http.Request) {
	loc := time.Local
	if patient := h.store.Patient(); patient != nil && patient.Timezone != "" {
		if parsed, err := time.LoadLocation(patient.Timezone); err == nil {
			loc = parsed
		}
	}

	summary := dashboard.Summarize(dashboard.Input{
		Conversations:  h.store.Conversations(),
		Memories:       h.store.Memories(),
		Reminders:      h.store.Reminders(),
		Reference:      h.now(),
		Location:       loc,
		HighlightLimit: h.highlightLimit,
	})

	utils.RespondJSON(w, http.StatusOK, summary)
}

// handleTrends 返回情绪趋势采样
func (h *Handler) handleTrends(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.EmotionTrends())
}
