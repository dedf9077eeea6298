package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	companionHandler "github.com/xiaoyuteam/companion/backend/internal/handler/companion"
	dashboardHandler "github.com/xiaoyuteam/companion/backend/internal/handler/dashboard"
	memoryHandler "github.com/xiaoyuteam/companion/backend/internal/handler/memory"
	profileHandler "github.com/xiaoyuteam/companion/backend/internal/handler/profile"
	voiceHandler "github.com/xiaoyuteam/companion/backend/internal/handler/voice"
	middlewarePkg "github.com/xiaoyuteam/companion/backend/internal/middleware"
	pipeline "github.com/xiaoyuteam/companion/backend/internal/service/companion"
	"github.com/xiaoyuteam/companion/backend/internal/service/journal"
	"github.com/xiaoyuteam/companion/backend/internal/service/speech"
	"github.com/xiaoyuteam/companion/backend/internal/store"
	"github.com/xiaoyuteam/companion/backend/pkg/utils"
)

// Deps 汇集路由需要的核心组件。
type Deps struct {
	Store          *store.Store
	Pipeline       *pipeline.Pipeline
	Journal        *journal.Manager
	CaptureDevice  *speech.BufferDevice
	HighlightLimit int
	Now            func() time.Time
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		companionHandler.New(deps.Pipeline, deps.Store).RegisterRoutes(api)
		memoryHandler.New(deps.Journal, deps.Store).RegisterRoutes(api)
		dashboardHandler.New(deps.Store, deps.HighlightLimit, deps.Now).RegisterRoutes(api)
		profileHandler.New(deps.Store).RegisterRoutes(api)

		// 语音通道只有在配置了录音设备时才可用。
		if deps.CaptureDevice != nil {
			voiceHandler.New(deps.Pipeline, deps.CaptureDevice).RegisterRoutes(api)
		} else {
			api.Get("/companion/ws", func(w http.ResponseWriter, _ *http.Request) {
				utils.RespondError(w, http.StatusNotImplemented, "voice channel not available")
			})
		}

		api.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
		})
	})

	return r
}
