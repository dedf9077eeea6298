package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/xiaoyuteam/companion/backend/internal/config"
	"github.com/xiaoyuteam/companion/backend/internal/handler"
	"github.com/xiaoyuteam/companion/backend/internal/service/ai"
	pipelineService "github.com/xiaoyuteam/companion/backend/internal/service/companion"
	emotionservice "github.com/xiaoyuteam/companion/backend/internal/service/emotion"
	"github.com/xiaoyuteam/companion/backend/internal/service/journal"
	"github.com/xiaoyuteam/companion/backend/internal/service/speech"
	"github.com/xiaoyuteam/companion/backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize the entity store with the demo session data
	st := store.New()
	store.LoadSeed(st, time.Now())

	seed := cfg.Companion.DemoSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// Initialize the responder: Ark-backed when credentials are present,
	// scripted demo mode otherwise.
	var responder pipelineService.Responder
	if cfg.AI.Enabled() {
		aiSvc, err := ai.NewService(ctx, st, nil, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("falling back to scripted responses - 请检查 Ark 模型相关环境变量")
			responder = ai.NewScriptedResponder(rng)
		} else {
			emotionSvc, err := emotionservice.NewService(ctx, aiSvc.GetChatModel(), emotionservice.Config{
				Enabled: cfg.AI.EmotionLLMEnabled,
			})
			if err != nil {
				log.Printf("warning: failed to initialize emotion classifier: %v", err)
			} else {
				aiSvc.SetEmotionService(emotionSvc)
			}
			responder = aiSvc
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("Ark 凭证未配置，使用脚本化回复（演示模式）")
		responder = ai.NewScriptedResponder(rng)
	}

	device := speech.NewBufferDevice()
	transcriber := speech.NewScriptedTranscriber(rng)

	pipe := pipelineService.NewPipeline(st, device, transcriber, responder, pipelineService.Options{})
	journalManager := journal.NewManager(st, journal.Options{})

	router := handler.NewRouter(handler.Deps{
		Store:          st,
		Pipeline:       pipe,
		Journal:        journalManager,
		CaptureDevice:  device,
		HighlightLimit: cfg.Companion.HighlightLimit,
	})

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Xiaoyu companion backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
