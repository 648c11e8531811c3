package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MohamedRasheqA/teachback/internal/config"
	"github.com/MohamedRasheqA/teachback/internal/handler"
	chathandler "github.com/MohamedRasheqA/teachback/internal/handler/chat"
	logshandler "github.com/MohamedRasheqA/teachback/internal/handler/logs"
	settingshandler "github.com/MohamedRasheqA/teachback/internal/handler/settings"
	speechhandler "github.com/MohamedRasheqA/teachback/internal/handler/speech"
	tracehandler "github.com/MohamedRasheqA/teachback/internal/handler/trace"
	"github.com/MohamedRasheqA/teachback/internal/service/ai"
	"github.com/MohamedRasheqA/teachback/internal/service/memory"
	"github.com/MohamedRasheqA/teachback/internal/service/rag"
	"github.com/MohamedRasheqA/teachback/internal/service/speech"
	"github.com/MohamedRasheqA/teachback/internal/store"
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

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	if err := store.Migrate(cfg.Database.URL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	pool, err := store.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	aiSvc, err := ai.NewService(cfg.OpenAI)
	if err != nil {
		log.Fatalf("failed to initialize AI service: %v", err)
	}

	documents := store.NewDocumentStore(pool, cfg.Retrieval.Threshold, cfg.Retrieval.TopK)
	settingsStore := store.NewSettingsStore(pool)
	conversations := store.NewConversationStore(pool)

	var memoryWriter rag.MemoryWriter
	if cfg.Memory.Enabled() {
		memoryWriter = memory.NewClient(cfg.Memory)
		log.Println("memory service initialized")
	} else {
		log.Println("MEM0_API_KEY not set, skipping long-term memory writes")
	}

	ragSvc := rag.NewService(aiSvc, documents, aiSvc, memoryWriter, settingsStore)

	var synthesizer speechhandler.Synthesizer
	if cfg.Speech.Enabled() {
		synthesizer = speech.NewSynthesizer(cfg.Speech)
		log.Println("speech synthesis initialized")
	} else {
		log.Println("ELEVENLABS_API_KEY not set, text-to-speech disabled")
	}

	router := handler.NewRouter(handler.Deps{
		Chat:     chathandler.New(ragSvc),
		Settings: settingshandler.New(settingsStore),
		Logs:     logshandler.New(conversations),
		Speech:   speechhandler.New(aiSvc, synthesizer),
		Trace:    tracehandler.New(aiSvc),
		DB:       pool,
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

	log.Printf("teachback backend listening on %s", serverCfg.Addr)
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
