// ace360-insight-service
//
// Industry-insight pipeline for the career coach backend:
//   - GET  /insights        — get-or-create the caller's industry insight
//   - POST /profile         — onboarding (career profile + placeholder insight row)
//   - GET  /profile/status  — onboarding status
//
// A cron job refreshes every industry whose next_update has passed,
// re-running the Gemini generate → sanitize → validate → upsert pipeline.
// Generation for a missing industry is deduplicated per key, so concurrent
// first reads trigger exactly one upstream call.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/shahbhavya7/Ace-360/internal/ai"
	"github.com/shahbhavya7/Ace-360/internal/config"
	"github.com/shahbhavya7/Ace-360/internal/db"
	"github.com/shahbhavya7/Ace-360/internal/insight"
	"github.com/shahbhavya7/Ace-360/internal/profile"
	"github.com/shahbhavya7/Ace-360/internal/scheduler"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[insight-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[insight-service] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[insight-service] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[insight-service] PostgreSQL connected ✓")

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[insight-service] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[insight-service] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[insight-service] Redis connected ✓")

	// ── Gemini ───────────────────────────────────────────────────────────────
	client, err := ai.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GenerationTimeout)
	if err != nil {
		log.Fatalf("[insight-service] Gemini: %v", err)
	}
	defer client.Close()
	log.Printf("[insight-service] Gemini client ready — model %s", cfg.GeminiModel)

	// ── Wiring ───────────────────────────────────────────────────────────────
	repo := insight.NewPostgresRepository(pool)
	gen := insight.NewGenerator(client)
	svc := insight.NewService(repo, gen, rdb)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	insight.NewHandler(pool, svc).RegisterRoutes(mux)
	profile.NewHandler(profile.NewService(pool)).RegisterRoutes(mux)

	// ── Refresh scheduler ────────────────────────────────────────────────────
	sched := scheduler.New(repo, gen, rdb, cfg.RefreshIntervalHours)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[insight-service] Scheduler: %v", err)
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // first-read generation can take a while
	}

	go func() {
		log.Printf("[insight-service] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[insight-service] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[insight-service] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[insight-service] Shutdown error: %v", err)
	}
	log.Println("[insight-service] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "insight-service",
		"version": version,
	})
}
