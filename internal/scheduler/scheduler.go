// Package scheduler wires up the cron job that periodically refreshes every
// industry whose insight data has passed its freshness window.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/shahbhavya7/Ace-360/internal/insight"
	"github.com/shahbhavya7/Ace-360/internal/model"
)

// Scheduler wraps robfig/cron and manages the refresh loop.
//
// It deliberately does not take the read path's single-flight lock: a
// refresh that overlaps a first-read generation for the same key is safe
// because the upsert is atomic — whichever generation finishes last wins
// wholesale.
type Scheduler struct {
	cron *cron.Cron
	repo insight.Repository
	gen  *insight.Generator
	rdb  *redis.Client // optional; event publishes are skipped when nil
	spec string        // cron spec, e.g. "@every 24h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(repo insight.Repository, gen *insight.Generator, rdb *redis.Client, intervalHours int) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLogger(cron.DefaultLogger)),
		repo: repo,
		gen:  gen,
		rdb:  rdb,
		spec: fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the refresh job and starts the scheduler. Also runs one
// refresh immediately so overdue industries are not left waiting for the
// first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.RunRefresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s", s.spec)

	// Run immediately on startup (non-blocking)
	go s.RunRefresh(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

// RunRefresh executes one refresh cycle: enumerate industries whose
// next_update has passed, regenerate each one independently, and record the
// run. One industry's failure never aborts the rest of the batch.
func (s *Scheduler) RunRefresh(ctx context.Context) {
	run := &model.RefreshRun{ID: uuid.NewString(), StartedAt: time.Now().UTC()}
	log.Printf("[scheduler] Refresh cycle started — run %s", run.ID)

	stale, err := s.repo.ListStale(ctx, run.StartedAt)
	if err != nil {
		log.Printf("[scheduler] ListStale error: %v", err)
		// The run died before touching a single industry; still record it
		// so the outcome shows up next to every other run.
		run.FinishedAt = time.Now().UTC()
		run.Status = "FAILED"
		if rerr := s.repo.RecordRun(ctx, run); rerr != nil {
			log.Printf("[scheduler] RecordRun error: %v", rerr)
		}
		return
	}
	if len(stale) == 0 {
		log.Println("[scheduler] No stale industries — nothing to refresh")
	}

	for _, industry := range stale {
		run.Processed++
		if err := s.refreshOne(ctx, industry); err != nil {
			run.Failed++
			log.Printf("[scheduler] Refresh failed for %q: %v — continuing", industry, err)
			continue
		}
		run.Succeeded++
	}

	run.FinishedAt = time.Now().UTC()
	run.Status = "OK"
	if run.Failed > 0 {
		run.Status = "PARTIAL"
	}

	if err := s.repo.RecordRun(ctx, run); err != nil {
		log.Printf("[scheduler] RecordRun error: %v", err)
	}
	s.publishRefreshed(ctx, run)

	log.Printf("[scheduler] Refresh cycle complete — processed=%d succeeded=%d failed=%d",
		run.Processed, run.Succeeded, run.Failed)
}

// refreshOne regenerates and upserts a single industry.
func (s *Scheduler) refreshOne(ctx context.Context, industry string) error {
	gen, err := s.gen.Generate(ctx, industry)
	if err != nil {
		return err
	}
	if _, err := s.repo.Upsert(ctx, industry, gen); err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

// publishRefreshed announces the finished run on Redis pub/sub (non-fatal).
func (s *Scheduler) publishRefreshed(ctx context.Context, run *model.RefreshRun) {
	if s.rdb == nil {
		return
	}
	event, _ := json.Marshal(map[string]any{
		"type":      "EVENT_INSIGHTS_REFRESHED",
		"runId":     run.ID,
		"processed": run.Processed,
		"succeeded": run.Succeeded,
		"failed":    run.Failed,
		"status":    run.Status,
	})
	if err := s.rdb.Publish(ctx, "EVENT_INSIGHTS_REFRESHED", event).Err(); err != nil {
		slog.Warn("publish EVENT_INSIGHTS_REFRESHED failed", "err", err)
	}
}
