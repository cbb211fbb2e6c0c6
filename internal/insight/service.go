package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/shahbhavya7/Ace-360/internal/model"
)

// Service orchestrates get-or-create insight retrieval.
//
// The read path never blocks on the generation lock: a stored row is
// returned immediately even when stale — keeping read latency bounded.
// Staleness is the scheduler's job, not the reader's.
type Service struct {
	repo  Repository
	gen   *Generator
	rdb   *redis.Client // optional; event publishes are skipped when nil
	group singleflight.Group
}

// NewService returns a configured Service.
func NewService(repo Repository, gen *Generator, rdb *redis.Client) *Service {
	return &Service{repo: repo, gen: gen, rdb: rdb}
}

// GetOrCreate returns the stored insight for industry, generating and
// persisting one first when absent.
//
// Concurrent callers for the same missing industry share a single
// generation: the singleflight group guarantees at most one in-flight
// upstream call per key, and every joined caller sees the same record or
// the same error. A failed generation writes nothing, so the next call
// starts from scratch.
func (s *Service) GetOrCreate(ctx context.Context, industry string) (*model.IndustryInsight, error) {
	in, err := s.repo.Find(ctx, industry)
	if err == nil {
		return in, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("find insight for %q: %w", industry, err)
	}

	v, err, _ := s.group.Do(industry, func() (any, error) {
		// The flight is shared by every joined caller, so it must not die
		// with whichever request happened to start it. Detached from the
		// request; the generation timeout in ai.Client still bounds it.
		return s.generateAndStore(context.WithoutCancel(ctx), industry)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.IndustryInsight), nil
}

func (s *Service) generateAndStore(ctx context.Context, industry string) (*model.IndustryInsight, error) {
	gen, err := s.gen.Generate(ctx, industry)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.Upsert(ctx, industry, gen)
	if err != nil {
		return nil, fmt.Errorf("store insight for %q: %w", industry, err)
	}

	s.publishGenerated(ctx, industry)
	return stored, nil
}

// publishGenerated announces a first-read generation on Redis pub/sub.
// Non-fatal: the record is already persisted.
func (s *Service) publishGenerated(ctx context.Context, industry string) {
	if s.rdb == nil {
		return
	}
	event, _ := json.Marshal(map[string]string{
		"type":     "EVENT_INSIGHT_GENERATED",
		"industry": industry,
	})
	if err := s.rdb.Publish(ctx, "EVENT_INSIGHT_GENERATED", event).Err(); err != nil {
		slog.Warn("publish EVENT_INSIGHT_GENERATED failed", "err", err)
	}
}
