// Package profile implements the onboarding flow: choosing an industry,
// years of experience, bio and skills. Picking an industry pins the user to
// one shared industry_insights row, creating the neutral placeholder row
// when the industry has never been seen before.
package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shahbhavya7/Ace-360/internal/insight"
	"github.com/shahbhavya7/Ace-360/internal/model"
)

// ErrNotFound is returned when no user row matches the caller identity.
var ErrNotFound = errors.New("user not found")

// ValidationError reports rejected onboarding input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// UpdateInput is the onboarding payload.
type UpdateInput struct {
	Industry   string   `json:"industry"`
	Experience int      `json:"experience"`
	Bio        string   `json:"bio"`
	Skills     []string `json:"skills"`
}

// Service encapsulates profile business logic.
type Service struct {
	pool *pgxpool.Pool
}

// NewService returns a configured Service.
func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

// Update writes the user's career profile and guarantees the chosen industry
// has an insight row, in one transaction. The placeholder row never goes
// through the generation pipeline — the first insight read or the scheduler
// populates it later.
func (s *Service) Update(ctx context.Context, clerkUserID string, in UpdateInput) (*model.UserProfile, error) {
	if in.Industry == "" {
		return nil, &ValidationError{Msg: "industry is required"}
	}
	if in.Experience < 0 {
		return nil, &ValidationError{Msg: "experience must not be negative"}
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := insight.InsertDefault(ctx, tx, in.Industry); err != nil {
		return nil, fmt.Errorf("ensure insight row for %q: %w", in.Industry, err)
	}

	var p model.UserProfile
	err = tx.QueryRow(ctx,
		`UPDATE users
		 SET industry = $1, experience = $2, bio = $3, skills = $4, updated_at = NOW()
		 WHERE clerk_user_id = $5
		 RETURNING id, clerk_user_id, industry, experience, bio, skills`,
		in.Industry, in.Experience, in.Bio, in.Skills, clerkUserID,
	).Scan(&p.ID, &p.ClerkUserID, &p.Industry, &p.Experience, &p.Bio, &p.Skills)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &p, nil
}

// OnboardingStatus reports whether the user has picked an industry yet.
func (s *Service) OnboardingStatus(ctx context.Context, clerkUserID string) (bool, error) {
	var industry *string
	err := s.pool.QueryRow(ctx,
		`SELECT industry FROM users WHERE clerk_user_id = $1`,
		clerkUserID,
	).Scan(&industry)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("onboarding status: %w", err)
	}
	return industry != nil && *industry != "", nil
}
