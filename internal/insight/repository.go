package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shahbhavya7/Ace-360/internal/model"
)

// Repository is the durable-storage contract for industry insights. The
// insight row is only ever mutated through these operations — callers never
// read-modify-write it themselves.
type Repository interface {
	// Find returns the stored insight for industry, or ErrNotFound.
	Find(ctx context.Context, industry string) (*model.IndustryInsight, error)

	// CreateDefault persists the neutral placeholder row for industry if
	// absent. When a concurrent caller created it first, the existing row is
	// returned instead of an error.
	CreateDefault(ctx context.Context, industry string) (*model.IndustryInsight, error)

	// Upsert overwrites every generated field and refreshes the timestamps,
	// creating the row when absent. Atomic: concurrent upserts on one key
	// are last-write-wins, never a field-by-field merge.
	Upsert(ctx context.Context, industry string, gen *model.GeneratedInsight) (*model.IndustryInsight, error)

	// ListStale returns the industries whose next_update is at or before now.
	ListStale(ctx context.Context, now time.Time) ([]string, error)

	// RecordRun persists one scheduler refresh-run status row.
	RecordRun(ctx context.Context, run *model.RefreshRun) error
}

// Querier is the subset of pgxpool.Pool and pgx.Tx the insight SQL needs,
// so the default-row insert can run inside the onboarding transaction.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const insightColumns = `industry, salary_ranges, growth_rate, demand_level, market_outlook,
	       top_skills, key_trends, recommended_skills, last_updated, next_update`

const insertDefaultSQL = `
	INSERT INTO industry_insights
	       (industry, salary_ranges, growth_rate, demand_level, market_outlook,
	        top_skills, key_trends, recommended_skills, last_updated, next_update)
	VALUES ($1, '[]'::jsonb, 0, 'Medium', 'Neutral', '{}', '{}', '{}',
	        NOW(), NOW() + INTERVAL '7 days')
	ON CONFLICT (industry) DO NOTHING
	RETURNING ` + insightColumns

const upsertSQL = `
	INSERT INTO industry_insights
	       (industry, salary_ranges, growth_rate, demand_level, market_outlook,
	        top_skills, key_trends, recommended_skills, last_updated, next_update)
	VALUES ($1, $2::jsonb, $3, $4, $5, $6, $7, $8, NOW(), NOW() + INTERVAL '7 days')
	ON CONFLICT (industry) DO UPDATE SET
	       salary_ranges      = EXCLUDED.salary_ranges,
	       growth_rate        = EXCLUDED.growth_rate,
	       demand_level       = EXCLUDED.demand_level,
	       market_outlook     = EXCLUDED.market_outlook,
	       top_skills         = EXCLUDED.top_skills,
	       key_trends         = EXCLUDED.key_trends,
	       recommended_skills = EXCLUDED.recommended_skills,
	       last_updated       = EXCLUDED.last_updated,
	       next_update        = EXCLUDED.next_update
	RETURNING ` + insightColumns

// PostgresRepository implements Repository over a pgx pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a configured PostgresRepository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Find(ctx context.Context, industry string) (*model.IndustryInsight, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+insightColumns+` FROM industry_insights WHERE industry = $1`,
		industry,
	)
	in, err := scanInsight(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find insight: %w", mapStorageErr(err))
	}
	return in, nil
}

func (r *PostgresRepository) CreateDefault(ctx context.Context, industry string) (*model.IndustryInsight, error) {
	in, err := InsertDefault(ctx, r.pool, industry)
	if err != nil {
		return nil, err
	}
	if in == nil {
		// Lost the create race — hand back whatever won.
		return r.Find(ctx, industry)
	}
	return in, nil
}

// InsertDefault creates the placeholder row for industry unless it already
// exists. Returns nil (and no error) when another writer got there first;
// callers that need the current row follow up with Find. q may be the pool
// or an open transaction.
func InsertDefault(ctx context.Context, q Querier, industry string) (*model.IndustryInsight, error) {
	in, err := scanInsight(q.QueryRow(ctx, insertDefaultSQL, industry))
	if errors.Is(err, pgx.ErrNoRows) {
		// ON CONFLICT DO NOTHING emits no row when the insert was skipped.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("insert default insight: %w", mapStorageErr(err))
	}
	return in, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, industry string, gen *model.GeneratedInsight) (*model.IndustryInsight, error) {
	rawRanges, err := json.Marshal(gen.SalaryRanges)
	if err != nil {
		return nil, fmt.Errorf("marshal salary ranges: %w", err)
	}

	in, err := scanInsight(r.pool.QueryRow(ctx, upsertSQL,
		industry,
		string(rawRanges),
		gen.GrowthRate,
		string(gen.DemandLevel),
		string(gen.MarketOutlook),
		gen.TopSkills,
		gen.KeyTrends,
		gen.RecommendedSkills,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert insight: %w", mapStorageErr(err))
	}
	return in, nil
}

func (r *PostgresRepository) ListStale(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT industry FROM industry_insights WHERE next_update <= $1 ORDER BY industry`,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("list stale insights: %w", mapStorageErr(err))
	}
	defer rows.Close()

	var industries []string
	for rows.Next() {
		var industry string
		if err := rows.Scan(&industry); err != nil {
			return nil, fmt.Errorf("scan stale industry: %w", err)
		}
		industries = append(industries, industry)
	}
	return industries, rows.Err()
}

func (r *PostgresRepository) RecordRun(ctx context.Context, run *model.RefreshRun) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO refresh_runs (id, started_at, finished_at, processed, succeeded, failed, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.ID, run.StartedAt, run.FinishedAt, run.Processed, run.Succeeded, run.Failed, run.Status,
	)
	if err != nil {
		return fmt.Errorf("record refresh run: %w", mapStorageErr(err))
	}
	return nil
}

// mapStorageErr classifies driver failures: deadline hits and cancelled
// statements become ErrStorageTimeout, serialization failures and deadlocks
// become ErrStorageConflict. Everything else passes through untouched.
func mapStorageErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrStorageTimeout, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "57014": // query_canceled — statement_timeout fired
			return fmt.Errorf("%w: %v", ErrStorageTimeout, err)
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %v", ErrStorageConflict, err)
		}
	}
	return err
}

// scanInsight reads one industry_insights row in insightColumns order.
func scanInsight(row pgx.Row) (*model.IndustryInsight, error) {
	var (
		in              model.IndustryInsight
		rawRanges       []byte
		demand, outlook string
	)
	err := row.Scan(
		&in.Industry, &rawRanges, &in.GrowthRate, &demand, &outlook,
		&in.TopSkills, &in.KeyTrends, &in.RecommendedSkills,
		&in.LastUpdated, &in.NextUpdate,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawRanges, &in.SalaryRanges); err != nil {
		return nil, fmt.Errorf("decode salary_ranges: %w", err)
	}
	in.DemandLevel = model.DemandLevel(demand)
	in.MarketOutlook = model.MarketOutlook(outlook)
	return &in, nil
}
