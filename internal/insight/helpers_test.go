package insight_test

import (
	"context"
	"sync"
	"time"

	"github.com/shahbhavya7/Ace-360/internal/insight"
	"github.com/shahbhavya7/Ace-360/internal/model"
)

// Reference payload matching what the prompt asks the model for.
const validInsightJSON = `{
  "salaryRanges": [
    {"role": "Backend Engineer", "min": 60000, "max": 140000, "median": 95000, "location": "Remote"},
    {"role": "Frontend Engineer", "min": 55000, "max": 125000, "median": 85000, "location": "Remote"},
    {"role": "DevOps Engineer", "min": 70000, "max": 150000, "median": 105000, "location": "US"},
    {"role": "Data Engineer", "min": 65000, "max": 145000, "median": 100000, "location": "US"},
    {"role": "Engineering Manager", "min": 90000, "max": 180000, "median": 135000, "location": "US"}
  ],
  "growthRate": 12.5,
  "demandLevel": "High",
  "topSkills": ["Go", "Kubernetes", "PostgreSQL", "AWS", "System Design"],
  "marketOutlook": "Positive",
  "keyTrends": ["AI tooling", "Platform engineering", "Edge computing", "FinOps", "Observability"],
  "recommendedSkills": ["Terraform", "Rust", "LLM integration", "Security", "Data modelling"]
}`

// fencedInsightJSON is the same payload the way Gemini usually delivers it.
const fencedInsightJSON = "```json\n" + validInsightJSON + "\n```"

// ── Fakes ──────────────────────────────────────────────────────────────────

// fakeCompleter returns scripted responses and counts upstream calls. The
// simulated latency honours ctx the way the real client does.
type fakeCompleter struct {
	mu       sync.Mutex
	calls    int
	delay    time.Duration // simulated upstream latency
	started  chan struct{} // closed when the first call arrives, if set
	response func(prompt string) (string, error)
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	if f.calls == 1 && f.started != nil {
		close(f.started)
	}
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.response(prompt)
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeRepo is an in-memory Repository with the same create/upsert semantics
// as the Postgres implementation.
type fakeRepo struct {
	mu      sync.Mutex
	records map[string]*model.IndustryInsight
	upserts int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[string]*model.IndustryInsight)}
}

func (f *fakeRepo) Find(ctx context.Context, industry string) (*model.IndustryInsight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	in, ok := f.records[industry]
	if !ok {
		return nil, insight.ErrNotFound
	}
	c := *in
	return &c, nil
}

func (f *fakeRepo) CreateDefault(ctx context.Context, industry string) (*model.IndustryInsight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in, ok := f.records[industry]; ok {
		c := *in
		return &c, nil
	}
	now := time.Now().UTC()
	in := &model.IndustryInsight{
		Industry:      industry,
		DemandLevel:   model.DemandMedium,
		MarketOutlook: model.OutlookNeutral,
		LastUpdated:   now,
		NextUpdate:    now.Add(7 * 24 * time.Hour),
	}
	f.records[industry] = in
	c := *in
	return &c, nil
}

func (f *fakeRepo) Upsert(ctx context.Context, industry string, gen *model.GeneratedInsight) (*model.IndustryInsight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	now := time.Now().UTC()
	in := &model.IndustryInsight{
		Industry:          industry,
		SalaryRanges:      gen.SalaryRanges,
		GrowthRate:        gen.GrowthRate,
		DemandLevel:       gen.DemandLevel,
		MarketOutlook:     gen.MarketOutlook,
		TopSkills:         gen.TopSkills,
		KeyTrends:         gen.KeyTrends,
		RecommendedSkills: gen.RecommendedSkills,
		LastUpdated:       now,
		NextUpdate:        now.Add(7 * 24 * time.Hour),
	}
	f.records[industry] = in
	c := *in
	return &c, nil
}

func (f *fakeRepo) ListStale(ctx context.Context, now time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var stale []string
	for industry, in := range f.records {
		if !in.NextUpdate.After(now) {
			stale = append(stale, industry)
		}
	}
	return stale, nil
}

func (f *fakeRepo) RecordRun(ctx context.Context, run *model.RefreshRun) error {
	return nil
}

func (f *fakeRepo) upsertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upserts
}

func (f *fakeRepo) stored(industry string) *model.IndustryInsight {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[industry]
}
