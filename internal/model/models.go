// Package model defines shared data structures for the insight service.
package model

import "time"

// SalaryRange is one role's compensation band within an industry.
type SalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location"`
}

// GeneratedInsight is the validated field set produced by the generation
// pipeline. It carries exactly the fields an upsert overwrites; the
// repository owns the timestamps.
type GeneratedInsight struct {
	SalaryRanges      []SalaryRange `json:"salaryRanges"`
	GrowthRate        float64       `json:"growthRate"`
	DemandLevel       DemandLevel   `json:"demandLevel"`
	MarketOutlook     MarketOutlook `json:"marketOutlook"`
	TopSkills         []string      `json:"topSkills"`
	KeyTrends         []string      `json:"keyTrends"`
	RecommendedSkills []string      `json:"recommendedSkills"`
}

// IndustryInsight mirrors one industry_insights row. Exactly one row exists
// per industry key; many user profiles reference it. NextUpdate is the
// staleness boundary the scheduler refreshes against.
type IndustryInsight struct {
	Industry          string        `json:"industry"`
	SalaryRanges      []SalaryRange `json:"salaryRanges"`
	GrowthRate        float64       `json:"growthRate"`
	DemandLevel       DemandLevel   `json:"demandLevel"`
	MarketOutlook     MarketOutlook `json:"marketOutlook"`
	TopSkills         []string      `json:"topSkills"`
	KeyTrends         []string      `json:"keyTrends"`
	RecommendedSkills []string      `json:"recommendedSkills"`
	LastUpdated       time.Time     `json:"lastUpdated"`
	NextUpdate        time.Time     `json:"nextUpdate"`
}

// RefreshRun records one scheduler cycle in refresh_runs for observability.
type RefreshRun struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Processed  int       `json:"processed"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	Status     string    `json:"status"` // OK or PARTIAL
}

// UserProfile is the slice of the users table this service reads and, during
// onboarding, writes.
type UserProfile struct {
	ID          string   `json:"id"`
	ClerkUserID string   `json:"clerkUserId"`
	Industry    string   `json:"industry"`
	Experience  int      `json:"experience"`
	Bio         string   `json:"bio"`
	Skills      []string `json:"skills"`
}
