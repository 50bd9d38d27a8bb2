package domain

import (
	"context"
	"time"
)

// Feature names usage-limited product features
type Feature string

const (
	FeatureMockInterviews Feature = "mock_interviews"
	FeatureResumeAnalyses Feature = "resume_analyses"
)

// UnlimitedQuota in a plan limit table denotes no monthly cap.
const UnlimitedQuota = -1

// UsagePeriod formats the monthly counter bucket for a point in time.
func UsagePeriod(t time.Time) string {
	return t.Format("2006-01")
}

// UsageRepository persists per-user monthly feature counters and plan lookups.
// Counters reset on the monthly boundary by keying, not by mutation.
type UsageRepository interface {
	GetPlan(ctx context.Context, userID string) (string, error)
	GetMonthlyCount(ctx context.Context, userID string, feature Feature, period string) (int, error)
	Increment(ctx context.Context, userID string, feature Feature, period string) error
}

// QuotaGuard authorizes usage-limited operations. Authorize has no side
// effects; the caller Consumes exactly once after the guarded operation has
// durably started.
type QuotaGuard interface {
	Authorize(ctx context.Context, userID string, feature Feature) error
	Consume(ctx context.Context, userID string, feature Feature) error
}
