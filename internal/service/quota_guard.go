package service

import (
	"context"
	"time"

	"mockmate/internal/config"
	"mockmate/internal/domain"
	"mockmate/internal/logger"

	"go.uber.org/zap"
)

// quotaGuard implements domain.QuotaGuard against the static plan limit
// table from configuration and the persisted monthly counters.
type quotaGuard struct {
	usageRepo domain.UsageRepository
	limits    map[string]map[string]int
}

// NewQuotaGuard creates a new quota guard
func NewQuotaGuard(usageRepo domain.UsageRepository, plans config.PlansConfig) domain.QuotaGuard {
	return &quotaGuard{
		usageRepo: usageRepo,
		limits:    plans.Limits,
	}
}

// Authorize implements domain.QuotaGuard. It has no side effects: denial
// charges nothing, and the caller Consumes separately after the guarded
// operation has durably started.
func (g *quotaGuard) Authorize(ctx context.Context, userID string, feature domain.Feature) error {
	plan, err := g.usageRepo.GetPlan(ctx, userID)
	if err != nil {
		return err
	}

	limit := g.limitFor(plan, feature)
	if limit == domain.UnlimitedQuota {
		return nil
	}

	used, err := g.usageRepo.GetMonthlyCount(ctx, userID, feature, domain.UsagePeriod(time.Now()))
	if err != nil {
		return domain.NewInternalError("Failed to read usage counter", err)
	}
	if used >= limit {
		return domain.NewQuotaExceededError(string(feature))
	}
	return nil
}

// Consume implements domain.QuotaGuard
func (g *quotaGuard) Consume(ctx context.Context, userID string, feature domain.Feature) error {
	if err := g.usageRepo.Increment(ctx, userID, feature, domain.UsagePeriod(time.Now())); err != nil {
		return domain.NewInternalError("Failed to increment usage counter", err)
	}
	return nil
}

func (g *quotaGuard) limitFor(plan string, feature domain.Feature) int {
	features, ok := g.limits[plan]
	if !ok {
		// Unknown plans get no access rather than unlimited access.
		logger.Get().Warn("Unknown plan in quota check", zap.String("plan", plan))
		return 0
	}
	limit, ok := features[string(feature)]
	if !ok {
		return 0
	}
	return limit
}
