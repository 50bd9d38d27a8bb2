package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mockmate/internal/domain"
	"mockmate/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// UsageDatabaseAdapter implements domain.UsageRepository using sqlx.DB.
// Counters are bucketed by period string; a new month is simply a new row,
// so no scheduled reset touches existing data.
type UsageDatabaseAdapter struct {
	db *sqlx.DB
}

// NewUsageDatabaseAdapter creates a new instance of UsageDatabaseAdapter
func NewUsageDatabaseAdapter(db *sqlx.DB) domain.UsageRepository {
	return &UsageDatabaseAdapter{db: db}
}

// GetPlan implements domain.UsageRepository
func (a *UsageDatabaseAdapter) GetPlan(ctx context.Context, userID string) (string, error) {
	var user models.User
	query := `SELECT
		id "id",
		plan "plan",
		created_at "created_at",
		updated_at "updated_at"
	FROM users
	WHERE id = :1`

	executor := GetExecutor(ctx, a.db)
	err := executor.GetContext(ctx, &user, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", domain.NewNotFoundError(fmt.Sprintf("User not found: %s", userID))
		}
		return "", fmt.Errorf("failed to get plan for user %s: %w", userID, err)
	}
	return user.Plan, nil
}

// GetMonthlyCount implements domain.UsageRepository
func (a *UsageDatabaseAdapter) GetMonthlyCount(ctx context.Context, userID string, feature domain.Feature, period string) (int, error) {
	var counter models.UsageCounter
	query := `SELECT
		user_id "user_id",
		feature "feature",
		usage_period "usage_period",
		used_count "used_count"
	FROM usage_counters
	WHERE user_id = :1 AND feature = :2 AND usage_period = :3`

	executor := GetExecutor(ctx, a.db)
	err := executor.GetContext(ctx, &counter, query, userID, string(feature), period)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get usage counter for user %s: %w", userID, err)
	}
	return counter.UsedCount, nil
}

// Increment implements domain.UsageRepository. MERGE makes the first
// increment of a period create the row.
func (a *UsageDatabaseAdapter) Increment(ctx context.Context, userID string, feature domain.Feature, period string) error {
	query := `MERGE INTO usage_counters uc
	USING (SELECT :1 user_id, :2 feature, :3 usage_period FROM dual) src
	ON (uc.user_id = src.user_id AND uc.feature = src.feature AND uc.usage_period = src.usage_period)
	WHEN MATCHED THEN
		UPDATE SET uc.used_count = uc.used_count + 1
	WHEN NOT MATCHED THEN
		INSERT (user_id, feature, usage_period, used_count)
		VALUES (src.user_id, src.feature, src.usage_period, 1)`

	executor := GetExecutor(ctx, a.db)
	_, err := executor.ExecContext(ctx, query, userID, string(feature), period)
	if err != nil {
		return fmt.Errorf("failed to increment usage counter for user %s: %w", userID, err)
	}
	return nil
}
