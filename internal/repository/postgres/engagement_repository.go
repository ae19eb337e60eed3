package postgres

import (
	"context"
	"fmt"

	"skyVoyage/domain"

	"gorm.io/gorm"
)

type EngagementRepository struct {
	DB *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) *EngagementRepository {
	return &EngagementRepository{DB: db}
}

func (r *EngagementRepository) SaveEvent(ctx context.Context, event domain.EngagementEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to save engagement event: %w", err)
	}

	return nil
}

// RecentByUser returns the newest events for one user, for offline review
// of what the decision service showed and what the user did with it.
func (r *EngagementRepository) RecentByUser(ctx context.Context, userID string, limit int) ([]domain.EngagementEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = 50
	}

	var events []domain.EngagementEvent
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query engagement events: %w", err)
	}

	return events, nil
}
