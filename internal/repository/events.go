package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/qflow/qflow-api/internal/domain/qna"
)

// ReviewEventRepository is append-only; review events are never updated
// or deleted.
type ReviewEventRepository struct {
	db *gorm.DB
}

func NewReviewEventRepository(db *gorm.DB) *ReviewEventRepository {
	return &ReviewEventRepository{db: db}
}

func (r *ReviewEventRepository) Append(ctx context.Context, event *qna.ReviewEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("append review event failed: %w", err)
	}
	return nil
}
