package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/qflow/qflow-api/internal/domain/qna"
)

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) CreateBatch(ctx context.Context, items []qna.QuestionItem) error {
	if len(items) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return fmt.Errorf("create questions failed: %w", err)
	}
	return nil
}

func (r *QuestionRepository) GetByID(ctx context.Context, id string) (*qna.QuestionItem, error) {
	var item qna.QuestionItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get question failed: %w", err)
	}
	return &item, nil
}

func (r *QuestionRepository) ListByProject(ctx context.Context, projectID string, status qna.QuestionStatus) ([]qna.QuestionItem, error) {
	q := r.db.WithContext(ctx).Where("project_id = ?", projectID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var items []qna.QuestionItem
	if err := q.Order("row_index ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list questions failed: %w", err)
	}
	return items, nil
}

func (r *QuestionRepository) CountByStatus(ctx context.Context, projectID string) (map[qna.QuestionStatus]int, error) {
	type row struct {
		Status qna.QuestionStatus
		N      int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&qna.QuestionItem{}).
		Select("status, count(*) as n").
		Where("project_id = ?", projectID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count questions failed: %w", err)
	}

	counts := make(map[qna.QuestionStatus]int, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}

func (r *QuestionRepository) SaveDraft(ctx context.Context, id string, answer string, confidence float64, status qna.QuestionStatus) error {
	err := r.db.WithContext(ctx).Model(&qna.QuestionItem{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"ai_answer":        answer,
			"confidence_score": confidence,
			"status":           status,
			"updated_at":       time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("save draft failed: %w", err)
	}
	return nil
}

func (r *QuestionRepository) UpdateStatus(ctx context.Context, id string, status qna.QuestionStatus) error {
	err := r.db.WithContext(ctx).Model(&qna.QuestionItem{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error
	if err != nil {
		return fmt.Errorf("update question status failed: %w", err)
	}
	return nil
}

func (r *QuestionRepository) SaveReview(ctx context.Context, id string, status qna.QuestionStatus, humanAnswer *string) error {
	updates := map[string]any{"status": status, "updated_at": time.Now()}
	if humanAnswer != nil {
		updates["human_answer"] = *humanAnswer
	}
	err := r.db.WithContext(ctx).Model(&qna.QuestionItem{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("save review failed: %w", err)
	}
	return nil
}
