package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/qflow/qflow-api/internal/domain/qna"
)

type CitationRepository struct {
	db *gorm.DB
}

func NewCitationRepository(db *gorm.DB) *CitationRepository {
	return &CitationRepository{db: db}
}

// ReplaceForQuestion swaps the question's citation set transactionally so
// readers never observe a mix of old and new rows.
func (r *CitationRepository) ReplaceForQuestion(ctx context.Context, questionItemID string, citations []qna.AnswerCitation) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_item_id = ?", questionItemID).
			Delete(&qna.AnswerCitation{}).Error; err != nil {
			return err
		}
		if len(citations) == 0 {
			return nil
		}
		return tx.Create(&citations).Error
	})
	if err != nil {
		return fmt.Errorf("replace citations failed: %w", err)
	}
	return nil
}

func (r *CitationRepository) ListByQuestion(ctx context.Context, questionItemID string) ([]qna.AnswerCitation, error) {
	var citations []qna.AnswerCitation
	err := r.db.WithContext(ctx).
		Where("question_item_id = ?", questionItemID).
		Order("score DESC").
		Find(&citations).Error
	if err != nil {
		return nil, fmt.Errorf("list citations failed: %w", err)
	}
	return citations, nil
}
