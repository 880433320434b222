package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/qflow/qflow-api/internal/domain/qna"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *qna.Document) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return fmt.Errorf("create document failed: %w", err)
	}
	return nil
}

func (r *DocumentRepository) FindByOwnerAndHash(ctx context.Context, ownerID, contentHash string) (*qna.Document, error) {
	var doc qna.Document
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND content_hash = ?", ownerID, contentHash).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find document failed: %w", err)
	}
	return &doc, nil
}

func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]qna.Document, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&qna.Document{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count documents failed: %w", err)
	}

	var docs []qna.Document
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("upload_date DESC").
		Limit(limit).Offset(offset).
		Find(&docs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list documents failed: %w", err)
	}
	return docs, total, nil
}
