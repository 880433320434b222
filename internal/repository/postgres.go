// Package repository holds the gorm-backed implementations of the
// relational store interfaces.
package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/qflow/qflow-api/internal/auth"
	"github.com/qflow/qflow-api/internal/config"
	"github.com/qflow/qflow-api/internal/domain/qna"
)

func Open(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get postgres sql db failed: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping postgres failed: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the relational schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&auth.User{},
		&qna.Document{},
		&qna.Project{},
		&qna.QuestionItem{},
		&qna.AnswerCitation{},
		&qna.ReviewEvent{},
	)
}

// Health probes database reachability within the health check budget.
func Health(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get postgres sql db failed: %w", err)
	}
	probeCtx, cancel := context.WithTimeout(ctx, config.HealthCheckTimeout)
	defer cancel()
	if err := sqlDB.PingContext(probeCtx); err != nil {
		return fmt.Errorf("postgres unreachable: %w", err)
	}
	return nil
}
