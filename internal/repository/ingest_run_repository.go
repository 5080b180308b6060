package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"sentinel-ds/internal/model"
)

type IngestRunRepository struct {
	db *gorm.DB
}

func NewIngestRunRepository(db *gorm.DB) *IngestRunRepository {
	return &IngestRunRepository{db: db}
}

func (r *IngestRunRepository) Create(ctx context.Context, run *model.IngestRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("create ingest run failed: %w", err)
	}
	return nil
}

func (r *IngestRunRepository) GetByRunID(ctx context.Context, runID string) (*model.IngestRun, error) {
	var run model.IngestRun
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query ingest run failed: %w", err)
	}
	return &run, nil
}

// ListRecent returns the latest runs, newest first.
func (r *IngestRunRepository) ListRecent(ctx context.Context, limit int) ([]model.IngestRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var list []model.IngestRun
	err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list ingest runs failed: %w", err)
	}
	return list, nil
}
