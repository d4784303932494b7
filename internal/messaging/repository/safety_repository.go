package repository

import (
	"context"

	"qsite/internal/messaging/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SafetyRepository definition block / report access
type SafetyRepository interface {
	ListBlocks(ctx context.Context, blockerID string) ([]domain.Block, error)
	CreateBlock(ctx context.Context, block *domain.Block) error
	DeleteBlock(ctx context.Context, blockerID, blockedID string) error
	CreateReport(ctx context.Context, report *domain.Report) error
}

type safetyRepository struct {
	db *gorm.DB
}

// NewSafetyRepository create a SafetyRepository
func NewSafetyRepository(db *gorm.DB) SafetyRepository {
	return &safetyRepository{db: db}
}

func (r *safetyRepository) ListBlocks(ctx context.Context, blockerID string) ([]domain.Block, error) {
	blocks := []domain.Block{}
	err := r.db.WithContext(ctx).
		Where("blocker_id = ?", blockerID).
		Order("created_at DESC").
		Find(&blocks).Error
	return blocks, err
}

// CreateBlock 已封鎖則不動
func (r *safetyRepository) CreateBlock(ctx context.Context, block *domain.Block) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(block).Error
}

func (r *safetyRepository) DeleteBlock(ctx context.Context, blockerID, blockedID string) error {
	return r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&domain.Block{}).Error
}

func (r *safetyRepository) CreateReport(ctx context.Context, report *domain.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}
