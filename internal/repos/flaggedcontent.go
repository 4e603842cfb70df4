package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/pulsemind/pulsemind-backend/internal/platform/logger"
	"github.com/pulsemind/pulsemind-backend/internal/types"
)

type FlaggedContentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, flag *types.FlaggedContent) (*types.FlaggedContent, error)
	ListPending(ctx context.Context, tx *gorm.DB, limit int) ([]*types.FlaggedContent, error)
	Save(ctx context.Context, tx *gorm.DB, flag *types.FlaggedContent) error
}

type flaggedContentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFlaggedContentRepo(db *gorm.DB, baseLog *logger.Logger) FlaggedContentRepo {
	return &flaggedContentRepo{db: db, log: baseLog.With("repo", "FlaggedContentRepo")}
}

func (r *flaggedContentRepo) Create(ctx context.Context, tx *gorm.DB, flag *types.FlaggedContent) (*types.FlaggedContent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(flag).Error; err != nil {
		return nil, err
	}
	return flag, nil
}

func (r *flaggedContentRepo) ListPending(ctx context.Context, tx *gorm.DB, limit int) ([]*types.FlaggedContent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.FlaggedContent
	if err := transaction.WithContext(ctx).
		Preload("User").
		Where("status = ?", types.FlagStatusPending).
		Order("flagged_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *flaggedContentRepo) Save(ctx context.Context, tx *gorm.DB, flag *types.FlaggedContent) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(flag).Error
}
