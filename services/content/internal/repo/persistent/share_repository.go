package persistent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"share-platform/pkg/apperr"
	"share-platform/pkg/database"
	"share-platform/services/content/internal/entity"
	"share-platform/services/content/internal/model"

	"gorm.io/gorm"
)

type ShareRepository interface {
	// List returns approved, visible shares whose title contains title
	// (case-insensitive), newest first.
	List(ctx context.Context, title string, limit, offset int) ([]*entity.Share, error)
	GetByID(ctx context.Context, id int64) (*entity.Share, error)
	Create(ctx context.Context, share *entity.Share) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*entity.Share, error)
	ListPending(ctx context.Context) ([]*entity.Share, error)
	UpdateAudit(ctx context.Context, id int64, status entity.AuditStatus, reason string, showFlag bool) (*entity.Share, error)
	HasUnlock(ctx context.Context, userID, shareID int64) (bool, error)
	// UnlockedIDs returns the subset of shareIDs the account has unlocked.
	UnlockedIDs(ctx context.Context, userID int64, shareIDs []int64) (map[int64]bool, error)
	// CreateUnlock records the unlock and bumps the buy count atomically.
	// created is false when the pair was already unlocked.
	CreateUnlock(ctx context.Context, userID, shareID int64) (created bool, err error)
}

type shareRepository struct {
	db *gorm.DB
}

func NewShareRepository(db *gorm.DB) ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) List(ctx context.Context, title string, limit, offset int) ([]*entity.Share, error) {
	var shareModels []model.ShareModel
	query := r.db.WithContext(ctx).
		Where("audit_status = ? AND show_flag = ?", string(entity.AuditPass), true)
	if title = strings.TrimSpace(title); title != "" {
		query = query.Where("LOWER(title) LIKE ? ESCAPE '\\'", "%"+strings.ToLower(escapeLike(title))+"%")
	}
	if err := query.Order("id DESC").Limit(limit).Offset(offset).Find(&shareModels).Error; err != nil {
		return nil, err
	}
	return ToShareEntities(shareModels), nil
}

func (r *shareRepository) GetByID(ctx context.Context, id int64) (*entity.Share, error) {
	var shareModel model.ShareModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&shareModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("share %d: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return ToShareEntity(&shareModel), nil
}

func (r *shareRepository) Create(ctx context.Context, share *entity.Share) error {
	shareModel := ToShareModel(share)
	if err := r.db.WithContext(ctx).Create(shareModel).Error; err != nil {
		return err
	}
	*share = *ToShareEntity(shareModel)
	return nil
}

func (r *shareRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*entity.Share, error) {
	var shareModels []model.ShareModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&shareModels).Error; err != nil {
		return nil, err
	}
	return ToShareEntities(shareModels), nil
}

func (r *shareRepository) ListPending(ctx context.Context) ([]*entity.Share, error) {
	var shareModels []model.ShareModel
	if err := r.db.WithContext(ctx).
		Where("audit_status = ? AND show_flag = ?", string(entity.AuditNotYet), false).
		Order("id DESC").
		Find(&shareModels).Error; err != nil {
		return nil, err
	}
	return ToShareEntities(shareModels), nil
}

func (r *shareRepository) UpdateAudit(ctx context.Context, id int64, status entity.AuditStatus, reason string, showFlag bool) (*entity.Share, error) {
	result := r.db.WithContext(ctx).Model(&model.ShareModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"audit_status": string(status),
			"reason":       reason,
			"show_flag":    showFlag,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("share %d: %w", id, apperr.ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

func (r *shareRepository) HasUnlock(ctx context.Context, userID, shareID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.MidUserShareModel{}).
		Where("user_id = ? AND share_id = ?", userID, shareID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *shareRepository) UnlockedIDs(ctx context.Context, userID int64, shareIDs []int64) (map[int64]bool, error) {
	unlocked := make(map[int64]bool, len(shareIDs))
	if len(shareIDs) == 0 {
		return unlocked, nil
	}

	var ids []int64
	if err := r.db.WithContext(ctx).Model(&model.MidUserShareModel{}).
		Where("user_id = ? AND share_id IN ?", userID, shareIDs).
		Pluck("share_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		unlocked[id] = true
	}
	return unlocked, nil
}

func (r *shareRepository) CreateUnlock(ctx context.Context, userID, shareID int64) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.MidUserShareModel{UserID: userID, ShareID: shareID}).Error; err != nil {
			return err
		}
		return tx.Model(&model.ShareModel{}).
			Where("id = ?", shareID).
			UpdateColumn("buy_count", gorm.Expr("buy_count + ?", 1)).Error
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
