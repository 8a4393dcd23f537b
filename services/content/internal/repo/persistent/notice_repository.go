package persistent

import (
	"context"
	"errors"
	"fmt"

	"share-platform/pkg/apperr"
	"share-platform/services/content/internal/entity"
	"share-platform/services/content/internal/model"

	"gorm.io/gorm"
)

type NoticeRepository interface {
	Latest(ctx context.Context) (*entity.Notice, error)
	Create(ctx context.Context, notice *entity.Notice) error
}

type noticeRepository struct {
	db *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) NoticeRepository {
	return &noticeRepository{db: db}
}

func (r *noticeRepository) Latest(ctx context.Context) (*entity.Notice, error) {
	var noticeModel model.NoticeModel
	err := r.db.WithContext(ctx).
		Where("show_flag = ?", true).
		Order("id DESC").
		First(&noticeModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("notice: %w", apperr.ErrNotFound)
		}
		return nil, err
	}
	return ToNoticeEntity(&noticeModel), nil
}

func (r *noticeRepository) Create(ctx context.Context, notice *entity.Notice) error {
	noticeModel := ToNoticeModel(notice)
	if err := r.db.WithContext(ctx).Create(noticeModel).Error; err != nil {
		return err
	}
	*notice = *ToNoticeEntity(noticeModel)
	return nil
}
