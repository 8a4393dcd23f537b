package persistent

import (
	"share-platform/services/content/internal/entity"
	"share-platform/services/content/internal/model"
)

func ToShareEntity(m *model.ShareModel) *entity.Share {
	if m == nil {
		return nil
	}

	return &entity.Share{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		IsOriginal:  m.IsOriginal,
		Author:      m.Author,
		Cover:       m.Cover,
		Summary:     m.Summary,
		Price:       m.Price,
		DownloadURL: m.DownloadURL,
		ShowFlag:    m.ShowFlag,
		AuditStatus: entity.AuditStatus(m.AuditStatus),
		Reason:      m.Reason,
		BuyCount:    m.BuyCount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToShareModel(e *entity.Share) *model.ShareModel {
	if e == nil {
		return nil
	}

	return &model.ShareModel{
		ID:          e.ID,
		UserID:      e.UserID,
		Title:       e.Title,
		IsOriginal:  e.IsOriginal,
		Author:      e.Author,
		Cover:       e.Cover,
		Summary:     e.Summary,
		Price:       e.Price,
		DownloadURL: e.DownloadURL,
		ShowFlag:    e.ShowFlag,
		AuditStatus: string(e.AuditStatus),
		Reason:      e.Reason,
		BuyCount:    e.BuyCount,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToShareEntities(models []model.ShareModel) []*entity.Share {
	shares := make([]*entity.Share, len(models))
	for i := range models {
		shares[i] = ToShareEntity(&models[i])
	}
	return shares
}

func ToUnlockEntity(m *model.MidUserShareModel) *entity.Unlock {
	if m == nil {
		return nil
	}

	return &entity.Unlock{
		ID:        m.ID,
		UserID:    m.UserID,
		ShareID:   m.ShareID,
		CreatedAt: m.CreatedAt,
	}
}

func ToNoticeEntity(m *model.NoticeModel) *entity.Notice {
	if m == nil {
		return nil
	}

	return &entity.Notice{
		ID:        m.ID,
		Content:   m.Content,
		ShowFlag:  m.ShowFlag,
		CreatedAt: m.CreatedAt,
	}
}

func ToNoticeModel(e *entity.Notice) *model.NoticeModel {
	if e == nil {
		return nil
	}

	return &model.NoticeModel{
		ID:        e.ID,
		Content:   e.Content,
		ShowFlag:  e.ShowFlag,
		CreatedAt: e.CreatedAt,
	}
}
