package model

import (
	"time"

	"share-platform/services/content/internal/entity"

	"gorm.io/gorm"
)

type ShareModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64     `gorm:"index;not null" json:"user_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	IsOriginal  bool      `gorm:"not null;default:false" json:"is_original"`
	Author      string    `gorm:"type:varchar(64)" json:"author"`
	Cover       string    `gorm:"type:varchar(500)" json:"cover"`
	Summary     string    `gorm:"type:text" json:"summary"`
	Price       int       `gorm:"not null;default:0" json:"price"`
	DownloadURL string    `gorm:"type:varchar(500)" json:"download_url"`
	ShowFlag    bool      `gorm:"not null;default:false" json:"show_flag"`
	AuditStatus string    `gorm:"type:varchar(10);index;not null" json:"audit_status"`
	Reason      string    `gorm:"type:varchar(255)" json:"reason"`
	BuyCount    int       `gorm:"not null;default:0" json:"buy_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ShareModel) TableName() string {
	return "shares"
}

func (s *ShareModel) BeforeCreate(tx *gorm.DB) error {
	if s.AuditStatus == "" {
		s.AuditStatus = string(entity.AuditNotYet)
	}
	if s.Reason == "" {
		s.Reason = entity.DefaultReason
	}
	return nil
}

// MidUserShareModel is the unlock join table. The composite unique index is
// what stops a share being bought twice by the same account.
type MidUserShareModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_mid_user_share" json:"user_id"`
	ShareID   int64     `gorm:"not null;uniqueIndex:idx_mid_user_share" json:"share_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (MidUserShareModel) TableName() string {
	return "mid_user_share"
}
