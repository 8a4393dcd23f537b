package model

import (
	"time"

	"share-platform/services/user/internal/entity"

	"gorm.io/gorm"
)

type AccountModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Phone     string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Password  string    `gorm:"type:varchar(100);not null" json:"-"`
	Nickname  string    `gorm:"type:varchar(64)" json:"nickname"`
	AvatarURL string    `gorm:"type:varchar(500)" json:"avatar_url"`
	Bonus     int       `gorm:"not null" json:"bonus"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AccountModel) TableName() string {
	return "accounts"
}

func (a *AccountModel) BeforeCreate(tx *gorm.DB) error {
	if a.Nickname == "" {
		a.Nickname = entity.DefaultNickname
	}
	if a.AvatarURL == "" {
		a.AvatarURL = entity.DefaultAvatarURL
	}
	return nil
}
