package model

import "time"

type NoticeModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Content   string    `gorm:"type:varchar(255);not null" json:"content"`
	ShowFlag  bool      `gorm:"not null" json:"show_flag"`
	CreatedAt time.Time `json:"created_at"`
}

func (NoticeModel) TableName() string {
	return "notices"
}
