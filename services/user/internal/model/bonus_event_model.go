package model

import "time"

type BonusEventModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64     `gorm:"index;not null" json:"user_id"`
	Value       int       `gorm:"not null" json:"value"`
	Event       string    `gorm:"type:varchar(20);not null" json:"event"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	RequestKey  *string   `gorm:"type:varchar(128);uniqueIndex" json:"request_key"`
	CreatedAt   time.Time `json:"created_at"`
}

func (BonusEventModel) TableName() string {
	return "bonus_event_logs"
}
