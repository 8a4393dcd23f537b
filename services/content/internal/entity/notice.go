package entity

import "time"

type Notice struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	ShowFlag  bool      `json:"showFlag"`
	CreatedAt time.Time `json:"createTime"`
}
