package entity

import "time"

const (
	DefaultNickname  = "新用户"
	DefaultAvatarURL = "https://niit-soft.oss-cn-hangzhou.aliyuncs.com/avatar/8.jpg"
	InitialBonus     = 100
)

type Account struct {
	ID        int64     `json:"id"`
	Phone     string    `json:"phone"`
	Password  string    `json:"-"`
	Nickname  string    `json:"nickname"`
	AvatarURL string    `json:"avatarUrl"`
	Bonus     int       `json:"bonus"`
	CreatedAt time.Time `json:"createTime"`
	UpdatedAt time.Time `json:"updateTime"`
}
