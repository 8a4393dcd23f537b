package entity

import "time"

type AuditStatus string

const (
	AuditNotYet AuditStatus = "NOT_YET"
	AuditPass   AuditStatus = "PASS"
	AuditReject AuditStatus = "REJECT"
)

const DefaultReason = "未审核"

type Share struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"userId"`
	Title       string      `json:"title"`
	IsOriginal  bool        `json:"isOriginal"`
	Author      string      `json:"author"`
	Cover       string      `json:"cover"`
	Summary     string      `json:"summary"`
	Price       int         `json:"price"`
	DownloadURL string      `json:"downloadUrl"`
	ShowFlag    bool        `json:"showFlag"`
	AuditStatus AuditStatus `json:"auditStatus"`
	Reason      string      `json:"reason"`
	BuyCount    int         `json:"buyCount"`
	CreatedAt   time.Time   `json:"createTime"`
	UpdatedAt   time.Time   `json:"updateTime"`
}

// Listed reports whether the share is approved and visible to everyone.
func (s *Share) Listed() bool {
	return s.AuditStatus == AuditPass && s.ShowFlag
}

// Masked returns a copy without the download reference.
func (s *Share) Masked() *Share {
	c := *s
	c.DownloadURL = ""
	return &c
}

// ShareDetail is a share together with its contributor's public profile.
type ShareDetail struct {
	Share     *Share `json:"share"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
}

// Unlock records that an account paid for a share.
type Unlock struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ShareID   int64     `json:"shareId"`
	CreatedAt time.Time `json:"createTime"`
}
