package entity

import "time"

type BonusEventType string

const (
	EventBuy        BonusEventType = "BUY"
	EventContribute BonusEventType = "CONTRIBUTE"
	EventGrant      BonusEventType = "GRANT"
)

// BonusEvent is one immutable line of an account's ledger.
type BonusEvent struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"userId"`
	Value       int            `json:"value"`
	Event       BonusEventType `json:"event"`
	Description string         `json:"description"`
	RequestKey  string         `json:"requestKey,omitempty"`
	CreatedAt   time.Time      `json:"createTime"`
}
