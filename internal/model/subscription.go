package model

import (
	"time"
)

type Subscription struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	UserID        int64     `gorm:"not null;index" json:"user_id"`
	Tier          string    `gorm:"size:20;not null" json:"tier"` // pro, enterprise
	Amount        int       `gorm:"not null" json:"amount"`       // cents
	LiveQuota     int       `json:"live_quota"`
	StartedAt     time.Time `gorm:"not null" json:"started_at"`
	Status        string    `gorm:"size:20;default:active;index" json:"status"` // active, cancelled
	TransactionID string    `gorm:"size:100" json:"transaction_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
