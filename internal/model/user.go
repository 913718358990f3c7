package model

import (
	"time"
)

// Tier names. LiveQuota/LiveUsed gating is the quota service's job; the
// storage layer only persists the counters.
const (
	TierFree       = "free"
	TierPro        = "pro"
	TierEnterprise = "enterprise"
)

type User struct {
	ID                   int64     `gorm:"primaryKey" json:"id"`
	Email                string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash         string    `gorm:"size:255;not null" json:"-"`
	FullName             string    `gorm:"size:100" json:"full_name"`
	Tier                 string    `gorm:"size:20;default:free" json:"tier"`
	LiveQuota            int       `gorm:"default:0" json:"live_quota"`
	LiveUsed             int       `gorm:"default:0" json:"live_used"`
	StripeCustomerID     *string   `gorm:"size:100" json:"-"`
	StripeSubscriptionID *string   `gorm:"size:100" json:"-"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
