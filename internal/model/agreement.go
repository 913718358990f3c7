package model

import (
	"time"
)

// Agreement statuses.
const (
	AgreementStatusPending = "pending"
	AgreementStatusSigned  = "signed"
)

type Agreement struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	UserID      int64      `gorm:"not null;index" json:"user_id"`
	ClientName  string     `gorm:"size:100;not null" json:"client_name"`
	ClientEmail string     `gorm:"size:100;not null" json:"client_email"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Status      string     `gorm:"size:20;default:pending;index" json:"status"`
	Mode        string     `gorm:"size:20;default:preview" json:"mode"`
	SignerLink  string     `gorm:"size:500" json:"signer_link"`
	LinkSent    bool       `gorm:"default:false" json:"link_sent"`
	LinkSentAt  *time.Time `json:"link_sent_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Agreement) TableName() string {
	return "agreements"
}
