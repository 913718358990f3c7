package model

import (
	"time"
)

type Signer struct {
	ID         int64      `gorm:"primaryKey" json:"id"`
	DocumentID int64      `gorm:"not null;index" json:"document_id"`
	Name       string     `gorm:"size:100;not null" json:"name"`
	Email      string     `gorm:"size:100;not null" json:"email"`
	Signed     bool       `gorm:"default:false" json:"signed"`
	SignedAt   *time.Time `json:"signed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (Signer) TableName() string {
	return "signers"
}
