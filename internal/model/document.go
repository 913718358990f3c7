package model

import (
	"time"
)

// Processing modes. A live action is real, persisted and counted against the
// monthly quota; a preview action is simulated and never touches the counter.
const (
	ModePreview = "preview"
	ModeLive    = "live"
)

// Document statuses.
const (
	DocumentStatusDraft     = "draft"
	DocumentStatusPending   = "pending"
	DocumentStatusCompleted = "completed"
)

type Document struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	FileURL   string    `gorm:"size:500" json:"file_url"`
	Status    string    `gorm:"size:20;default:draft;index" json:"status"`
	Mode      string    `gorm:"size:20;default:preview" json:"mode"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Document) TableName() string {
	return "documents"
}
