package dto

import (
	"time"

	"github.com/signhey/signhey-server/internal/model"
)

type CreateAgreementRequest struct {
	ClientName  string `json:"client_name" binding:"required,max=100"`
	ClientEmail string `json:"client_email" binding:"required,email"`
	Title       string `json:"title" binding:"required,max=200"`
	Mode        string `json:"mode" binding:"omitempty,oneof=preview live"`
}

type UpdateAgreementRequest struct {
	ClientName  string `json:"client_name" binding:"omitempty,max=100"`
	ClientEmail string `json:"client_email" binding:"omitempty,email"`
	Title       string `json:"title" binding:"omitempty,max=200"`
	Status      string `json:"status" binding:"omitempty,oneof=pending signed"`
}

type AgreementListItem struct {
	ID         int64  `json:"id"`
	ClientName string `json:"client_name"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	Mode       string `json:"mode"`
	CreatedAt  string `json:"created_at"`
}

type AgreementList struct {
	Agreements []*AgreementListItem `json:"agreements"`
	Total      int64                `json:"total"`
}

func NewAgreementListItem(a *model.Agreement) *AgreementListItem {
	return &AgreementListItem{
		ID:         a.ID,
		ClientName: a.ClientName,
		Title:      a.Title,
		Status:     a.Status,
		Mode:       a.Mode,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}
