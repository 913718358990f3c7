package dto

import (
	"github.com/signhey/signhey-server/internal/model"
)

type SignerInput struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email"`
}

type CreateDocumentRequest struct {
	Title   string        `json:"title" binding:"required,max=200"`
	FileURL string        `json:"file_url" binding:"omitempty,max=500"`
	Mode    string        `json:"mode" binding:"omitempty,oneof=preview live"`
	Signers []SignerInput `json:"signers" binding:"omitempty,dive"`
}

// UpdateDocumentRequest replaces the mutable document fields. Signers, when
// present, replace the existing set wholesale.
type UpdateDocumentRequest struct {
	Title   string        `json:"title" binding:"omitempty,max=200"`
	FileURL string        `json:"file_url" binding:"omitempty,max=500"`
	Status  string        `json:"status" binding:"omitempty,oneof=draft pending completed"`
	Mode    string        `json:"mode" binding:"omitempty,oneof=preview live"`
	Signers []SignerInput `json:"signers" binding:"omitempty,dive"`
}

type DocumentDetail struct {
	*model.Document
	Signers []*model.Signer `json:"signers"`
}

type DocumentList struct {
	Documents []*model.Document `json:"documents"`
	Total     int64             `json:"total"`
}
