package dto

type SignRequest struct {
	DocumentID int64  `json:"document_id" binding:"required"`
	SignerID   int64  `json:"signer_id" binding:"required"`
	Mode       string `json:"mode" binding:"omitempty,oneof=preview live"`
}

type SignResponse struct {
	Mode      string `json:"mode"`
	Simulated bool   `json:"simulated"`
	Envelope  string `json:"envelope_id,omitempty"`
}
