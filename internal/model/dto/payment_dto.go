package dto

type CreateIntentRequest struct {
	Amount int    `json:"amount" binding:"required,min=1"` // cents
	Mode   string `json:"mode" binding:"omitempty,oneof=preview live"`
}

type CreateIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	Mode         string `json:"mode"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
	Mode            string `json:"mode" binding:"omitempty,oneof=preview live"`
}

type SubscriptionIntentRequest struct {
	Tier string `json:"tier" binding:"required,oneof=pro enterprise"`
}

type ConfirmSubscriptionRequest struct {
	Tier            string `json:"tier" binding:"required,oneof=pro enterprise"`
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}
