// Package payment wraps the card payment provider. The live client talks to
// the provider's REST API; the fake is deterministic for tests and PREVIEW
// flows.
package payment

import (
	"context"
)

// Intent is a provider payment intent in the shape the rest of the server
// cares about.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// Intent statuses we act on.
const (
	IntentStatusSucceeded = "succeeded"
)

// Provider is the payment capability used by the payment service.
type Provider interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
}
