// Package esign wraps the e-signature vendor. The live client sends the
// document out for a real signature; the fake completes instantly with
// deterministic envelope ids.
package esign

import (
	"context"
)

type SignRequest struct {
	DocumentID  int64
	SignerID    int64
	SignerName  string
	SignerEmail string
	FileURL     string
}

type Result struct {
	EnvelopeID string `json:"envelope_id"`
}

// Provider is the signing capability used by the sign service.
type Provider interface {
	Sign(ctx context.Context, req *SignRequest) (*Result, error)
}
