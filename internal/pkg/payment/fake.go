package payment

import (
	"context"
	"fmt"
	"sync"
)

// Fake is a deterministic in-memory provider. Intent ids are sequential so
// test runs are reproducible; no randomness stands in for provider responses.
type Fake struct {
	mu      sync.Mutex
	seq     int
	intents map[string]*Intent

	// FailCreate makes CreateIntent return an error, for failure-path tests.
	FailCreate bool
}

func NewFake() *Fake {
	return &Fake{intents: make(map[string]*Intent)}
}

func (f *Fake) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailCreate {
		return nil, fmt.Errorf("payment provider unavailable")
	}

	f.seq++
	id := fmt.Sprintf("pi_test_%06d", f.seq)
	intent := &Intent{
		ID:           id,
		ClientSecret: id + "_secret",
		Status:       IntentStatusSucceeded,
		Amount:       amount,
		Currency:     currency,
	}
	f.intents[id] = intent

	return intent, nil
}

func (f *Fake) GetIntent(ctx context.Context, id string) (*Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	intent, ok := f.intents[id]
	if !ok {
		return nil, fmt.Errorf("no such payment intent: %s", id)
	}
	return intent, nil
}
