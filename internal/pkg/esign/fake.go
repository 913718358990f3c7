package esign

import (
	"context"
	"fmt"
	"sync"
)

// Fake completes every envelope immediately with sequential ids.
type Fake struct {
	mu  sync.Mutex
	seq int

	// FailSign makes Sign return an error, for failure-path tests.
	FailSign bool
}

func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) Sign(ctx context.Context, req *SignRequest) (*Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailSign {
		return nil, fmt.Errorf("esign provider unavailable")
	}

	f.seq++
	return &Result{EnvelopeID: fmt.Sprintf("env_test_%06d", f.seq)}, nil
}
