package mocks

import (
	"context"
	"sync"
	"time"

	"photo-bridge/internal/domain"
)

// StatusRecorder captures published status messages for assertions.
type StatusRecorder struct {
	mu       sync.Mutex
	messages []domain.StatusMessage
}

func (r *StatusRecorder) Publish(_ context.Context, msg domain.StatusMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *StatusRecorder) Messages() []domain.StatusMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.StatusMessage, len(r.messages))
	copy(out, r.messages)
	return out
}

// WaitFor polls until n messages have been recorded or the timeout passes.
func (r *StatusRecorder) WaitFor(n int, timeout time.Duration) []domain.StatusMessage {
	deadline := time.Now().Add(timeout)
	for {
		msgs := r.Messages()
		if len(msgs) >= n || time.Now().After(deadline) {
			return msgs
		}
		time.Sleep(10 * time.Millisecond)
	}
}
