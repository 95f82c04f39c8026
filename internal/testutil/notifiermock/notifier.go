package notifiermock

import (
	"context"
	"sync"

	"loan-origination-backend/internal/domain/application"
	"loan-origination-backend/internal/notification"
)

var _ notification.Notifier = (*Notifier)(nil)

// Notifier records every status-change dispatch; set Err to simulate a
// delivery failure.
type Notifier struct {
	mu       sync.Mutex
	Err      error
	notified []application.Status
}

func (m *Notifier) NotifyStatusChange(ctx context.Context, a *application.Application) error {
	m.mu.Lock()
	m.notified = append(m.notified, a.Status)
	m.mu.Unlock()
	return m.Err
}

// Notified returns the statuses dispatched so far, in order.
func (m *Notifier) Notified() []application.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]application.Status, len(m.notified))
	copy(out, m.notified)
	return out
}
