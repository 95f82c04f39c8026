package notification

import (
	"context"
	"time"

	"loan-origination-backend/internal/domain/application"
)

// StatusChanged is the event published after a workflow transition commits.
type StatusChanged struct {
	EventID           string             `json:"event_id"`
	ApplicationNumber string             `json:"application_number"`
	CustomerID        string             `json:"customer_id"`
	Status            application.Status `json:"status"`
	StatusLabel       string             `json:"status_label"`
	OccurredAt        time.Time          `json:"occurred_at"`
}

// Notifier delivers status-change events. Delivery is best-effort: callers
// log the returned error and never fail the triggering operation on it.
type Notifier interface {
	NotifyStatusChange(ctx context.Context, a *application.Application) error
}
