package ports

import (
	"context"

	"github.com/drivemate/kyc-platform/internal/core/domain"
)

// FinalizationGateway reports the aggregate decision back to the backend
// identity record. The report is retried at most once on transient transport
// failure before being surfaced as a finalization failure.
type FinalizationGateway interface {
	Report(ctx context.Context, userID string, outcome domain.AggregateOutcome) error
}

// NotificationGateway pushes a user facing notification
type NotificationGateway interface {
	Notify(ctx context.Context, userID, title, body string) error
}
