package gateways

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/drivemate/kyc-platform/internal/core/domain"
	"github.com/drivemate/kyc-platform/internal/core/ports"
	"github.com/drivemate/kyc-platform/pkg/http"
)

// FinalizerClient reports the aggregate decision to the backend identity
// record. The underlying client retries at most once on transient transport
// failure; anything beyond that is surfaced to the caller.
type FinalizerClient struct {
	conn *http.Client
	url  string
}

// NewFinalizerClient creates a finalization endpoint client
func NewFinalizerClient(url string) ports.FinalizationGateway {
	return &FinalizerClient{
		conn: http.NewClientWithRetries(1),
		url:  url,
	}
}

type finalizeRequest struct {
	UserID    string          `json:"userId"`
	Status    string          `json:"status"`
	Documents map[string]bool `json:"documents"`
}

type finalizeResponse struct {
	Ack bool `json:"ack"`
}

// Report persists the outcome on the backend identity record
func (c *FinalizerClient) Report(ctx context.Context, userID string, outcome domain.AggregateOutcome) error {
	docs := make(map[string]bool, len(outcome.PerCategory))
	for category, passed := range outcome.PerCategory {
		docs[string(category)] = passed
	}

	reqBody, err := json.Marshal(finalizeRequest{
		UserID:    userID,
		Status:    string(outcome.Status()),
		Documents: docs,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	resp, err := c.conn.Post(ctx, c.url, reqBody)
	if err != nil {
		return errors.WithStack(err)
	}

	var out finalizeResponse
	if err := json.Unmarshal(resp, &out); err != nil {
		return errors.WithStack(err)
	}
	if !out.Ack {
		return errors.New("finalization not acknowledged by backend")
	}
	return nil
}
