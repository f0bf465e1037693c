package ports

import (
	"context"

	"github.com/drivemate/kyc-platform/internal/core/domain"
)

// ProviderClient drives the OAuth style handshake with the document issuing
// provider. All provider traffic is mediated by the backend, which owns the
// provider credentials.
type ProviderClient interface {
	// Initiate returns the provider authorization URL the UI shell must open
	Initiate(ctx context.Context, userID, callbackURL string) (string, error)
	// HandleRedirect parses the raw callback URL into a tagged outcome. Any
	// query shape outside the known ones is a cancellation with the raw
	// error attached.
	HandleRedirect(rawCallbackURL string) domain.RedirectOutcome
	// ExchangeToken performs the backend mediated code exchange
	ExchangeToken(ctx context.Context, code, state string) (*domain.ProviderIdentityAttributes, error)
	// FetchLegacyAttributes resolves attributes for the previous integration
	// generation, keyed by provider session id
	FetchLegacyAttributes(ctx context.Context, sessionID string) (*domain.ProviderIdentityAttributes, error)
}

// ProviderBackend is the HTTP gateway to the backend identity endpoints
type ProviderBackend interface {
	InitiateAuth(ctx context.Context, userID, callbackURL string) (string, error)
	ExchangeToken(ctx context.Context, code, state string) (*domain.ProviderIdentityAttributes, error)
	LegacyMatch(ctx context.Context, sessionID string) (*domain.ProviderIdentityAttributes, error)
}
