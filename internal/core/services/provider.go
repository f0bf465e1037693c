package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/drivemate/kyc-platform/internal/core/domain"
	"github.com/drivemate/kyc-platform/internal/core/ports"
	"github.com/drivemate/kyc-platform/internal/log"
)

// errNoIssuedDocs is the sentinel the provider sends on the redirect when the
// user has zero documents issued to their account.
const errNoIssuedDocs = "no_issued_docs"

type provider struct {
	backend ports.ProviderBackend
	timeout time.Duration
}

// NewProvider returns the identity provider client. All calls to the backend
// carry the configured timeout.
func NewProvider(backend ports.ProviderBackend, timeout time.Duration) ports.ProviderClient {
	return &provider{
		backend: backend,
		timeout: timeout,
	}
}

// Initiate requests a provider authorization URL from the backend
func (p *provider) Initiate(ctx context.Context, userID, callbackURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	authURL, err := p.backend.InitiateAuth(ctx, userID, callbackURL)
	if err != nil {
		log.Error(ctx, "initiating provider authorization", "err", err, "userID", userID)
		return "", fmt.Errorf("%w: %v", ErrProviderInit, err)
	}
	return authURL, nil
}

// HandleRedirect parses the provider callback query into a tagged outcome.
// It never fails: unknown shapes are cancellations with the raw query attached.
func (p *provider) HandleRedirect(rawCallbackURL string) domain.RedirectOutcome {
	u, err := url.Parse(rawCallbackURL)
	if err != nil {
		return domain.RedirectOutcome{Kind: domain.RedirectCancelled, Err: rawCallbackURL}
	}
	q := u.Query()

	if provErr := q.Get("error"); provErr != "" {
		if provErr == errNoIssuedDocs {
			return domain.RedirectOutcome{Kind: domain.RedirectNoIssuedDocuments}
		}
		return domain.RedirectOutcome{Kind: domain.RedirectCancelled, Err: provErr}
	}

	if code, state := q.Get("code"), q.Get("state"); code != "" && state != "" {
		return domain.RedirectOutcome{Kind: domain.RedirectSuccess, Code: code, State: state}
	}

	if sessionID := q.Get("sessionId"); sessionID != "" {
		return domain.RedirectOutcome{Kind: domain.RedirectLegacySuccess, SessionID: sessionID}
	}

	return domain.RedirectOutcome{Kind: domain.RedirectCancelled, Err: u.RawQuery}
}

// ExchangeToken performs the backend mediated code exchange
func (p *provider) ExchangeToken(ctx context.Context, code, state string) (*domain.ProviderIdentityAttributes, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	attrs, err := p.backend.ExchangeToken(ctx, code, state)
	if err != nil {
		log.Error(ctx, "exchanging provider token", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}
	return attrs, nil
}

// FetchLegacyAttributes resolves attributes via the legacy text match lookup
func (p *provider) FetchLegacyAttributes(ctx context.Context, sessionID string) (*domain.ProviderIdentityAttributes, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	attrs, err := p.backend.LegacyMatch(ctx, sessionID)
	if err != nil {
		log.Error(ctx, "fetching legacy provider attributes", "err", err, "providerSessionID", sessionID)
		return nil, fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}
	return attrs, nil
}
