package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivemate/kyc-platform/internal/core/domain"
)

func TestHandleRedirect(t *testing.T) {
	p := NewProvider(&fakeBackend{}, time.Minute)

	type testConfig struct {
		name string
		raw  string
		want domain.RedirectOutcome
	}

	for _, tc := range []testConfig{
		{
			name: "new style success",
			raw:  "https://host/cb?code=abc123&state=n0nce",
			want: domain.RedirectOutcome{Kind: domain.RedirectSuccess, Code: "abc123", State: "n0nce"},
		},
		{
			name: "legacy session id",
			raw:  "https://host/cb?sessionId=legacy-42",
			want: domain.RedirectOutcome{Kind: domain.RedirectLegacySuccess, SessionID: "legacy-42"},
		},
		{
			name: "no issued documents sentinel",
			raw:  "https://host/cb?error=no_issued_docs",
			want: domain.RedirectOutcome{Kind: domain.RedirectNoIssuedDocuments},
		},
		{
			name: "provider error",
			raw:  "https://host/cb?error=access_denied",
			want: domain.RedirectOutcome{Kind: domain.RedirectCancelled, Err: "access_denied"},
		},
		{
			name: "error takes precedence over code",
			raw:  "https://host/cb?error=server_error&code=abc&state=n",
			want: domain.RedirectOutcome{Kind: domain.RedirectCancelled, Err: "server_error"},
		},
		{
			name: "code without state is not a success",
			raw:  "https://host/cb?code=abc",
			want: domain.RedirectOutcome{Kind: domain.RedirectCancelled, Err: "code=abc"},
		},
		{
			name: "empty query",
			raw:  "https://host/cb",
			want: domain.RedirectOutcome{Kind: domain.RedirectCancelled},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.HandleRedirect(tc.raw))
		})
	}
}

func TestProviderErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{
		initiateErr: errors.New("connection refused"),
		exchangeErr: errors.New("bad code"),
		legacyErr:   errors.New("unknown session"),
	}
	p := NewProvider(backend, time.Minute)

	_, err := p.Initiate(ctx, "user-1", "http://cb")
	assert.ErrorIs(t, err, ErrProviderInit)

	_, err = p.ExchangeToken(ctx, "code", "state")
	assert.ErrorIs(t, err, ErrTokenExchange)

	_, err = p.FetchLegacyAttributes(ctx, "legacy-1")
	assert.ErrorIs(t, err, ErrTokenExchange)
}

func TestProviderExchangeReturnsAttributes(t *testing.T) {
	p := NewProvider(&fakeBackend{attrs: fullAttrs()}, time.Minute)

	attrs, err := p.ExchangeToken(context.Background(), "code", "state")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", attrs.FullName)

	ref, ok := attrs.ReferenceNumber(domain.CategoryPAN)
	require.True(t, ok)
	assert.Equal(t, "ABCPR1234F", ref)
}
