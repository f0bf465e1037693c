package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/drivemate/kyc-platform/internal/core/domain"
	"github.com/drivemate/kyc-platform/pkg/cache"
)

const (
	defaultTTL = 30 * time.Minute
	keyPrefix  = "verification_session:"
)

// Manager defines the interface for the live session snapshot cache consumed
// by the read API.
type Manager interface {
	Get(ctx context.Context, id uuid.UUID) (domain.VerificationSession, error)
	Set(ctx context.Context, session domain.VerificationSession) error
}

type cached struct {
	cache cache.Cache
}

// Cached returns a new cached manager
func Cached(c cache.Cache) Manager {
	return &cached{cache: c}
}

// Get returns the cached session snapshot
func (c *cached) Get(ctx context.Context, id uuid.UUID) (domain.VerificationSession, error) {
	var session domain.VerificationSession
	found := c.cache.Get(ctx, keyPrefix+id.String(), &session)
	if !found {
		return session, fmt.Errorf("verification session not cached")
	}

	return session, nil
}

// Set stores the given session snapshot
func (c *cached) Set(ctx context.Context, session domain.VerificationSession) error {
	return c.cache.Set(ctx, keyPrefix+session.ID.String(), session, defaultTTL)
}
