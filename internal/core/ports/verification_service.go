package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/drivemate/kyc-platform/internal/core/domain"
)

// VerificationService orchestrates one verification attempt end to end
type VerificationService interface {
	// Start creates a new session and returns it together with the provider
	// authorization URL the caller must open.
	Start(ctx context.Context, userID string) (*domain.VerificationSession, string, error)
	// Resume consumes the provider redirect and drives the session to a
	// terminal state. Redirects delivered after the session already reached
	// a terminal state are ignored and the stored session is returned as is.
	Resume(ctx context.Context, sessionID uuid.UUID, rawCallbackURL string) (*domain.VerificationSession, error)
	// GetSession returns the current observable session state
	GetSession(ctx context.Context, id uuid.UUID) (*domain.VerificationSession, error)
	// UserStatus returns the durable per user verification projection,
	// including the retry counter used for persistent guidance.
	UserStatus(ctx context.Context, userID string) (*domain.UserVerification, error)
}
