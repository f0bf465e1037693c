package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/drivemate/kyc-platform/internal/core/domain"
	"github.com/drivemate/kyc-platform/internal/db"
)

// SessionRepository persists verification sessions
type SessionRepository interface {
	Save(ctx context.Context, conn db.Querier, session *domain.VerificationSession) error
	GetByID(ctx context.Context, conn db.Querier, id uuid.UUID) (*domain.VerificationSession, error)
	// UpdateState advances the session state only when the current state
	// matches from. Returns false when the guard does not hold, which is how
	// duplicate or late redirects are ignored.
	UpdateState(ctx context.Context, conn db.Querier, id uuid.UUID, from, to domain.SessionState, errCode *domain.ErrorCode) (bool, error)
	SaveOutcome(ctx context.Context, conn db.Querier, id uuid.UUID, outcome domain.AggregateOutcome) error
}

// UserVerificationRepository maintains the durable per user verification
// record: retry counter, last error and overall status.
type UserVerificationRepository interface {
	Get(ctx context.Context, conn db.Querier, userID string) (*domain.UserVerification, error)
	// IncrementRetryCount adds one to the user retry counter and records the
	// error code. Returns the new counter value.
	IncrementRetryCount(ctx context.Context, conn db.Querier, userID string, errCode domain.ErrorCode) (int, error)
	// SetStatus stores the verification status. A VERIFIED status resets the
	// retry counter and clears the last error.
	SetStatus(ctx context.Context, conn db.Querier, userID string, status domain.VerificationStatus, errCode *domain.ErrorCode) error
}

// DocumentRepository resolves the user's previously uploaded document images
type DocumentRepository interface {
	Save(ctx context.Context, conn db.Querier, userID string, category domain.DocumentCategory, url string) error
	// GetURL returns the remote image location for the category, or
	// repositories.ErrDocumentNotFound when the user has no stored image.
	GetURL(ctx context.Context, conn db.Querier, userID string, category domain.DocumentCategory) (string, error)
}
