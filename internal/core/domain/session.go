package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionState is the granular state of one verification attempt
type SessionState string

// Verification session states. Verified, PartiallyVerified and Failed are
// terminal; a new session is required to retry.
const (
	SessionIdle               SessionState = "idle"
	SessionAwaitingRedirect   SessionState = "awaiting_provider_redirect"
	SessionExchangingToken    SessionState = "exchanging_token"
	SessionComparingDocuments SessionState = "comparing_documents"
	SessionFinalizing         SessionState = "finalizing"
	SessionVerified           SessionState = "verified"
	SessionPartiallyVerified  SessionState = "partially_verified"
	SessionFailed             SessionState = "failed"
)

// Terminal tells whether the state ends the session
func (s SessionState) Terminal() bool {
	switch s {
	case SessionVerified, SessionPartiallyVerified, SessionFailed:
		return true
	}
	return false
}

// ErrorCode is the session level error taxonomy
type ErrorCode string

// Session error codes
const (
	ErrCodeProviderInit       ErrorCode = "PROVIDER_INIT_ERROR"
	ErrCodeTokenExchange      ErrorCode = "TOKEN_EXCHANGE_FAILED"
	ErrCodeNoIssuedDocs       ErrorCode = "NO_ISSUED_DOCS"
	ErrCodeProviderCancelled  ErrorCode = "PROVIDER_CANCELLED"
	ErrCodeDownloadError      ErrorCode = "DOWNLOAD_ERROR"
	ErrCodeOcrComparisonError ErrorCode = "OCR_COMPARISON_ERROR"
	ErrCodeFinalizationFailed ErrorCode = "FINALIZATION_FAILED"
)

// VerificationSession is one verification attempt for one user
type VerificationSession struct {
	ID            uuid.UUID
	UserID        string
	State         SessionState
	LastErrorCode *ErrorCode
	// OAuthState is the nonce issued at Initiate and echoed back by the
	// provider on the redirect.
	OAuthState string
	Outcome    *AggregateOutcome
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// NewVerificationSession returns a fresh idle session for the user
func NewVerificationSession(userID string, oauthState string) *VerificationSession {
	now := time.Now()
	return &VerificationSession{
		ID:         uuid.New(),
		UserID:     userID,
		State:      SessionIdle,
		OAuthState: oauthState,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// VerificationStatus is the durable per user verification status reported to
// the backend record
type VerificationStatus string

// Verification statuses on the user record
const (
	StatusUnverified VerificationStatus = "UNVERIFIED"
	StatusVerified   VerificationStatus = "VERIFIED"
	StatusPartial    VerificationStatus = "PARTIAL"
)

// UserVerification is the per user projection read at session start and
// consumed by the UI shell for persistent guidance.
type UserVerification struct {
	UserID        string
	RetryCount    int
	Status        VerificationStatus
	LastErrorCode *ErrorCode
	ModifiedAt    time.Time
}
