package domain

// RedirectKind discriminates the shapes a provider redirect can take
type RedirectKind int

// Redirect outcomes
const (
	// RedirectSuccess is the new style OAuth completion carrying code+state
	RedirectSuccess RedirectKind = iota
	// RedirectLegacySuccess carries a session id from the previous
	// integration generation. No token exchange step.
	RedirectLegacySuccess
	// RedirectNoIssuedDocuments means the provider reports zero documents
	// issued to this account. User actionable, not a generic failure.
	RedirectNoIssuedDocuments
	// RedirectCancelled is a user abort or any other provider error
	RedirectCancelled
)

// RedirectOutcome is the parsed provider callback
type RedirectOutcome struct {
	Kind      RedirectKind
	Code      string
	State     string
	SessionID string
	// Err carries the raw provider error string on RedirectCancelled
	Err string
}
