package services

import "errors"

var (
	// ErrProviderInit is returned when the backend cannot produce a provider authorization URL
	ErrProviderInit = errors.New("cannot initiate provider authorization")
	// ErrTokenExchange is returned when the provider attribute retrieval fails
	ErrTokenExchange = errors.New("provider token exchange failed")
	// ErrDownload is returned when a document image cannot be retrieved into local storage
	ErrDownload = errors.New("document download failed")
	// ErrFinalization is returned when a passed verification cannot be durably recorded
	ErrFinalization = errors.New("verification finalization failed")
	// ErrSessionNotFound is returned when the verification session does not exist
	ErrSessionNotFound = errors.New("verification session not found")
	// ErrStateMismatch is returned when the redirect state nonce does not match the session
	ErrStateMismatch = errors.New("redirect state does not match session")
)
