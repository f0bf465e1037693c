package repositories

import "errors"

var (
	// ErrSessionNotFound is returned when the verification session does not exist
	ErrSessionNotFound = errors.New("verification session not found")
	// ErrUserVerificationNotFound is returned when the user has no verification record yet
	ErrUserVerificationNotFound = errors.New("user verification record not found")
	// ErrDocumentNotFound is returned when the user has no stored document image for the category
	ErrDocumentNotFound = errors.New("stored document not found")
)
