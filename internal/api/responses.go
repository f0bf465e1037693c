package api

import (
	"encoding/json"
	"net/http"

	"github.com/drivemate/kyc-platform/internal/core/domain"
)

// SessionResponse is the observable state of one verification session
type SessionResponse struct {
	ID            string   `json:"id"`
	UserID        string   `json:"userId"`
	State         string   `json:"state"`
	LastErrorCode *string  `json:"lastErrorCode,omitempty"`
	Reasons       []string `json:"reasons,omitempty"`
}

// StartResponse is returned when a verification session is created
type StartResponse struct {
	Session          SessionResponse `json:"session"`
	AuthorizationURL string          `json:"authorizationUrl"`
}

// UserStatusResponse is the durable per user verification projection
type UserStatusResponse struct {
	UserID        string  `json:"userId"`
	Status        string  `json:"status"`
	RetryCount    int     `json:"retryCount"`
	LastErrorCode *string `json:"lastErrorCode,omitempty"`
	// ShowNoDocsGuidance tells the UI shell to render the persistent
	// instructional messaging for users whose provider account has no
	// issued documents.
	ShowNoDocsGuidance bool `json:"showNoDocsGuidance"`
}

// ErrorResponse is the common json error envelope
type ErrorResponse struct {
	Message string `json:"message"`
}

func toSessionResponse(session *domain.VerificationSession) SessionResponse {
	resp := SessionResponse{
		ID:     session.ID.String(),
		UserID: session.UserID,
		State:  string(session.State),
	}
	if session.LastErrorCode != nil {
		code := string(*session.LastErrorCode)
		resp.LastErrorCode = &code
	}
	if session.Outcome != nil && !session.Outcome.AllPassed {
		resp.Reasons = session.Outcome.FailureReasons()
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Message: msg})
}
