package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/drivemate/kyc-platform/internal/core/domain"
	"github.com/drivemate/kyc-platform/internal/core/ports"
	"github.com/drivemate/kyc-platform/internal/core/services"
	"github.com/drivemate/kyc-platform/internal/health"
	"github.com/drivemate/kyc-platform/internal/log"
)

// Server is the verification HTTP API consumed by the UI shell and by the
// provider redirect.
type Server struct {
	verification ports.VerificationService
	health       *health.Status
}

// NewServer creates the api server
func NewServer(verification ports.VerificationService, healthStatus *health.Status) *Server {
	return &Server{
		verification: verification,
		health:       healthStatus,
	}
}

// Routes mounts every endpoint on the mux
func (s *Server) Routes(ctx context.Context, mux *chi.Mux) {
	mux.Use(middleware.RequestID)
	mux.Use(log.ChiMiddleware(ctx))
	mux.Use(cors.AllowAll().Handler)

	mux.Get("/status", s.status)
	mux.Route("/v1", func(r chi.Router) {
		r.Post("/users/{userID}/verifications", s.startVerification)
		r.Get("/users/{userID}/verification", s.userStatus)
		r.Get("/verifications/callback", s.callback)
		r.Get("/verifications/{sessionID}", s.getSession)
	})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.health.Status(r.Context()))
}

func (s *Server) startVerification(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userID is required")
		return
	}

	verSession, authURL, err := s.verification.Start(r.Context(), userID)
	if err != nil {
		log.Error(r.Context(), "starting verification", "err", err, "userID", userID)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, StartResponse{
		Session:          toSessionResponse(verSession),
		AuthorizationURL: authURL,
	})
}

// callback receives the provider redirect. The session id travels in the
// callback URL issued at Initiate; the rest of the query belongs to the
// provider and is parsed by the orchestrator.
func (s *Server) callback(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.URL.Query().Get("session"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	verSession, err := s.verification.Resume(r.Context(), sessionID, r.URL.String())
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Error(r.Context(), "resuming verification", "err", err, "sessionID", sessionID)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(verSession))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	verSession, err := s.verification.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(verSession))
}

func (s *Server) userStatus(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userID is required")
		return
	}

	status, err := s.verification.UserStatus(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := UserStatusResponse{
		UserID:     status.UserID,
		Status:     string(status.Status),
		RetryCount: status.RetryCount,
	}
	if status.LastErrorCode != nil {
		code := string(*status.LastErrorCode)
		resp.LastErrorCode = &code
		resp.ShowNoDocsGuidance = *status.LastErrorCode == domain.ErrCodeNoIssuedDocs
	}

	writeJSON(w, http.StatusOK, resp)
}
