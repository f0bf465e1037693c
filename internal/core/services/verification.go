package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/drivemate/kyc-platform/internal/core/domain"
	"github.com/drivemate/kyc-platform/internal/core/event"
	"github.com/drivemate/kyc-platform/internal/core/ports"
	"github.com/drivemate/kyc-platform/internal/db"
	"github.com/drivemate/kyc-platform/internal/log"
	"github.com/drivemate/kyc-platform/internal/repositories"
	"github.com/drivemate/kyc-platform/internal/session"
	"github.com/drivemate/kyc-platform/pkg/pubsub"
	"github.com/drivemate/kyc-platform/pkg/rand"
)

const oauthStateBytes = 16

type verification struct {
	provider  ports.ProviderClient
	fetcher   ports.DocumentFetcher
	comparer  ports.OCRComparer
	finalizer ports.FinalizationGateway
	sessions  ports.SessionRepository
	users     ports.UserVerificationRepository
	documents ports.DocumentRepository
	storage   *db.Storage
	cache     session.Manager
	publisher pubsub.Publisher
	serverURL string
}

// NewVerification returns the verification orchestrator. It exclusively owns
// session and outcome objects for the duration of one attempt.
func NewVerification(
	provider ports.ProviderClient,
	fetcher ports.DocumentFetcher,
	comparer ports.OCRComparer,
	finalizer ports.FinalizationGateway,
	sessions ports.SessionRepository,
	users ports.UserVerificationRepository,
	documents ports.DocumentRepository,
	storage *db.Storage,
	cache session.Manager,
	publisher pubsub.Publisher,
	serverURL string,
) ports.VerificationService {
	return &verification{
		provider:  provider,
		fetcher:   fetcher,
		comparer:  comparer,
		finalizer: finalizer,
		sessions:  sessions,
		users:     users,
		documents: documents,
		storage:   storage,
		cache:     cache,
		publisher: publisher,
		serverURL: serverURL,
	}
}

// Start creates a new session, requests the provider authorization URL and
// moves the session to awaiting_provider_redirect. The persisted retry count
// is read here so callers can seed UI guidance before the handshake begins.
func (s *verification) Start(ctx context.Context, userID string) (*domain.VerificationSession, string, error) {
	if prior, err := s.users.Get(ctx, s.storage.Pgx, userID); err == nil && prior.RetryCount > 0 {
		log.Info(ctx, "starting verification for user with prior failed attempts",
			"userID", userID, "retryCount", prior.RetryCount)
	}

	nonce, err := rand.String(oauthStateBytes)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrProviderInit, err)
	}

	verSession := domain.NewVerificationSession(userID, nonce)
	callbackURL := fmt.Sprintf("%s/v1/verifications/callback?session=%s", s.serverURL, verSession.ID)

	authURL, err := s.provider.Initiate(ctx, userID, callbackURL)
	if err != nil {
		return nil, "", err
	}

	verSession.State = domain.SessionAwaitingRedirect
	if err := s.sessions.Save(ctx, s.storage.Pgx, verSession); err != nil {
		log.Error(ctx, "saving verification session", "err", err, "sessionID", verSession.ID)
		return nil, "", fmt.Errorf("%w: %v", ErrProviderInit, err)
	}
	s.cacheSnapshot(ctx, verSession)

	return verSession, authURL, nil
}

// Resume consumes the provider redirect and drives the session to a terminal
// state. Every state transition is guarded on the previous state, so a
// duplicate or late redirect can never resurrect a finished session.
func (s *verification) Resume(ctx context.Context, sessionID uuid.UUID, rawCallbackURL string) (*domain.VerificationSession, error) {
	verSession, err := s.sessions.GetByID(ctx, s.storage.Pgx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if verSession.State.Terminal() {
		log.Info(ctx, "ignoring redirect for finished session", "sessionID", sessionID, "state", verSession.State)
		return verSession, nil
	}

	outcome := s.provider.HandleRedirect(rawCallbackURL)

	switch outcome.Kind {
	case domain.RedirectNoIssuedDocuments:
		if s.fail(ctx, verSession, domain.SessionAwaitingRedirect, domain.ErrCodeNoIssuedDocs) {
			count, err := s.users.IncrementRetryCount(ctx, s.storage.Pgx, verSession.UserID, domain.ErrCodeNoIssuedDocs)
			if err != nil {
				log.Error(ctx, "incrementing retry counter", "err", err, "userID", verSession.UserID)
			} else {
				log.Info(ctx, "provider reports no issued documents", "userID", verSession.UserID, "retryCount", count)
			}
		}
		return s.reload(ctx, sessionID)

	case domain.RedirectCancelled:
		log.Info(ctx, "provider flow cancelled", "sessionID", sessionID, "providerError", outcome.Err)
		s.fail(ctx, verSession, domain.SessionAwaitingRedirect, domain.ErrCodeProviderCancelled)
		return s.reload(ctx, sessionID)

	case domain.RedirectSuccess:
		if outcome.State != verSession.OAuthState {
			log.Warn(ctx, "redirect state nonce mismatch, treating as cancellation", "sessionID", sessionID)
			s.fail(ctx, verSession, domain.SessionAwaitingRedirect, domain.ErrCodeProviderCancelled)
			return s.reload(ctx, sessionID)
		}

		ok, err := s.sessions.UpdateState(ctx, s.storage.Pgx, sessionID, domain.SessionAwaitingRedirect, domain.SessionExchangingToken, nil)
		if err != nil {
			return nil, err
		}
		if !ok {
			// another redirect delivery won the race
			return s.reload(ctx, sessionID)
		}

		attrs, err := s.provider.ExchangeToken(ctx, outcome.Code, outcome.State)
		if err != nil {
			s.fail(ctx, verSession, domain.SessionExchangingToken, domain.ErrCodeTokenExchange)
			return s.reload(ctx, sessionID)
		}
		return s.compareAndFinalize(ctx, verSession, domain.SessionExchangingToken, attrs)

	case domain.RedirectLegacySuccess:
		ok, err := s.sessions.UpdateState(ctx, s.storage.Pgx, sessionID, domain.SessionAwaitingRedirect, domain.SessionComparingDocuments, nil)
		if err != nil {
			return nil, err
		}
		if !ok {
			return s.reload(ctx, sessionID)
		}

		attrs, err := s.provider.FetchLegacyAttributes(ctx, outcome.SessionID)
		if err != nil {
			s.fail(ctx, verSession, domain.SessionComparingDocuments, domain.ErrCodeTokenExchange)
			return s.reload(ctx, sessionID)
		}
		return s.compareAndFinalize(ctx, verSession, domain.SessionComparingDocuments, attrs)
	}

	return verSession, nil
}

// GetSession returns the current observable session state
func (s *verification) GetSession(ctx context.Context, id uuid.UUID) (*domain.VerificationSession, error) {
	if cachedSession, err := s.cache.Get(ctx, id); err == nil {
		return &cachedSession, nil
	}

	verSession, err := s.sessions.GetByID(ctx, s.storage.Pgx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return verSession, nil
}

// UserStatus returns the durable per user verification projection
func (s *verification) UserStatus(ctx context.Context, userID string) (*domain.UserVerification, error) {
	status, err := s.users.Get(ctx, s.storage.Pgx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserVerificationNotFound) {
			return &domain.UserVerification{UserID: userID, Status: domain.StatusUnverified}, nil
		}
		return nil, err
	}
	return status, nil
}

// compareAndFinalize runs the three category comparisons, aggregates the
// verdicts and reports the decision. from is the state the session is in when
// the attributes became available.
func (s *verification) compareAndFinalize(ctx context.Context, verSession *domain.VerificationSession, from domain.SessionState, attrs *domain.ProviderIdentityAttributes) (*domain.VerificationSession, error) {
	if from != domain.SessionComparingDocuments {
		ok, err := s.sessions.UpdateState(ctx, s.storage.Pgx, verSession.ID, from, domain.SessionComparingDocuments, nil)
		if err != nil {
			return nil, err
		}
		if !ok {
			return s.reload(ctx, verSession.ID)
		}
	}

	results := s.compareAll(ctx, verSession.UserID, *attrs)
	outcome := domain.Aggregate(results)

	if _, err := s.sessions.UpdateState(ctx, s.storage.Pgx, verSession.ID, domain.SessionComparingDocuments, domain.SessionFinalizing, nil); err != nil {
		return nil, err
	}
	if err := s.sessions.SaveOutcome(ctx, s.storage.Pgx, verSession.ID, outcome); err != nil {
		log.Error(ctx, "saving aggregate outcome", "err", err, "sessionID", verSession.ID)
	}

	// The outcome is always reported, pass or fail, so the backend record
	// keeps a full audit trail.
	reportErr := s.finalizer.Report(ctx, verSession.UserID, outcome)

	if outcome.AllPassed {
		if reportErr != nil {
			// a passed comparison that cannot be durably recorded must not
			// be presented as success
			log.Error(ctx, "finalization failed for passed verification", "err", reportErr, "sessionID", verSession.ID)
			s.fail(ctx, verSession, domain.SessionFinalizing, domain.ErrCodeFinalizationFailed)
			return s.reload(ctx, verSession.ID)
		}

		if _, err := s.sessions.UpdateState(ctx, s.storage.Pgx, verSession.ID, domain.SessionFinalizing, domain.SessionVerified, nil); err != nil {
			return nil, err
		}
		if err := s.users.SetStatus(ctx, s.storage.Pgx, verSession.UserID, domain.StatusVerified, nil); err != nil {
			log.Error(ctx, "updating user verification status", "err", err, "userID", verSession.UserID)
		}
		s.publishCompleted(ctx, verSession, outcome)
		return s.reload(ctx, verSession.ID)
	}

	if reportErr != nil {
		log.Error(ctx, "reporting partial outcome for audit", "err", reportErr, "sessionID", verSession.ID)
	}
	if _, err := s.sessions.UpdateState(ctx, s.storage.Pgx, verSession.ID, domain.SessionFinalizing, domain.SessionPartiallyVerified, nil); err != nil {
		return nil, err
	}
	if err := s.users.SetStatus(ctx, s.storage.Pgx, verSession.UserID, domain.StatusPartial, nil); err != nil {
		log.Error(ctx, "updating user verification status", "err", err, "userID", verSession.UserID)
	}
	s.publishCompleted(ctx, verSession, outcome)
	return s.reload(ctx, verSession.ID)
}

// compareAll runs the three fixed categories concurrently. Categories are
// data independent: one category failing or stalling never cancels the
// others, and every verdict is always collected before aggregation.
func (s *verification) compareAll(ctx context.Context, userID string, attrs domain.ProviderIdentityAttributes) []domain.DocumentVerificationResult {
	categories := domain.Categories()
	results := make([]domain.DocumentVerificationResult, len(categories))

	var wg sync.WaitGroup
	for i, category := range categories {
		wg.Add(1)
		go func(i int, category domain.DocumentCategory) {
			defer wg.Done()
			results[i] = s.compareCategory(ctx, userID, category, attrs)
		}(i, category)
	}
	wg.Wait()

	return results
}

// compareCategory produces the verdict for one category. The transient local
// file is released the moment this category concludes, regardless of how.
func (s *verification) compareCategory(ctx context.Context, userID string, category domain.DocumentCategory, attrs domain.ProviderIdentityAttributes) domain.DocumentVerificationResult {
	if _, ok := attrs.ReferenceNumber(category); !ok {
		return domain.DocumentVerificationResult{Category: category, Passed: false, Reason: domain.ReasonMissingData}
	}

	imageURL, err := s.documents.GetURL(ctx, s.storage.Pgx, userID, category)
	if err != nil {
		if !errors.Is(err, repositories.ErrDocumentNotFound) {
			log.Error(ctx, "resolving stored document image", "err", err, "userID", userID, "category", category)
		}
		return domain.DocumentVerificationResult{Category: category, Passed: false, Reason: domain.ReasonMissingData}
	}

	localPath, err := s.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		log.Warn(ctx, "document download failed", "err", err, "category", category)
		return domain.DocumentVerificationResult{Category: category, Passed: false, Reason: err.Error()}
	}
	defer s.fetcher.Release(ctx, localPath)

	return s.comparer.Compare(ctx, localPath, category, attrs)
}

// fail moves the session to the terminal failed state. Returns false when the
// guard state no longer holds, meaning someone else already advanced it.
func (s *verification) fail(ctx context.Context, verSession *domain.VerificationSession, from domain.SessionState, code domain.ErrorCode) bool {
	ok, err := s.sessions.UpdateState(ctx, s.storage.Pgx, verSession.ID, from, domain.SessionFailed, &code)
	if err != nil {
		log.Error(ctx, "failing verification session", "err", err, "sessionID", verSession.ID, "code", code)
		return false
	}
	return ok
}

func (s *verification) reload(ctx context.Context, id uuid.UUID) (*domain.VerificationSession, error) {
	verSession, err := s.sessions.GetByID(ctx, s.storage.Pgx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSnapshot(ctx, verSession)
	return verSession, nil
}

func (s *verification) cacheSnapshot(ctx context.Context, verSession *domain.VerificationSession) {
	if err := s.cache.Set(ctx, *verSession); err != nil {
		log.Warn(ctx, "caching session snapshot", "err", err, "sessionID", verSession.ID)
	}
}

func (s *verification) publishCompleted(ctx context.Context, verSession *domain.VerificationSession, outcome domain.AggregateOutcome) {
	docs := make(map[string]bool, len(outcome.PerCategory))
	for category, passed := range outcome.PerCategory {
		docs[string(category)] = passed
	}
	err := s.publisher.Publish(ctx, event.VerificationCompletedEvent, &event.VerificationCompleted{
		SessionID: verSession.ID.String(),
		UserID:    verSession.UserID,
		Status:    string(outcome.Status()),
		Documents: docs,
	})
	if err != nil {
		log.Error(ctx, "publishing verification completed event", "err", err, "sessionID", verSession.ID)
	}
}
