package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drivemate/kyc-platform/internal/core/domain"
	"github.com/drivemate/kyc-platform/internal/core/ports"
	"github.com/drivemate/kyc-platform/internal/db"
)

// Fixture - Handle testing fixture configuration
type Fixture struct {
	storage       *db.Storage
	sessionRepo   ports.SessionRepository
	userRepo      ports.UserVerificationRepository
	documentsRepo ports.DocumentRepository
}

// NewFixture - constructor
func NewFixture(storage *db.Storage) *Fixture {
	return &Fixture{
		storage:       storage,
		sessionRepo:   NewSessions(),
		userRepo:      NewUserVerification(),
		documentsRepo: NewDocuments(),
	}
}

// CreateSession fixture
func (f *Fixture) CreateSession(t *testing.T, session *domain.VerificationSession) {
	t.Helper()
	err := f.sessionRepo.Save(context.Background(), f.storage.Pgx, session)
	assert.NoError(t, err)
}

// CreateDocument fixture
func (f *Fixture) CreateDocument(t *testing.T, userID string, category domain.DocumentCategory, url string) {
	t.Helper()
	err := f.documentsRepo.Save(context.Background(), f.storage.Pgx, userID, category, url)
	assert.NoError(t, err)
}

// ExecQueryParams - handle the query and the arguments for that query.
type ExecQueryParams struct {
	Query     string
	Arguments []interface{}
}

// ExecQuery - Execute a query for testing purpose.
func (f *Fixture) ExecQuery(t *testing.T, params ExecQueryParams) {
	t.Helper()
	_, err := f.storage.Pgx.Exec(context.Background(), params.Query, params.Arguments...)
	assert.NoError(t, err)
}
