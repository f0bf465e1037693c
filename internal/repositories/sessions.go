package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"

	"github.com/drivemate/kyc-platform/internal/core/domain"
	"github.com/drivemate/kyc-platform/internal/core/ports"
	"github.com/drivemate/kyc-platform/internal/db"
)

type sessions struct{}

// NewSessions returns a verification session repository backed by postgres
func NewSessions() ports.SessionRepository {
	return &sessions{}
}

// Save - create a new verification session
func (r *sessions) Save(ctx context.Context, conn db.Querier, session *domain.VerificationSession) error {
	_, err := conn.Exec(ctx,
		`INSERT INTO verification_sessions (id, user_id, state, last_error_code, oauth_state, created_at, modified_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		session.ID, session.UserID, session.State, session.LastErrorCode, session.OAuthState,
		session.CreatedAt, session.ModifiedAt)
	return err
}

func (r *sessions) GetByID(ctx context.Context, conn db.Querier, id uuid.UUID) (*domain.VerificationSession, error) {
	row := conn.QueryRow(ctx,
		`SELECT id, user_id, state, last_error_code, outcome, oauth_state, created_at, modified_at
		   FROM verification_sessions
		  WHERE id = $1`, id)

	session := domain.VerificationSession{}
	var lastErrorCode *string
	var outcome pgtype.JSONB
	err := row.Scan(&session.ID,
		&session.UserID,
		&session.State,
		&lastErrorCode,
		&outcome,
		&session.OAuthState,
		&session.CreatedAt,
		&session.ModifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if lastErrorCode != nil {
		code := domain.ErrorCode(*lastErrorCode)
		session.LastErrorCode = &code
	}
	if outcome.Status == pgtype.Present {
		var agg domain.AggregateOutcome
		if err := json.Unmarshal(outcome.Bytes, &agg); err != nil {
			return nil, fmt.Errorf("decoding session outcome: %w", err)
		}
		session.Outcome = &agg
	}

	return &session, nil
}

// UpdateState advances the state only when the session is currently in the
// from state. The guard makes duplicate redirect deliveries harmless.
func (r *sessions) UpdateState(ctx context.Context, conn db.Querier, id uuid.UUID, from, to domain.SessionState, errCode *domain.ErrorCode) (bool, error) {
	tag, err := conn.Exec(ctx,
		`UPDATE verification_sessions
		    SET state = $3, last_error_code = COALESCE($4, last_error_code), modified_at = now()
		  WHERE id = $1 AND state = $2`,
		id, from, to, errCode)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// SaveOutcome stores the aggregate outcome on the session row for audit
func (r *sessions) SaveOutcome(ctx context.Context, conn db.Querier, id uuid.UUID, outcome domain.AggregateOutcome) error {
	raw, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("encoding session outcome: %w", err)
	}
	jsonb := pgtype.JSONB{}
	if err := jsonb.Set(raw); err != nil {
		return err
	}

	_, err = conn.Exec(ctx,
		`UPDATE verification_sessions SET outcome = $2, modified_at = now() WHERE id = $1`,
		id, jsonb)
	return err
}
