package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/drivemate/kyc-platform/internal/core/domain"
	"github.com/drivemate/kyc-platform/internal/core/ports"
	"github.com/drivemate/kyc-platform/internal/db"
)

type userVerification struct{}

// NewUserVerification returns the durable per user verification store
func NewUserVerification() ports.UserVerificationRepository {
	return &userVerification{}
}

func (r *userVerification) Get(ctx context.Context, conn db.Querier, userID string) (*domain.UserVerification, error) {
	row := conn.QueryRow(ctx,
		`SELECT user_id, retry_count, status, last_error_code, modified_at
		   FROM user_verifications
		  WHERE user_id = $1`, userID)

	record := domain.UserVerification{}
	var lastErrorCode *string
	err := row.Scan(&record.UserID, &record.RetryCount, &record.Status, &lastErrorCode, &record.ModifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserVerificationNotFound
		}
		return nil, err
	}
	if lastErrorCode != nil {
		code := domain.ErrorCode(*lastErrorCode)
		record.LastErrorCode = &code
	}

	return &record, nil
}

// IncrementRetryCount adds one to the retry counter. The counter is only ever
// reset by a successful verification.
func (r *userVerification) IncrementRetryCount(ctx context.Context, conn db.Querier, userID string, errCode domain.ErrorCode) (int, error) {
	row := conn.QueryRow(ctx,
		`INSERT INTO user_verifications (user_id, retry_count, last_error_code, modified_at)
		 VALUES ($1, 1, $2, now())
		 ON CONFLICT (user_id)
		 DO UPDATE SET retry_count = user_verifications.retry_count + 1, last_error_code = $2, modified_at = now()
		 RETURNING retry_count`,
		userID, string(errCode))

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// SetStatus stores the verification status. VERIFIED resets the retry counter
// and clears the last error.
func (r *userVerification) SetStatus(ctx context.Context, conn db.Querier, userID string, status domain.VerificationStatus, errCode *domain.ErrorCode) error {
	if status == domain.StatusVerified {
		_, err := conn.Exec(ctx,
			`INSERT INTO user_verifications (user_id, retry_count, status, last_error_code, modified_at)
			 VALUES ($1, 0, $2, NULL, now())
			 ON CONFLICT (user_id)
			 DO UPDATE SET retry_count = 0, status = $2, last_error_code = NULL, modified_at = now()`,
			userID, status)
		return err
	}

	_, err := conn.Exec(ctx,
		`INSERT INTO user_verifications (user_id, status, last_error_code, modified_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (user_id)
		 DO UPDATE SET status = $2, last_error_code = COALESCE($3, user_verifications.last_error_code), modified_at = now()`,
		userID, status, errCode)
	return err
}
