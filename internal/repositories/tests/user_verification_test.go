package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivemate/kyc-platform/internal/core/domain"
	"github.com/drivemate/kyc-platform/internal/repositories"
)

func TestGetUserVerificationNotFound(t *testing.T) {
	userRepo := repositories.NewUserVerification()

	_, err := userRepo.Get(context.Background(), storage.Pgx, "user-users-none")
	assert.ErrorIs(t, err, repositories.ErrUserVerificationNotFound)
}

func TestIncrementRetryCount(t *testing.T) {
	ctx := context.Background()
	userRepo := repositories.NewUserVerification()

	count, err := userRepo.IncrementRetryCount(ctx, storage.Pgx, "user-users-1", domain.ErrCodeNoIssuedDocs)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = userRepo.IncrementRetryCount(ctx, storage.Pgx, "user-users-1", domain.ErrCodeNoIssuedDocs)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	record, err := userRepo.Get(ctx, storage.Pgx, "user-users-1")
	require.NoError(t, err)
	assert.Equal(t, 2, record.RetryCount)
	assert.Equal(t, domain.StatusUnverified, record.Status)
	require.NotNil(t, record.LastErrorCode)
	assert.Equal(t, domain.ErrCodeNoIssuedDocs, *record.LastErrorCode)
}

func TestSetStatusVerifiedResetsCounter(t *testing.T) {
	ctx := context.Background()
	userRepo := repositories.NewUserVerification()

	_, err := userRepo.IncrementRetryCount(ctx, storage.Pgx, "user-users-2", domain.ErrCodeNoIssuedDocs)
	require.NoError(t, err)

	require.NoError(t, userRepo.SetStatus(ctx, storage.Pgx, "user-users-2", domain.StatusVerified, nil))

	record, err := userRepo.Get(ctx, storage.Pgx, "user-users-2")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusVerified, record.Status)
	assert.Equal(t, 0, record.RetryCount)
	assert.Nil(t, record.LastErrorCode)
}

func TestSetStatusPartialKeepsCounter(t *testing.T) {
	ctx := context.Background()
	userRepo := repositories.NewUserVerification()

	_, err := userRepo.IncrementRetryCount(ctx, storage.Pgx, "user-users-3", domain.ErrCodeNoIssuedDocs)
	require.NoError(t, err)

	require.NoError(t, userRepo.SetStatus(ctx, storage.Pgx, "user-users-3", domain.StatusPartial, nil))

	record, err := userRepo.Get(ctx, storage.Pgx, "user-users-3")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPartial, record.Status)
	assert.Equal(t, 1, record.RetryCount)
}
