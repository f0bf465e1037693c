package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivemate/kyc-platform/internal/core/domain"
	"github.com/drivemate/kyc-platform/internal/repositories"
)

func TestSaveAndGetDocumentURL(t *testing.T) {
	ctx := context.Background()
	fixture := repositories.NewFixture(storage)
	documentsRepo := repositories.NewDocuments()

	fixture.CreateDocument(t, "user-docs-1", domain.CategoryPAN, "https://bucket/user-docs-1/pan.jpg")

	url, err := documentsRepo.GetURL(ctx, storage.Pgx, "user-docs-1", domain.CategoryPAN)
	require.NoError(t, err)
	assert.Equal(t, "https://bucket/user-docs-1/pan.jpg", url)
}

func TestSaveDocumentOverwrites(t *testing.T) {
	ctx := context.Background()
	documentsRepo := repositories.NewDocuments()

	require.NoError(t, documentsRepo.Save(ctx, storage.Pgx, "user-docs-2", domain.CategoryDrivingLicense, "https://bucket/a.jpg"))
	require.NoError(t, documentsRepo.Save(ctx, storage.Pgx, "user-docs-2", domain.CategoryDrivingLicense, "https://bucket/b.jpg"))

	url, err := documentsRepo.GetURL(ctx, storage.Pgx, "user-docs-2", domain.CategoryDrivingLicense)
	require.NoError(t, err)
	assert.Equal(t, "https://bucket/b.jpg", url)
}

func TestGetDocumentURLNotFound(t *testing.T) {
	documentsRepo := repositories.NewDocuments()

	_, err := documentsRepo.GetURL(context.Background(), storage.Pgx, "user-docs-3", domain.CategoryNationalID)
	assert.ErrorIs(t, err, repositories.ErrDocumentNotFound)
}
