package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/drivemate/kyc-platform/internal/core/domain"
	"github.com/drivemate/kyc-platform/internal/core/ports"
	"github.com/drivemate/kyc-platform/internal/db"
)

type documents struct{}

// NewDocuments returns the stored document image repository
func NewDocuments() ports.DocumentRepository {
	return &documents{}
}

// Save records the remote location of a user uploaded document image
func (r *documents) Save(ctx context.Context, conn db.Querier, userID string, category domain.DocumentCategory, url string) error {
	_, err := conn.Exec(ctx,
		`INSERT INTO user_documents (user_id, category, url)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, category) DO UPDATE SET url = $3, created_at = now()`,
		userID, category, url)
	return err
}

// GetURL returns the remote image location for the category
func (r *documents) GetURL(ctx context.Context, conn db.Querier, userID string, category domain.DocumentCategory) (string, error) {
	row := conn.QueryRow(ctx,
		`SELECT url FROM user_documents WHERE user_id = $1 AND category = $2`,
		userID, category)

	var url string
	if err := row.Scan(&url); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrDocumentNotFound
		}
		return "", err
	}
	return url, nil
}
