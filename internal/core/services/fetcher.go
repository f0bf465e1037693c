package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/drivemate/kyc-platform/internal/core/ports"
	"github.com/drivemate/kyc-platform/internal/log"
	pkgHTTP "github.com/drivemate/kyc-platform/pkg/http"
	"github.com/drivemate/kyc-platform/pkg/rand"
)

type fetcher struct {
	conn    *pkgHTTP.Client
	dir     string
	timeout time.Duration
}

// NewDocumentFetcher returns a fetcher that downloads document images into
// dir. Local filenames are timestamp based so special characters or query
// strings in the source URL never leak into the filesystem.
func NewDocumentFetcher(conn *pkgHTTP.Client, dir string, timeout time.Duration) ports.DocumentFetcher {
	return &fetcher{
		conn:    conn,
		dir:     dir,
		timeout: timeout,
	}
}

// Fetch downloads the remote image and returns the local path. The file is
// verified to be present before the path is handed to the caller.
func (f *fetcher) Fetch(ctx context.Context, remoteURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	body, err := f.conn.Get(ctx, remoteURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}

	suffix, err := rand.String(4)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}
	localPath := filepath.Join(f.dir, fmt.Sprintf("doc_%d_%s.img", time.Now().UnixNano(), suffix))

	if err := os.WriteFile(localPath, body, 0o600); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}
	if _, err := os.Stat(localPath); err != nil {
		return "", fmt.Errorf("%w: downloaded file not present: %v", ErrDownload, err)
	}

	return localPath, nil
}

// Release removes the transient file. Releasing an already removed path is a
// no-op.
func (f *fetcher) Release(ctx context.Context, localPath string) {
	if localPath == "" {
		return
	}
	if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
		log.Error(ctx, "removing transient document file", "err", err, "path", localPath)
	}
}
