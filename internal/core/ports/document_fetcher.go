package ports

import "context"

// DocumentFetcher retrieves remote document images into transient local
// storage. This is a scoped resource contract: every Fetch that returns a
// local path must be paired with a Release on every exit path.
type DocumentFetcher interface {
	// Fetch downloads the remote image and returns the local path
	Fetch(ctx context.Context, remoteURL string) (string, error)
	// Release removes the transient file. It is idempotent.
	Release(ctx context.Context, localPath string)
}
