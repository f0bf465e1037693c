package ports

import (
	"context"

	"github.com/drivemate/kyc-platform/internal/core/domain"
)

// OCRComparer compares a locally stored document image against provider
// asserted reference attributes. Compare never returns an error: extraction
// and transport failures are recovered into a failing verdict so callers can
// treat every category independently.
type OCRComparer interface {
	Compare(ctx context.Context, localPath string, category domain.DocumentCategory, reference domain.ProviderIdentityAttributes) domain.DocumentVerificationResult
}

// OCRGateway is the HTTP gateway to the remote comparison endpoint
type OCRGateway interface {
	// CompareDocument uploads the image with the reference attributes and
	// returns the remote verdict
	CompareDocument(ctx context.Context, localPath string, category domain.DocumentCategory, reference domain.ProviderIdentityAttributes) (passed bool, reason string, err error)
}
