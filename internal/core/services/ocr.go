package services

import (
	"context"
	"time"

	"github.com/drivemate/kyc-platform/internal/core/domain"
	"github.com/drivemate/kyc-platform/internal/core/ports"
	"github.com/drivemate/kyc-platform/internal/log"
)

type ocrComparer struct {
	gateway ports.OCRGateway
	timeout time.Duration
}

// NewOCRComparer returns the comparison service. Every failure of the remote
// comparison backend is recovered into a failing verdict; nothing propagates
// past this boundary so sibling categories keep running.
func NewOCRComparer(gateway ports.OCRGateway, timeout time.Duration) ports.OCRComparer {
	return &ocrComparer{
		gateway: gateway,
		timeout: timeout,
	}
}

// Compare extracts fields from the image via the remote comparison endpoint
// and matches them against the reference attributes.
func (o *ocrComparer) Compare(ctx context.Context, localPath string, category domain.DocumentCategory, reference domain.ProviderIdentityAttributes) domain.DocumentVerificationResult {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	passed, reason, err := o.gateway.CompareDocument(ctx, localPath, category, reference)
	if err != nil {
		log.Warn(ctx, "document comparison backend failure", "err", err, "category", category)
		return domain.DocumentVerificationResult{
			Category: category,
			Passed:   false,
			Reason:   "comparison service failure: " + err.Error(),
		}
	}

	if !passed {
		if reason == "" {
			reason = "document does not match provider records"
		}
		return domain.DocumentVerificationResult{Category: category, Passed: false, Reason: reason}
	}

	return domain.DocumentVerificationResult{Category: category, Passed: true}
}
