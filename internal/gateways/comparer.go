package gateways

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/drivemate/kyc-platform/internal/core/domain"
	"github.com/drivemate/kyc-platform/internal/core/ports"
	"github.com/drivemate/kyc-platform/pkg/http"
)

const (
	comparisonStatusVerified = "VERIFIED"
	comparisonStatusFailed   = "FAILED"
)

// ComparisonClient talks to the remote per category comparison endpoint
type ComparisonClient struct {
	conn *http.Client
	url  string
}

// NewComparisonClient creates a comparison endpoint client
func NewComparisonClient(conn *http.Client, url string) ports.OCRGateway {
	return &ComparisonClient{
		conn: conn,
		url:  url,
	}
}

type comparisonReference struct {
	FullName       string `json:"fullName"`
	DateOfBirth    string `json:"dateOfBirth"`
	DocumentNumber string `json:"documentNumber"`
}

type comparisonResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// CompareDocument uploads the image plus the reference attributes and returns
// the remote verdict
func (c *ComparisonClient) CompareDocument(ctx context.Context, localPath string, category domain.DocumentCategory, reference domain.ProviderIdentityAttributes) (bool, string, error) {
	number, _ := reference.ReferenceNumber(category)
	ref, err := json.Marshal(comparisonReference{
		FullName:       reference.FullName,
		DateOfBirth:    reference.DateOfBirth,
		DocumentNumber: number,
	})
	if err != nil {
		return false, "", errors.WithStack(err)
	}

	resp, err := c.conn.PostFile(ctx, c.url, "document", localPath, map[string]string{
		"category":  string(category),
		"reference": string(ref),
	})
	if err != nil {
		return false, "", errors.WithStack(err)
	}

	var out comparisonResponse
	if err := json.Unmarshal(resp, &out); err != nil {
		return false, "", errors.WithStack(err)
	}

	switch out.Status {
	case comparisonStatusVerified:
		return true, "", nil
	case comparisonStatusFailed:
		return false, out.Reason, nil
	default:
		return false, "", errors.Errorf("unexpected comparison status %q", out.Status)
	}
}
