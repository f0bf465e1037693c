package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/drivemate/kyc-platform/internal/core/domain"
)

type fakeOCRGateway struct {
	passed bool
	reason string
	err    error
}

func (f *fakeOCRGateway) CompareDocument(_ context.Context, _ string, _ domain.DocumentCategory, _ domain.ProviderIdentityAttributes) (bool, string, error) {
	return f.passed, f.reason, f.err
}

func TestComparePassingVerdict(t *testing.T) {
	c := NewOCRComparer(&fakeOCRGateway{passed: true}, time.Minute)

	result := c.Compare(context.Background(), "/tmp/dl.img", domain.CategoryDrivingLicense, domain.ProviderIdentityAttributes{})
	assert.True(t, result.Passed)
	assert.Equal(t, domain.CategoryDrivingLicense, result.Category)
	assert.Empty(t, result.Reason)
}

func TestCompareFailingVerdictKeepsReason(t *testing.T) {
	c := NewOCRComparer(&fakeOCRGateway{passed: false, reason: "date of birth mismatch"}, time.Minute)

	result := c.Compare(context.Background(), "/tmp/pan.img", domain.CategoryPAN, domain.ProviderIdentityAttributes{})
	assert.False(t, result.Passed)
	assert.Equal(t, "date of birth mismatch", result.Reason)
}

func TestCompareFailingVerdictWithoutReason(t *testing.T) {
	c := NewOCRComparer(&fakeOCRGateway{passed: false}, time.Minute)

	result := c.Compare(context.Background(), "/tmp/pan.img", domain.CategoryPAN, domain.ProviderIdentityAttributes{})
	assert.False(t, result.Passed)
	assert.NotEmpty(t, result.Reason)
}

func TestCompareBackendFailureBecomesFailingVerdict(t *testing.T) {
	c := NewOCRComparer(&fakeOCRGateway{err: errors.New("connection reset")}, time.Minute)

	result := c.Compare(context.Background(), "/tmp/nid.img", domain.CategoryNationalID, domain.ProviderIdentityAttributes{})
	assert.False(t, result.Passed)
	assert.Contains(t, result.Reason, "comparison service failure")
	assert.Contains(t, result.Reason, "connection reset")
}
