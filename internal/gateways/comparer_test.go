package gateways

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivemate/kyc-platform/internal/core/domain"
	"github.com/drivemate/kyc-platform/pkg/http"
)

func writeTempImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.img")
	require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0o600))
	return path
}

func TestCompareDocumentVerified(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, string(domain.CategoryPAN), r.FormValue("category"))

		var ref map[string]string
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("reference")), &ref))
		assert.Equal(t, "Asha Rao", ref["fullName"])
		assert.Equal(t, "ABCPR1234F", ref["documentNumber"])

		file, _, err := r.FormFile("document")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()

		_ = json.NewEncoder(w).Encode(map[string]string{"status": "VERIFIED"})
	}))
	defer server.Close()

	client := NewComparisonClient(http.NewClient(*nethttp.DefaultClient), server.URL)

	passed, reason, err := client.CompareDocument(context.Background(), writeTempImage(t), domain.CategoryPAN, domain.ProviderIdentityAttributes{
		FullName:    "Asha Rao",
		DateOfBirth: "1991-04-02",
		PANNumber:   "ABCPR1234F",
	})
	require.NoError(t, err)
	assert.True(t, passed)
	assert.Empty(t, reason)
}

func TestCompareDocumentFailedWithReason(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "FAILED", "reason": "name mismatch"})
	}))
	defer server.Close()

	client := NewComparisonClient(http.NewClient(*nethttp.DefaultClient), server.URL)

	passed, reason, err := client.CompareDocument(context.Background(), writeTempImage(t), domain.CategoryDrivingLicense, domain.ProviderIdentityAttributes{LicenseNumber: "DL-1"})
	require.NoError(t, err)
	assert.False(t, passed)
	assert.Equal(t, "name mismatch", reason)
}

func TestCompareDocumentUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "PENDING"})
	}))
	defer server.Close()

	client := NewComparisonClient(http.NewClient(*nethttp.DefaultClient), server.URL)

	_, _, err := client.CompareDocument(context.Background(), writeTempImage(t), domain.CategoryPAN, domain.ProviderIdentityAttributes{PANNumber: "A"})
	assert.Error(t, err)
}

func TestCompareDocumentMissingLocalFile(t *testing.T) {
	client := NewComparisonClient(http.NewClient(*nethttp.DefaultClient), "http://localhost:0")

	_, _, err := client.CompareDocument(context.Background(), "/does/not/exist.img", domain.CategoryPAN, domain.ProviderIdentityAttributes{PANNumber: "A"})
	assert.Error(t, err)
}
