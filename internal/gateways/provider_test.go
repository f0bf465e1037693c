package gateways

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivemate/kyc-platform/internal/core/domain"
	"github.com/drivemate/kyc-platform/pkg/http"
)

func TestInitiateAuth(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		require.Equal(t, "/identity/auth/initiate", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user-1", req["userId"])
		assert.Equal(t, "http://localhost/cb", req["callbackUrl"])

		_ = json.NewEncoder(w).Encode(map[string]string{"authorizationUrl": "https://provider/authorize?rid=9"})
	}))
	defer server.Close()

	client := NewProviderBackendClient(http.NewClient(*nethttp.DefaultClient), server.URL)

	authURL, err := client.InitiateAuth(context.Background(), "user-1", "http://localhost/cb")
	require.NoError(t, err)
	assert.Equal(t, "https://provider/authorize?rid=9", authURL)
}

func TestInitiateAuthEmptyURL(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	client := NewProviderBackendClient(http.NewClient(*nethttp.DefaultClient), server.URL)

	_, err := client.InitiateAuth(context.Background(), "user-1", "http://localhost/cb")
	assert.Error(t, err)
}

func TestExchangeToken(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		require.Equal(t, "/identity/auth/exchange", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "abc", req["code"])
		assert.Equal(t, "n0nce", req["state"])

		_ = json.NewEncoder(w).Encode(map[string]string{
			"fullName":      "Asha Rao",
			"dateOfBirth":   "1991-04-02",
			"licenseNumber": "DL-0420110012345",
			"panNumber":     "ABCPR1234F",
		})
	}))
	defer server.Close()

	client := NewProviderBackendClient(http.NewClient(*nethttp.DefaultClient), server.URL)

	attrs, err := client.ExchangeToken(context.Background(), "abc", "n0nce")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", attrs.FullName)
	assert.Equal(t, "ABCPR1234F", attrs.PANNumber)

	// national id was not issued, so the reference number is absent
	_, ok := attrs.ReferenceNumber(domain.CategoryNationalID)
	assert.False(t, ok)
}

func TestLegacyMatch(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		require.Equal(t, "/identity/legacy/match", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "legacy-42", req["sessionId"])

		_ = json.NewEncoder(w).Encode(map[string]string{"fullName": "Asha Rao", "dateOfBirth": "1991-04-02"})
	}))
	defer server.Close()

	client := NewProviderBackendClient(http.NewClient(*nethttp.DefaultClient), server.URL)

	attrs, err := client.LegacyMatch(context.Background(), "legacy-42")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", attrs.FullName)
}

func TestBackendErrorStatus(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		nethttp.Error(w, "upstream provider unavailable", nethttp.StatusBadGateway)
	}))
	defer server.Close()

	client := NewProviderBackendClient(http.NewClient(*nethttp.DefaultClient), server.URL)

	_, err := client.ExchangeToken(context.Background(), "abc", "n0nce")
	assert.Error(t, err)
}
