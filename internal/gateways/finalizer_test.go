package gateways

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivemate/kyc-platform/internal/core/domain"
)

func passedOutcome() domain.AggregateOutcome {
	return domain.Aggregate([]domain.DocumentVerificationResult{
		{Category: domain.CategoryDrivingLicense, Passed: true},
		{Category: domain.CategoryPAN, Passed: true},
		{Category: domain.CategoryNationalID, Passed: true},
	})
}

func TestReportAcknowledged(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			UserID    string          `json:"userId"`
			Status    string          `json:"status"`
			Documents map[string]bool `json:"documents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user-1", req.UserID)
		assert.Equal(t, string(domain.StatusVerified), req.Status)
		assert.True(t, req.Documents[string(domain.CategoryNationalID)])

		_ = json.NewEncoder(w).Encode(map[string]bool{"ack": true})
	}))
	defer server.Close()

	client := NewFinalizerClient(server.URL)
	require.NoError(t, client.Report(context.Background(), "user-1", passedOutcome()))
}

func TestReportNotAcknowledged(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		_ = json.NewEncoder(w).Encode(map[string]bool{"ack": false})
	}))
	defer server.Close()

	client := NewFinalizerClient(server.URL)
	assert.Error(t, client.Report(context.Background(), "user-1", passedOutcome()))
}

func TestReportRetriesOnceOnTransientFailure(t *testing.T) {
	var calls int32
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			nethttp.Error(w, "temporary", nethttp.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]bool{"ack": true})
	}))
	defer server.Close()

	client := NewFinalizerClient(server.URL)
	require.NoError(t, client.Report(context.Background(), "user-1", passedOutcome()))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
