package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivemate/kyc-platform/internal/core/domain"
	"github.com/drivemate/kyc-platform/internal/core/event"
)

type fakeNotificationGateway struct {
	userID string
	title  string
	body   string
}

func (f *fakeNotificationGateway) Notify(_ context.Context, userID, title, body string) error {
	f.userID = userID
	f.title = title
	f.body = body
	return nil
}

func TestSendVerificationCompletedNotification(t *testing.T) {
	gateway := &fakeNotificationGateway{}
	n := NewNotification(gateway)

	ev := event.VerificationCompleted{
		SessionID: "s-1",
		UserID:    "user-1",
		Status:    string(domain.StatusPartial),
		Documents: map[string]bool{
			string(domain.CategoryDrivingLicense): true,
			string(domain.CategoryPAN):            false,
			string(domain.CategoryNationalID):     false,
		},
	}
	msg, err := ev.Marshal()
	require.NoError(t, err)

	require.NoError(t, n.SendVerificationCompletedNotification(context.Background(), msg))
	assert.Equal(t, "user-1", gateway.userID)
	assert.Equal(t, "Verification incomplete", gateway.title)
	assert.Contains(t, gateway.body, "2 of your documents")
}

func TestSendVerificationCompletedNotificationVerified(t *testing.T) {
	gateway := &fakeNotificationGateway{}
	n := NewNotification(gateway)

	ev := event.VerificationCompleted{
		UserID: "user-2",
		Status: string(domain.StatusVerified),
	}
	msg, err := ev.Marshal()
	require.NoError(t, err)

	require.NoError(t, n.SendVerificationCompletedNotification(context.Background(), msg))
	assert.Equal(t, "Identity verified", gateway.title)
}

func TestSendVerificationCompletedNotificationBadPayload(t *testing.T) {
	n := NewNotification(&fakeNotificationGateway{})

	err := n.SendVerificationCompletedNotification(context.Background(), []byte("not-json"))
	assert.Error(t, err)
}
