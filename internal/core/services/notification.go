package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/drivemate/kyc-platform/internal/core/domain"
	"github.com/drivemate/kyc-platform/internal/core/event"
	"github.com/drivemate/kyc-platform/internal/core/ports"
	"github.com/drivemate/kyc-platform/internal/log"
	"github.com/drivemate/kyc-platform/pkg/pubsub"
)

type notification struct {
	notificationGateway ports.NotificationGateway
}

// NewNotification returns a Notification Service
func NewNotification(notificationGateway ports.NotificationGateway) *notification {
	return &notification{
		notificationGateway: notificationGateway,
	}
}

// SendVerificationCompletedNotification notifies the user about the outcome
// of a finished verification session.
func (n *notification) SendVerificationCompletedNotification(ctx context.Context, payload pubsub.Message) error {
	var ev event.VerificationCompleted
	if err := ev.Unmarshal(payload); err != nil {
		return errors.New("sendVerificationCompletedNotification unexpected data type")
	}

	title, body := notificationContent(domain.VerificationStatus(ev.Status), ev.Documents)
	if err := n.notificationGateway.Notify(ctx, ev.UserID, title, body); err != nil {
		log.Error(ctx, "sendVerificationCompletedNotification: push failed", "err", err, "userID", ev.UserID)
		return err
	}

	log.Info(ctx, "sendVerificationCompletedNotification: notified", "userID", ev.UserID, "status", ev.Status)
	return nil
}

func notificationContent(status domain.VerificationStatus, documents map[string]bool) (string, string) {
	if status == domain.StatusVerified {
		return "Identity verified", "All of your documents were verified successfully."
	}

	failed := 0
	for _, passed := range documents {
		if !passed {
			failed++
		}
	}
	return "Verification incomplete", fmt.Sprintf("%d of your documents could not be verified. Open the app to see which ones need attention.", failed)
}
