package gateways

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/drivemate/kyc-platform/internal/core/ports"
	"github.com/drivemate/kyc-platform/pkg/http"
)

// PushClient sends user facing push notifications through the notification
// gateway service.
type PushClient struct {
	conn *http.Client
	url  string
}

// NewPushNotificationClient create push gateway client.
func NewPushNotificationClient(conn *http.Client, url string) ports.NotificationGateway {
	return &PushClient{
		conn: conn,
		url:  url,
	}
}

type pushRequest struct {
	UserID string `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Notify sends a notification to the user devices
func (c *PushClient) Notify(ctx context.Context, userID, title, body string) error {
	reqBody, err := json.Marshal(pushRequest{UserID: userID, Title: title, Body: body})
	if err != nil {
		return errors.WithStack(err)
	}

	if _, err := c.conn.Post(ctx, c.url, reqBody); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
