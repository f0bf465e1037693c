package event

import (
	"encoding/json"

	"github.com/drivemate/kyc-platform/pkg/pubsub"
)

const (
	// VerificationCompletedEvent is published when a session reaches a terminal state
	VerificationCompletedEvent = "verificationCompletedEvent"
)

// VerificationCompleted defines the verificationCompleted data
type VerificationCompleted struct {
	SessionID string          `json:"sessionID"`
	UserID    string          `json:"userID"`
	Status    string          `json:"status"`
	Documents map[string]bool `json:"documents"`
}

// Marshal marshals the event into a pubsub.Message
func (ev *VerificationCompleted) Marshal() (msg pubsub.Message, err error) {
	return json.Marshal(ev)
}

// Unmarshal creates an event from that message
func (ev *VerificationCompleted) Unmarshal(msg pubsub.Message) error {
	return json.Unmarshal(msg, &ev)
}
