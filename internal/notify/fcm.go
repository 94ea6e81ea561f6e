package notify

import (
	"context"
	"log"

	"firebase.google.com/go/messaging"
)

// Sender pushes project notifications to client devices over FCM. Delivery
// failures are logged and never fail the mutation that triggered them.
type Sender struct {
	Client *messaging.Client
}

func NewSender(client *messaging.Client) *Sender {
	return &Sender{Client: client}
}

func (s *Sender) ProjectStatusChanged(ctx context.Context, token, projectName, status string) {
	if s.Client == nil || token == "" {
		return
	}
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: "Project update",
			Body:  projectName + " is now " + status,
		},
		Data: map[string]string{
			"status": status,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}
	if _, err := s.Client.Send(ctx, message); err != nil {
		log.Printf("fcm send failed: %v", err)
	}
}
