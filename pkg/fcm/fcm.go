package fcm

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Client wraps Firebase Cloud Messaging functionality
type Client struct {
	messagingClient *messaging.Client
}

// NewClient creates a new FCM client using the provided credentials file
func NewClient(credentialsFile string) (*Client, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	log.Println("[FCM] Client initialized successfully")
	return &Client{
		messagingClient: messagingClient,
	}, nil
}

// NotificationData contains the data to send in a push notification
type NotificationData struct {
	Title string
	Body  string
	Icon  string
	Badge string
	// Tag lets repeated updates for the same entity replace the shown
	// notification instead of stacking a new one.
	Tag                string
	RequireInteraction bool
}

// SendError reports a per-token delivery failure. Permanent means the
// registration itself is invalid and future sends to it are futile.
type SendError struct {
	Permanent bool
	Err       error
}

func (e *SendError) Error() string {
	if e.Permanent {
		return "fcm: token permanently invalid: " + e.Err.Error()
	}
	return "fcm: send failed: " + e.Err.Error()
}

func (e *SendError) Unwrap() error {
	return e.Err
}

func buildMessage(token string, notification NotificationData, data map[string]string) *messaging.Message {
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Body,
		},
		Data: data,
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title:              notification.Title,
				Body:               notification.Body,
				Icon:               notification.Icon,
				Badge:              notification.Badge,
				Tag:                notification.Tag,
				RequireInteraction: notification.RequireInteraction,
			},
		},
	}
}

// Send delivers a push notification to a single device token. Gateway
// failures are classified: IsUnregistered / IsInvalidArgument responses mean
// the token is dead and come back as a permanent SendError, everything else
// (network, 5xx) as transient.
func (c *Client) Send(ctx context.Context, token string, notification NotificationData, data map[string]string) error {
	message := buildMessage(token, notification, data)

	response, err := c.messagingClient.Send(ctx, message)
	if err != nil {
		return &SendError{
			Permanent: messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err),
			Err:       err,
		}
	}

	log.Printf("[FCM] Message sent successfully: %s", response)
	return nil
}
