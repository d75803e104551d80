package clients

import (
	"context"
	"log/slog"
)

// NotificationClient talks to the notification service. Callers treat
// notification delivery as best-effort; an outage here never fails a
// business workflow.
type NotificationClient struct {
	core *httpCore
}

// NewNotificationClient creates a notification service client.
func NewNotificationClient(logger *slog.Logger, baseURL string) *NotificationClient {
	return &NotificationClient{
		core: newHTTPCore("notification", baseURL, BusinessPolicy, logger),
	}
}

// Notification describes a terminal execution outcome to broadcast.
type Notification struct {
	ExecutionID string `json:"execution_id"`
	WorkflowID  string `json:"workflow_id"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
}

// Send delivers a notification.
func (c *NotificationClient) Send(ctx context.Context, notification Notification) error {
	return c.core.postJSON(ctx, "Send", "/api/v1/notifications", notification, nil)
}
