// Copyright (C) 2024 the polintern authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// WebhookNotifier POSTs each notification as JSON to a configured endpoint,
// usually the mail relay which renders and sends the actual status mail.
type WebhookNotifier struct {
	url    string
	secret string
	client *http.Client
}

func NewWebhookNotifier(url, secret string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		secret: secret,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *WebhookNotifier) Notify(ctx context.Context, notification StatusNotification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("could not marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.secret != "" {
		req.Header.Set("X-Webhook-Secret", w.secret)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("could not deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// LogNotifier is the fallback when no webhook endpoint is configured. It
// keeps the dispatch path exercised in development setups.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, notification StatusNotification) error {
	slog.Info("project status notification", "projectID", notification.ProjectID, "status", notification.Status, "applicantID", notification.ApplicantID, "email", notification.Email)
	return nil
}

// NotifierFactory picks the webhook notifier when NOTIFY_WEBHOOK_URL is
// set, the log notifier otherwise.
func NotifierFactory() Notifier {
	if url := os.Getenv("NOTIFY_WEBHOOK_URL"); url != "" {
		return NewWebhookNotifier(url, os.Getenv("NOTIFY_WEBHOOK_SECRET"))
	}
	return LogNotifier{}
}
