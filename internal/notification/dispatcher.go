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
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/polintern/backend/internal/monitoring"
	"github.com/polintern/backend/internal/pubsub"
)

// StatusNotification is the payload published for every applicant of a
// project whenever the project changes its lifecycle status.
type StatusNotification struct {
	ProjectID    string `json:"projectId"`
	ProjectTitle string `json:"projectTitle"`
	Status       string `json:"status"`
	ApplicantID  string `json:"applicantId"`
	Email        string `json:"email"`
}

type Notifier interface {
	Notify(ctx context.Context, notification StatusNotification) error
}

type Dispatcher struct {
	broker   pubsub.Broker
	notifier Notifier
}

func NewDispatcher(broker pubsub.Broker, notifier Notifier) *Dispatcher {
	return &Dispatcher{
		broker:   broker,
		notifier: notifier,
	}
}

// Start subscribes to the status channel and forwards messages until the
// context is cancelled. Delivery is best effort: a failing notifier is
// logged and reported, never retried and never surfaced to the request
// which triggered the transition.
func (d *Dispatcher) Start(ctx context.Context) error {
	messages, err := d.broker.Subscribe(pubsub.ProjectStatusChannel)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case payload, ok := <-messages:
				if !ok {
					return
				}
				d.dispatch(ctx, payload)
			}
		}
	}()

	return nil
}

func (d *Dispatcher) dispatch(ctx context.Context, payload map[string]any) {
	notification := StatusNotification{
		ProjectID:    stringField(payload, "projectId"),
		ProjectTitle: stringField(payload, "projectTitle"),
		Status:       stringField(payload, "status"),
		ApplicantID:  stringField(payload, "applicantId"),
		Email:        stringField(payload, "email"),
	}

	if err := d.notifier.Notify(ctx, notification); err != nil {
		monitoring.NotificationsFailed.Inc()
		slog.Error("could not deliver status notification", "err", err, "projectID", notification.ProjectID, "applicantID", notification.ApplicantID)
		sentry.CaptureException(err)
		return
	}

	monitoring.NotificationsDispatched.Inc()
}

func stringField(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}
