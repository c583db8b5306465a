// Copyright (C) 2024 the polintern authors
// SPDX-License-Identifier: 	AGPL-3.0-or-later
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ProjectsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "polintern_projects_created_total",
	Help: "Number of projects created",
})

var StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "polintern_project_status_transitions_total",
	Help: "Number of successful project status transitions",
}, []string{"status"})

var ApplicationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "polintern_applications_submitted_total",
	Help: "Number of applications submitted",
})

var ApplicationsWithdrawn = promauto.NewCounter(prometheus.CounterOpts{
	Name: "polintern_applications_withdrawn_total",
	Help: "Number of applications withdrawn via the apply toggle",
})

var NotificationsDispatched = promauto.NewCounter(prometheus.CounterOpts{
	Name: "polintern_notifications_dispatched_total",
	Help: "Number of status notifications delivered to the notifier",
})

var NotificationsFailed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "polintern_notifications_failed_total",
	Help: "Number of status notifications the notifier failed to deliver",
})
