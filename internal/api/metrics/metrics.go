// Package metrics defines and registers all custom Prometheus metrics for
// the persoshop API. It is the single source of truth for metric names,
// labels, and help strings; metrics register with the default registry at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "persoshop"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionRefreshesTotal counts transparent token refreshes performed by
// the auth middleware.
var SessionRefreshesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_refreshes_total",
		Help:      "Total number of session tokens re-signed on authenticated requests.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsEnqueuedTotal counts notifications appended to the feed.
// Label:
//   - type: the notification type tag (e.g. "NEW_PHOTO_UPLOADED")
var NotificationsEnqueuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_enqueued_total",
		Help:      "Total number of notifications enqueued, by type.",
	},
	[]string{"type"},
)

// ── Commerce metrics ──────────────────────────────────────────────────────────

// PhotosUploadedTotal counts persisted client photo uploads.
var PhotosUploadedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "photos_uploaded_total",
		Help:      "Total number of client photos uploaded and persisted.",
	},
)

// PropositionsCreatedTotal counts admin-issued propositions.
var PropositionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "propositions_created_total",
		Help:      "Total number of propositions created by the admin.",
	},
)

// PropositionStatusTotal counts client responses to propositions.
// Label:
//   - status: "REFUSEE", "INTERESSE", or "ACHETE"
var PropositionStatusTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proposition_status_total",
		Help:      "Total number of client proposition responses, by status.",
	},
	[]string{"status"},
)
