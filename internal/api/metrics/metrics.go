// Package metrics defines and registers all custom Prometheus metrics for
// the task-tracking API. It is the single source of truth for metric
// names, labels, and help strings. Metrics register with the default
// registry at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tasktracker"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of successfully registered users.",
	},
)

// LoginsTotal counts login attempts by result.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests rejected by the auth gate.
// Label:
//   - reason: "missing_token" or "invalid_token"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the authentication gate.",
	},
	[]string{"reason"},
)

// ── Resource metrics ──────────────────────────────────────────────────────────

// ModulesCreatedTotal counts newly created modules.
var ModulesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "modules_created_total",
		Help:      "Total number of modules created.",
	},
)

// TasksCreatedTotal counts newly created tasks by initial status.
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by initial status.",
	},
	[]string{"status"},
)

// ── Activity queue metrics ────────────────────────────────────────────────────

// ActivityQueueDepth tracks entries pending in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of entries pending in each activity worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityErrorsTotal counts activity entries that failed to persist.
var ActivityErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity entries that failed processing.",
	},
)
