// Package metrics defines and registers all custom Prometheus metrics for
// the hive platform services. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the routers expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hive"

// ── Registration metrics ──────────────────────────────────────────────────────

// RegistrationsTotal counts successful registrations.
// Label:
//   - role: the resolved role variant ("ADMIN", "PROJECT_MANAGER", "EMPLOYEE")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of users successfully registered, by role.",
	},
	[]string{"role"},
)

// RegistrationErrorsTotal counts rejected registration requests.
// Label:
//   - reason: "duplicate_email", "invalid_role", or "persistence"
var RegistrationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registration_errors_total",
		Help:      "Total number of registration requests rejected, by reason.",
	},
	[]string{"reason"},
)

// ── Lookup metrics ────────────────────────────────────────────────────────────

// LookupCacheTotal counts lookup cache decisions.
// Label:
//   - result: "hit" (served from Redis) or "miss" (fell through to storage)
var LookupCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookup_cache_total",
		Help:      "Total number of identity lookup cache checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the current number of audit events waiting in each
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditWriteDuration measures how long a single audit write takes.
var AuditWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of audit event persistence from dequeue to storage.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Project metrics ───────────────────────────────────────────────────────────

// ProjectsCreatedTotal counts newly created projects.
var ProjectsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created.",
	},
)
