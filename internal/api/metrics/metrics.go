// Package metrics defines all custom Prometheus metrics for the patient
// platform. It is the single source of truth for metric names, labels, and
// help strings; promauto registers everything with the default registry at
// package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "patient_platform"

// ── Token authority metrics ───────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenValidationsTotal counts token validation requests.
// Label:
//   - result: "valid", "invalid", or "malformed_header"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of token validation requests, by result.",
	},
	[]string{"result"},
)

// ── Gateway metrics ───────────────────────────────────────────────────────────

// GatewayDecisionsTotal counts per-request enforcement outcomes.
// Labels:
//   - decision: "forward", "unauthorized", or "forbidden"
//   - reason: short cause (e.g. "ok", "missing_header", "invalid_token",
//     "authority_unreachable", "rbac_denied")
var GatewayDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_decisions_total",
		Help:      "Total number of gateway enforcement decisions, by decision and reason.",
	},
	[]string{"decision", "reason"},
)

// ValidationCallDuration measures the remote call to the token authority.
var ValidationCallDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "validation_call_duration_seconds",
		Help:      "Duration of remote token validation calls made by the gateway.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts consumed patient events.
// Label:
//   - result: "recorded", "duplicate", or "error"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of patient events consumed by the audit trail, by result.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks events waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of events pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)
