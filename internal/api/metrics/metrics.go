// Package metrics defines and registers all custom Prometheus metrics for
// the users API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "users"

// UsersCreatedTotal counts successfully created user records.
// Label:
//   - role: the role assigned at creation (e.g. "admin")
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of user records created, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts password-grant login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of token-endpoint login attempts, by result.",
	},
	[]string{"result"},
)

// UsersDeletedTotal counts deleted user records.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deleted_total",
		Help:      "Total number of user records deleted.",
	},
)

// BasicAuthRejectionsTotal counts requests aborted by the basic-auth
// middleware before routing.
var BasicAuthRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "basic_auth_rejections_total",
		Help:      "Total number of requests rejected for malformed or invalid basic-auth credentials.",
	},
)

// StoreOpDuration times MongoDB operations, including failed ones.
// Label:
//   - op: the repository operation (e.g. "find user", "insert audit event")
var StoreOpDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_op_duration_seconds",
		Help:      "Duration of MongoDB store operations in seconds, by operation.",
	},
	[]string{"op"},
)
