// Package metrics defines and registers all custom Prometheus metrics for the
// landing API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default Prometheus registry at package init; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "landing"

// AdminActionsTotal counts admin RPC procedures by outcome.
// Labels:
//   - action: "list_users", "set_role", "ban_user", "unban_user", "remove_user"
//   - result: "ok" or "error"
var AdminActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_actions_total",
		Help:      "Total number of admin RPC procedures executed, by action and result.",
	},
	[]string{"action", "result"},
)

// AuthDeniedTotal counts admin RPC calls rejected before any store access.
// Label:
//   - reason: "unauthorized" (no valid session) or "forbidden" (role not allowed)
var AuthDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denied_total",
		Help:      "Total number of admin RPC calls denied by the authorization gate.",
	},
	[]string{"reason"},
)

// SessionLookupsTotal counts session resolutions by result.
// Label:
//   - result: "cache_hit", "store_hit", "not_found", "expired", "invalid_token"
var SessionLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_lookups_total",
		Help:      "Total number of session cookie resolutions, by result.",
	},
	[]string{"result"},
)
