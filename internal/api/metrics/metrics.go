// Package metrics defines and registers all custom Prometheus metrics for the
// awards catalogue auth subsystem. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default registry at import time via
// promauto; the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "awards_auth"

// RegistrationsTotal counts completed registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts successfully registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "disabled", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts access-token renewals via refresh token.
// Label:
//   - result: "success", "unknown", "expired", "error"
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of refresh-token exchanges, by result.",
	},
	[]string{"result"},
)

// ActivationsTotal counts activation link consumptions.
// Label:
//   - result: "activated" (enabled flipped), "noop" (repeat or unknown link)
var ActivationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activations_total",
		Help:      "Total number of activation attempts, by result.",
	},
	[]string{"result"},
)

// PasswordResetsTotal counts password-reset activity.
// Labels:
//   - stage: "request" or "confirm"
//   - result: "success", "unknown", "expired", "throttled", "error"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password reset requests and confirmations, by stage and result.",
	},
	[]string{"stage", "result"},
)
