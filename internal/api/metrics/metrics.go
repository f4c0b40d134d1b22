// Package metrics defines the custom Prometheus metrics of the portfolio
// API. It is the single source of truth for metric names, labels, and help
// strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portfolio"

// Transition label values.
const (
	TransitionCreate  = "create"
	TransitionRevise  = "revise"
	TransitionApprove = "approve"
	TransitionDelete  = "delete"
)

// ContentTransitionsTotal counts lifecycle transitions.
// Labels:
//   - kind: "service" or "project"
//   - transition: create, revise, approve or delete
var ContentTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_transitions_total",
		Help:      "Total number of content lifecycle transitions, by kind and transition.",
	},
	[]string{"kind", "transition"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// UsersRegisteredTotal counts created accounts.
// Label:
//   - admin: "true" or "false"
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered accounts.",
	},
	[]string{"admin"},
)

// ObserveTransition increments ContentTransitionsTotal.
func ObserveTransition(kind, transition string) {
	ContentTransitionsTotal.WithLabelValues(kind, transition).Inc()
}
