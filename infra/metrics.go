package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the adaptive scaling engine. Registered on the default
// registry, exposed on /metrics.
var (
	TrustScoreEvaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sentinel",
		Subsystem: "adaptive",
		Name:      "trust_score_evaluations_total",
		Help:      "Trust score evaluations processed, by outcome.",
	}, []string{"outcome"})

	CooldownSuppressions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sentinel",
		Subsystem: "adaptive",
		Name:      "cooldown_suppressions_total",
		Help:      "Scaling decisions suppressed by the cooldown window.",
	})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sentinel",
		Subsystem: "adaptive",
		Name:      "notifications_total",
		Help:      "User notifications dispatched by the async notifier, by status.",
	}, []string{"status"})
)
