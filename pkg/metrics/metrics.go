// Package metrics defines the Prometheus instrumentation for the service.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PollTicks counts executions of the channel poll task
	PollTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "macronews_poll_ticks_total",
		Help: "Number of channel poll ticks executed.",
	})

	// PollErrors counts poll ticks that failed (and were swallowed)
	PollErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "macronews_poll_errors_total",
		Help: "Number of poll ticks that ended in an error.",
	})

	// MessagesSaved counts new channel messages persisted to the news store
	MessagesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "macronews_messages_saved_total",
		Help: "Number of new channel messages persisted.",
	})

	// AIRequests counts proxied generative-text requests by prompt kind
	AIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "macronews_ai_requests_total",
		Help: "Number of requests proxied to the generative-text provider.",
	}, []string{"kind"})

	// AIErrors counts failed provider calls by prompt kind
	AIErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "macronews_ai_errors_total",
		Help: "Number of provider calls that failed.",
	}, []string{"kind"})
)

// Handler exposes the default registry in Prometheus exposition format
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
