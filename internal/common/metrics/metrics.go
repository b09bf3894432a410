// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FunctionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "function_requests_total",
			Help: "Total number of function invocations by result",
		},
		[]string{"function", "result"},
	)

	FunctionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "function_request_duration_seconds",
			Help: "Duration of function invocations in seconds",
		},
		[]string{"function"},
	)

	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_created_total",
			Help: "Notification rows created by channel",
		},
		[]string{"channel"},
	)

	ChannelDeliveryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_delivery_failures_total",
			Help: "Best-effort channel delivery failures by channel",
		},
		[]string{"channel"},
	)

	PaymentIntents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_intents_total",
			Help: "Payment intent creation attempts by result",
		},
		[]string{"result"},
	)
)
