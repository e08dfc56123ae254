package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GatewayRequests counts gateway API calls by operation and outcome
	// (ok / transient / error).
	GatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gymbooking",
		Name:      "gateway_requests_total",
		Help:      "Payment gateway API calls by operation and outcome.",
	}, []string{"operation", "outcome"})

	// SignatureFailures counts failed payment signature verifications.
	// These are security-relevant events.
	SignatureFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gymbooking",
		Name:      "signature_failures_total",
		Help:      "Payment callbacks rejected due to invalid signature.",
	})

	// PaymentsCompleted counts bookings flipped to paid by a verified callback.
	PaymentsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gymbooking",
		Name:      "payments_completed_total",
		Help:      "Bookings marked paid after signature verification.",
	})

	// OrphanCallbacks counts verified callbacks that matched no local booking.
	OrphanCallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gymbooking",
		Name:      "orphan_callbacks_total",
		Help:      "Verified payment callbacks with no matching booking row.",
	})
)
