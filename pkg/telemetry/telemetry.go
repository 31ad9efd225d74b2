// Package telemetry exposes prometheus metrics for the transport adapters:
// completed sends, send latency, and boundary failures. The core conn
// package stays metrics-free; adapters record here around each exchange.
package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	sendsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "plug",
		Name:      "sends_total",
		Help:      "Completed response sends by method and status.",
	}, []string{"method", "status"})

	sendDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "plug",
		Name:      "send_duration_seconds",
		Help:      "Wall time from exchange construction to completed send.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	alreadySentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "plug",
		Name:      "already_sent_errors_total",
		Help:      "Send attempts on an already-sent exchange (handler bugs).",
	})

	malformedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "plug",
		Name:      "malformed_requests_total",
		Help:      "Requests rejected at the boundary for unparseable targets.",
	})
)

func init() {
	prometheus.MustRegister(sendsTotal, sendDuration, alreadySentTotal, malformedTotal)
}

// ObserveSend records one completed send.
func ObserveSend(method string, status int, elapsed time.Duration) {
	sendsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	sendDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveAlreadySent records a double-send programming error.
func ObserveAlreadySent() { alreadySentTotal.Inc() }

// ObserveMalformed records a request rejected for a malformed target.
func ObserveMalformed() { malformedTotal.Inc() }
