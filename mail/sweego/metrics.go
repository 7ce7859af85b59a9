package sweego

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric status labels.
const (
	statusOK       = "ok"       // provider accepted the send
	statusRejected = "rejected" // provider returned a non-200 status
	statusInvalid  = "invalid"  // payload assembly failed, no request made
	statusError    = "error"    // transport or decoding failure
)

var (
	// sendDuration is a histogram of send call durations
	sendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mail_sweego_send_duration_seconds",
			Help:    "Duration of Sweego send calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	// sendTotal is a counter of send calls
	sendTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_sweego_sends_total",
			Help: "Total number of Sweego send calls",
		},
		[]string{"status"},
	)
)

func init() {
	// Register metrics with Prometheus
	prometheus.MustRegister(sendDuration)
	prometheus.MustRegister(sendTotal)
}

// recordSend records metrics for a single send call
func recordSend(status string, duration float64) {
	sendDuration.WithLabelValues(status).Observe(duration)
	sendTotal.WithLabelValues(status).Inc()
}
