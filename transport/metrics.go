package transport

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/DanielPopoola/moneybag-go/domain"
)

// Metrics records outbound gateway traffic. A nil *Metrics records nothing.
type Metrics struct {
	attempts *prometheus.CounterVec
	retries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneybag_client_attempts_total",
				Help: "Physical HTTP attempts against the gateway, by method and outcome.",
			},
			[]string{"method", "outcome"},
		),
		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneybag_client_retries_total",
				Help: "Attempts repeated after a transient failure.",
			},
			[]string{"method"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moneybag_client_call_duration_seconds",
				Help:    "Duration of logical gateway calls, retries and backoff included.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"method", "result"},
		),
	}

	for _, c := range []prometheus.Collector{m.attempts, m.retries, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeAttempt(method string, resp *Response) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(method, attemptOutcome(resp)).Inc()
}

func (m *Metrics) observeRetry(method string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(method).Inc()
}

func (m *Metrics) observeCall(method string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = strings.ToLower(string(domain.KindOf(err)))
	}
	m.duration.WithLabelValues(method, result).Observe(elapsed.Seconds())
}

func attemptOutcome(resp *Response) string {
	switch {
	case resp == nil:
		return "network"
	case resp.StatusCode >= 500:
		return "5xx"
	case resp.StatusCode >= 400:
		return "4xx"
	case resp.StatusCode >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
