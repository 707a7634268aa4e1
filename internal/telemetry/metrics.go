package telemetry

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TransportMetrics — метрики исходящих HTTP-запросов по профилям транспорта.
//
// Метрики регистрируются в собственном Registry, а не в глобальном:
// в тестах создаётся несколько клиентов в одном процессе.
type TransportMetrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight *prometheus.GaugeVec
}

// NewTransportMetrics создаёт и регистрирует метрики транспорта.
func NewTransportMetrics() *TransportMetrics {
	m := &TransportMetrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bh_http_requests_total",
			Help: "Total outgoing HTTP requests by transport profile",
		}, []string{"profile", "code", "method"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bh_http_request_duration_seconds",
			Help:    "Outgoing HTTP request latency until response headers",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 240},
		}, []string{"profile", "code", "method"}),
		inFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bh_http_in_flight_requests",
			Help: "Outgoing HTTP requests currently in flight",
		}, []string{"profile"}),
	}

	m.registry.MustRegister(m.requests, m.duration, m.inFlight)
	return m
}

// InstrumentRoundTripper оборачивает транспорт метриками с меткой profile.
// Nil-приёмник возвращает next без изменений.
func (m *TransportMetrics) InstrumentRoundTripper(profile string, next http.RoundTripper) http.RoundTripper {
	if m == nil {
		return next
	}

	labels := prometheus.Labels{"profile": profile}
	rt := promhttp.InstrumentRoundTripperDuration(m.duration.MustCurryWith(labels), next)
	rt = promhttp.InstrumentRoundTripperCounter(m.requests.MustCurryWith(labels), rt)
	return promhttp.InstrumentRoundTripperInFlight(m.inFlight.WithLabelValues(profile), rt)
}

// Gatherer возвращает registry для чтения метрик.
func (m *TransportMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile записывает метрики в файл в текстовом формате Prometheus.
func (m *TransportMetrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
