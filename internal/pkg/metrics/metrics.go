package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "spacesnap"

// Metrics хранит метрики Prometheus сервиса.
// Каждый экземпляр регистрирует метрики в собственном реестре.
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	DBConnPoolStats  *prometheus.GaugeVec
	QuizSubmissions  *prometheus.CounterVec
	QuestionSources  *prometheus.CounterVec
}

// NewMetrics создает метрики для сервиса serviceName
func NewMetrics(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: serviceName,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: serviceName,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: serviceName,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests currently being processed",
			},
		),
		DBConnPoolStats: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: serviceName,
				Name:      "db_connection_pool",
				Help:      "Database connection pool statistics",
			},
			[]string{"stat"},
		),
		QuizSubmissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: serviceName,
				Name:      "quiz_submissions_total",
				Help:      "Completed quiz attempts by recommended style",
			},
			[]string{"style"},
		),
		QuestionSources: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: serviceName,
				Name:      "quiz_question_source_total",
				Help:      "Question set resolutions by source tier",
			},
			[]string{"source"},
		),
	}
}

// ObserveRequest записывает завершенный HTTP-запрос
func (m *Metrics) ObserveRequest(method, path, status string, duration time.Duration) {
	m.RequestCounter.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RequestStarted увеличивает число запросов в обработке
func (m *Metrics) RequestStarted() {
	m.RequestsInFlight.Inc()
}

// RequestFinished уменьшает число запросов в обработке
func (m *Metrics) RequestFinished() {
	m.RequestsInFlight.Dec()
}

// QuizSubmitted учитывает завершенную попытку квиза
func (m *Metrics) QuizSubmitted(style string) {
	m.QuizSubmissions.WithLabelValues(style).Inc()
}

// QuestionSourceUsed учитывает источник, из которого собран набор вопросов
func (m *Metrics) QuestionSourceUsed(tier string) {
	m.QuestionSources.WithLabelValues(tier).Inc()
}

// RecordDBPoolStats записывает статистику пула соединений с базой
func (m *Metrics) RecordDBPoolStats(open, inUse, idle int, waitCount int64, waitDuration time.Duration) {
	m.DBConnPoolStats.WithLabelValues("open").Set(float64(open))
	m.DBConnPoolStats.WithLabelValues("in_use").Set(float64(inUse))
	m.DBConnPoolStats.WithLabelValues("idle").Set(float64(idle))
	m.DBConnPoolStats.WithLabelValues("wait_count").Set(float64(waitCount))
	m.DBConnPoolStats.WithLabelValues("wait_duration_ms").Set(float64(waitDuration.Milliseconds()))
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
