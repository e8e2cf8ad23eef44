package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics live on a registry owned by the server so several servers (tests)
// can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	submissions *prometheus.CounterVec
	mutations   *prometheus.CounterVec
	events      prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{Registry: prometheus.NewRegistry()}
	m.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventlens",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status",
	}, []string{"method", "route", "status"})
	m.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "eventlens",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	m.submissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventlens",
		Name:      "tweet_submissions_total",
		Help:      "Submitted tweets by outcome",
	}, []string{"outcome"})
	m.mutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventlens",
		Name:      "admin_mutations_total",
		Help:      "Admin mutations by kind and result",
	}, []string{"kind", "result"})
	m.events = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "eventlens",
		Name:      "stored_events",
		Help:      "Number of stored events at the last listing",
	})

	m.Registry.MustRegister(
		m.requests, m.duration, m.submissions, m.mutations, m.events,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) Submission(outcome string) {
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Mutation(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.mutations.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) StoredEvents(n int) {
	m.events.Set(float64(n))
}
