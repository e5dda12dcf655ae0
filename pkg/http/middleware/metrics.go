package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

type httpMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	m := &httpMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nextworth",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		// inference dominates /api/predict, hence the long tail
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nextworth",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route, method and status class.",
			Buckets:   []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 90},
		}, []string{"route", "method", "class"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nextworth",
			Name:      "http_in_flight_requests",
			Help:      "HTTP requests currently being served.",
		}),
	}
	m.requests = reuse(reg, m.requests).(*prometheus.CounterVec)
	m.duration = reuse(reg, m.duration).(*prometheus.HistogramVec)
	m.inFlight = reuse(reg, m.inFlight).(prometheus.Gauge)
	return m
}

func reuse(reg prometheus.Registerer, c prometheus.Collector) prometheus.Collector {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}

// Metrics records request count, latency and in-flight requests on the
// default registry. See MetricsWithRegisterer.
func Metrics(skip ...string) echo.MiddlewareFunc {
	return MetricsWithRegisterer(prometheus.DefaultRegisterer, skip...)
}

// MetricsWithRegisterer records request metrics on reg. Routes are labelled by
// their registered template; requests that matched no route share the
// "unmatched" label. Paths in skip (typically the scrape endpoint) are not
// recorded.
func MetricsWithRegisterer(reg prometheus.Registerer, skip ...string) echo.MiddlewareFunc {
	m := newHTTPMetrics(reg)
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := skipped[c.Request().URL.Path]; ok {
				return next(c)
			}

			m.inFlight.Inc()
			defer m.inFlight.Dec()
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			code := c.Response().Status

			m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
			m.duration.WithLabelValues(route, method, statusClass(code)).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "5xx"
	}
	return strconv.Itoa(code/100) + "xx"
}
