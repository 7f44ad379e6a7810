// Package metrics 관리 API와 디렉터리 서비스의 운영 지표를 Prometheus 형식으로 수집합니다.
//
// 지표는 전역 레지스트리가 아닌 Metrics가 소유한 레지스트리에 등록되므로 테스트마다 독립적으로 생성할 수 있습니다.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "appdir"

// Path 지표를 노출하는 엔드포인트 경로
const Path = "/metrics"

// unmatchedRoute 라우트가 없는 요청의 path 라벨 값
const unmatchedRoute = "unmatched"

// Metrics HTTP 요청과 디렉터리 작업 결과를 집계합니다.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	operationsTotal *prometheus.CounterVec
}

// New 지표를 생성하여 자체 레지스트리에 등록합니다. Go 런타임과 프로세스 지표도 함께 등록됩니다.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled by the admin API.",
		}, []string{"method", "path", "status"}),

		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests handled by the admin API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),

		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "operations_total",
			Help:      "Total number of application directory operations by result.",
		}, []string{"operation", "result"}),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.operationsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry 지표가 등록된 레지스트리를 반환합니다.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordOperation 디렉터리 작업 결과를 기록합니다. result는 "success" 또는 에러 분류입니다.
func (m *Metrics) RecordOperation(operation, result string) {
	m.operationsTotal.WithLabelValues(operation, result).Inc()
}

// Middleware HTTP 요청 수와 처리 시간을 기록하는 Echo 미들웨어를 반환합니다.
//
// path 라벨은 라우트 패턴(/api/v1/applications/:applicationId)을 사용하여 라벨 수가 늘어나지 않도록 합니다.
// 지표 엔드포인트 자신에 대한 요청은 기록하지 않습니다.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == Path {
				return next(c)
			}

			timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
				m.requestDuration.WithLabelValues(c.Request().Method, routeOf(c)).Observe(v)
			}))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			timer.ObserveDuration()
			m.requestsTotal.WithLabelValues(c.Request().Method, routeOf(c), strconv.Itoa(c.Response().Status)).Inc()

			return nil
		}
	}
}

// Handler 레지스트리의 지표를 Prometheus 텍스트 형식으로 노출하는 핸들러를 반환합니다.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func routeOf(c echo.Context) string {
	if p := c.Path(); p != "" {
		return p
	}
	return unmatchedRoute
}
