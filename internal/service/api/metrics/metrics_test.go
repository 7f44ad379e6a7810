package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordOperation(t *testing.T) {
	t.Parallel()

	m := New()

	m.RecordOperation("delete", "success")
	m.RecordOperation("delete", "success")
	m.RecordOperation("delete", "notfound")
	m.RecordOperation("list", "forbidden")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("delete", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("delete", "notfound")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("list", "forbidden")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.operationsTotal))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	m := New()

	e := echo.New()
	e.Use(m.Middleware())
	e.DELETE("/api/v1/applications/:applicationId", func(c echo.Context) error {
		if c.Param("applicationId") == "app-123" {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET(Path, echo.WrapHandler(m.Handler()))

	for _, id := range []string{"app-1", "app-2", "app-123"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/applications/"+id, nil))
	}

	route := "/api/v1/applications/:applicationId"
	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodDelete, route, "200")), "path 라벨은 라우트 패턴이어야 합니다")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodDelete, route, "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))

	t.Run("지표 엔드포인트 노출", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, Path, nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.True(t, strings.Contains(body, "appdir_http_requests_total"))
		assert.True(t, strings.Contains(body, "go_goroutines"))
		assert.Equal(t, 3.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodDelete, route, "200"))+
			testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodDelete, route, "404")),
			"지표 엔드포인트 요청은 기록하지 않아야 합니다")
	})
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	t.Parallel()

	m := New()
	e := echo.New()
	e.Use(m.Middleware())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestsTotal), "라우트가 없는 요청도 하나의 시계열로 기록되어야 합니다")
}
