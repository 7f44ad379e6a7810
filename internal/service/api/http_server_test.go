package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/appdir-server/internal/service/api/constants"
	"github.com/darkkaiser/appdir-server/internal/service/api/metrics"
	applog "github.com/darkkaiser/appdir-server/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Utils
// =============================================================================

// setupTestLogger 로거 출력을 버퍼로 변경하고, 테스트 종료 시 원래대로 복구합니다.
func setupTestLogger(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := new(bytes.Buffer)
	out := applog.StandardLogger().Out
	level := applog.GetLevel()

	applog.SetOutput(buf)
	applog.SetFormatter(&applog.JSONFormatter{})
	applog.SetLevel(applog.DebugLevel)

	t.Cleanup(func() {
		applog.SetOutput(out)
		applog.SetLevel(level)
	})

	return buf
}

// =============================================================================
// Configuration Tests
// =============================================================================

func TestNewHTTPServer_Configuration_Table(t *testing.T) {
	tests := []struct {
		name        string
		config      HTTPServerConfig
		expectDebug bool
	}{
		{
			name:        "Debug 모드 활성화",
			config:      HTTPServerConfig{Debug: true, AllowOrigins: []string{"*"}},
			expectDebug: true,
		},
		{
			name:        "Debug 모드 비활성화",
			config:      HTTPServerConfig{Debug: false, AllowOrigins: []string{"http://example.com"}},
			expectDebug: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewHTTPServer(tt.config)

			require.NotNil(t, e)
			assert.Equal(t, tt.expectDebug, e.Debug)
			assert.True(t, e.HideBanner)
			assert.True(t, e.HidePort)
			assert.Equal(t, constants.DefaultReadHeaderTimeout, e.Server.ReadHeaderTimeout)
			assert.Equal(t, constants.DefaultIdleTimeout, e.Server.IdleTimeout)
			require.NotNil(t, e.Logger)
		})
	}
}

// =============================================================================
// Middleware Tests
// =============================================================================

func TestNewHTTPServer_CORSMiddleware_Table(t *testing.T) {
	tests := []struct {
		name               string
		allowOrigins       []string
		requestOrigin      string
		requestMethod      string
		expectStatus       int
		expectAllowOrigin  string
		expectAllowMethods bool
	}{
		{
			name:               "Wildcard Origin - Preflight 요청",
			allowOrigins:       []string{"*"},
			requestOrigin:      "http://example.com",
			requestMethod:      http.MethodOptions,
			expectStatus:       http.StatusNoContent,
			expectAllowOrigin:  "*",
			expectAllowMethods: true,
		},
		{
			name:              "Specific Origin - GET 요청",
			allowOrigins:      []string{"http://example.com"},
			requestOrigin:     "http://example.com",
			requestMethod:     http.MethodGet,
			expectStatus:      http.StatusOK,
			expectAllowOrigin: "http://example.com",
		},
		{
			name:              "Disallowed Origin - GET 요청 (Allow-Origin 헤더 생략)",
			allowOrigins:      []string{"http://trusted.com"},
			requestOrigin:     "http://evil.com",
			requestMethod:     http.MethodGet,
			expectStatus:      http.StatusOK,
			expectAllowOrigin: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewHTTPServer(HTTPServerConfig{AllowOrigins: tt.allowOrigins})
			e.GET("/test", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
			e.OPTIONS("/test", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

			req := httptest.NewRequest(tt.requestMethod, "/test", nil)
			req.Header.Set(echo.HeaderOrigin, tt.requestOrigin)
			if tt.requestMethod == http.MethodOptions {
				req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodDelete)
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectStatus, rec.Code)
			assert.Equal(t, tt.expectAllowOrigin, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
			if tt.expectAllowMethods {
				assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodDelete)
			}
		})
	}
}

func TestNewHTTPServer_PanicRecoveryMiddleware(t *testing.T) {
	buf := setupTestLogger(t)

	e := NewHTTPServer(HTTPServerConfig{AllowOrigins: []string{"*"}})
	e.GET("/panic", func(c echo.Context) error {
		panic("intentional panic")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		e.ServeHTTP(rec, req)
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "intentional panic", "응답에 패닉 내용이 노출되지 않아야 합니다")
	assert.Contains(t, buf.String(), "intentional panic")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestNewHTTPServer_HTTPLoggerMiddleware(t *testing.T) {
	buf := setupTestLogger(t)

	e := NewHTTPServer(HTTPServerConfig{AllowOrigins: []string{"*"}})
	e.GET("/log-test", func(c echo.Context) error {
		return c.String(http.StatusOK, "success")
	})

	req := httptest.NewRequest(http.MethodGet, "/log-test?access_token=secret-value", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	logContent := buf.String()
	assert.Contains(t, logContent, `"method":"GET"`)
	assert.Contains(t, logContent, `"status":200`)
	assert.Contains(t, logContent, `"path":"/log-test"`)
	assert.NotContains(t, logContent, "secret-value", "토큰 값은 마스킹되어야 합니다")
}

func TestNewHTTPServer_MetricsMiddleware(t *testing.T) {
	m := metrics.New()

	e := NewHTTPServer(HTTPServerConfig{AllowOrigins: []string{"*"}, Metrics: m})
	e.GET("/api/v1/applications", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != "appdir_http_requests_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(3), total)
	assert.Positive(t, testutil.CollectAndCount(m.Registry(), "appdir_http_request_duration_seconds"))
}

func TestNewHTTPServer_StandardMiddleware_Table(t *testing.T) {
	e := NewHTTPServer(HTTPServerConfig{AllowOrigins: []string{"*"}})
	e.GET("/test", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	tests := []struct {
		name        string
		checkHeader string
		expected    string
	}{
		{name: "X-XSS-Protection 헤더 (Secure 미들웨어)", checkHeader: echo.HeaderXXSSProtection, expected: "1; mode=block"},
		{name: "X-Content-Type-Options 헤더 (Secure 미들웨어)", checkHeader: echo.HeaderXContentTypeOptions, expected: "nosniff"},
		{name: "Server 헤더 제거", checkHeader: echo.HeaderServer, expected: ""},
	}

	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID), "Request ID 헤더가 설정되어야 합니다")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rec.Header().Get(tt.checkHeader))
		})
	}
}

func TestNewHTTPServer_BodyLimit(t *testing.T) {
	e := NewHTTPServer(HTTPServerConfig{AllowOrigins: []string{"*"}})
	e.POST("/upload", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	body := bytes.Repeat([]byte("a"), 65*1024)
	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
