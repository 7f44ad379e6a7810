package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/darkkaiser/appdir-server/internal/pkg/errors"
	"github.com/darkkaiser/appdir-server/internal/service/api/auth"
	"github.com/darkkaiser/appdir-server/internal/service/api/constants"
	"github.com/darkkaiser/appdir-server/internal/service/api/model/response"
	"github.com/darkkaiser/appdir-server/internal/service/contract"
	applog "github.com/darkkaiser/appdir-server/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs 테스트 동안 전역 로거 출력을 JSON 버퍼로 돌려놓고 종료 시 원래대로 복구합니다.
//
// pkg/log의 전역 상태를 변경하므로 이 헬퍼를 사용하는 테스트는 t.Parallel()을 사용할 수 없습니다.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	logger := applog.StandardLogger()
	out, formatter, level := logger.Out, logger.Formatter, logger.GetLevel()
	t.Cleanup(func() {
		applog.SetOutput(out)
		applog.SetFormatter(formatter)
		applog.SetLevel(level)
	})

	buf := new(bytes.Buffer)
	applog.SetOutput(buf)
	applog.SetFormatter(&applog.JSONFormatter{})
	applog.SetLevel(applog.InfoLevel)

	return buf
}

func serveError(err error, method string, prepare func(c echo.Context, req *http.Request, rec *httptest.ResponseRecorder)) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, "/api/v1/applications", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if prepare != nil {
		prepare(c, req, rec)
	}

	ErrorHandler(err, c)

	return rec
}

// =============================================================================
// 응답 본문
// =============================================================================

func TestErrorHandler_Response(t *testing.T) {
	captureLogs(t)

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "라우트 없음은 한국어 메시지로 통일",
			err:      echo.ErrNotFound,
			wantCode: http.StatusNotFound,
			wantMsg:  constants.ErrMsgNotFound,
		},
		{
			name:     "핸들러가 만든 404 메시지는 유지",
			err:      FromAppError(apperrors.New(apperrors.NotFound, "애플리케이션을 찾을 수 없습니다: 'app-123'")),
			wantCode: http.StatusNotFound,
			wantMsg:  "애플리케이션을 찾을 수 없습니다: 'app-123'",
		},
		{
			name:     "테넌트 불일치는 403",
			err:      FromAppError(apperrors.New(apperrors.Forbidden, "다른 테넌트 사용자의 애플리케이션은 조회할 수 없습니다: 'bob@t2.com'")),
			wantCode: http.StatusForbidden,
			wantMsg:  "다른 테넌트 사용자의 애플리케이션은 조회할 수 없습니다: 'bob@t2.com'",
		},
		{
			name:     "ErrorResponse 타입 메시지",
			err:      echo.NewHTTPError(http.StatusBadRequest, response.ErrorResponse{Message: constants.ErrMsgBadRequestInvalidQuery}),
			wantCode: http.StatusBadRequest,
			wantMsg:  constants.ErrMsgBadRequestInvalidQuery,
		},
		{
			name:     "Echo 기본 405",
			err:      echo.ErrMethodNotAllowed,
			wantCode: http.StatusMethodNotAllowed,
			wantMsg:  "Method Not Allowed",
		},
		{
			name:     "저장소 원인은 노출하지 않음",
			err:      FromAppError(apperrors.Wrap(errors.New("pq: connection refused"), apperrors.Internal, "소유자 변경 실패")),
			wantCode: http.StatusInternalServerError,
			wantMsg:  constants.ErrMsgInternalServer,
		},
		{
			name:     "분류 없는 에러는 500",
			err:      errors.New("unexpected"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  constants.ErrMsgInternalServer,
		},
		{
			name:     "문자열이 아닌 메시지는 기본 메시지 사용",
			err:      echo.NewHTTPError(http.StatusBadRequest, struct{ Detail string }{"x"}),
			wantCode: http.StatusBadRequest,
			wantMsg:  constants.ErrMsgInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveError(tt.err, http.MethodGet, nil)

			assert.Equal(t, tt.wantCode, rec.Code)

			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.ResultCode)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestErrorHandler_NoBody(t *testing.T) {
	captureLogs(t)

	t.Run("HEAD 요청은 본문 없이 상태 코드만 반환", func(t *testing.T) {
		rec := serveError(echo.ErrNotFound, http.MethodHead, nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("이미 커밋된 응답은 덮어쓰지 않음", func(t *testing.T) {
		rec := serveError(errors.New("late failure"), http.MethodDelete, func(c echo.Context, _ *http.Request, _ *httptest.ResponseRecorder) {
			c.Response().Committed = true
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

// =============================================================================
// 로깅
// =============================================================================

func TestErrorHandler_Logging(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		prepare   func(c echo.Context, req *http.Request, rec *httptest.ResponseRecorder)
		wantLevel string
		wantMsg   string
		wantField map[string]any
	}{
		{
			name:      "4xx는 Warn",
			err:       FromAppError(apperrors.New(apperrors.InvalidInput, "limit은 1 이상이어야 합니다")),
			wantLevel: "warning",
			wantMsg:   constants.LogMsgHTTPClientError,
			wantField: map[string]any{"status_code": float64(http.StatusBadRequest), "method": http.MethodGet},
		},
		{
			name:      "5xx는 Error",
			err:       errors.New("database unavailable"),
			wantLevel: "error",
			wantMsg:   constants.LogMsgHTTPServerError,
			wantField: map[string]any{"status_code": float64(http.StatusInternalServerError), "path": "/api/v1/applications"},
		},
		{
			name: "접속 IP와 요청 ID",
			err:  echo.ErrUnauthorized,
			prepare: func(_ echo.Context, req *http.Request, rec *httptest.ResponseRecorder) {
				req.RemoteAddr = "192.168.1.100:12345"
				rec.Header().Set(echo.HeaderXRequestID, "req-123")
			},
			wantLevel: "warning",
			wantField: map[string]any{"remote_ip": "192.168.1.100", "request_id": "req-123"},
		},
		{
			name: "인증된 호출자",
			err:  FromAppError(apperrors.New(apperrors.NotFound, "애플리케이션을 찾을 수 없습니다: 'app-9'")),
			prepare: func(c echo.Context, _ *http.Request, _ *httptest.ResponseRecorder) {
				auth.SetCaller(c, contract.Caller{Username: "alice@t1.com", TenantDomain: "t1.com"})
			},
			wantLevel: "warning",
			wantField: map[string]any{"caller": "alice@t1.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)

			serveError(tt.err, http.MethodGet, tt.prepare)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "로그 파싱 실패: %s", buf.String())

			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, constants.ComponentErrorHandler, entry["component"])
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, entry["msg"])
			}
			for k, v := range tt.wantField {
				assert.Equal(t, v, entry[k], "필드 %s", k)
			}
		})
	}

	t.Run("익명 요청에는 호출자 필드가 없음", func(t *testing.T) {
		buf := captureLogs(t)

		serveError(echo.ErrUnauthorized, http.MethodGet, nil)

		assert.NotContains(t, buf.String(), `"caller"`)
	})

	t.Run("4xx 미만은 기록하지 않음", func(t *testing.T) {
		buf := captureLogs(t)

		rec := serveError(echo.NewHTTPError(http.StatusFound, "moved"), http.MethodGet, nil)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Zero(t, buf.Len())
	})
}
