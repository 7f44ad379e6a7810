package api

import (
	"net/http"
	"time"

	"github.com/darkkaiser/appdir-server/internal/service/api/constants"
	"github.com/darkkaiser/appdir-server/internal/service/api/httputil"
	"github.com/darkkaiser/appdir-server/internal/service/api/metrics"
	appmiddleware "github.com/darkkaiser/appdir-server/internal/service/api/middleware"
	applog "github.com/darkkaiser/appdir-server/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// AllowOrigins CORS에서 허용할 Origin 목록
	AllowOrigins []string

	// RequestTimeout 각 HTTP 요청의 최대 처리 시간 (0이면 기본값 30초)
	RequestTimeout time.Duration

	// Metrics 요청 지표를 수집할 Prometheus 수집기 (nil이면 수집하지 않음)
	Metrics *metrics.Metrics
}

// NewHTTPServer 설정된 미들웨어를 포함한 Echo 인스턴스를 생성합니다.
//
// 미들웨어는 다음 순서로 적용됩니다:
//
//  1. PanicRecovery - 핸들러와 이후 미들웨어의 panic을 복구하고 스택 트레이스를 로깅
//  2. RequestID - 요청마다 X-Request-ID를 부여 (로그의 request_id)
//  3. Server 헤더 제거 - 기술 스택 노출 방지
//  4. HTTPLogger - 요청/응답 로깅 (토큰 등 민감한 쿼리 파라미터는 마스킹)
//  5. Metrics - 요청 수와 처리 시간 수집 (429/503 응답도 집계)
//  6. RateLimit - IP별 요청 속도 제한 (기본 20 req/s, 버스트 40)
//  7. BodyLimit - 요청 본문 크기 제한 (초과 시 413)
//  8. Timeout - 요청 처리 시간 제한 (초과 시 503)
//  9. CORS - 허용된 Origin의 크로스 도메인 요청 처리
//  10. Secure - 보안 헤더 추가
//
// 라우트는 포함되지 않으며, 반환된 Echo 인스턴스에 별도로 등록해야 합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	// Echo 내부 로그를 애플리케이션 로거로 통합합니다.
	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}

	e.HTTPErrorHandler = httputil.ErrorHandler

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = constants.DefaultRequestTimeout
	}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	if cfg.Metrics != nil {
		e.Use(cfg.Metrics.Middleware())
	}
	e.Use(appmiddleware.RateLimit(constants.DefaultRateLimitPerSecond, constants.DefaultRateLimitBurst))
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout:      timeout,
		ErrorMessage: constants.ErrMsgServiceUnavailable,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, constants.HeaderIfMatch},
	}))
	e.Use(middleware.Secure())

	return e
}
