package middleware

import (
	"net/url"
	"strconv"
	"time"

	"github.com/darkkaiser/appdir-server/internal/service/api/auth"
	"github.com/darkkaiser/appdir-server/internal/service/api/constants"
	applog "github.com/darkkaiser/appdir-server/pkg/log"
	"github.com/darkkaiser/appdir-server/pkg/strutil"
	"github.com/labstack/echo/v4"
)

// defaultBytesIn Content-Length 헤더가 없을 때 bytes_in 필드에 기록할 값
const defaultBytesIn = "0"

// HTTPLogger HTTP 요청/응답을 구조화된 로그로 기록하는 미들웨어를 반환합니다.
//
// 요청 정보와 응답 상태, 처리 시간, Request ID를 기록하며 인증된 요청이면 호출자 사용자명을 함께 남깁니다.
// 토큰 같은 민감한 쿼리 파라미터는 마스킹됩니다.
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// panic이 발생해도 로그가 남도록 defer로 기록합니다.
			defer func() {
				logRequest(c, start)
			}()

			if err := next(c); err != nil {
				c.Error(err)
			}

			return nil
		}
	}
}

func logRequest(c echo.Context, start time.Time) {
	req := c.Request()
	res := c.Response()

	stop := time.Now()
	latency := stop.Sub(start)

	path := req.URL.Path
	if path == "" {
		path = "/"
	}

	bytesIn := req.Header.Get(echo.HeaderContentLength)
	if bytesIn == "" {
		bytesIn = defaultBytesIn
	}

	fields := applog.Fields{
		"time_rfc3339": stop.Format(time.RFC3339),

		"method":   req.Method,
		"path":     path,
		"uri":      maskSensitiveQueryParams(req.RequestURI),
		"host":     req.Host,
		"protocol": req.Proto,

		"remote_ip":  c.RealIP(),
		"user_agent": req.UserAgent(),
		"referer":    req.Referer(),

		"status":    res.Status,
		"bytes_in":  bytesIn,
		"bytes_out": strconv.FormatInt(res.Size, 10),

		"latency":       strconv.FormatInt(latency.Microseconds(), 10),
		"latency_human": latency.String(),

		"request_id": res.Header().Get(echo.HeaderXRequestID),
	}
	if caller, ok := auth.GetCaller(c); ok {
		fields["caller"] = caller.Username
	}

	applog.WithComponentAndFields(constants.ComponentMiddlewareHTTPLogger, fields).Info(constants.LogMsgHTTPRequest)
}

// maskSensitiveQueryParams URI의 민감한 쿼리 파라미터 값을 가립니다. 파싱에 실패하면 원본을 반환합니다.
//
//	"/api/v1/applications?access_token=eyJhbGciOiJIUzI1NiJ9&limit=10"
//	-> "/api/v1/applications?access_token=eyJh%2A%2A%2ANiJ9&limit=10"
func maskSensitiveQueryParams(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	q := u.Query()
	masked := false

	for _, param := range constants.SensitiveQueryParams {
		if q.Has(param) {
			q.Set(param, strutil.Mask(q.Get(param)))
			masked = true
		}
	}

	if !masked {
		return uri
	}

	u.RawQuery = q.Encode()
	return u.String()
}
