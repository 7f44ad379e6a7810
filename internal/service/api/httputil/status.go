package httputil

import (
	"net/http"

	apperrors "github.com/darkkaiser/appdir-server/internal/pkg/errors"
	"github.com/darkkaiser/appdir-server/internal/service/api/constants"
	"github.com/labstack/echo/v4"
)

// StatusCodeOf 에러 체인의 가장 바깥쪽 분류에 대응하는 HTTP 상태 코드를 반환합니다.
func StatusCodeOf(err error) int {
	switch apperrors.TypeOf(err) {
	case apperrors.InvalidInput:
		return http.StatusBadRequest
	case apperrors.Unauthorized:
		return http.StatusUnauthorized
	case apperrors.Forbidden:
		return http.StatusForbidden
	case apperrors.NotFound:
		return http.StatusNotFound
	case apperrors.Unavailable:
		return http.StatusServiceUnavailable
	case apperrors.Timeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// FromAppError 서비스 계층의 에러를 응답용 HTTP 에러로 변환합니다.
//
// 5xx 응답에는 내부 원인을 노출하지 않고 일반 메시지를 사용합니다. 원본 에러는 로깅을 위해 Internal에 보존됩니다.
func FromAppError(err error) error {
	if err == nil {
		return nil
	}

	code := StatusCodeOf(err)

	message := apperrors.MessageOf(err)
	if code >= http.StatusInternalServerError || message == "" {
		message = http.StatusText(code)
		if code == http.StatusInternalServerError {
			message = constants.ErrMsgInternalServer
		}
	}

	he := newHTTPError(code, message).(*echo.HTTPError)
	return he.SetInternal(err)
}
