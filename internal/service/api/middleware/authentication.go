package middleware

import (
	"strings"

	"github.com/darkkaiser/appdir-server/internal/service/api/auth"
	"github.com/darkkaiser/appdir-server/internal/service/api/constants"
	"github.com/darkkaiser/appdir-server/internal/service/api/httputil"
	"github.com/darkkaiser/appdir-server/internal/service/contract"
	applog "github.com/darkkaiser/appdir-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// Authenticator Bearer 토큰으로 호출자를 식별합니다.
type Authenticator interface {
	Authenticate(token string) (contract.Caller, error)
}

// RequireAuthentication Authorization 헤더의 Bearer 토큰으로 호출자를 인증하는 미들웨어를 반환합니다.
//
// 인증에 성공하면 호출자 정보를 Context에 저장합니다(auth.SetCaller). 토큰이 없거나 유효하지 않으면 401을 반환합니다.
//
//	authMiddleware := middleware.RequireAuthentication(authenticator)
//	e.GET("/api/v1/applications", handler, authMiddleware)
//
// authenticator가 nil이면 panic이 발생합니다.
func RequireAuthentication(authenticator Authenticator) echo.MiddlewareFunc {
	if authenticator == nil {
		panic(constants.PanicMsgAuthenticatorRequired)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return httputil.NewUnauthorizedError(constants.ErrMsgAuthBearerRequired)
			}

			caller, err := authenticator.Authenticate(token)
			if err != nil {
				applog.WithComponentAndFields(constants.ComponentMiddlewareAuthentication, applog.Fields{
					"method":    c.Request().Method,
					"path":      c.Path(),
					"remote_ip": c.RealIP(),
				}).Warn(constants.LogMsgAuthenticationFailed)

				return httputil.FromAppError(err)
			}

			auth.SetCaller(c, caller)

			applog.WithComponentAndFields(constants.ComponentMiddlewareAuthentication, applog.Fields{
				"caller":        caller.Username,
				"tenant_domain": caller.TenantDomain,
			}).Debug(constants.LogMsgAuthenticationSucceeded)

			return next(c)
		}
	}
}

// bearerToken "Bearer <token>" 형식의 헤더 값에서 토큰을 추출합니다. 스킴은 대소문자를 구분하지 않습니다.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, constants.AuthSchemeBearer) {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
