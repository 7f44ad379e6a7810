// Package v1 애플리케이션 디렉터리 API의 v1 라우트를 정의합니다.
//
// 주요 엔드포인트:
//   - GET    /api/v1/applications                              - 애플리케이션 목록 조회
//   - DELETE /api/v1/applications/:applicationId               - 애플리케이션 삭제
//   - POST   /api/v1/applications/:applicationId/change-owner  - 소유자 변경
//
// 모든 엔드포인트는 Bearer 토큰 인증을 요구합니다.
package v1

import (
	"github.com/darkkaiser/appdir-server/internal/service/api/middleware"
	"github.com/darkkaiser/appdir-server/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes Echo 인스턴스에 v1 API 라우트를 등록합니다.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, authenticator middleware.Authenticator) {
	v1Group := e.Group("/api/v1", middleware.RequireAuthentication(authenticator))

	v1Group.GET("/applications", h.ListApplicationsHandler)
	v1Group.DELETE("/applications/:applicationId", h.DeleteApplicationHandler)
	v1Group.POST("/applications/:applicationId/change-owner", h.ChangeOwnerHandler)
}
