// Package system 시스템 엔드포인트 핸들러를 제공합니다.
//
// 헬스체크, 버전 정보 등 인증이 필요 없는 시스템 수준의 API를 처리합니다.
package system

import (
	"context"
	"net/http"
	"time"

	"github.com/darkkaiser/appdir-server/internal/pkg/version"
	"github.com/darkkaiser/appdir-server/internal/service/api/constants"
	"github.com/darkkaiser/appdir-server/internal/service/api/model/system"
	applog "github.com/darkkaiser/appdir-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// healthCheckTimeout 저장소 상태 확인의 최대 대기 시간
const healthCheckTimeout = 2 * time.Second

// HealthChecker 애플리케이션 저장소의 상태를 확인합니다.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handler 시스템 엔드포인트 핸들러 (헬스체크, 버전 정보)
type Handler struct {
	healthChecker HealthChecker

	mode      string
	buildInfo version.Info

	serverStartTime time.Time
}

// New Handler 인스턴스를 생성합니다. mode는 헬스체크 응답에 표시할 목록 조회 모드입니다.
func New(healthChecker HealthChecker, mode string, buildInfo version.Info) *Handler {
	if healthChecker == nil {
		panic(constants.PanicMsgHealthCheckerRequired)
	}

	return &Handler{
		healthChecker: healthChecker,

		mode:      mode,
		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 서버와 애플리케이션 저장소의 상태를 확인합니다.
// @Description 인증 없이 호출 가능하며, 모니터링 시스템에서 사용됩니다.
// @Description
// @Description 응답 필드:
// @Description - status: 전체 서버 상태 (healthy, unhealthy)
// @Description - uptime: 서버 가동 시간(초)
// @Description - mode: 애플리케이션 목록 조회 모드 (normal, migration)
// @Description - dependencies: 외부 의존성별 상태 (application_store)
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "헬스체크 결과"
// @Failure 503 {object} system.HealthResponse "저장소 연결 실패"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgHealthCheck)

	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	start := time.Now()
	err := h.healthChecker.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	dep := system.DependencyStatus{
		Status:    constants.HealthStatusHealthy,
		LatencyMs: latency,
		Message:   constants.MsgDepStatusHealthy,
	}
	if err != nil {
		dep.Status = constants.HealthStatusUnhealthy
		dep.Message = err.Error()
	}

	status, code := constants.HealthStatusHealthy, http.StatusOK
	if dep.Status != constants.HealthStatusHealthy {
		status, code = constants.HealthStatusUnhealthy, http.StatusServiceUnavailable
	}

	return c.JSON(code, system.HealthResponse{
		Status: status,
		Uptime: int64(time.Since(h.serverStartTime).Seconds()),
		Mode:   h.mode,
		Dependencies: map[string]system.DependencyStatus{
			constants.DependencyApplicationStore: dep,
		},
	})
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 서버의 버전, Git 커밋 해시, 빌드 날짜, 빌드 번호, Go 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "버전 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/version",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgVersionInfo)

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		Commit:      h.buildInfo.Commit,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   h.buildInfo.GoVersion,
	})
}
