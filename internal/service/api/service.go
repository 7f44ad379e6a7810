package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	_ "github.com/darkkaiser/appdir-server/docs"
	"github.com/darkkaiser/appdir-server/internal/config"
	"github.com/darkkaiser/appdir-server/internal/pkg/version"
	apiauth "github.com/darkkaiser/appdir-server/internal/service/api/auth"
	"github.com/darkkaiser/appdir-server/internal/service/api/constants"
	"github.com/darkkaiser/appdir-server/internal/service/api/handler/system"
	"github.com/darkkaiser/appdir-server/internal/service/api/metrics"
	v1 "github.com/darkkaiser/appdir-server/internal/service/api/v1"
	v1handler "github.com/darkkaiser/appdir-server/internal/service/api/v1/handler"
	"github.com/darkkaiser/appdir-server/internal/service/directory"
	applog "github.com/darkkaiser/appdir-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// Service 애플리케이션 디렉터리 API 서버의 생명주기를 관리하는 서비스입니다.
//
// Start()로 시작하면 고루틴에서 HTTP/HTTPS 서버를 실행하고, context가 취소되면
// 진행 중인 요청을 마무리한 뒤(최대 5초) 서버를 종료합니다.
type Service struct {
	appConfig *config.AppConfig

	directoryService *directory.Service
	healthChecker    system.HealthChecker
	metrics          *metrics.Metrics

	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다. m이 nil이면 운영 지표를 수집하지 않습니다.
func NewService(appConfig *config.AppConfig, directoryService *directory.Service, healthChecker system.HealthChecker, buildInfo version.Info, m *metrics.Metrics) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}
	if directoryService == nil {
		panic(constants.PanicMsgDirectoryServiceRequired)
	}
	if healthChecker == nil {
		panic(constants.PanicMsgHealthCheckerRequired)
	}

	return &Service{
		appConfig: appConfig,

		directoryService: directoryService,
		healthChecker:    healthChecker,
		metrics:          m,

		buildInfo: buildInfo,
	}
}

// Start API 서비스를 시작합니다.
//
// 이 함수는 즉시 반환되며, 서버는 고루틴에서 실행됩니다. 서버가 완전히 종료되면
// serviceStopWG.Done()이 호출됩니다. 이미 실행 중이면 경고만 남기고 nil을 반환합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer 인증기, 핸들러, 미들웨어 체인, 라우트를 구성한 Echo 인스턴스를 생성합니다.
func (s *Service) setupServer() *echo.Echo {
	authenticator := apiauth.NewAuthenticator(s.appConfig.AdminAPI.Auth)

	systemHandler := system.New(s.healthChecker, s.directoryService.Mode().String(), s.buildInfo)
	v1Handler := v1handler.NewHandler(s.directoryService)

	e := NewHTTPServer(HTTPServerConfig{
		Debug:        s.appConfig.Debug,
		AllowOrigins: s.appConfig.AdminAPI.CORS.AllowOrigins,
		Metrics:      s.metrics,
	})

	RegisterRoutes(e, systemHandler, s.metrics)
	v1.RegisterRoutes(e, v1Handler, authenticator)

	return e
}

// startHTTPServer 설정에 따라 HTTP 또는 HTTPS 서버를 시작합니다. 서버가 종료되면 done을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	ws := s.appConfig.AdminAPI.WS
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": ws.ListenPort,
		"tls":  ws.TLSServer,
	}).Debug(constants.LogMsgServiceHTTPServerStarting)

	var err error
	if ws.TLSServer {
		err = e.StartTLS(fmt.Sprintf(":%d", ws.ListenPort), ws.TLSCertFile, ws.TLSKeyFile)
	} else {
		err = e.Start(fmt.Sprintf(":%d", ws.ListenPort))
	}

	s.handleServerError(err)
}

func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceHTTPServerStopped)
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.AdminAPI.WS.ListenPort,
		"error": err,
	}).Error(constants.LogMsgServiceHTTPServerFatalError)
}

// waitForShutdown 종료 신호 또는 서버의 조기 종료를 기다린 뒤 서버를 정리합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)
	case <-httpServerDone:
		// 포트 바인딩 실패 등으로 이미 종료되었으므로 Shutdown 없이 상태만 정리합니다.
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)

		s.cleanup()

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServiceHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
