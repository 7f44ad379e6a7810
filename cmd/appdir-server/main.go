package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/appdir-server/internal/config"
	"github.com/darkkaiser/appdir-server/internal/pkg/version"
	"github.com/darkkaiser/appdir-server/internal/service/api"
	"github.com/darkkaiser/appdir-server/internal/service/api/metrics"
	"github.com/darkkaiser/appdir-server/internal/service/directory"
	"github.com/darkkaiser/appdir-server/internal/service/identity"
	"github.com/darkkaiser/appdir-server/internal/service/store"
	applog "github.com/darkkaiser/appdir-server/pkg/log"
)

// @title Application Directory API
// @version 1.0.0
// @description API 관리 플랫폼의 애플리케이션 디렉터리 관리 API입니다.
// @description
// @description ## 주요 기능
// @description - 애플리케이션 목록 조회 (테넌트/사용자/이름 조건, 페이지 단위)
// @description - 애플리케이션 삭제
// @description - 애플리케이션 소유자 변경
// @description
// @description ## 인증 방법
// @description 모든 /api/v1 엔드포인트는 HS256으로 서명된 Bearer 토큰을 요구합니다.
// @description 토큰의 sub 클레임은 "사용자@테넌트도메인" 형식의 사용자명이며,
// @description 역할 목록은 설정의 admin_api.auth.roles_claim 클레임(기본값 roles)에서 읽습니다.

// @contact.name DarkKaiser
// @contact.url https://github.com/DarkKaiser

// @license.name MIT

// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Bearer {token}" 형식의 JWT

const (
	component = "main"

	banner = `
     _                    _ _
    / \   _ __  _ __   __| (_)_ __
   / _ \ | '_ \| '_ \ / _' | | '__|
  / ___ \| |_) | |_) | (_| | | |
 /_/   \_\ .__/| .__/ \__,_|_|_|
         |_|   |_|                %s
                                  developed by DarkKaiser
--------------------------------------------------------------------------------
`
)

// service main이 시작하고 종료를 기다리는 장기 실행 서비스입니다.
type service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	logOpts := applog.NewProductionOptions(config.AppName)
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	applog.SetDebugMode(appConfig.Debug)

	buildInfo := version.Get()
	fmt.Printf(banner, buildInfo.Version)

	startFields := applog.Fields(buildInfo.ToMap())
	startFields["env"] = map[bool]string{true: "development", false: "production"}[appConfig.Debug]
	applog.WithComponentAndFields(component, startFields).Info("서버 초기화 시작")

	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent(component).Warn(warning)
	}

	if err := run(appConfig, buildInfo); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Error("서버 구동 실패")

		appLogCloser.Close()
		os.Exit(1)
	}
}

// run 서비스를 구성하여 시작하고, 종료 신호를 받으면 모든 서비스가 멈출 때까지 기다립니다.
func run(appConfig *config.AppConfig, buildInfo version.Info) error {
	serviceStopCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resolver := identity.NewResolver(appConfig.TenantIDs())

	appStore, err := store.New(serviceStopCtx, appConfig.Store, resolver)
	if err != nil {
		return err
	}
	defer closeStore(appStore)

	m := metrics.New()

	directoryService := directory.NewService(appStore, appStore, resolver, directory.NewOptions(appConfig.Directory))
	directoryService.SetRecorder(m)

	apiService := api.NewService(appConfig, directoryService, appStore, buildInfo, m)

	serviceStopWG := &sync.WaitGroup{}

	for _, s := range []service{apiService} {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			cancel()
			serviceStopWG.Wait()

			return err
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(termC)

	applog.WithComponentAndFields(component, applog.Fields{
		"port": appConfig.AdminAPI.WS.ListenPort,
		"mode": directoryService.Mode().String(),
	}).Info("서버 가동 완료")

	<-termC

	applog.WithComponent(component).Info("종료 신호 수신")

	cancel()
	serviceStopWG.Wait()

	return nil
}

func closeStore(c io.Closer) {
	if err := c.Close(); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Error("애플리케이션 저장소 종료 실패")
	}
}
