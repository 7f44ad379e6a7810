// Package handler v1 API의 HTTP 요청 핸들러를 제공합니다.
//
// 핸들러는 요청을 바인딩하고 검증한 뒤 애플리케이션 디렉터리 서비스를 호출하고,
// 서비스 에러를 HTTP 상태 코드로 변환하여 응답합니다.
package handler

import (
	"context"

	"github.com/darkkaiser/appdir-server/internal/service/api/constants"
	"github.com/darkkaiser/appdir-server/internal/service/contract"
	"github.com/darkkaiser/appdir-server/internal/service/directory"
	applog "github.com/darkkaiser/appdir-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// DirectoryService 핸들러가 사용하는 애플리케이션 디렉터리 서비스의 동작입니다.
type DirectoryService interface {
	List(ctx context.Context, caller contract.Caller, req directory.ListRequest) (*directory.ApplicationList, error)
	Delete(ctx context.Context, caller contract.Caller, applicationID, ifMatch string) error
	ChangeOwner(ctx context.Context, applicationID, owner string) error
}

var _ DirectoryService = (*directory.Service)(nil)

// Handler v1 API 요청을 처리하는 핸들러입니다.
type Handler struct {
	service DirectoryService
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(service DirectoryService) *Handler {
	if service == nil {
		panic(constants.PanicMsgDirectoryServiceRequired)
	}

	return &Handler{
		service: service,
	}
}

func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  c.Path(),
		"remote_ip": c.RealIP(),
	})
}
