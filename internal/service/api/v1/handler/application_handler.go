package handler

import (
	"net/http"
	"strings"

	"github.com/darkkaiser/appdir-server/internal/pkg/validator"
	"github.com/darkkaiser/appdir-server/internal/service/api/auth"
	"github.com/darkkaiser/appdir-server/internal/service/api/constants"
	"github.com/darkkaiser/appdir-server/internal/service/api/httputil"
	"github.com/darkkaiser/appdir-server/internal/service/api/v1/model/request"
	"github.com/darkkaiser/appdir-server/internal/service/directory"
	applog "github.com/darkkaiser/appdir-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// ListApplicationsHandler godoc
// @Summary      애플리케이션 목록 조회
// @Description  호출자 또는 지정한 사용자의 애플리케이션 목록을 이름순으로 반환합니다.
// @Description
// @Description  user를 생략하면 호출자 본인을 대상으로 합니다. 호출자와 다른 테넌트의 사용자는 조회할 수 없습니다.
// @Description  마이그레이션 모드에서는 tenantDomain의 전체 애플리케이션을 반환하며,
// @Description  다른 테넌트 조회는 슈퍼 테넌트의 관리자만 가능합니다.
// @Tags         Applications
// @Produce      json
// @Security     BearerAuth
// @Param        user          query  string  false  "조회 대상 사용자"         example(alice@t1.com)
// @Param        name          query  string  false  "이름 검색어 (부분 일치)"  example(mobile)
// @Param        tenantDomain  query  string  false  "테넌트 도메인 (마이그레이션 모드)"  example(t1.com)
// @Param        limit         query  int     false  "최대 조회 개수"          minimum(1)
// @Param        offset        query  int     false  "조회 시작 위치"          minimum(0)
// @Success      200  {object}  response.ApplicationListResponse
// @Failure      400  {object}  response.ErrorResponse  "잘못된 요청"
// @Failure      401  {object}  response.ErrorResponse  "인증 실패"
// @Failure      403  {object}  response.ErrorResponse  "다른 테넌트 접근"
// @Failure      429  {object}  response.ErrorResponse  "요청 한도 초과"
// @Failure      500  {object}  response.ErrorResponse  "서버 내부 오류"
// @Router       /api/v1/applications [get]
func (h *Handler) ListApplicationsHandler(c echo.Context) error {
	caller := auth.MustGetCaller(c)

	req, err := bindListRequest(c)
	if err != nil {
		h.log(c).WithError(err).Warn("쿼리 파라미터 해석 실패")

		return NewErrInvalidQuery()
	}
	if err := validator.Struct(req); err != nil {
		return NewErrValidationFailed(validator.FormatValidationError(err))
	}

	result, err := h.service.List(c.Request().Context(), caller, directory.ListRequest{
		User:         req.User,
		Name:         req.Name,
		TenantDomain: req.TenantDomain,
		Limit:        req.Limit,
		Offset:       req.Offset,
	})
	if err != nil {
		return httputil.FromAppError(err)
	}

	return c.JSON(http.StatusOK, newApplicationListResponse(result, req))
}

// DeleteApplicationHandler godoc
// @Summary      애플리케이션 삭제
// @Description  애플리케이션을 삭제합니다. 삭제는 애플리케이션에 기록된 소유자의 권한으로 수행됩니다.
// @Description  If-Match 헤더는 기록만 하고 평가하지 않습니다.
// @Tags         Applications
// @Produce      json
// @Security     BearerAuth
// @Param        applicationId  path    string  true   "애플리케이션 ID"
// @Param        If-Match       header  string  false  "엔티티 태그 (평가하지 않음)"
// @Success      200  {object}  response.SuccessResponse
// @Failure      401  {object}  response.ErrorResponse  "인증 실패"
// @Failure      404  {object}  response.ErrorResponse  "애플리케이션 없음"
// @Failure      500  {object}  response.ErrorResponse  "서버 내부 오류"
// @Router       /api/v1/applications/{applicationId} [delete]
func (h *Handler) DeleteApplicationHandler(c echo.Context) error {
	caller := auth.MustGetCaller(c)

	applicationID := c.Param(constants.PathParamApplicationID)
	ifMatch := c.Request().Header.Get(constants.HeaderIfMatch)

	if err := h.service.Delete(c.Request().Context(), caller, applicationID, ifMatch); err != nil {
		return httputil.FromAppError(err)
	}

	return httputil.Success(c, constants.MsgApplicationDeleted)
}

// ChangeOwnerHandler godoc
// @Summary      애플리케이션 소유자 변경
// @Description  애플리케이션의 소유자를 owner로 변경합니다.
// @Description  호출자의 권한은 확인하지 않습니다. 인증된 호출자는 누구나 소유자를 변경할 수 있습니다.
// @Tags         Applications
// @Produce      json
// @Security     BearerAuth
// @Param        applicationId  path   string  true  "애플리케이션 ID"
// @Param        owner          query  string  true  "새 소유자"  example(bob@t1.com)
// @Success      200  {object}  response.SuccessResponse
// @Failure      400  {object}  response.ErrorResponse  "새 소유자 누락"
// @Failure      401  {object}  response.ErrorResponse  "인증 실패"
// @Failure      500  {object}  response.ErrorResponse  "소유자 변경 실패"
// @Router       /api/v1/applications/{applicationId}/change-owner [post]
func (h *Handler) ChangeOwnerHandler(c echo.Context) error {
	caller := auth.MustGetCaller(c)

	req := request.ChangeOwnerRequest{
		ApplicationID: c.Param(constants.PathParamApplicationID),
		Owner:         strings.TrimSpace(c.QueryParam(constants.QueryParamOwner)),
	}
	if err := validator.Struct(req); err != nil {
		return NewErrValidationFailed(validator.FormatValidationError(err))
	}

	if err := h.service.ChangeOwner(c.Request().Context(), req.ApplicationID, req.Owner); err != nil {
		return httputil.FromAppError(err)
	}

	h.log(c).WithFields(applog.Fields{
		"caller":         caller.Username,
		"application_id": req.ApplicationID,
		"owner":          req.Owner,
	}).Info("소유자 변경 요청 처리 완료")

	return httputil.Success(c, constants.MsgApplicationOwnerChanged)
}

// bindListRequest 쿼리 파라미터를 바인딩합니다. 값이 비어있는 limit, offset은 지정되지 않은 것으로 간주합니다.
func bindListRequest(c echo.Context) (request.ListApplicationsRequest, error) {
	var (
		req           request.ListApplicationsRequest
		limit, offset int
	)

	err := echo.QueryParamsBinder(c).
		String(constants.QueryParamUser, &req.User).
		String(constants.QueryParamName, &req.Name).
		String(constants.QueryParamTenantDomain, &req.TenantDomain).
		Int(constants.QueryParamLimit, &limit).
		Int(constants.QueryParamOffset, &offset).
		BindError()
	if err != nil {
		return req, err
	}

	if c.QueryParam(constants.QueryParamLimit) != "" {
		req.Limit = &limit
	}
	if c.QueryParam(constants.QueryParamOffset) != "" {
		req.Offset = &offset
	}

	return req, nil
}
