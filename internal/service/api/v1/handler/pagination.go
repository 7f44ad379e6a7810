package handler

import (
	"net/url"
	"strconv"

	"github.com/darkkaiser/appdir-server/internal/service/api/constants"
	"github.com/darkkaiser/appdir-server/internal/service/api/v1/model/request"
	"github.com/darkkaiser/appdir-server/internal/service/api/model/response"
	"github.com/darkkaiser/appdir-server/internal/service/contract"
	"github.com/darkkaiser/appdir-server/internal/service/directory"
)

// ApplicationsPath 목록 조회 엔드포인트 경로. 페이지 링크의 기준 경로로도 사용합니다.
const ApplicationsPath = "/api/v1/applications"

func newApplicationListResponse(result *directory.ApplicationList, req request.ListApplicationsRequest) response.ApplicationListResponse {
	list := make([]response.ApplicationInfo, 0, len(result.List))
	for _, app := range result.List {
		list = append(list, newApplicationInfo(app))
	}

	p := result.Pagination
	previous, next := paginationLinks(req, p.Limit, p.Offset, p.Total)

	return response.ApplicationListResponse{
		Count: len(list),
		List:  list,
		Pagination: response.PaginationInfo{
			Offset:   p.Offset,
			Limit:    p.Limit,
			Total:    p.Total,
			Next:     next,
			Previous: previous,
		},
	}
}

func newApplicationInfo(app contract.Application) response.ApplicationInfo {
	return response.ApplicationInfo{
		ApplicationID:    app.UUID,
		Name:             app.Name,
		Owner:            app.Owner,
		Status:           app.Status,
		GroupID:          app.GroupID,
		ThrottlingPolicy: app.ThrottlingPolicy,
	}
}

// paginationLinks 이전/다음 페이지 요청 경로를 만듭니다. 해당 페이지가 없으면 빈 문자열을 반환합니다.
func paginationLinks(req request.ListApplicationsRequest, limit, offset, total int) (previous, next string) {
	if limit <= 0 {
		return "", ""
	}

	if offset > 0 {
		previous = pageLink(req, limit, max(0, offset-limit))
	}
	if offset+limit < total {
		next = pageLink(req, limit, offset+limit)
	}
	return previous, next
}

func pageLink(req request.ListApplicationsRequest, limit, offset int) string {
	q := url.Values{}
	q.Set(constants.QueryParamLimit, strconv.Itoa(limit))
	q.Set(constants.QueryParamOffset, strconv.Itoa(offset))
	if req.User != "" {
		q.Set(constants.QueryParamUser, req.User)
	}
	if req.Name != "" {
		q.Set(constants.QueryParamName, req.Name)
	}
	if req.TenantDomain != "" {
		q.Set(constants.QueryParamTenantDomain, req.TenantDomain)
	}

	return ApplicationsPath + "?" + q.Encode()
}
