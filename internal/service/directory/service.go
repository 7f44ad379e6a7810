// Package directory 애플리케이션 목록 조회, 삭제, 소유자 변경을 처리하는 애플리케이션 디렉터리 서비스입니다.
//
// 서비스는 입력을 정규화하고 테넌트 접근 규칙을 확인한 뒤 애플리케이션 저장소에 처리를 위임합니다.
// 저장소 결과는 이름순으로 정렬하여 페이지 정보와 함께 반환합니다.
package directory

import (
	"context"
	"sort"
	"strings"

	"github.com/darkkaiser/appdir-server/internal/config"
	apperrors "github.com/darkkaiser/appdir-server/internal/pkg/errors"
	"github.com/darkkaiser/appdir-server/internal/service/contract"
	"github.com/darkkaiser/appdir-server/internal/service/identity"
	applog "github.com/darkkaiser/appdir-server/pkg/log"
	"github.com/darkkaiser/appdir-server/pkg/strutil"
)

const component = "directory.service"

// 운영 지표에 기록되는 작업 이름
const (
	OperationList        = "list"
	OperationDelete      = "delete"
	OperationChangeOwner = "change_owner"
)

// Options 서비스 생성 시 주입되는 동작 설정입니다. 생성 후에는 변경되지 않습니다.
type Options struct {
	Mode           ListMode
	DefaultLimit   int
	DefaultOffset  int
	SuperAdminRole string
}

// NewOptions 디렉터리 설정으로부터 Options를 생성합니다.
func NewOptions(cfg config.DirectoryConfig) Options {
	return Options{
		Mode:           ListModeFrom(cfg.MigrationMode),
		DefaultLimit:   cfg.Pagination.DefaultLimit,
		DefaultOffset:  cfg.Pagination.DefaultOffset,
		SuperAdminRole: cfg.SuperAdminRole,
	}
}

// Recorder 작업 결과를 운영 지표로 기록합니다.
type Recorder interface {
	RecordOperation(operation, result string)
}

// ListRequest 목록 조회 요청입니다. 비어있는 값은 지정되지 않은 것으로 간주합니다.
type ListRequest struct {
	User         string
	Name         string
	TenantDomain string // 마이그레이션 모드에서만 사용
	Limit        *int
	Offset       *int
}

// Pagination 목록 응답의 페이지 정보입니다. Total은 저장소에서 가져온 전체 건수입니다.
type Pagination struct {
	Offset int
	Limit  int
	Total  int
}

// ApplicationList 이름순으로 정렬된 목록 응답입니다.
type ApplicationList struct {
	Count      int
	List       []contract.Application
	Pagination Pagination
}

// Service 애플리케이션 디렉터리 서비스
type Service struct {
	consumers contract.ConsumerFactory
	admin     contract.TenantAdmin
	identity  contract.IdentityResolver

	opts Options

	recorder Recorder
}

// NewService 저장소 협력 객체와 동작 설정으로 디렉터리 서비스를 생성합니다.
//
// 같은 애플리케이션에 대한 동시 요청은 잠그지 않으며 저장소가 보고하는 결과를 그대로 따릅니다.
func NewService(consumers contract.ConsumerFactory, admin contract.TenantAdmin, identity contract.IdentityResolver, opts Options) *Service {
	return &Service{
		consumers: consumers,
		admin:     admin,
		identity:  identity,

		opts: opts,
	}
}

// SetRecorder 작업 결과를 기록할 Recorder를 설정합니다. nil이면 기록하지 않습니다.
func (s *Service) SetRecorder(r Recorder) {
	s.recorder = r
}

// Mode 서비스의 조회 모드를 반환합니다.
func (s *Service) Mode() ListMode {
	return s.opts.Mode
}

// List 애플리케이션 목록을 조회합니다.
//
// 사용자가 지정되지 않으면 호출자 자신을 대상으로 합니다. 테넌트 접근 규칙을 먼저 확인한 뒤 limit/offset을 검사합니다.
// 결과는 이름순으로 정렬되며 List의 길이는 limit을 넘지 않습니다.
func (s *Service) List(ctx context.Context, caller contract.Caller, req ListRequest) (result *ApplicationList, err error) {
	defer func() { s.record(OperationList, err) }()

	user := req.User
	if user == "" {
		user = caller.Username
	}

	tenantDomain, err := s.authorize(caller, req, user)
	if err != nil {
		return nil, err
	}

	limit, offset, err := s.window(req)
	if err != nil {
		return nil, err
	}

	var (
		apps    []contract.Application
		fullSet bool
	)

	if s.opts.Mode == ListModeMigration {
		apps, err = s.listMigration(ctx, tenantDomain, user)
		fullSet = true
	} else {
		apps, fullSet, err = s.listNormal(ctx, req, user, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(apps, func(i, j int) bool { return apps[i].Name < apps[j].Name })

	list := page(apps, limit, offset, fullSet)

	applog.WithComponentAndFields(component, applog.Fields{
		"caller": caller.Username,
		"user":   user,
		"mode":   s.opts.Mode.String(),
		"limit":  limit,
		"offset": offset,
		"total":  len(apps),
		"count":  len(list),
	}).Debug("애플리케이션 목록 조회 완료")

	return &ApplicationList{
		Count: len(list),
		List:  list,
		Pagination: Pagination{
			Offset: offset,
			Limit:  limit,
			Total:  len(apps),
		},
	}, nil
}

// authorize 조회 모드별 테넌트 접근 규칙을 확인하고 조회 대상 테넌트 도메인을 반환합니다.
func (s *Service) authorize(caller contract.Caller, req ListRequest, user string) (string, error) {
	switch s.opts.Mode {
	case ListModeNormal:
		tenantDomain := s.identity.TenantDomainOf(user)
		if tenantDomain != caller.TenantDomain {
			applog.WithComponentAndFields(component, applog.Fields{
				"caller":        caller.Username,
				"caller_tenant": caller.TenantDomain,
				"user":          user,
			}).Error("다른 테넌트 사용자의 애플리케이션 목록 조회 요청이 거부되었습니다")

			return "", newErrCrossTenantUser(user)
		}
		return tenantDomain, nil

	case ListModeMigration:
		tenantDomain := req.TenantDomain
		if tenantDomain == "" {
			tenantDomain = s.identity.TenantDomainOf(user)
		}

		if err := identity.AuthorizeMigrationAccess(caller, tenantDomain, s.opts.SuperAdminRole); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"caller":        caller.Username,
				"caller_tenant": caller.TenantDomain,
				"tenant_domain": tenantDomain,
			}).Error("테넌트 간 리소스 접근이 허용되지 않습니다")

			return "", err
		}
		return tenantDomain, nil

	default:
		return "", newErrUnreachable(s.opts.Mode)
	}
}

func (s *Service) listNormal(ctx context.Context, req ListRequest, user string, limit, offset int) ([]contract.Application, bool, error) {
	consumer, err := s.consumers.ConsumerFor(ctx, user)
	if err != nil {
		return nil, false, newErrListFailed(err, user)
	}

	var apps []contract.Application

	switch {
	case req.User == "" && req.Name == "":
		apps, err = s.admin.ApplicationsByTenantID(ctx, s.identity.TenantIDOf(user), contract.ListQuery{
			Offset:     0,
			Limit:      limit,
			SortColumn: contract.SortByName,
			SortOrder:  contract.SortAscending,
		})
		if err != nil {
			return nil, false, newErrListFailed(err, user)
		}
		return apps, false, nil

	case req.Name == "":
		apps, err = consumer.ApplicationsByOwner(ctx, user)
		if err != nil {
			return nil, false, newErrListFailed(err, user)
		}
		return apps, true, nil

	default:
		subscriber := contract.Subscriber{Name: user, TenantID: s.identity.TenantIDOf(user)}
		apps, err = consumer.ApplicationsWithPagination(ctx, subscriber, "", contract.ListQuery{
			Offset:     offset,
			Limit:      limit,
			Name:       req.Name,
			SortColumn: contract.SortByName,
			SortOrder:  contract.SortAscending,
		})
		if err != nil {
			return nil, false, newErrListFailed(err, user)
		}
		return apps, false, nil
	}
}

func (s *Service) listMigration(ctx context.Context, tenantDomain, user string) ([]contract.Application, error) {
	apps, err := s.admin.AllApplicationsOfTenantForMigration(ctx, tenantDomain)
	if err != nil {
		return nil, newErrListFailed(err, user)
	}
	return apps, nil
}

// window 요청의 limit/offset을 기본값으로 보완하고 범위를 검사합니다.
func (s *Service) window(req ListRequest) (limit, offset int, err error) {
	limit, offset = s.opts.DefaultLimit, s.opts.DefaultOffset
	if req.Limit != nil {
		limit = *req.Limit
	}
	if req.Offset != nil {
		offset = *req.Offset
	}

	if limit < 1 {
		return 0, 0, newErrInvalidLimit(limit)
	}
	if offset < 0 {
		return 0, 0, newErrInvalidOffset(offset)
	}
	return limit, offset, nil
}

// page 정렬된 결과에서 응답에 담을 구간을 잘라냅니다.
// 저장소가 이미 구간을 적용한 결과는 앞에서부터 limit개, 전체 집합은 [offset, offset+limit) 구간을 반환합니다.
func page(apps []contract.Application, limit, offset int, fullSet bool) []contract.Application {
	start := 0
	if fullSet {
		start = offset
	}
	if start >= len(apps) {
		return []contract.Application{}
	}

	end := start + limit
	if end > len(apps) {
		end = len(apps)
	}

	out := make([]contract.Application, end-start)
	copy(out, apps[start:end])
	return out
}

// Delete 애플리케이션을 삭제합니다. 삭제는 애플리케이션에 기록된 소유자의 권한으로 수행됩니다.
//
// ifMatch는 기록만 하고 평가하지 않습니다.
func (s *Service) Delete(ctx context.Context, caller contract.Caller, applicationID, ifMatch string) (err error) {
	defer func() { s.record(OperationDelete, err) }()

	if strutil.IsBlank(applicationID) {
		return ErrApplicationIDRequired
	}

	fields := applog.Fields{
		"caller":         caller.Username,
		"application_id": applicationID,
	}
	if ifMatch != "" {
		fields["if_match"] = ifMatch
	}

	consumer, err := s.consumers.ConsumerFor(ctx, caller.Username)
	if err != nil {
		return newErrDeleteFailed(err, applicationID)
	}

	app, err := consumer.ApplicationByUUID(ctx, applicationID)
	if err != nil {
		return newErrDeleteFailed(err, applicationID)
	}
	if app == nil {
		applog.WithComponentAndFields(component, fields).Warn("삭제할 애플리케이션을 찾을 수 없습니다")

		return newErrApplicationNotFound(applicationID)
	}

	if err := consumer.RemoveApplication(ctx, app, app.Owner); err != nil {
		// 조회와 삭제 사이에 다른 요청이 먼저 삭제한 경우
		if apperrors.Is(err, apperrors.NotFound) {
			applog.WithComponentAndFields(component, fields).Warn("삭제할 애플리케이션이 이미 삭제되었습니다")

			return newErrApplicationNotFound(applicationID)
		}
		return newErrDeleteFailed(err, applicationID)
	}

	fields["owner"] = app.Owner
	applog.WithComponentAndFields(component, fields).Info("애플리케이션 삭제 완료")

	return nil
}

// ChangeOwner 애플리케이션의 소유자를 변경합니다.
//
// 저장소 컨텍스트는 새 소유자 기준으로 생성되며, 호출자의 권한은 확인하지 않습니다.
func (s *Service) ChangeOwner(ctx context.Context, applicationID, owner string) (err error) {
	defer func() { s.record(OperationChangeOwner, err) }()

	if strutil.IsBlank(owner) {
		return ErrOwnerRequired
	}
	if strutil.IsBlank(applicationID) {
		return ErrApplicationIDRequired
	}

	consumer, err := s.consumers.ConsumerFor(ctx, owner)
	if err != nil {
		return newErrChangeOwnerFailed(err, applicationID, owner)
	}

	app, err := consumer.ApplicationByUUID(ctx, applicationID)
	if err != nil {
		return newErrChangeOwnerFailed(err, applicationID, owner)
	}
	if app == nil {
		return newErrChangeOwnerFailed(newErrApplicationNotFound(applicationID), applicationID, owner)
	}

	updated, err := consumer.UpdateApplicationOwner(ctx, owner, app)
	if err != nil {
		return newErrChangeOwnerFailed(err, applicationID, owner)
	}
	if !updated {
		return newErrChangeOwnerFailed(nil, applicationID, owner)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"application_id": applicationID,
		"previous_owner": app.Owner,
		"owner":          owner,
	}).Info("애플리케이션 소유자 변경 완료")

	return nil
}

func (s *Service) record(operation string, err error) {
	if s.recorder == nil {
		return
	}

	result := "success"
	if err != nil {
		result = strings.ToLower(apperrors.TypeOf(err).String())
	}
	s.recorder.RecordOperation(operation, result)
}
