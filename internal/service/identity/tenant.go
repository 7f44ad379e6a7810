// Package identity 사용자명에서 테넌트 도메인과 테넌트 ID를 유도하고, 테넌트 간 접근 규칙을 판단합니다.
//
// 사용자명은 "local@tenant-domain" 형식이며, 테넌트 도메인은 마지막 '@' 뒤의 문자열입니다.
// '@'가 없는 사용자는 기본 테넌트(carbon.super)에 속합니다.
package identity

import (
	"strings"

	"github.com/darkkaiser/appdir-server/internal/config"
	apperrors "github.com/darkkaiser/appdir-server/internal/pkg/errors"
	"github.com/darkkaiser/appdir-server/internal/service/contract"
)

// InvalidTenantID 등록되지 않은 테넌트 도메인의 ID입니다.
const InvalidTenantID = -1

// TenantDomainOf 사용자명이 속한 테넌트 도메인을 소문자로 반환합니다.
func TenantDomainOf(username string) string {
	idx := strings.LastIndex(username, "@")
	if idx < 0 || idx == len(username)-1 {
		return config.SuperTenantDomain
	}
	return strings.ToLower(username[idx+1:])
}

// Resolver 설정의 테넌트 목록을 기준으로 테넌트 ID를 조회합니다.
type Resolver struct {
	tenantIDs map[string]int
}

// NewResolver 도메인(소문자)과 테넌트 ID의 매핑으로 Resolver를 생성합니다.
func NewResolver(tenantIDs map[string]int) *Resolver {
	ids := make(map[string]int, len(tenantIDs)+1)
	for domain, id := range tenantIDs {
		ids[strings.ToLower(domain)] = id
	}
	ids[config.SuperTenantDomain] = config.SuperTenantID

	return &Resolver{tenantIDs: ids}
}

var _ contract.IdentityResolver = (*Resolver)(nil)

// TenantDomainOf 사용자명이 속한 테넌트 도메인을 반환합니다.
func (r *Resolver) TenantDomainOf(username string) string {
	return TenantDomainOf(username)
}

// TenantIDOf 사용자명이 속한 테넌트의 ID를 반환합니다. 등록되지 않은 테넌트면 InvalidTenantID를 반환합니다.
func (r *Resolver) TenantIDOf(username string) int {
	return r.TenantIDOfDomain(TenantDomainOf(username))
}

// TenantIDOfDomain 테넌트 도메인의 ID를 반환합니다.
func (r *Resolver) TenantIDOfDomain(domain string) int {
	if id, ok := r.tenantIDs[strings.ToLower(domain)]; ok {
		return id
	}
	return InvalidTenantID
}

// AuthorizeMigrationAccess 마이그레이션 조회에서 호출자가 대상 테넌트에 접근할 수 있는지 판단합니다.
//
// 같은 테넌트는 항상 허용합니다. 다른 테넌트는 호출자가 기본 테넌트 소속이면서 superAdminRole을 가진 경우에만 허용합니다.
func AuthorizeMigrationAccess(caller contract.Caller, targetTenantDomain, superAdminRole string) error {
	if strings.EqualFold(caller.TenantDomain, targetTenantDomain) {
		return nil
	}

	if strings.EqualFold(caller.TenantDomain, config.SuperTenantDomain) && caller.HasRole(superAdminRole) {
		return nil
	}

	return apperrors.Newf(apperrors.Forbidden, "테넌트(%s) 사용자는 다른 테넌트(%s)의 리소스에 접근할 수 없습니다", caller.TenantDomain, targetTenantDomain)
}
