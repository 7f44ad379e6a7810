package identity

import (
	"testing"

	"github.com/darkkaiser/appdir-server/internal/config"
	apperrors "github.com/darkkaiser/appdir-server/internal/pkg/errors"
	"github.com/darkkaiser/appdir-server/internal/service/contract"
	"github.com/stretchr/testify/assert"
)

func TestTenantDomainOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		username string
		want     string
	}{
		{"alice@t1.com", "t1.com"},
		{"bob@T2.COM", "t2.com"},
		{"carol@gmail.com@t1.com", "t1.com"},
		{"admin", config.SuperTenantDomain},
		{"trailing@", config.SuperTenantDomain},
		{"", config.SuperTenantDomain},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			assert.Equal(t, tt.want, TenantDomainOf(tt.username))
		})
	}
}

func TestResolver_TenantIDOf(t *testing.T) {
	t.Parallel()

	r := NewResolver(map[string]int{"T1.com": 1, "t2.com": 2})

	assert.Equal(t, 1, r.TenantIDOf("alice@t1.com"))
	assert.Equal(t, 2, r.TenantIDOf("bob@t2.com"))
	assert.Equal(t, config.SuperTenantID, r.TenantIDOf("admin"))
	assert.Equal(t, InvalidTenantID, r.TenantIDOf("dave@unknown.org"))
	assert.Equal(t, "t1.com", r.TenantDomainOf("alice@t1.com"))
}

func TestAuthorizeMigrationAccess(t *testing.T) {
	t.Parallel()

	superAdmin := contract.Caller{Username: "admin", TenantDomain: config.SuperTenantDomain, Roles: []string{"admin"}}
	superUser := contract.Caller{Username: "ops", TenantDomain: config.SuperTenantDomain, Roles: []string{"subscriber"}}
	tenantAdmin := contract.Caller{Username: "admin@t1.com", TenantDomain: "t1.com", Roles: []string{"admin"}}

	tests := []struct {
		name    string
		caller  contract.Caller
		target  string
		allowed bool
	}{
		{"같은 테넌트", tenantAdmin, "t1.com", true},
		{"같은 테넌트 대소문자 무시", tenantAdmin, "T1.COM", true},
		{"기본 테넌트 관리자의 테넌트 간 조회", superAdmin, "t2.com", true},
		{"기본 테넌트 일반 사용자의 테넌트 간 조회", superUser, "t2.com", false},
		{"일반 테넌트 관리자의 테넌트 간 조회", tenantAdmin, "t2.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeMigrationAccess(tt.caller, tt.target, "admin")
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperrors.Is(err, apperrors.Forbidden))
			}
		})
	}
}
