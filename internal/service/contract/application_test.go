package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaller_HasRole(t *testing.T) {
	t.Parallel()

	c := Caller{Username: "admin", TenantDomain: "carbon.super", Roles: []string{"admin", "subscriber"}}

	assert.True(t, c.HasRole("admin"))
	assert.False(t, c.HasRole("Admin"), "역할 비교는 대소문자를 구분해야 합니다")
	assert.False(t, Caller{}.HasRole("admin"))
}
