package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCORSOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		origin  string
		wantErr bool
	}{
		// =====================================================================
		// Valid
		// =====================================================================
		{"와일드카드", "*", false},
		{"HTTPS 도메인", "https://portal.example.com", false},
		{"포트 포함", "http://localhost:3000", false},
		{"IPv4", "http://192.168.0.10:8080", false},
		{"IPv6", "http://[::1]:9443", false},
		{"앞뒤 공백", "  https://example.com  ", false},

		// =====================================================================
		// Invalid
		// =====================================================================
		{"빈 문자열", "", true},
		{"후행 슬래시", "https://example.com/", true},
		{"경로 포함", "https://example.com/devportal", true},
		{"쿼리 포함", "https://example.com?x=1", true},
		{"지원하지 않는 스키마", "ftp://example.com", true},
		{"사용자 정보", "https://user:pw@example.com", true},
		{"포트 범위 초과", "https://example.com:70000", true},
		{"하이픈으로 시작하는 레이블", "https://-bad.example.com", true},
		{"숫자 TLD", "https://example.123", true},
		{"밑줄 포함", "https://bad_host.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCORSOrigin(tt.origin)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePort(1))
	assert.NoError(t, ValidatePort(65535))
	assert.Error(t, ValidatePort(0))
	assert.Error(t, ValidatePort(65536))
}
