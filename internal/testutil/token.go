package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestJWTSecret 테스트에서 공통으로 사용하는 HS256 서명 비밀키
const TestJWTSecret = "appdir-test-secret-0123456789"

// SignToken 사용자명과 역할을 담은 테스트용 Bearer 토큰을 생성합니다. 토큰은 1시간 동안 유효합니다.
func SignToken(t testing.TB, secret, subject string, roles ...string) string {
	return SignTokenWithClaims(t, secret, jwt.MapClaims{
		"sub":   subject,
		"roles": roles,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
}

// SignTokenWithClaims 주어진 클레임으로 HS256 토큰을 생성합니다.
func SignTokenWithClaims(t testing.TB, secret string, claims jwt.MapClaims) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}
