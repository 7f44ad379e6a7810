// Package strutil 문자열 처리 유틸리티를 제공합니다.
package strutil

import (
	"strings"
)

// Mask 토큰, 비밀키 같은 민감 정보를 로그에 남길 수 있는 형태로 가립니다.
//
//	"abc"                  -> "***"
//	"owner-token"          -> "owne***"
//	"eyJhbGciOiJIUzI1NiJ9" -> "eyJh***NiJ9"
func Mask(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 3:
		return "***"
	case len(s) <= 12:
		return s[:4] + "***"
	default:
		return s[:4] + "***" + s[len(s)-4:]
	}
}

// SplitAndTrim 구분자로 분리한 뒤 앞뒤 공백을 제거하고 빈 항목을 제외합니다.
// 결과가 없으면 nil을 반환합니다.
//
//	"admin, , subscriber" (",") -> ["admin", "subscriber"]
func SplitAndTrim(s, sep string) []string {
	var result []string
	for _, token := range strings.Split(s, sep) {
		if token = strings.TrimSpace(token); token != "" {
			result = append(result, token)
		}
	}
	return result
}

// IsBlank 공백 문자만으로 이루어진 문자열인지 확인합니다.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
