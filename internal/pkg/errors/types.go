package errors

import "strconv"

// ErrorType 에러의 종류를 나타내는 타입입니다.
// HTTP 계층은 이 값을 기준으로 응답 상태 코드를 결정합니다.
type ErrorType int

const (
	// Unknown 분류할 수 없는 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 또는 애플리케이션 저장소가 요청을 처리하지 못한 경우
	Internal

	// System 인프라 오류 (DB 연결, 쿼리 실패 등)
	System

	// Unauthorized 호출자 신원 확인 실패 (토큰 누락, 서명 불일치, 만료)
	Unauthorized

	// Forbidden 인증은 되었지만 대상 리소스에 접근할 수 없음 (테넌트 불일치 등)
	Forbidden

	// InvalidInput 잘못된 요청 파라미터
	InvalidInput

	// NotFound 리소스를 찾을 수 없음
	NotFound

	// Timeout 작업 시간 초과
	Timeout

	// Unavailable 서비스 일시적 사용 불가
	Unavailable

	// Unreachable 응답을 만들어 낼 수 없는 코드 경로에 도달함 (알 수 없는 조회 모드 등)
	Unreachable
)

var errorTypeNames = [...]string{
	Unknown:      "Unknown",
	Internal:     "Internal",
	System:       "System",
	Unauthorized: "Unauthorized",
	Forbidden:    "Forbidden",
	InvalidInput: "InvalidInput",
	NotFound:     "NotFound",
	Timeout:      "Timeout",
	Unavailable:  "Unavailable",
	Unreachable:  "Unreachable",
}

func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}
