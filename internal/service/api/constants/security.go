package constants

import "time"

// 보안 관련 상수입니다.
const (
	// DefaultMaxBodySize 요청 본문의 최대 크기
	// 관리 API는 본문을 받지 않으므로 작게 유지합니다.
	DefaultMaxBodySize = "64K"

	// DefaultReadTimeout 요청 전체(헤더+본문) 읽기 최대 대기 시간
	DefaultReadTimeout = 15 * time.Second

	// DefaultReadHeaderTimeout HTTP 헤더 읽기 최대 대기 시간
	// 헤더를 매우 느리게 전송하는 클라이언트(Slowloris)의 연결 고갈 공격을 방지합니다.
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultWriteTimeout 응답 쓰기 최대 대기 시간
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout Keep-Alive 연결 유휴 최대 시간
	DefaultIdleTimeout = 120 * time.Second

	// DefaultRequestTimeout 요청 처리 최대 시간
	DefaultRequestTimeout = 30 * time.Second

	// DefaultShutdownTimeout 서버 종료 시 진행 중인 요청을 기다리는 최대 시간
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultRateLimitPerSecond IP별 초당 허용 요청 수
	DefaultRateLimitPerSecond = 20

	// DefaultRateLimitBurst IP별 순간 허용 요청 수
	DefaultRateLimitBurst = 40
)

// SensitiveQueryParams 로그 기록 시 마스킹 처리해야 할 쿼리 파라미터 목록입니다.
var SensitiveQueryParams = []string{
	"access_token",
	"token",
	"password",
	"secret",
}
