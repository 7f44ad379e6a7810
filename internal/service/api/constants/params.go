package constants

// URL 쿼리 및 경로 파라미터 키 상수입니다.
const (
	QueryParamUser         = "user"
	QueryParamName         = "name"
	QueryParamTenantDomain = "tenantDomain"
	QueryParamLimit        = "limit"
	QueryParamOffset       = "offset"
	QueryParamOwner        = "owner"

	PathParamApplicationID = "applicationId"
)

// HTTP 헤더 키 상수입니다.
const (
	// AuthSchemeBearer Authorization 헤더의 인증 스킴
	AuthSchemeBearer = "Bearer"

	// HeaderIfMatch 삭제 요청의 엔티티 태그 헤더 (기록만 하고 평가하지 않음)
	HeaderIfMatch = "If-Match"

	// XRateLimitRetryAfter 속도 제한 시 재시도 대기 시간(초) 헤더
	XRateLimitRetryAfter = "Retry-After"
)

// Context 키 상수입니다.
const (
	// ContextKeyCaller 인증된 호출자 저장용 Context 키
	ContextKeyCaller = "authenticated_caller"
)
