package request

// ListApplicationsRequest 애플리케이션 목록 조회 요청
type ListApplicationsRequest struct {
	// 조회 대상 사용자 (생략 시 호출자 본인)
	User string `query:"user" korean:"사용자" example:"alice@t1.com"`
	// 애플리케이션 이름 검색어 (대소문자 무시 부분 일치)
	Name string `query:"name" korean:"이름" example:"mobile"`
	// 마이그레이션 모드에서 조회할 테넌트 도메인
	TenantDomain string `query:"tenantDomain" validate:"omitempty,hostname_rfc1123" korean:"테넌트 도메인" example:"t1.com"`
	// 최대 조회 개수 (생략 시 설정의 기본값, 범위는 테넌트 확인 후 서비스에서 검사)
	Limit *int `query:"limit" korean:"limit" example:"25"`
	// 조회 시작 위치 (생략 시 설정의 기본값, 범위는 테넌트 확인 후 서비스에서 검사)
	Offset *int `query:"offset" korean:"offset" example:"0"`
}

// ChangeOwnerRequest 애플리케이션 소유자 변경 요청
type ChangeOwnerRequest struct {
	ApplicationID string `param:"applicationId" validate:"required" korean:"애플리케이션 ID" example:"6f1c2a8e-5d0b-4a57-9b1e-2f0c3d4e5f60"`
	Owner         string `query:"owner" validate:"required" korean:"새 소유자" example:"bob@t1.com"`
}
