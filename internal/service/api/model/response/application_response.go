package response

// ApplicationInfo 목록 응답에 포함되는 애플리케이션 요약 정보
type ApplicationInfo struct {
	ApplicationID    string `json:"applicationId" example:"6f1c2a8e-5d0b-4a57-9b1e-2f0c3d4e5f60"`
	Name             string `json:"name" example:"MobileApp"`
	Owner            string `json:"owner" example:"alice@t1.com"`
	Status           string `json:"status" example:"APPROVED"`
	GroupID          string `json:"groupId,omitempty" example:"team-a"`
	ThrottlingPolicy string `json:"throttlingPolicy,omitempty" example:"Unlimited"`
}

// PaginationInfo 목록 응답의 페이지 정보
type PaginationInfo struct {
	Offset int `json:"offset" example:"0"`
	Limit  int `json:"limit" example:"25"`
	// 조회 조건에 맞는 전체 건수
	Total int `json:"total" example:"1"`
	// 다음 페이지 요청 경로 (없으면 생략)
	Next string `json:"next,omitempty" example:"/api/v1/applications?limit=25&offset=25"`
	// 이전 페이지 요청 경로 (없으면 생략)
	Previous string `json:"previous,omitempty" example:""`
}

// ApplicationListResponse 애플리케이션 목록 응답. List는 이름순으로 정렬됩니다.
type ApplicationListResponse struct {
	Count      int               `json:"count" example:"1"`
	List       []ApplicationInfo `json:"list"`
	Pagination PaginationInfo    `json:"pagination"`
}
