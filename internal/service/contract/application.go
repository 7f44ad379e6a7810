package contract

import (
	"time"
)

// Application 애플리케이션 저장소에 등록된 구독 애플리케이션입니다.
type Application struct {
	UUID             string
	Name             string
	Owner            string // 소유자 사용자명 (local@tenant-domain)
	TenantDomain     string // 소유자로부터 유도된 테넌트 도메인
	TenantID         int
	Status           string
	GroupID          string
	ThrottlingPolicy string
	CreatedAt        time.Time
}

// 애플리케이션 승인 상태
const (
	ApplicationStatusCreated  = "CREATED"
	ApplicationStatusApproved = "APPROVED"
	ApplicationStatusRejected = "REJECTED"
)

// Subscriber 애플리케이션을 구독하는 사용자입니다. 페이지 조회 시 조회 대상 사용자를 식별합니다.
type Subscriber struct {
	Name     string
	TenantID int
}

// SortOrder 목록 조회 정렬 방향
type SortOrder string

const (
	SortAscending  SortOrder = "ASC"
	SortDescending SortOrder = "DESC"
)

// SortByName 애플리케이션 이름 정렬 컬럼
const SortByName = "name"

// ListQuery 저장소에서 수행하는 페이지 조회 조건입니다.
type ListQuery struct {
	Offset     int
	Limit      int
	Owner      string // 비어있으면 소유자 조건 없음
	Name       string // 비어있으면 이름 조건 없음 (대소문자 무시 부분 일치)
	SortColumn string
	SortOrder  SortOrder
}

// Caller 요청을 보낸 인증된 호출자입니다. 요청이 끝나면 폐기됩니다.
type Caller struct {
	Username     string
	TenantDomain string
	Roles        []string
}

// HasRole 호출자가 주어진 역할을 가지고 있는지 확인합니다.
func (c Caller) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
