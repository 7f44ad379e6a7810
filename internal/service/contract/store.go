package contract

import (
	"context"
)

// ConsumerFactory 사용자 범위의 애플리케이션 저장소 컨텍스트를 생성합니다.
//
// 반환된 Consumer는 해당 사용자의 권한으로 동작하며, 생성 과정에서 사용자 확인에 실패하면 에러를 반환합니다.
type ConsumerFactory interface {
	ConsumerFor(ctx context.Context, username string) (Consumer, error)
}

// Consumer 특정 사용자 범위에서 애플리케이션을 조회하고 변경하는 저장소 컨텍스트입니다.
type Consumer interface {
	// ApplicationByUUID 애플리케이션을 조회합니다. 존재하지 않으면 (nil, nil)을 반환합니다.
	ApplicationByUUID(ctx context.Context, uuid string) (*Application, error)

	// RemoveApplication 애플리케이션을 username의 권한으로 삭제합니다.
	RemoveApplication(ctx context.Context, app *Application, username string) error

	// UpdateApplicationOwner 애플리케이션 소유자를 변경합니다. 저장소가 변경을 확정하지 못하면 false를 반환합니다.
	UpdateApplicationOwner(ctx context.Context, newOwner string, app *Application) (bool, error)

	// ApplicationsByOwner 소유자의 전체 애플리케이션을 반환합니다.
	ApplicationsByOwner(ctx context.Context, owner string) ([]Application, error)

	// ApplicationsWithPagination 구독자와 이름 조건에 맞는 애플리케이션을 페이지 단위로 반환합니다.
	ApplicationsWithPagination(ctx context.Context, subscriber Subscriber, groupID string, q ListQuery) ([]Application, error)
}

// TenantAdmin 테넌트 단위의 관리자 조회 인터페이스입니다.
type TenantAdmin interface {
	// ApplicationsByTenantID 테넌트의 애플리케이션을 페이지 단위로 반환합니다.
	ApplicationsByTenantID(ctx context.Context, tenantID int, q ListQuery) ([]Application, error)

	// AllApplicationsOfTenantForMigration 테넌트의 전체 애플리케이션을 반환합니다. 데이터 이전 작업에만 사용합니다.
	AllApplicationsOfTenantForMigration(ctx context.Context, tenantDomain string) ([]Application, error)
}

// IdentityResolver 사용자명으로부터 테넌트 정보를 유도합니다.
type IdentityResolver interface {
	TenantDomainOf(username string) string
	TenantIDOf(username string) int
}
