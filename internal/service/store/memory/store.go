// Package memory 프로세스 메모리에 애플리케이션을 보관하는 저장소 구현입니다.
//
// 설정의 seed 항목으로 초기 데이터를 채울 수 있으며, 개발 환경과 테스트에서 기본 저장소로 사용합니다.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/darkkaiser/appdir-server/internal/config"
	"github.com/darkkaiser/appdir-server/internal/service/contract"
	applog "github.com/darkkaiser/appdir-server/pkg/log"
	"github.com/darkkaiser/appdir-server/pkg/strutil"
	"github.com/google/uuid"
)

const component = "store.memory"

// Store 메모리 기반 애플리케이션 저장소
type Store struct {
	mu   sync.RWMutex
	apps map[string]contract.Application

	identity contract.IdentityResolver

	closed bool

	// now 생성 시각을 부여할 때 사용하는 시계입니다. 테스트에서 교체합니다.
	now func() time.Time
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var (
	_ contract.ConsumerFactory = (*Store)(nil)
	_ contract.TenantAdmin     = (*Store)(nil)
)

// New 빈 메모리 저장소를 생성합니다.
func New(identity contract.IdentityResolver) *Store {
	return &Store{
		apps: make(map[string]contract.Application),

		identity: identity,

		now: time.Now,
	}
}

// Add 애플리케이션을 등록하고 저장된 값을 반환합니다.
//
// UUID가 비어있으면 새로 발급하고, 테넌트 정보는 소유자로부터 다시 계산합니다.
func (s *Store) Add(ctx context.Context, app contract.Application) (contract.Application, error) {
	if err := ctx.Err(); err != nil {
		return contract.Application{}, newErrContextDone(err)
	}
	if strutil.IsBlank(app.Name) {
		return contract.Application{}, newErrInvalidApplication("name")
	}
	if strutil.IsBlank(app.Owner) {
		return contract.Application{}, newErrInvalidApplication("owner")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return contract.Application{}, ErrStoreClosed
	}

	if app.UUID == "" {
		app.UUID = uuid.NewString()
	}
	if _, exists := s.apps[app.UUID]; exists {
		return contract.Application{}, newErrDuplicateApplication(app.UUID)
	}

	s.assignTenant(&app)
	if app.Status == "" {
		app.Status = contract.ApplicationStatusCreated
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = s.now()
	}

	s.apps[app.UUID] = app

	return app, nil
}

// Seed 설정에 정의된 애플리케이션을 등록합니다.
func (s *Store) Seed(ctx context.Context, seeds []config.SeedApplicationConfig) error {
	for _, seed := range seeds {
		app, err := s.Add(ctx, contract.Application{
			UUID:             seed.ID,
			Name:             seed.Name,
			Owner:            seed.Owner,
			Status:           seed.Status,
			GroupID:          seed.GroupID,
			ThrottlingPolicy: seed.ThrottlingPolicy,
		})
		if err != nil {
			return err
		}

		applog.WithComponentAndFields(component, applog.Fields{
			"application_id": app.UUID,
			"name":           app.Name,
			"owner":          app.Owner,
		}).Debug("초기 애플리케이션 등록")
	}
	return nil
}

// ConsumerFor 사용자 범위의 저장소 컨텍스트를 반환합니다.
func (s *Store) ConsumerFor(ctx context.Context, username string) (contract.Consumer, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	if strutil.IsBlank(username) {
		return nil, ErrUsernameRequired
	}

	return &consumer{store: s, username: username}, nil
}

// ApplicationsByTenantID 테넌트의 애플리케이션을 정렬하여 페이지 단위로 반환합니다.
func (s *Store) ApplicationsByTenantID(ctx context.Context, tenantID int, q contract.ListQuery) ([]contract.Application, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	return s.query(func(app contract.Application) bool {
		return app.TenantID == tenantID &&
			(q.Owner == "" || app.Owner == q.Owner) &&
			matchName(app.Name, q.Name)
	}, q), nil
}

// AllApplicationsOfTenantForMigration 테넌트의 전체 애플리케이션을 반환합니다.
func (s *Store) AllApplicationsOfTenantForMigration(ctx context.Context, tenantDomain string) ([]contract.Application, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	return s.query(func(app contract.Application) bool {
		return strings.EqualFold(app.TenantDomain, tenantDomain)
	}, contract.ListQuery{SortColumn: contract.SortByName, SortOrder: contract.SortAscending}), nil
}

// Ping 저장소가 요청을 처리할 수 있는지 확인합니다.
func (s *Store) Ping(ctx context.Context) error {
	return s.check(ctx)
}

// Close 저장소를 종료합니다. 이후의 모든 요청은 System 에러로 실패합니다.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	return nil
}

func (s *Store) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return newErrContextDone(err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

func (s *Store) assignTenant(app *contract.Application) {
	app.TenantDomain = s.identity.TenantDomainOf(app.Owner)
	app.TenantID = s.identity.TenantIDOf(app.Owner)
}

// query 조건에 맞는 애플리케이션을 정렬하고 q의 구간을 적용하여 복사본으로 반환합니다.
// Limit이 0 이하이면 구간을 적용하지 않습니다.
func (s *Store) query(match func(contract.Application) bool, q contract.ListQuery) []contract.Application {
	s.mu.RLock()
	result := make([]contract.Application, 0, len(s.apps))
	for _, app := range s.apps {
		if match(app) {
			result = append(result, app)
		}
	}
	s.mu.RUnlock()

	sortApplications(result, q.SortColumn, q.SortOrder)

	if q.Limit <= 0 {
		return result
	}

	start := q.Offset
	if start < 0 {
		start = 0
	}
	if start >= len(result) {
		return []contract.Application{}
	}
	end := start + q.Limit
	if end > len(result) {
		end = len(result)
	}
	return result[start:end]
}

// sortApplications 정렬 컬럼과 방향에 따라 정렬합니다. 같은 값은 UUID 순으로 고정합니다.
func sortApplications(apps []contract.Application, column string, order contract.SortOrder) {
	key := func(app contract.Application) string {
		switch column {
		case contract.SortByName, "":
			return app.Name
		default:
			return app.UUID
		}
	}

	sort.Slice(apps, func(i, j int) bool {
		ki, kj := key(apps[i]), key(apps[j])
		if ki == kj {
			return apps[i].UUID < apps[j].UUID
		}
		if order == contract.SortDescending {
			return ki > kj
		}
		return ki < kj
	})
}

// matchName 대소문자를 무시한 부분 일치 검사입니다. 조건이 비어있으면 항상 일치합니다.
func matchName(name, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(filter))
}
