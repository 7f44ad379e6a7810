// Package store 설정에 따라 애플리케이션 저장소 구현을 선택하여 생성합니다.
package store

import (
	"context"

	"github.com/darkkaiser/appdir-server/internal/config"
	apperrors "github.com/darkkaiser/appdir-server/internal/pkg/errors"
	"github.com/darkkaiser/appdir-server/internal/service/contract"
	"github.com/darkkaiser/appdir-server/internal/service/store/memory"
	"github.com/darkkaiser/appdir-server/internal/service/store/postgres"
	applog "github.com/darkkaiser/appdir-server/pkg/log"
)

const component = "store"

// Store 디렉터리 서비스가 사용하는 저장소 협력 인터페이스와 수명 주기를 묶은 인터페이스입니다.
type Store interface {
	contract.ConsumerFactory
	contract.TenantAdmin

	// Ping 저장소가 요청을 처리할 수 있는지 확인합니다. 헬스체크에서 사용합니다.
	Ping(ctx context.Context) error

	Close() error
}

var (
	_ Store = (*memory.Store)(nil)
	_ Store = (*postgres.Store)(nil)
)

// openPostgres 테스트에서 실제 연결 없이 교체할 수 있도록 변수로 둡니다.
var openPostgres = func(ctx context.Context, cfg config.PostgresConfig, identity contract.IdentityResolver) (seedableStore, error) {
	return postgres.Open(ctx, cfg, identity)
}

type seedableStore interface {
	Store
	Seed(ctx context.Context, seeds []config.SeedApplicationConfig) error
}

// New 설정된 드라이버로 저장소를 생성하고 초기 애플리케이션을 등록합니다.
func New(ctx context.Context, cfg config.StoreConfig, identity contract.IdentityResolver) (Store, error) {
	var (
		s   seedableStore
		err error
	)

	switch cfg.Driver {
	case config.StoreDriverMemory, "":
		s = memory.New(identity)

	case config.StoreDriverPostgres:
		if s, err = openPostgres(ctx, cfg.Postgres, identity); err != nil {
			return nil, err
		}

	default:
		return nil, apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 저장소 드라이버입니다: '%s'", cfg.Driver)
	}

	if err := s.Seed(ctx, cfg.Seed); err != nil {
		_ = s.Close()
		return nil, apperrors.Wrap(err, apperrors.System, "초기 애플리케이션 등록에 실패했습니다")
	}

	driver := cfg.Driver
	if driver == "" {
		driver = config.StoreDriverMemory
	}
	applog.WithComponentAndFields(component, applog.Fields{
		"driver": driver,
		"seed":   len(cfg.Seed),
	}).Info("애플리케이션 저장소 준비 완료")

	return s, nil
}
