package memory

import (
	"context"

	"github.com/darkkaiser/appdir-server/internal/service/contract"
)

// consumer 특정 사용자 범위에서 동작하는 메모리 저장소 컨텍스트입니다.
type consumer struct {
	store    *Store
	username string
}

var _ contract.Consumer = (*consumer)(nil)

func (c *consumer) ApplicationByUUID(ctx context.Context, id string) (*contract.Application, error) {
	if err := c.store.check(ctx); err != nil {
		return nil, err
	}

	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	app, ok := c.store.apps[id]
	if !ok {
		return nil, nil
	}
	return &app, nil
}

// RemoveApplication username이 저장된 소유자와 같을 때만 삭제합니다.
func (c *consumer) RemoveApplication(ctx context.Context, app *contract.Application, username string) error {
	if err := c.store.check(ctx); err != nil {
		return err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	stored, ok := c.store.apps[app.UUID]
	if !ok {
		return newErrApplicationNotFound(app.UUID)
	}
	if stored.Owner != username {
		return newErrNotOwner(app.UUID, username)
	}

	delete(c.store.apps, app.UUID)

	return nil
}

// UpdateApplicationOwner 애플리케이션이 저장소에 없으면 false를 반환합니다.
func (c *consumer) UpdateApplicationOwner(ctx context.Context, newOwner string, app *contract.Application) (bool, error) {
	if err := c.store.check(ctx); err != nil {
		return false, err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	stored, ok := c.store.apps[app.UUID]
	if !ok {
		return false, nil
	}

	stored.Owner = newOwner
	c.store.assignTenant(&stored)
	c.store.apps[app.UUID] = stored

	return true, nil
}

func (c *consumer) ApplicationsByOwner(ctx context.Context, owner string) ([]contract.Application, error) {
	if err := c.store.check(ctx); err != nil {
		return nil, err
	}

	return c.store.query(func(app contract.Application) bool {
		return app.Owner == owner
	}, contract.ListQuery{SortColumn: contract.SortByName, SortOrder: contract.SortAscending}), nil
}

// ApplicationsWithPagination 구독자가 소유한 애플리케이션 중 그룹과 이름 조건에 맞는 항목을 반환합니다.
func (c *consumer) ApplicationsWithPagination(ctx context.Context, subscriber contract.Subscriber, groupID string, q contract.ListQuery) ([]contract.Application, error) {
	if err := c.store.check(ctx); err != nil {
		return nil, err
	}

	return c.store.query(func(app contract.Application) bool {
		return app.Owner == subscriber.Name &&
			(groupID == "" || app.GroupID == groupID) &&
			matchName(app.Name, q.Name)
	}, q), nil
}
