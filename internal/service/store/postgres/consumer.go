package postgres

import (
	"context"

	"github.com/darkkaiser/appdir-server/internal/service/contract"
)

// consumer 특정 사용자 범위에서 동작하는 PostgreSQL 저장소 컨텍스트입니다.
type consumer struct {
	store    *Store
	username string
}

var _ contract.Consumer = (*consumer)(nil)

func (c *consumer) ApplicationByUUID(ctx context.Context, id string) (*contract.Application, error) {
	return c.store.application(ctx, id)
}

// RemoveApplication username이 저장된 소유자와 같을 때만 삭제합니다.
func (c *consumer) RemoveApplication(ctx context.Context, app *contract.Application, username string) error {
	res, err := c.store.db.ExecContext(ctx, `DELETE FROM applications WHERE uuid = $1 AND owner = $2`, app.UUID, username)
	if err != nil {
		return newErrQueryFailed(err, "애플리케이션 삭제")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return newErrQueryFailed(err, "애플리케이션 삭제")
	}
	if n == 1 {
		return nil
	}

	stored, err := c.store.application(ctx, app.UUID)
	if err != nil {
		return err
	}
	if stored == nil {
		return newErrApplicationNotFound(app.UUID)
	}
	return newErrNotOwner(app.UUID, username)
}

// UpdateApplicationOwner 정확히 한 행이 변경되었을 때만 true를 반환합니다.
func (c *consumer) UpdateApplicationOwner(ctx context.Context, newOwner string, app *contract.Application) (bool, error) {
	res, err := c.store.db.ExecContext(ctx,
		`UPDATE applications SET owner = $1, tenant_domain = $2, tenant_id = $3 WHERE uuid = $4`,
		newOwner, c.store.identity.TenantDomainOf(newOwner), c.store.identity.TenantIDOf(newOwner), app.UUID,
	)
	if err != nil {
		return false, newErrQueryFailed(err, "소유자 변경")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, newErrQueryFailed(err, "소유자 변경")
	}
	return n == 1, nil
}

func (c *consumer) ApplicationsByOwner(ctx context.Context, owner string) ([]contract.Application, error) {
	var w where
	w.add("owner = ?", owner)

	return c.store.list(ctx, &w, contract.ListQuery{SortColumn: contract.SortByName, SortOrder: contract.SortAscending}, "소유자 애플리케이션 조회")
}

// ApplicationsWithPagination 구독자가 소유한 애플리케이션 중 그룹과 이름 조건에 맞는 항목을 반환합니다.
func (c *consumer) ApplicationsWithPagination(ctx context.Context, subscriber contract.Subscriber, groupID string, q contract.ListQuery) ([]contract.Application, error) {
	var w where
	w.add("owner = ?", subscriber.Name)
	if groupID != "" {
		w.add("group_id = ?", groupID)
	}
	if q.Name != "" {
		w.add("name ILIKE ?", likePattern(q.Name))
	}

	return c.store.list(ctx, &w, q, "구독자 애플리케이션 조회")
}
