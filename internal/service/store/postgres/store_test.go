package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/darkkaiser/appdir-server/internal/config"
	apperrors "github.com/darkkaiser/appdir-server/internal/pkg/errors"
	"github.com/darkkaiser/appdir-server/internal/service/contract"
	"github.com/darkkaiser/appdir-server/internal/service/identity"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

var fixedNow = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

var columns = []string{"uuid", "name", "owner", "tenant_domain", "tenant_id", "status", "group_id", "throttling_policy", "created_at"}

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	s := New(db, identity.NewResolver(map[string]int{"t1.com": 1, "t2.com": 2}))
	s.now = func() time.Time { return fixedNow }

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return s, mock
}

func appRow(rows *sqlmock.Rows, id, name, owner string) *sqlmock.Rows {
	domain := identity.TenantDomainOf(owner)
	tenantID := 1
	if domain == "t2.com" {
		tenantID = 2
	}
	return rows.AddRow(id, name, owner, domain, tenantID, contract.ApplicationStatusApproved, "", "Unlimited", fixedNow)
}

func q(s string) string { return regexp.QuoteMeta(s) }

// =============================================================================
// Schema & Seed
// =============================================================================

func TestStore_EnsureSchema(t *testing.T) {
	t.Parallel()

	t.Run("모든 DDL 실행", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec(q("CREATE TABLE IF NOT EXISTS applications")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(q("CREATE INDEX IF NOT EXISTS idx_applications_tenant_id")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(q("CREATE INDEX IF NOT EXISTS idx_applications_tenant_domain")).WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, s.EnsureSchema(context.Background()))
	})

	t.Run("DDL 실패", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec(q("CREATE TABLE")).WillReturnError(errors.New("permission denied"))

		err := s.EnsureSchema(context.Background())
		assert.True(t, apperrors.Is(err, apperrors.System))
	})
}

func TestStore_Seed(t *testing.T) {
	t.Parallel()

	s, mock := newMockStore(t)

	mock.ExpectExec(q("INSERT INTO applications")+".*"+q("ON CONFLICT DO NOTHING")).
		WithArgs("a-1", "Payroll", "alice@t1.com", "t1.com", 1, contract.ApplicationStatusCreated, "", "", fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("INSERT INTO applications")).
		WithArgs(sqlmock.AnyArg(), "Billing", "bob@t2.com", "t2.com", 2, contract.ApplicationStatusApproved, "g1", "Gold", fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Seed(context.Background(), []config.SeedApplicationConfig{
		{ID: "a-1", Name: "Payroll", Owner: "alice@t1.com"},
		{Name: "Billing", Owner: "bob@t2.com", Status: contract.ApplicationStatusApproved, GroupID: "g1", ThrottlingPolicy: "Gold"},
	})
	require.NoError(t, err)
}

func TestStore_Seed_Failures(t *testing.T) {
	t.Parallel()

	t.Run("드라이버 에러는 System", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec(q("INSERT INTO applications")).WillReturnError(errors.New("connection reset"))

		err := s.Seed(context.Background(), []config.SeedApplicationConfig{{Name: "A", Owner: "alice@t1.com"}})
		assert.Equal(t, apperrors.System, apperrors.TypeOf(err))
	})

	t.Run("중복 키는 InvalidInput", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec(q("INSERT INTO applications")).
			WillReturnError(&pq.Error{Code: pqUniqueViolation, Constraint: "applications_owner_name_key"})

		err := s.Seed(context.Background(), []config.SeedApplicationConfig{{ID: "a-1", Name: "Dup", Owner: "alice@t1.com"}})
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
		assert.Contains(t, err.Error(), "applications_owner_name_key")
	})

	t.Run("첫 실패 이후 항목은 등록하지 않음", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec(q("INSERT INTO applications")).WillReturnError(errors.New("disk full"))

		err := s.Seed(context.Background(), []config.SeedApplicationConfig{
			{Name: "A", Owner: "alice@t1.com"},
			{Name: "B", Owner: "alice@t1.com"},
		})
		assert.Error(t, err)
	})
}

func TestStore_insertIfAbsent(t *testing.T) {
	t.Parallel()

	t.Run("비어있는 값 채움", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec(q("INSERT INTO applications")).
			WithArgs(sqlmock.AnyArg(), "New", "carol@t1.com", "t1.com", 1, contract.ApplicationStatusCreated, "", "", fixedNow).
			WillReturnResult(sqlmock.NewResult(0, 1))

		app, inserted, err := s.insertIfAbsent(context.Background(), contract.Application{Name: "New", Owner: "carol@t1.com"})
		require.NoError(t, err)
		assert.True(t, inserted)
		assert.NotEmpty(t, app.UUID)
		assert.Equal(t, "t1.com", app.TenantDomain)
		assert.Equal(t, 1, app.TenantID)
		assert.Equal(t, fixedNow, app.CreatedAt)
	})

	t.Run("이미 있으면 건너뜀", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec(q("ON CONFLICT DO NOTHING")).WillReturnResult(sqlmock.NewResult(0, 0))

		_, inserted, err := s.insertIfAbsent(context.Background(), contract.Application{UUID: "a-1", Name: "Payroll", Owner: "alice@t1.com"})
		require.NoError(t, err)
		assert.False(t, inserted)
	})

	t.Run("영향받은 행 수 확인 실패", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec(q("INSERT INTO applications")).
			WillReturnResult(sqlmock.NewErrorResult(errors.New("driver does not support RowsAffected")))

		_, _, err := s.insertIfAbsent(context.Background(), contract.Application{Name: "X", Owner: "alice@t1.com"})
		assert.Error(t, err)
	})
}

// =============================================================================
// TenantAdmin
// =============================================================================

func TestStore_ApplicationsByTenantID(t *testing.T) {
	t.Parallel()

	t.Run("정렬과 구간", func(t *testing.T) {
		s, mock := newMockStore(t)

		rows := sqlmock.NewRows(columns)
		appRow(rows, "a-2", "Analytics", "alice@t1.com")
		appRow(rows, "a-1", "Payroll", "alice@t1.com")

		mock.ExpectQuery(q("FROM applications WHERE tenant_id = $1 ORDER BY name ASC, uuid ASC LIMIT $2 OFFSET $3")).
			WithArgs(1, 25, 0).
			WillReturnRows(rows)

		apps, err := s.ApplicationsByTenantID(context.Background(), 1, contract.ListQuery{
			Limit: 25, SortColumn: contract.SortByName, SortOrder: contract.SortAscending,
		})
		require.NoError(t, err)
		require.Len(t, apps, 2)
		assert.Equal(t, "Analytics", apps[0].Name)
		assert.Equal(t, "t1.com", apps[0].TenantDomain)
		assert.Equal(t, fixedNow, apps[1].CreatedAt)
	})

	t.Run("소유자와 이름 조건", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(q("WHERE tenant_id = $1 AND owner = $2 AND name ILIKE $3 ORDER BY name DESC, uuid ASC LIMIT $4 OFFSET $5")).
			WithArgs(1, "alice@t1.com", `%50\%\_off%`, 10, 20).
			WillReturnRows(sqlmock.NewRows(columns))

		apps, err := s.ApplicationsByTenantID(context.Background(), 1, contract.ListQuery{
			Offset: 20, Limit: 10, Owner: "alice@t1.com", Name: "50%_off",
			SortColumn: contract.SortByName, SortOrder: contract.SortDescending,
		})
		require.NoError(t, err)
		assert.Empty(t, apps)
		assert.NotNil(t, apps)
	})

	t.Run("쿼리 실패", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(q("FROM applications")).WillReturnError(errors.New("connection reset"))

		_, err := s.ApplicationsByTenantID(context.Background(), 1, contract.ListQuery{Limit: 1})
		assert.True(t, apperrors.Is(err, apperrors.System))
	})

	t.Run("행 읽기 실패", func(t *testing.T) {
		s, mock := newMockStore(t)

		rows := sqlmock.NewRows(columns)
		appRow(rows, "a-1", "Payroll", "alice@t1.com")
		rows.RowError(0, errors.New("broken row"))
		mock.ExpectQuery(q("FROM applications")).WillReturnRows(rows)

		_, err := s.ApplicationsByTenantID(context.Background(), 1, contract.ListQuery{})
		assert.True(t, apperrors.Is(err, apperrors.System))
	})
}

func TestStore_AllApplicationsOfTenantForMigration(t *testing.T) {
	t.Parallel()

	s, mock := newMockStore(t)

	rows := sqlmock.NewRows(columns)
	appRow(rows, "b-1", "Billing", "bob@t2.com")

	mock.ExpectQuery(q("WHERE tenant_domain = $1 ORDER BY name ASC, uuid ASC")).
		WithArgs("t2.com").
		WillReturnRows(rows)

	apps, err := s.AllApplicationsOfTenantForMigration(context.Background(), "T2.com")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, 2, apps[0].TenantID)
}

// =============================================================================
// Consumer
// =============================================================================

func TestConsumer_ApplicationByUUID(t *testing.T) {
	t.Parallel()

	t.Run("존재", func(t *testing.T) {
		s, mock := newMockStore(t)

		rows := sqlmock.NewRows(columns)
		appRow(rows, "a-1", "Payroll", "alice@t1.com")
		mock.ExpectQuery(q("FROM applications WHERE uuid = $1")).WithArgs("a-1").WillReturnRows(rows)

		c, err := s.ConsumerFor(context.Background(), "alice@t1.com")
		require.NoError(t, err)

		app, err := c.ApplicationByUUID(context.Background(), "a-1")
		require.NoError(t, err)
		require.NotNil(t, app)
		assert.Equal(t, "Payroll", app.Name)
	})

	t.Run("없음", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(q("FROM applications WHERE uuid = $1")).WithArgs("app-123").WillReturnError(sql.ErrNoRows)

		c, _ := s.ConsumerFor(context.Background(), "alice@t1.com")
		app, err := c.ApplicationByUUID(context.Background(), "app-123")
		assert.NoError(t, err)
		assert.Nil(t, app)
	})

	t.Run("빈 사용자명", func(t *testing.T) {
		s, _ := newMockStore(t)

		_, err := s.ConsumerFor(context.Background(), " ")
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})
}

func TestConsumer_RemoveApplication(t *testing.T) {
	t.Parallel()

	app := &contract.Application{UUID: "a-1", Owner: "alice@t1.com"}

	t.Run("삭제 성공", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec(q("DELETE FROM applications WHERE uuid = $1 AND owner = $2")).
			WithArgs("a-1", "alice@t1.com").
			WillReturnResult(sqlmock.NewResult(0, 1))

		c, _ := s.ConsumerFor(context.Background(), "admin")
		require.NoError(t, c.RemoveApplication(context.Background(), app, "alice@t1.com"))
	})

	t.Run("소유자 불일치", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec(q("DELETE FROM applications")).WillReturnResult(sqlmock.NewResult(0, 0))
		rows := sqlmock.NewRows(columns)
		appRow(rows, "a-1", "Payroll", "alice@t1.com")
		mock.ExpectQuery(q("WHERE uuid = $1")).WithArgs("a-1").WillReturnRows(rows)

		c, _ := s.ConsumerFor(context.Background(), "admin")
		err := c.RemoveApplication(context.Background(), app, "bob@t2.com")
		assert.True(t, apperrors.Is(err, apperrors.Forbidden))
	})

	t.Run("이미 삭제됨", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec(q("DELETE FROM applications")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(q("WHERE uuid = $1")).WithArgs("a-1").WillReturnError(sql.ErrNoRows)

		c, _ := s.ConsumerFor(context.Background(), "admin")
		err := c.RemoveApplication(context.Background(), app, "alice@t1.com")
		assert.True(t, apperrors.Is(err, apperrors.NotFound))
	})

	t.Run("실행 실패", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec(q("DELETE FROM applications")).WillReturnError(errors.New("lock timeout"))

		c, _ := s.ConsumerFor(context.Background(), "admin")
		err := c.RemoveApplication(context.Background(), app, "alice@t1.com")
		assert.True(t, apperrors.Is(err, apperrors.System))
	})
}

func TestConsumer_UpdateApplicationOwner(t *testing.T) {
	t.Parallel()

	app := &contract.Application{UUID: "a-1", Owner: "alice@t1.com"}

	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"한 행 변경", 1, true},
		{"변경 없음", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockStore(t)

			mock.ExpectExec(q("UPDATE applications SET owner = $1, tenant_domain = $2, tenant_id = $3 WHERE uuid = $4")).
				WithArgs("bob@t2.com", "t2.com", 2, "a-1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			c, _ := s.ConsumerFor(context.Background(), "bob@t2.com")
			ok, err := c.UpdateApplicationOwner(context.Background(), "bob@t2.com", app)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}

	t.Run("실행 실패", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec(q("UPDATE applications")).WillReturnError(errors.New("deadlock detected"))

		c, _ := s.ConsumerFor(context.Background(), "bob@t2.com")
		ok, err := c.UpdateApplicationOwner(context.Background(), "bob@t2.com", app)
		assert.False(t, ok)
		assert.True(t, apperrors.Is(err, apperrors.System))
	})
}

func TestConsumer_Lists(t *testing.T) {
	t.Parallel()

	t.Run("소유자 전체 조회는 구간 없음", func(t *testing.T) {
		s, mock := newMockStore(t)

		rows := sqlmock.NewRows(columns)
		appRow(rows, "a-2", "Analytics", "alice@t1.com")
		mock.ExpectQuery(q("WHERE owner = $1 ORDER BY name ASC, uuid ASC") + "$").
			WithArgs("alice@t1.com").
			WillReturnRows(rows)

		c, _ := s.ConsumerFor(context.Background(), "alice@t1.com")
		apps, err := c.ApplicationsByOwner(context.Background(), "alice@t1.com")
		require.NoError(t, err)
		assert.Len(t, apps, 1)
	})

	t.Run("구독자 페이지 조회", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(q("WHERE owner = $1 AND group_id = $2 AND name ILIKE $3 ORDER BY name ASC, uuid ASC LIMIT $4 OFFSET $5")).
			WithArgs("alice@t1.com", "g1", "%pay%", 5, 0).
			WillReturnRows(sqlmock.NewRows(columns))

		c, _ := s.ConsumerFor(context.Background(), "alice@t1.com")
		_, err := c.ApplicationsWithPagination(context.Background(),
			contract.Subscriber{Name: "alice@t1.com", TenantID: 1}, "g1",
			contract.ListQuery{Limit: 5, Name: "pay", SortColumn: contract.SortByName, SortOrder: contract.SortAscending})
		require.NoError(t, err)
	})
}

func TestStore_PingAndClose(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	s := New(db, identity.NewResolver(nil))

	mock.ExpectPing()
	require.NoError(t, s.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("down"))
	assert.True(t, apperrors.Is(s.Ping(context.Background()), apperrors.System))

	mock.ExpectClose()
	require.NoError(t, s.Close())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikePatternAndOrderBy(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `%a\\b%`, likePattern(`a\b`))
	assert.Equal(t, " ORDER BY name ASC, uuid ASC", orderBy(contract.ListQuery{}))
	assert.Equal(t, " ORDER BY uuid DESC, uuid ASC", orderBy(contract.ListQuery{SortColumn: "created_at; DROP TABLE", SortOrder: contract.SortDescending}))
}
