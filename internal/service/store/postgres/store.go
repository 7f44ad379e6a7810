// Package postgres PostgreSQL에 애플리케이션을 보관하는 저장소 구현입니다.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/darkkaiser/appdir-server/internal/config"
	apperrors "github.com/darkkaiser/appdir-server/internal/pkg/errors"
	"github.com/darkkaiser/appdir-server/internal/service/contract"
	applog "github.com/darkkaiser/appdir-server/pkg/log"
	"github.com/darkkaiser/appdir-server/pkg/strutil"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

const component = "store.postgres"

// driverName database/sql에 등록된 lib/pq 드라이버 이름
const driverName = "postgres"

const selectColumns = "uuid, name, owner, tenant_domain, tenant_id, status, group_id, throttling_policy, created_at"

// schemaStatements EnsureSchema가 순서대로 실행하는 DDL입니다.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS applications (
		uuid              TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		owner             TEXT NOT NULL,
		tenant_domain     TEXT NOT NULL,
		tenant_id         INTEGER NOT NULL,
		status            TEXT NOT NULL DEFAULT 'CREATED',
		group_id          TEXT NOT NULL DEFAULT '',
		throttling_policy TEXT NOT NULL DEFAULT '',
		created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (owner, name)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_tenant_id ON applications (tenant_id, name)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_tenant_domain ON applications (tenant_domain)`,
}

// Store PostgreSQL 기반 애플리케이션 저장소
type Store struct {
	db *sql.DB

	identity contract.IdentityResolver

	now func() time.Time
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var (
	_ contract.ConsumerFactory = (*Store)(nil)
	_ contract.TenantAdmin     = (*Store)(nil)
)

// New 이미 열린 데이터베이스 핸들로 저장소를 생성합니다.
func New(db *sql.DB, identity contract.IdentityResolver) *Store {
	return &Store{
		db: db,

		identity: identity,

		now: time.Now,
	}
}

// Open 설정에 따라 데이터베이스에 연결하고 필요하면 스키마를 생성합니다.
func Open(ctx context.Context, cfg config.PostgresConfig, identity contract.IdentityResolver) (*Store, error) {
	db, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, newErrQueryFailed(err, "연결")
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	s := New(db, identity)

	if err := s.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if cfg.EnsureSchema {
		if err := s.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"max_open_conns":    cfg.MaxOpenConns,
		"max_idle_conns":    cfg.MaxIdleConns,
		"conn_max_lifetime": cfg.ConnMaxLifetime.String(),
	}).Info("PostgreSQL 애플리케이션 저장소 연결 완료")

	return s, nil
}

// EnsureSchema applications 테이블과 인덱스가 없으면 생성합니다.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return newErrQueryFailed(err, "스키마 생성")
		}
	}
	return nil
}

// Seed 설정에 정의된 애플리케이션을 등록합니다. 같은 소유자의 같은 이름이 이미 있으면 건너뜁니다.
func (s *Store) Seed(ctx context.Context, seeds []config.SeedApplicationConfig) error {
	for _, seed := range seeds {
		app, inserted, err := s.insertIfAbsent(ctx, contract.Application{
			UUID:             seed.ID,
			Name:             seed.Name,
			Owner:            seed.Owner,
			Status:           seed.Status,
			GroupID:          seed.GroupID,
			ThrottlingPolicy: seed.ThrottlingPolicy,
		})
		if err != nil {
			return newErrQueryFailed(err, "초기 데이터 등록")
		}

		if inserted {
			applog.WithComponentAndFields(component, applog.Fields{
				"application_id": app.UUID,
				"name":           app.Name,
				"owner":          app.Owner,
			}).Debug("초기 애플리케이션 등록")
		}
	}
	return nil
}

// insertIfAbsent 비어있는 UUID와 상태, 생성 시각을 채우고 테넌트 정보를 소유자로부터 계산하여 등록합니다.
// 유일 제약에 걸리면 등록하지 않고 inserted=false를 반환합니다.
func (s *Store) insertIfAbsent(ctx context.Context, app contract.Application) (_ contract.Application, inserted bool, err error) {
	if app.UUID == "" {
		app.UUID = uuid.NewString()
	}
	if app.Status == "" {
		app.Status = contract.ApplicationStatusCreated
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = s.now().UTC()
	}
	app.TenantDomain = s.identity.TenantDomainOf(app.Owner)
	app.TenantID = s.identity.TenantIDOf(app.Owner)

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO applications (`+selectColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) ON CONFLICT DO NOTHING`,
		app.UUID, app.Name, app.Owner, app.TenantDomain, app.TenantID, app.Status, app.GroupID, app.ThrottlingPolicy, app.CreatedAt,
	)
	if err != nil {
		return contract.Application{}, false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return contract.Application{}, false, err
	}
	return app, n > 0, nil
}

// ConsumerFor 사용자 범위의 저장소 컨텍스트를 반환합니다.
func (s *Store) ConsumerFor(_ context.Context, username string) (contract.Consumer, error) {
	if strutil.IsBlank(username) {
		return nil, ErrUsernameRequired
	}
	return &consumer{store: s, username: username}, nil
}

// ApplicationsByTenantID 테넌트의 애플리케이션을 정렬하여 페이지 단위로 반환합니다.
func (s *Store) ApplicationsByTenantID(ctx context.Context, tenantID int, q contract.ListQuery) ([]contract.Application, error) {
	var w where
	w.add("tenant_id = ?", tenantID)
	if q.Owner != "" {
		w.add("owner = ?", q.Owner)
	}
	if q.Name != "" {
		w.add("name ILIKE ?", likePattern(q.Name))
	}

	return s.list(ctx, &w, q, "테넌트 애플리케이션 조회")
}

// AllApplicationsOfTenantForMigration 테넌트의 전체 애플리케이션을 이름순으로 반환합니다.
func (s *Store) AllApplicationsOfTenantForMigration(ctx context.Context, tenantDomain string) ([]contract.Application, error) {
	var w where
	w.add("tenant_domain = ?", strings.ToLower(tenantDomain))

	return s.list(ctx, &w, contract.ListQuery{SortColumn: contract.SortByName, SortOrder: contract.SortAscending}, "마이그레이션 애플리케이션 조회")
}

// Ping 데이터베이스 연결을 확인합니다.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return newErrQueryFailed(err, "연결 확인")
	}
	return nil
}

// Close 데이터베이스 연결을 닫습니다.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return apperrors.Wrap(err, apperrors.System, "애플리케이션 저장소 연결 종료 실패")
	}
	return nil
}

func (s *Store) application(ctx context.Context, id string) (*contract.Application, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM applications WHERE uuid = $1`, id)

	app, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, newErrQueryFailed(err, "애플리케이션 조회")
	}
	return &app, nil
}

// list WHERE 조건에 정렬과 구간을 붙여 조회합니다. Limit이 0 이하이면 구간을 적용하지 않습니다.
func (s *Store) list(ctx context.Context, w *where, q contract.ListQuery, operation string) ([]contract.Application, error) {
	query := `SELECT ` + selectColumns + ` FROM applications WHERE ` + strings.Join(w.conds, " AND ") + orderBy(q)

	args := w.args
	if q.Limit > 0 {
		offset := q.Offset
		if offset < 0 {
			offset = 0
		}
		query += " LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
		args = append(args, q.Limit, offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, newErrQueryFailed(err, operation)
	}
	defer rows.Close()

	apps := make([]contract.Application, 0)
	for rows.Next() {
		app, err := scan(rows)
		if err != nil {
			return nil, newErrQueryFailed(err, operation)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, newErrQueryFailed(err, operation)
	}

	return apps, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(r scanner) (contract.Application, error) {
	var app contract.Application
	err := r.Scan(&app.UUID, &app.Name, &app.Owner, &app.TenantDomain, &app.TenantID, &app.Status, &app.GroupID, &app.ThrottlingPolicy, &app.CreatedAt)
	return app, err
}

// where '?' 자리표시자를 순서대로 $n으로 바꾸며 조건을 누적합니다.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(w.args)), 1))
}

// orderBy 허용된 정렬 컬럼만 ORDER BY 절에 사용합니다. 같은 이름은 uuid 순으로 고정합니다.
func orderBy(q contract.ListQuery) string {
	column := "name"
	if q.SortColumn != "" && q.SortColumn != contract.SortByName {
		column = "uuid"
	}

	direction := "ASC"
	if q.SortOrder == contract.SortDescending {
		direction = "DESC"
	}

	return " ORDER BY " + column + " " + direction + ", uuid ASC"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern 부분 일치 검색용 ILIKE 패턴을 만듭니다.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
