package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/appdir-server/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션 식별자입니다. 로그 파일명과 설정 파일명에 사용됩니다.
	AppName string = "appdir-server"

	// DefaultFilename 실행 인자로 경로가 주어지지 않았을 때 읽는 설정 파일입니다.
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정을 덮어쓰는 환경 변수의 접두사입니다.
	// 예: APPDIR_DIRECTORY__MIGRATION_MODE=true -> directory.migration_mode
	EnvPrefix = "APPDIR_"

	// DefaultListenPort 관리 API 서버의 기본 포트
	DefaultListenPort = 9443

	// DefaultPaginationLimit 목록 조회 시 limit이 생략된 경우의 기본값
	DefaultPaginationLimit = 25

	// DefaultPaginationOffset 목록 조회 시 offset이 생략된 경우의 기본값
	DefaultPaginationOffset = 0

	// DefaultSuperAdminRole 마이그레이션 모드에서 테넌트 간 조회가 허용되는 역할
	DefaultSuperAdminRole = "admin"

	// DefaultStoreDriver 기본 애플리케이션 저장소 드라이버
	DefaultStoreDriver = StoreDriverMemory

	// SuperTenantDomain 테넌트 도메인이 없는 사용자가 속하는 기본 테넌트
	SuperTenantDomain = "carbon.super"

	// SuperTenantID SuperTenantDomain의 테넌트 ID
	SuperTenantID = -1234
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

// AppConfig 애플리케이션 설정의 최상위 구조체
type AppConfig struct {
	Debug     bool            `json:"debug"`
	AdminAPI  AdminAPIConfig  `json:"admin_api"`
	Directory DirectoryConfig `json:"directory"`
	Tenants   []TenantConfig  `json:"tenants"`
	Store     StoreConfig     `json:"store"`
}

// validate 로드 직후 각 설정 항목의 정합성을 검증합니다.
func (c *AppConfig) validate() error {
	if err := c.AdminAPI.validate(); err != nil {
		return err
	}
	if err := c.Directory.validate(); err != nil {
		return err
	}
	if err := c.validateTenants(); err != nil {
		return err
	}
	if err := c.Store.validate(); err != nil {
		return err
	}

	return nil
}

func (c *AppConfig) validateTenants() error {
	if err := checkUniqueField(validate, c.Tenants, "Domain", "Tenant"); err != nil {
		return err
	}
	if err := checkUniqueField(validate, c.Tenants, "ID", "Tenant"); err != nil {
		return err
	}

	for _, t := range c.Tenants {
		if err := checkStruct(validate, t, fmt.Sprintf("Tenant['%s']", t.Domain)); err != nil {
			return err
		}
		if strings.EqualFold(t.Domain, SuperTenantDomain) || t.ID == SuperTenantID {
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("Tenant['%s']: 기본 테넌트(%s, %d)는 별도로 등록할 수 없습니다", t.Domain, SuperTenantDomain, SuperTenantID))
		}
	}

	return nil
}

// TenantIDs 테넌트 도메인(소문자)과 테넌트 ID의 매핑을 반환합니다. 기본 테넌트를 항상 포함합니다.
func (c *AppConfig) TenantIDs() map[string]int {
	ids := make(map[string]int, len(c.Tenants)+1)
	ids[SuperTenantDomain] = SuperTenantID
	for _, t := range c.Tenants {
		ids[strings.ToLower(t.Domain)] = t.ID
	}
	return ids
}

// VerifyRecommendations 운영 안정성을 위해 권장되는 설정을 따르고 있는지 진단하여 경고 메시지를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.AdminAPI.WS.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.AdminAPI.WS.ListenPort))
	}
	if c.Directory.MigrationMode {
		warnings = append(warnings, "마이그레이션 모드가 활성화되어 있습니다. 애플리케이션 목록 조회가 테넌트 전체 조회로 동작합니다")
	}
	if c.Store.Driver == StoreDriverMemory && !c.Debug {
		warnings = append(warnings, "운영 모드에서 메모리 저장소를 사용하고 있습니다. 서버 재시작 시 데이터가 초기화됩니다")
	}

	return warnings
}

// AdminAPIConfig 관리 REST API 서버 설정
type AdminAPIConfig struct {
	WS   WSConfig   `json:"ws"`
	CORS CORSConfig `json:"cors"`
	Auth AuthConfig `json:"auth"`
}

func (c *AdminAPIConfig) validate() error {
	if err := c.WS.validate(); err != nil {
		return err
	}
	if err := c.CORS.validate(); err != nil {
		return err
	}
	return c.Auth.validate()
}

// WSConfig 웹 서버의 포트 및 TLS 설정
type WSConfig struct {
	TLSServer   bool   `json:"tls_server"`
	TLSCertFile string `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile  string `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`
	ListenPort  int    `json:"listen_port" validate:"min=1,max=65535"`
}

func (c *WSConfig) validate() error {
	if err := validate.Struct(c); err != nil {
		if fieldErr, ok := firstFieldError(err); ok {
			switch fieldErr.StructField() {
			case "ListenPort":
				return apperrors.New(apperrors.InvalidInput, "웹 서버 포트(listen_port)는 1에서 65535 사이의 값이어야 합니다")
			case "TLSCertFile", "TLSKeyFile":
				if fieldErr.Tag() == "required_if" {
					return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("TLS 서버 활성화 시 %s는 필수입니다", fieldErr.Field()))
				}
				return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지정된 TLS 파일(%s)을 찾을 수 없습니다: '%v'", fieldErr.Field(), fieldErr.Value()))
			}
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, "웹 서버 설정 검증 중 알 수 없는 오류가 발생했습니다")
	}

	return nil
}

// CORSConfig 교차 출처 리소스 공유(CORS) 정책
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"dive,cors_origin"`
}

func (c *CORSConfig) validate() error {
	if len(c.AllowOrigins) == 0 {
		return apperrors.New(apperrors.InvalidInput, "CORS 허용 도메인(allow_origins) 목록이 비어있습니다")
	}
	for _, origin := range c.AllowOrigins {
		if origin == "*" && len(c.AllowOrigins) > 1 {
			return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다")
		}
	}

	if err := validate.Struct(c); err != nil {
		if fieldErr, ok := firstFieldError(err); ok && fieldErr.Tag() == "cors_origin" {
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port])", fieldErr.Value()))
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, "CORS 설정 검증 중 알 수 없는 오류가 발생했습니다")
	}

	return nil
}

// AuthConfig 호출자 인증(Bearer JWT) 설정
type AuthConfig struct {
	// JWTSecret HS256 서명 검증에 사용하는 비밀키
	JWTSecret string `json:"jwt_secret" validate:"required,min=16"`

	// Issuer 비어있지 않으면 토큰의 iss 클레임이 일치해야 합니다.
	Issuer string `json:"issuer"`

	// RolesClaim 역할 목록을 담은 클레임 이름
	RolesClaim string `json:"roles_claim" validate:"required"`
}

func (c *AuthConfig) validate() error {
	if err := validate.Struct(c); err != nil {
		if fieldErr, ok := firstFieldError(err); ok && fieldErr.StructField() == "JWTSecret" {
			return apperrors.New(apperrors.InvalidInput, "JWT 서명 비밀키(jwt_secret)는 16자 이상이어야 합니다")
		}
		return checkStruct(validate, c, "AdminAPI.Auth")
	}
	return nil
}

// DirectoryConfig 애플리케이션 디렉토리 서비스 동작 설정
type DirectoryConfig struct {
	// MigrationMode 활성화되면 목록 조회가 테넌트 전체 조회(마이그레이션 경로)로 동작합니다.
	MigrationMode bool `json:"migration_mode"`

	// SuperAdminRole 마이그레이션 모드에서 다른 테넌트를 조회할 수 있는 기본 테넌트 사용자의 역할
	SuperAdminRole string `json:"super_admin_role" validate:"required"`

	Pagination PaginationConfig `json:"pagination"`
}

// PaginationConfig 목록 조회 기본 페이지 설정
type PaginationConfig struct {
	DefaultLimit  int `json:"default_limit" validate:"min=1"`
	DefaultOffset int `json:"default_offset" validate:"min=0"`
}

func (c *DirectoryConfig) validate() error {
	return checkStruct(validate, c, "Directory")
}

// TenantConfig 테넌트 도메인과 ID의 매핑
type TenantConfig struct {
	Domain string `json:"domain" validate:"required,hostname_rfc1123"`
	ID     int    `json:"id" validate:"required"`
}

// StoreConfig 애플리케이션 저장소 설정
type StoreConfig struct {
	Driver   string                  `json:"driver" validate:"oneof=memory postgres"`
	Postgres PostgresConfig          `json:"postgres" validate:"-"`
	Seed     []SeedApplicationConfig `json:"seed"`
}

func (c *StoreConfig) validate() error {
	if err := checkStruct(validate, c, "Store"); err != nil {
		return err
	}

	if c.Driver == StoreDriverPostgres {
		if err := checkStruct(validate, c.Postgres, "Store.Postgres"); err != nil {
			return err
		}
	}

	if err := checkUniqueField(validate, nonEmptySeedIDs(c.Seed), "ID", "Seed Application"); err != nil {
		return err
	}
	for i, s := range c.Seed {
		if err := checkStruct(validate, s, fmt.Sprintf("Store.Seed[%d]", i)); err != nil {
			return err
		}
	}

	return nil
}

func nonEmptySeedIDs(seed []SeedApplicationConfig) []SeedApplicationConfig {
	var result []SeedApplicationConfig
	for _, s := range seed {
		if s.ID != "" {
			result = append(result, s)
		}
	}
	return result
}

// PostgresConfig PostgreSQL 저장소 연결 설정
type PostgresConfig struct {
	DSN             string        `json:"dsn" validate:"required"`
	MaxOpenConns    int           `json:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int           `json:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" validate:"min=0"`
	EnsureSchema    bool          `json:"ensure_schema"`
}

// SeedApplicationConfig 서버 기동 시 메모리 저장소에 미리 등록할 애플리케이션
type SeedApplicationConfig struct {
	ID               string `json:"id" validate:"omitempty,uuid"`
	Name             string `json:"name" validate:"required"`
	Owner            string `json:"owner" validate:"required"`
	Status           string `json:"status"`
	GroupID          string `json:"group_id"`
	ThrottlingPolicy string `json:"throttling_policy"`
}

// Load 기본 설정 파일을 읽어 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// defaults 설정 파일과 환경 변수에 값이 없을 때 사용할 기본값입니다.
func defaults() map[string]any {
	return map[string]any{
		"debug":                               false,
		"admin_api.ws.listen_port":            DefaultListenPort,
		"admin_api.cors.allow_origins":        []string{"*"},
		"admin_api.auth.roles_claim":          "roles",
		"directory.migration_mode":            false,
		"directory.super_admin_role":          DefaultSuperAdminRole,
		"directory.pagination.default_limit":  DefaultPaginationLimit,
		"directory.pagination.default_offset": DefaultPaginationOffset,
		"store.driver":                        DefaultStoreDriver,
		"store.postgres.max_open_conns":       10,
		"store.postgres.max_idle_conns":       5,
		"store.postgres.conn_max_lifetime":    "30m",
		"store.postgres.ensure_schema":        true,
	}
}

// normalizeEnvKey APPDIR_ 접두사를 제거하고, 이중 언더스코어(__)를 계층 구분자(.)로 변환합니다.
// 예: APPDIR_ADMIN_API__WS__LISTEN_PORT -> admin_api.ws.listen_port
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

// LoadWithFile 지정된 설정 파일을 읽어 AppConfig를 생성합니다.
// 우선순위: 기본값 < JSON 파일 < 환경 변수
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	var appConfig AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &appConfig,
			ErrorUnused:      true,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	if err := appConfig.validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}
