package auth

import (
	"github.com/darkkaiser/appdir-server/internal/config"
	"github.com/darkkaiser/appdir-server/internal/service/api/constants"
	"github.com/darkkaiser/appdir-server/internal/service/contract"
	"github.com/darkkaiser/appdir-server/internal/service/identity"
	applog "github.com/darkkaiser/appdir-server/pkg/log"
	"github.com/darkkaiser/appdir-server/pkg/strutil"
	"github.com/golang-jwt/jwt/v5"
)

// Authenticator Bearer 토큰(HS256 JWT)을 검증하여 호출자를 식별합니다.
//
// 토큰의 sub 클레임이 사용자명이 되고, 테넌트 도메인은 사용자명으로부터 유도됩니다.
// 역할 목록은 설정된 클레임(기본값: roles)에서 읽습니다.
//
// 생성 후에는 읽기 전용이므로 여러 고루틴에서 동시에 사용할 수 있습니다.
type Authenticator struct {
	secret     []byte
	rolesClaim string

	parser *jwt.Parser
}

// NewAuthenticator 인증 설정으로 Authenticator를 생성합니다.
func NewAuthenticator(cfg config.AuthConfig) *Authenticator {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	rolesClaim := cfg.RolesClaim
	if rolesClaim == "" {
		rolesClaim = "roles"
	}

	return &Authenticator{
		secret:     []byte(cfg.JWTSecret),
		rolesClaim: rolesClaim,

		parser: jwt.NewParser(opts...),
	}
}

// Authenticate 토큰을 검증하고 호출자 정보를 반환합니다.
func (a *Authenticator) Authenticate(token string) (contract.Caller, error) {
	if strutil.IsBlank(token) {
		return contract.Caller{}, ErrTokenRequired
	}

	claims := jwt.MapClaims{}
	if _, err := a.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}); err != nil {
		applog.WithComponentAndFields(constants.ComponentMiddlewareAuthentication, applog.Fields{
			"error": err.Error(),
		}).Warn(constants.LogMsgAuthenticationFailed)

		return contract.Caller{}, newErrInvalidToken(err)
	}

	subject, err := claims.GetSubject()
	if err != nil || strutil.IsBlank(subject) {
		return contract.Caller{}, ErrSubjectRequired
	}

	return contract.Caller{
		Username:     subject,
		TenantDomain: identity.TenantDomainOf(subject),
		Roles:        rolesOf(claims[a.rolesClaim]),
	}, nil
}

// rolesOf 역할 클레임을 문자열 목록으로 변환합니다. 쉼표로 구분된 문자열 또는 문자열 배열을 허용합니다.
func rolesOf(v any) []string {
	switch roles := v.(type) {
	case string:
		return strutil.SplitAndTrim(roles, ",")
	case []any:
		result := make([]string, 0, len(roles))
		for _, r := range roles {
			if s, ok := r.(string); ok && s != "" {
				result = append(result, s)
			}
		}
		return result
	default:
		return nil
	}
}
