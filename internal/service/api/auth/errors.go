package auth

import (
	"errors"

	apperrors "github.com/darkkaiser/appdir-server/internal/pkg/errors"
	"github.com/darkkaiser/appdir-server/internal/service/api/constants"
)

var (
	// ErrCallerMissingInContext Context 내에서 호출자 정보를 조회할 수 없을 때 반환하는 에러입니다.
	ErrCallerMissingInContext = errors.New("Context에서 호출자 정보를 찾을 수 없습니다")

	// ErrCallerTypeMismatch Context에 저장된 객체가 contract.Caller 타입이 아닐 때 반환하는 에러입니다.
	ErrCallerTypeMismatch = errors.New("Context에 저장된 호출자 정보의 타입이 올바르지 않습니다")

	// ErrTokenRequired Bearer 토큰이 없을 때 반환하는 인증 에러입니다.
	ErrTokenRequired = apperrors.New(apperrors.Unauthorized, constants.ErrMsgAuthBearerRequired)

	// ErrSubjectRequired 토큰에 사용자명(sub)이 없을 때 반환하는 인증 에러입니다.
	ErrSubjectRequired = apperrors.New(apperrors.Unauthorized, constants.ErrMsgAuthInvalidToken)
)

func newErrInvalidToken(err error) error {
	return apperrors.Wrap(err, apperrors.Unauthorized, constants.ErrMsgAuthInvalidToken)
}
