package postgres

import (
	"errors"

	apperrors "github.com/darkkaiser/appdir-server/internal/pkg/errors"
	"github.com/lib/pq"
)

// pqUniqueViolation PostgreSQL unique_violation 에러 코드
const pqUniqueViolation = "23505"

// ErrUsernameRequired 사용자명 없이 저장소 컨텍스트를 요청했을 때 반환되는 에러입니다.
var ErrUsernameRequired = apperrors.New(apperrors.InvalidInput, "저장소 컨텍스트를 생성하려면 사용자명이 필요합니다")

// newErrQueryFailed 드라이버 에러를 System 에러로 감쌉니다. 중복 키 위반은 InvalidInput으로 분류합니다.
func newErrQueryFailed(err error, operation string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return apperrors.Wrapf(err, apperrors.InvalidInput, "애플리케이션 저장소 %s 실패: 중복된 키(%s)", operation, pqErr.Constraint)
	}
	return apperrors.Wrapf(err, apperrors.System, "애플리케이션 저장소 %s 실패", operation)
}

func newErrApplicationNotFound(id string) error {
	return apperrors.Newf(apperrors.NotFound, "애플리케이션(%s)이 저장소에 없습니다", id)
}

func newErrNotOwner(id, username string) error {
	return apperrors.Newf(apperrors.Forbidden, "사용자(%s)는 애플리케이션(%s)의 소유자가 아닙니다", username, id)
}
