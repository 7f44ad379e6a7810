package directory

import (
	apperrors "github.com/darkkaiser/appdir-server/internal/pkg/errors"
)

var (
	// ErrOwnerRequired 소유자 변경 요청에 새 소유자가 지정되지 않았을 때 반환되는 에러입니다.
	ErrOwnerRequired = apperrors.New(apperrors.InvalidInput, "새 소유자(owner)를 지정해야 합니다")

	// ErrApplicationIDRequired 애플리케이션 ID가 비어있을 때 반환되는 에러입니다.
	ErrApplicationIDRequired = apperrors.New(apperrors.InvalidInput, "애플리케이션 ID를 지정해야 합니다")
)

func newErrInvalidLimit(limit int) error {
	return apperrors.Newf(apperrors.InvalidInput, "limit은 1 이상이어야 합니다 (입력값: %d)", limit)
}

func newErrInvalidOffset(offset int) error {
	return apperrors.Newf(apperrors.InvalidInput, "offset은 0 이상이어야 합니다 (입력값: %d)", offset)
}

func newErrCrossTenantUser(user string) error {
	return apperrors.Newf(apperrors.Forbidden, "사용자(%s)는 호출자와 다른 테넌트에 속해 있어 조회할 수 없습니다", user)
}

func newErrListFailed(err error, user string) error {
	return apperrors.Wrapf(err, apperrors.Internal, "사용자(%s)의 애플리케이션 목록을 조회하는 중 에러가 발생했습니다", user)
}

func newErrApplicationNotFound(id string) error {
	return apperrors.Newf(apperrors.NotFound, "애플리케이션(%s)을 찾을 수 없습니다", id)
}

func newErrDeleteFailed(err error, id string) error {
	return apperrors.Wrapf(err, apperrors.Internal, "애플리케이션(%s)을 삭제하는 중 에러가 발생했습니다", id)
}

func newErrChangeOwnerFailed(err error, id, owner string) error {
	if err == nil {
		return apperrors.Newf(apperrors.Internal, "애플리케이션(%s)의 소유자를 %s(으)로 변경하지 못했습니다", id, owner)
	}
	return apperrors.Wrapf(err, apperrors.Internal, "애플리케이션(%s)의 소유자를 %s(으)로 변경하는 중 에러가 발생했습니다", id, owner)
}

func newErrUnreachable(mode ListMode) error {
	return apperrors.Newf(apperrors.Unreachable, "알 수 없는 조회 모드(%s)입니다", mode)
}
