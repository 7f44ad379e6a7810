package memory

import (
	apperrors "github.com/darkkaiser/appdir-server/internal/pkg/errors"
)

var (
	// ErrStoreClosed 종료된 저장소에 요청이 들어왔을 때 반환되는 에러입니다.
	ErrStoreClosed = apperrors.New(apperrors.System, "애플리케이션 저장소가 종료되어 요청을 처리할 수 없습니다")

	// ErrUsernameRequired 사용자명 없이 저장소 컨텍스트를 요청했을 때 반환되는 에러입니다.
	ErrUsernameRequired = apperrors.New(apperrors.InvalidInput, "저장소 컨텍스트를 생성하려면 사용자명이 필요합니다")
)

func newErrDuplicateApplication(id string) error {
	return apperrors.Newf(apperrors.InvalidInput, "이미 등록된 애플리케이션 ID(%s)입니다", id)
}

func newErrInvalidApplication(field string) error {
	return apperrors.Newf(apperrors.InvalidInput, "애플리케이션의 %s 값이 비어있습니다", field)
}

func newErrApplicationNotFound(id string) error {
	return apperrors.Newf(apperrors.NotFound, "애플리케이션(%s)이 저장소에 없습니다", id)
}

func newErrNotOwner(id, username string) error {
	return apperrors.Newf(apperrors.Forbidden, "사용자(%s)는 애플리케이션(%s)의 소유자가 아닙니다", username, id)
}

func newErrContextDone(err error) error {
	return apperrors.Wrap(err, apperrors.Timeout, "요청이 취소되었거나 제한 시간을 초과했습니다")
}
