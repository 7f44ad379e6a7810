package handler

import (
	"github.com/darkkaiser/appdir-server/internal/service/api/constants"
	"github.com/darkkaiser/appdir-server/internal/service/api/httputil"
)

// NewErrInvalidQuery 쿼리 파라미터를 해석할 수 없을 때(예: 숫자가 아닌 limit) 발생하는 에러를 생성합니다.
func NewErrInvalidQuery() error {
	return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidQuery)
}

// NewErrValidationFailed 요청 값의 필수 항목 누락이나 범위 위반 등 유효성 검증에 실패했을 때 발생하는 에러를 생성합니다.
func NewErrValidationFailed(msg string) error {
	return httputil.NewBadRequestError(msg)
}
