package constants

// 클라이언트에게 반환되는 에러 메시지 상수입니다.
const (
	// ------------------------------------------------------------------------------------------------
	// 일반 HTTP 에러 (상태 코드 순)
	// ------------------------------------------------------------------------------------------------

	// 400 Bad Request
	ErrMsgBadRequest             = "잘못된 요청입니다"
	ErrMsgBadRequestInvalidQuery = "쿼리 파라미터를 해석할 수 없습니다"

	// 401 Unauthorized
	ErrMsgUnauthorized = "인증이 필요합니다"

	// 403 Forbidden
	ErrMsgForbidden = "요청한 리소스에 접근할 권한이 없습니다"

	// 404 Not Found
	ErrMsgNotFound = "요청한 리소스를 찾을 수 없습니다"

	// 413 Request Entity Too Large
	ErrMsgRequestEntityTooLarge = "요청 본문이 너무 큽니다"

	// 429 Too Many Requests
	ErrMsgTooManyRequests = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"

	// 500 Internal Server Error
	ErrMsgInternalServer = "내부 서버 오류가 발생했습니다"

	// 503 Service Unavailable
	ErrMsgServiceUnavailable = "서비스가 점검 중이거나 종료되었습니다. 관리자에게 문의해 주세요"

	// ------------------------------------------------------------------------------------------------
	// 인증 에러
	// ------------------------------------------------------------------------------------------------

	// ErrMsgAuthBearerRequired Authorization 헤더 누락
	ErrMsgAuthBearerRequired = "Authorization 헤더에 Bearer 토큰이 필요합니다"

	// ErrMsgAuthInvalidToken 서명 또는 클레임 검증 실패
	ErrMsgAuthInvalidToken = "유효하지 않은 접근 토큰입니다"

	// ------------------------------------------------------------------------------------------------
	// 성공 메시지
	// ------------------------------------------------------------------------------------------------

	MsgApplicationDeleted      = "애플리케이션이 삭제되었습니다"
	MsgApplicationOwnerChanged = "애플리케이션 소유자가 변경되었습니다"
)
