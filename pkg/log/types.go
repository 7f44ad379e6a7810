package log

import (
	"github.com/sirupsen/logrus"
)

// Level logrus.Level의 별칭입니다.
type Level = logrus.Level

// 이 서버가 사용하는 로그 레벨입니다. Panic/Fatal은 직접 기록하지 않으므로 두지 않습니다.
const (
	// ErrorLevel 관리자의 확인이 필요한 오류입니다. (저장소 장애, 5xx 응답 등)
	ErrorLevel Level = logrus.ErrorLevel

	// WarnLevel 클라이언트 요청 오류나 권한 위반처럼 주의가 필요한 상황입니다.
	WarnLevel Level = logrus.WarnLevel

	// InfoLevel 정상적인 처리 흐름과 상태 변화입니다.
	InfoLevel Level = logrus.InfoLevel

	// DebugLevel 개발 및 장애 분석용 상세 정보입니다.
	DebugLevel Level = logrus.DebugLevel

	// TraceLevel 요청 단위 추적 정보입니다. 개발 모드에서만 기록합니다.
	TraceLevel Level = logrus.TraceLevel
)

// AllLevels logrus.AllLevels의 별칭입니다.
var AllLevels = logrus.AllLevels

type (
	Fields        = logrus.Fields
	Entry         = logrus.Entry
	Logger        = logrus.Logger
	Formatter     = logrus.Formatter
	JSONFormatter = logrus.JSONFormatter
)
