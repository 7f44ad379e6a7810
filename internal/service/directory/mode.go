package directory

import "strconv"

// ListMode 애플리케이션 목록 조회 경로를 결정하는 모드입니다.
type ListMode int

const (
	// ListModeNormal 호출자 테넌트 안에서 사용자/이름 조건으로 조회합니다.
	ListModeNormal ListMode = iota

	// ListModeMigration 데이터 이전 작업을 위해 테넌트 전체 애플리케이션을 조회합니다.
	ListModeMigration
)

// ListModeFrom 설정의 마이그레이션 여부로부터 조회 모드를 결정합니다.
func ListModeFrom(migration bool) ListMode {
	if migration {
		return ListModeMigration
	}
	return ListModeNormal
}

func (m ListMode) String() string {
	switch m {
	case ListModeNormal:
		return "normal"
	case ListModeMigration:
		return "migration"
	default:
		return "ListMode(" + strconv.Itoa(int(m)) + ")"
	}
}
