package errors

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStd = errors.New("standard error")

// =============================================================================
// ErrorType
// =============================================================================

func TestErrorType_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		errType ErrorType
		want    string
	}{
		{Unknown, "Unknown"},
		{Internal, "Internal"},
		{System, "System"},
		{Unauthorized, "Unauthorized"},
		{Forbidden, "Forbidden"},
		{InvalidInput, "InvalidInput"},
		{NotFound, "NotFound"},
		{Timeout, "Timeout"},
		{Unavailable, "Unavailable"},
		{Unreachable, "Unreachable"},
		{ErrorType(-1), "ErrorType(-1)"},
		{ErrorType(999), "ErrorType(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.errType.String())
		})
	}
}

// =============================================================================
// Creation
// =============================================================================

func TestNew(t *testing.T) {
	t.Parallel()

	err := New(NotFound, "애플리케이션을 찾을 수 없습니다")

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, NotFound, appErr.Type())
	assert.Equal(t, "애플리케이션을 찾을 수 없습니다", appErr.Message())
	assert.Equal(t, "[NotFound] 애플리케이션을 찾을 수 없습니다", err.Error())
	assert.Nil(t, appErr.Unwrap())
}

func TestNewf(t *testing.T) {
	t.Parallel()

	err := Newf(Forbidden, "사용자(%s)는 현재 테넌트에서 사용할 수 없습니다", "bob@t2.com")
	assert.Equal(t, "[Forbidden] 사용자(bob@t2.com)는 현재 테넌트에서 사용할 수 없습니다", err.Error())
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("원인 에러 포함", func(t *testing.T) {
		err := Wrap(errStd, System, "쿼리 실패")
		assert.Equal(t, "[System] 쿼리 실패: standard error", err.Error())
		assert.ErrorIs(t, err, errStd)
	})

	t.Run("nil 에러는 nil 반환", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, System, "x"))
		assert.Nil(t, Wrapf(nil, System, "x %d", 1))
	})

	t.Run("Wrapf 포맷", func(t *testing.T) {
		err := Wrapf(errStd, Internal, "사용자(%s) 조회 실패", "alice")
		assert.Equal(t, "[Internal] 사용자(alice) 조회 실패: standard error", err.Error())
	})
}

// =============================================================================
// Chain inspection
// =============================================================================

func TestIs(t *testing.T) {
	t.Parallel()

	err := Wrap(New(NotFound, "not found"), Internal, "delete failed")

	assert.True(t, Is(err, NotFound))
	assert.True(t, Is(err, Internal))
	assert.False(t, Is(err, Forbidden))
	assert.False(t, Is(errStd, Unknown))
	assert.False(t, Is(nil, Unknown))
}

func TestUnderlyingTypeAndTypeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		wantUnderlying ErrorType
		wantOuter      ErrorType
	}{
		{"nil", nil, Unknown, Unknown},
		{"표준 에러", errStd, Unknown, Unknown},
		{"단일 AppError", New(Forbidden, "x"), Forbidden, Forbidden},
		{"AppError 체인", Wrap(New(NotFound, "x"), Internal, "y"), NotFound, Internal},
		{"외부 에러 래핑", Wrap(errStd, System, "x"), System, System},
		{"fmt.Errorf로 감싼 AppError", fmt.Errorf("ctx: %w", New(Unreachable, "x")), Unreachable, Unreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantUnderlying, UnderlyingType(tt.err))
			assert.Equal(t, tt.wantOuter, TypeOf(tt.err))
		})
	}
}

func TestMessageOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "바깥", MessageOf(Wrap(New(NotFound, "안쪽"), Internal, "바깥")))
	assert.Equal(t, "", MessageOf(errStd))
}

func TestRootCause(t *testing.T) {
	t.Parallel()

	assert.Nil(t, RootCause(nil))
	assert.Equal(t, errStd, RootCause(Wrap(Wrap(errStd, System, "a"), Internal, "b")))
}

func TestAs(t *testing.T) {
	t.Parallel()

	var appErr *AppError
	assert.True(t, As(fmt.Errorf("wrapped: %w", New(InvalidInput, "bad")), &appErr))
	assert.Equal(t, InvalidInput, appErr.Type())
}

// =============================================================================
// Format & Stack
// =============================================================================

func TestAppError_Format(t *testing.T) {
	t.Parallel()

	err := Wrap(Wrap(errStd, System, "inner"), Internal, "outer")

	assert.Equal(t, err.Error(), fmt.Sprintf("%s", err))
	assert.Equal(t, fmt.Sprintf("%q", err.Error()), fmt.Sprintf("%q", err))

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "[Internal] outer")
	assert.Contains(t, detailed, "Caused by:")
	assert.Contains(t, detailed, "[System] inner")
	assert.Contains(t, detailed, "standard error")
	assert.Equal(t, 1, strings.Count(detailed, "Stack trace:"), "스택은 체인의 끝에서 한 번만 출력되어야 합니다")
}

func TestStackTrace(t *testing.T) {
	t.Parallel()

	err := New(Internal, "x")

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	require.NotEmpty(t, appErr.Stack())
	assert.LessOrEqual(t, len(appErr.Stack()), maxStackFrames)
	assert.Equal(t, "errors_test.go", appErr.Stack()[0].File)
	assert.Contains(t, appErr.Stack()[0].Function, "TestStackTrace")
}

func TestConcurrentErrorCreation(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	errs := make([]error, 100)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = Wrapf(errStd, System, "op %d", i)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.Equal(t, fmt.Sprintf("[System] op %d: standard error", i), err.Error())
	}
}
