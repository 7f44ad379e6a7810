package auth

import (
	"fmt"

	"github.com/darkkaiser/appdir-server/internal/service/api/constants"
	"github.com/darkkaiser/appdir-server/internal/service/contract"
	"github.com/labstack/echo/v4"
)

// SetCaller 인증된 호출자 정보를 Context에 저장합니다.
func SetCaller(c echo.Context, caller contract.Caller) {
	c.Set(constants.ContextKeyCaller, caller)
}

// GetCaller Context에서 호출자 정보를 조회합니다.
func GetCaller(c echo.Context) (contract.Caller, bool) {
	caller, err := lookupCaller(c)
	return caller, err == nil
}

// MustGetCaller Context에서 호출자 정보를 조회합니다.
// 인증 미들웨어를 통과하여 호출자 정보가 반드시 존재한다고 보장될 때 사용합니다.
func MustGetCaller(c echo.Context) contract.Caller {
	caller, err := lookupCaller(c)
	if err != nil {
		panic(fmt.Sprintf(constants.PanicMsgAuthContextCallerNotFound, err))
	}
	return caller
}

func lookupCaller(c echo.Context) (contract.Caller, error) {
	val := c.Get(constants.ContextKeyCaller)
	if val == nil {
		return contract.Caller{}, ErrCallerMissingInContext
	}

	caller, ok := val.(contract.Caller)
	if !ok {
		return contract.Caller{}, ErrCallerTypeMismatch
	}
	return caller, nil
}
