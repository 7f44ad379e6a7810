package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "github.com/darkkaiser/appdir-server/internal/pkg/errors"
	"github.com/darkkaiser/appdir-server/pkg/validation"
	"github.com/go-playground/validator/v10"
)

// validate 설정 검증 전용 인스턴스입니다. 에러 메시지에 json 태그 이름을 사용합니다.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("cors_origin", func(fl validator.FieldLevel) bool {
		return validation.ValidateCORSOrigin(fl.Field().String()) == nil
	}); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'cors_origin' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return v
}

// firstFieldError 검증 에러 중 첫 번째 필드 에러를 꺼냅니다.
func firstFieldError(err error) (validator.FieldError, bool) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return validationErrs[0], true
	}
	return nil, false
}

// checkStruct 구조체를 검증하고 첫 번째 위반 항목을 설정 위치와 함께 보고합니다.
func checkStruct(v *validator.Validate, s any, contextName string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	if fieldErr, ok := firstFieldError(err); ok {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 설정이 올바르지 않습니다: %s (조건: %s)", contextName, fieldErr.Field(), fieldErr.Tag()))
	}
	return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 유효성 검증에 실패했습니다", contextName))
}

// checkUniqueField 슬라이스 원소의 특정 필드 값이 유일한지 검사합니다.
func checkUniqueField(v *validator.Validate, data any, fieldName, contextName string) error {
	err := v.Var(data, "unique="+fieldName)
	if err == nil {
		return nil
	}

	if fieldErr, ok := firstFieldError(err); ok && fieldErr.Tag() == "unique" {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("중복된 %s %s가 존재합니다", contextName, fieldName))
	}
	return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 유일성 검증에 실패했습니다", contextName))
}
