// Package validator go-playground/validator의 전역 인스턴스와 한국어 에러 메시지 변환을 제공합니다.
//
// 구조체 필드에 `korean` 태그를 지정하면 에러 메시지의 필드명으로 사용합니다.
//
//	type ChangeOwnerRequest struct {
//	    Owner string `query:"owner" validate:"required" korean:"새 소유자"`
//	}
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Get 전역 validator 인스턴스를 반환합니다.
func Get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("korean"); name != "" && name != "-" {
				return name
			}
			return fld.Name
		})
		instance = v
	})

	return instance
}

// Struct 구조체를 검증합니다.
func Struct(s any) error {
	return Get().Struct(s)
}

// FormatValidationError 검증 에러 중 첫 번째 항목을 사용자용 한국어 메시지로 변환합니다.
// 검증 에러가 아니면 err.Error()를 그대로 반환합니다.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err.Error()
	}

	fe := validationErrs[0]
	field := fe.Field()
	topic := field + topicParticle(field)

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s 필수입니다", topic)

	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s 최소 %s자 이상이어야 합니다", topic, fe.Param())
		}
		if fe.Tag() == "gte" && isNumeric(fe.Kind()) {
			return fmt.Sprintf("%s %s 이상이어야 합니다", topic, fe.Param())
		}
		return fmt.Sprintf("%s 최소 %s 이상이어야 합니다", topic, fe.Param())

	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s 최대 %s자까지 입력 가능합니다", topic, fe.Param())
		}
		if fe.Tag() == "lte" && isNumeric(fe.Kind()) {
			return fmt.Sprintf("%s %s 이하이어야 합니다", topic, fe.Param())
		}
		return fmt.Sprintf("%s 최대 %s까지 입력 가능합니다", topic, fe.Param())

	case "len":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s %s자여야 합니다", topic, fe.Param())
		}
		return fmt.Sprintf("%s 갯수가 %s개여야 합니다", topic, fe.Param())

	case "uuid", "uuid4":
		return fmt.Sprintf("%s 올바른 UUID 형식이어야 합니다", topic)

	case "oneof":
		return fmt.Sprintf("%s 허용된 값 중 하나여야 합니다 [%s]", topic, fe.Param())

	case "printascii":
		return fmt.Sprintf("%s ASCII 문자만 입력 가능합니다", topic)
	}

	return fmt.Sprintf("%s 값 검증 실패 (%s)", field, fe.Tag())
}

// topicParticle 단어의 마지막 글자에 받침이 있으면 "은", 없으면 "는"을 반환합니다.
// 한글이 아닌 글자로 끝나면 "는"을 사용합니다.
func topicParticle(word string) string {
	r, _ := utf8.DecodeLastRuneInString(word)
	if r < 0xAC00 || r > 0xD7A3 {
		return "는"
	}
	if (r-0xAC00)%28 != 0 {
		return "은"
	}
	return "는"
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
