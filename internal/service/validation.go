package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/ecofinds/internal/constants"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// 错误字段名使用 json 标签，与请求体保持一致
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return constants.IsValidCategory(fl.Field().String())
	})
	_ = v.RegisterValidation("condition", func(fl validator.FieldLevel) bool {
		return constants.IsValidCondition(fl.Field().String())
	})
	_ = v.RegisterValidation("availability", func(fl validator.FieldLevel) bool {
		return constants.IsValidAvailability(fl.Field().String())
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

// validateStruct 按结构体标签校验，失败时转换为 ValidationError
func validateStruct(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}
	fields := make([]FieldError, 0, len(vErrs))
	for _, vErr := range vErrs {
		fields = append(fields, FieldError{
			Field:   fieldPath(vErr),
			Message: describeFieldError(vErr),
		})
	}
	return &ValidationError{Fields: fields}
}

// fieldPath 去掉顶层结构体名，保留嵌套路径，例如 location.city
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func describeFieldError(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if isStringKind(fe.Kind()) {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isStringKind(fe.Kind()) {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "email":
		return "please enter a valid email"
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "category":
		return "invalid category"
	case "condition":
		return "invalid condition"
	case "availability":
		return "invalid availability"
	case "username":
		return "username can only contain letters, numbers, and underscores"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func isStringKind(kind reflect.Kind) bool {
	return kind == reflect.String
}
