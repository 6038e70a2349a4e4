package dto

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// emailPattern - упрощённая проверка вида local@domain.tld
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NewValidator создаёт валидатор с зарегистрированным тегом basic_email
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
	return v
}

// IsEmail проверяет строку по шаблону local@domain.tld
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}
