// Package forms описывает поля пользовательских форм и их ограничения.
// Значения берутся из url.Values, проверка — через go-playground/validator.
package forms

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors — ошибки валидации по имени поля формы
type Errors map[string]string

// Has сообщает, есть ли ошибка у поля.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get возвращает текст ошибки поля или пустую строку.
func (e Errors) Get(field string) string {
	return e[field]
}

// Valid — true, если ошибок нет.
func (e Errors) Valid() bool {
	return len(e) == 0
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// в ошибках используем имя поля из тега form, а не имя Go-поля
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// maxbytes — длина в байтах, а не в символах
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})
	return v
}

// check прогоняет struct-валидацию и переводит ошибки в Errors.
func check(form any) Errors {
	errs := Errors{}

	err := validate.Struct(form)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// невалидный аргумент — ошибка программиста, а не пользователя
		panic(fmt.Sprintf("forms: validate %T: %v", form, err))
	}

	for _, fe := range verrs {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "maxbytes":
		return fmt.Sprintf("Field cannot be longer than %s bytes.", fe.Param())
	case "min":
		return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
	case "email":
		return "Invalid email address."
	case "url":
		return "Invalid URL."
	default:
		return "Invalid value."
	}
}

func field(values url.Values, name string) string {
	return strings.TrimSpace(values.Get(name))
}
