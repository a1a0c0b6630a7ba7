// Package validation собирает валидатор входных запросов с правилами предметной области:
// мозамбикский номер телефона, календарная дата и денежные суммы в decimal.
package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

var mozPhone = regexp.MustCompile(`^(\+258)?8[2-7]\d{7}$`)

// New возвращает validator.Validate с зарегистрированными тегами moz_phone и date
// и поддержкой сравнения decimal.Decimal (gte, lte, gt).
func New() *validator.Validate {
	v := validator.New()

	// в ошибках поля называются так же, как в JSON запроса
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// ошибки регистрации возможны только при пустом имени тега
	_ = v.RegisterValidation("moz_phone", func(fl validator.FieldLevel) bool {
		return mozPhone.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	})

	return v
}
