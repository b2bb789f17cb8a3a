package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// mountain_kind - тип вершины из OSM тега natural
	_ = validate.RegisterValidation("mountain_kind", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", "peak", "volcano":
			return true
		}
		return false
	})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
