package validator

import (
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные правила валидации форм.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'notblank': строка не пустая после trim
	mustRegister("notblank", validateNotBlank)

	// 'numeric-id': положительный идентификатор записи (receiver_id, :id)
	mustRegister("numeric-id", validateNumericID)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateNumericID(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	id, err := strconv.ParseInt(value, 10, 64)
	return err == nil && id > 0
}
