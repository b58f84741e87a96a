package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Базовые категории ошибок сервисного слоя. Конкретные ошибки оборачивают
// их через %w, контроллеры сопоставляют категорию с HTTP-статусом.
var (
	ErrNotFound     = errors.New("запись не найдена")
	ErrInvalidState = errors.New("недопустимое состояние")
	ErrValidation   = errors.New("ошибка валидации")
)

var (
	ErrLoanNotFound          = fmt.Errorf("заем не найден: %w", ErrNotFound)
	ErrChargesNotFound       = fmt.Errorf("административные сборы не найдены: %w", ErrNotFound)
	ErrReceiptNotFound       = fmt.Errorf("платеж не найден: %w", ErrNotFound)
	ErrFuturePaymentNotFound = fmt.Errorf("запланированный платеж не найден: %w", ErrNotFound)
	ErrNoPendingLoans        = fmt.Errorf("нет займов на рассмотрении: %w", ErrNotFound)

	ErrLoanTerminal      = fmt.Errorf("статус займа уже финальный: %w", ErrInvalidState)
	ErrReceiptNotPending = fmt.Errorf("подтверждать или отклонять можно только платежи в статусе pendiente: %w", ErrInvalidState)
)

// translateValidationErrors преобразует ошибки валидатора в читаемое сообщение
func translateValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var errorMessages []string
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			errorMessages = append(errorMessages, "поле "+e.Field()+" обязательно")
		case "gt":
			errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть больше "+e.Param())
		case "gte":
			errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть не меньше "+e.Param())
		case "lte":
			errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть не больше "+e.Param())
		case "datetime":
			errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть датой в формате "+e.Param())
		default:
			errorMessages = append(errorMessages, "поле "+e.Field()+" заполнено неверно")
		}
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errorMessages, "; "))
}
