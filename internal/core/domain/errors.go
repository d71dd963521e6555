package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrListingExists   = errors.New("listing already exists")
	ErrValidation      = errors.New("validation failed")
)

// ValidationError - ошибка входных данных с сообщением для пользователя.
type ValidationError struct {
	Message string
	// Missing - витринные ключи незаполненных обязательных полей
	Missing []string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NewMissingFieldsError перечисляет все пропущенные поля сразу, в именах полей формы.
func NewMissingFieldsError(missing []string) *ValidationError {
	names := make([]string, 0, len(missing))
	for _, key := range missing {
		names = append(names, FormName(key))
	}
	return &ValidationError{
		Message: "Please fill all required fields. Missing: " + strings.Join(names, ", "),
		Missing: missing,
	}
}

// ListingExistsError - конфликт по внешнему id.
type ListingExistsError struct {
	ID string
}

func (e *ListingExistsError) Error() string {
	return fmt.Sprintf("Listing with ID %s already exists", e.ID)
}

func (e *ListingExistsError) Unwrap() error { return ErrListingExists }
