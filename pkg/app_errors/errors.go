package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidWindow       = errors.New("sale window starts after it ends")
	ErrSubmissionInFlight  = errors.New("another submission is in flight")
	ErrCapacityNotCached   = errors.New("capacity total not cached")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrInternalServerError = errors.New("internal server error")
)

// FieldError 帶欄位名稱的驗證錯誤，讓前端能顯示 inline 訊息
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}

func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}
