package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrOffDayNotFound       = errors.New("off day request not found")
	ErrAdvanceNotFound      = errors.New("advance not found")
	ErrBillNotFound         = errors.New("bill not found")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrAlreadyProcessed     = errors.New("request already processed")
	ErrValidation           = errors.New("validation failed")
	ErrNotificationDisabled = errors.New("notification channel is not configured")
	ErrChatIDTaken          = errors.New("chat id is already linked to another employee")
)

// ErrMissingEmploymentStart: без даты начала работы диапазон не определен
var ErrMissingEmploymentStart = &ValidationError{
	Field:   "employment_start_date",
	Message: "employment start date is not set",
}

// ValidationError описывает некорректные входные данные
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StorageError оборачивает сбой чтения или записи в хранилище
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func permissionDenied(message string) error {
	return fmt.Errorf("%w: %s", ErrPermissionDenied, message)
}
