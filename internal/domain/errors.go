package domain

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Определение бизнес-ошибок
var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrDuplicateEmployeeID = errors.New("employee id already exists")
	ErrDuplicateEmail      = errors.New("email already in use")
	ErrDuplicateAttendance = errors.New("attendance already marked for this date")
	ErrInvalidStatus       = errors.New("invalid attendance status")
	ErrNotFound            = errors.New("resource not found")
	ErrNotFoundLocally     = errors.New("selected employee is no longer present")
	ErrBusy                = errors.New("another operation is in progress")
	ErrNoSelection         = errors.New("no employee selected")
	ErrNotConfirmed        = errors.New("operation was not confirmed")
	ErrFormClosed          = errors.New("form is not open")
	ErrReadOnlyField       = errors.New("field is read-only")
	ErrUnknownField        = errors.New("unknown form field")
	ErrFutureDate          = errors.New("date cannot be in the future")
)

// ValidationError - ошибки полей формы, обнаруженные на клиенте.
// До сети такие ошибки никогда не доходят.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// RemoteError - неуспешный ответ удалённого сервиса или ошибка транспорта
type RemoteError struct {
	Op         string
	StatusCode int
	Detail     string
	Err        error
}

// GenericRemoteMessage - сообщение по умолчанию, если сервис не вернул detail
const GenericRemoteMessage = "Network error: unable to reach the server"

func (e *RemoteError) Error() string {
	msg := e.Op + ": " + e.Message()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message())
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Message возвращает человекочитаемый текст ошибки
func (e *RemoteError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.StatusCode >= 300 {
		return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
	}
	return GenericRemoteMessage
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is позволяет сравнивать 404 с ErrNotFound через errors.Is
func (e *RemoteError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Detail извлекает detail из RemoteError или возвращает fallback
func Detail(err error, fallback string) string {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Detail != "" {
		return remoteErr.Detail
	}
	return fallback
}
