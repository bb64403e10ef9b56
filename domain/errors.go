package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeValidation         ErrorCode = "VALIDATION"
	ErrCodeConflict           ErrorCode = "CONFLICT"
	ErrCodeDuplicateUser      ErrorCode = "DUPLICATE_USER"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeExpiredToken       ErrorCode = "EXPIRED_TOKEN"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeInactiveUser       ErrorCode = "INACTIVE_USER"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrCodeInternal           ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation builds a field-level validation error.
func Validation(message string) *Error {
	return NewError(ErrCodeValidation, message)
}

// Common domain errors. Client-facing messages stay in Spanish, matching the
// product locale.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the response never reveals whether an account exists.
	ErrInvalidCredentials = NewError(ErrCodeInvalidCredentials, "Credenciales inválidas")
	// ErrDuplicateUser answers 400 alongside the other registration
	// validation failures, not 409.
	ErrDuplicateUser      = NewError(ErrCodeDuplicateUser, "El usuario ya existe")
	ErrDuplicateTenant    = NewError(ErrCodeConflict, "El inquilino ya existe")
	ErrDuplicateRoutine   = NewError(ErrCodeConflict, "Ya existe una rutina para ese día")
	ErrUnauthorized       = NewError(ErrCodeUnauthorized, "Usuario no autenticado")
	ErrTokenExpired       = NewError(ErrCodeExpiredToken, "Token expirado")
	ErrTokenInvalid       = NewError(ErrCodeInvalidToken, "Token no válido")
	ErrRefreshExpired     = NewError(ErrCodeExpiredToken, "Refresh token expirado")
	ErrRefreshInvalid     = NewError(ErrCodeInvalidToken, "Refresh token inválido")
	ErrInactiveUser       = NewError(ErrCodeInactiveUser, "Usuario inactivo")
	ErrForbidden          = NewError(ErrCodeForbidden, "No tienes permisos para realizar esta acción")

	ErrUserNotFound        = NewError(ErrCodeNotFound, "Usuario no encontrado")
	ErrPropertyNotFound    = NewError(ErrCodeNotFound, "Propiedad no encontrada")
	ErrTenantNotFound      = NewError(ErrCodeNotFound, "Inquilino no encontrado")
	ErrLeaseNotFound       = NewError(ErrCodeNotFound, "Contrato no encontrado")
	ErrTransactionNotFound = NewError(ErrCodeNotFound, "Transacción no encontrada")
	ErrRoutineNotFound     = NewError(ErrCodeNotFound, "Rutina no encontrada")
	ErrProjectNotFound     = NewError(ErrCodeNotFound, "Proyecto no encontrado")
	ErrTaskNotFound        = NewError(ErrCodeNotFound, "Tarea no encontrada")

	ErrInvalidPayload = NewError(ErrCodeValidation, "Datos inválidos")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
