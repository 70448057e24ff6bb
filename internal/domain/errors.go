package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrOwnerNotFound      = errors.New("cuenta no encontrada")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrSlotFull           = errors.New("el turno no tiene lugares disponibles")
)

// ValidationError rechazo de un campo concreto antes de cualquier escritura.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap permite tratar el error como ErrInvalidInput.
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// FieldOf devuelve el campo rechazado si err es un ValidationError.
func FieldOf(err error) (string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Field, true
	}
	return "", false
}
