package postgres

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/gymdesk-api/internal/domain"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
)

// validID indica si id tiene la forma canónica de las columnas UUID.
// Un id con otra forma no puede existir: los repos lo tratan como no encontrado sin consultar.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

// readError trata un id mal formado rechazado por Postgres (22P02) como no encontrado.
func readError(op string, err error) error {
	if pgCode(err) == codeInvalidText {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// writeError traduce los rechazos de constraints a errores de dominio; el resto se envuelve con op.
//   - 23505 → ErrDuplicate (DNI repetido, turno repetido)
//   - 23503 → ErrOwnerNotFound (la cuenta fue eliminada)
//   - 23514 → ErrInvalidInput (monto cero, cupo excedido)
func writeError(op string, err error) error {
	switch pgCode(err) {
	case codeUniqueViolation:
		return domain.ErrDuplicate
	case codeForeignKeyViolation:
		return domain.ErrOwnerNotFound
	case codeCheckViolation:
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidInput)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
