package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Sparepart-api/internal/domain"
)

// Querier lo comparten *pgxpool.Pool y pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Códigos SQLSTATE usados por los repositorios.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
)

// psql builder de squirrel con placeholders $n.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if code := pgCode(err); code != "" {
		return code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// isForeignKeyViolation fila referenciada por otra tabla, o referencia a fila inexistente (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// isInvalidText id que no es un UUID válido (22P02).
func isInvalidText(err error) bool {
	return pgCode(err) == codeInvalidText
}

// wrapErr traduce errores de Postgres a errores de dominio.
func wrapErr(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, op)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: %s: data masih direferensikan", domain.ErrConflict, op)
	case isInvalidText(err):
		return fmt.Errorf("%w: %s: id tidak valid", domain.ErrInvalidInput, op)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// rowsErr pgx entrega algunos errores del servidor (22P02 en filtros) recién al iterar.
func rowsErr(op string, rows pgx.Rows) error {
	if err := rows.Err(); err != nil {
		return wrapErr(op, err)
	}
	return nil
}

// execAffected ejecuta y devuelve ErrNotFound si no afectó filas.
func execAffected(ctx context.Context, q Querier, op string, b sq.Sqlizer) error {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%s: build: %w", op, err)
	}
	ct, err := q.Exec(ctx, sqlStr, args...)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return wrapErr(op, err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
