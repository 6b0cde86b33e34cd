package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier abstrae pgxpool.Pool y pgx.Tx: los repositorios funcionan igual
// sobre el pool (operaciones sueltas) o dentro de una transacción (TxRunner).
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation detecta una violación de constraint única (SQLSTATE
// 23505): número de tiquete, nombre de tienda o part_number duplicado.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// Errores envueltos que no exponen *PgError.
	return err != nil && strings.Contains(err.Error(), "23505")
}
