package repository

import (
	"context"
	"database/sql"
	"strings"
)

const stringDelimiter = "|||"

// DBTX is satisfied by both *sqlx.DB and *sqlx.Tx so adapters run unchanged
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// joinStrings flattens a slice into a delimited CLOB value.
func joinStrings(values []string) string {
	return strings.Join(values, stringDelimiter)
}

// splitStrings expands a delimited CLOB value; empty means empty slice.
func splitStrings(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, stringDelimiter)
}
