// internal/repository/db_executor.go
package repository

import (
	"context"
)

// DBExecutor defines the read operations the seed repository needs.
// Both *sqlx.DB and *sqlx.Tx implement these methods.
type DBExecutor interface {
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}
