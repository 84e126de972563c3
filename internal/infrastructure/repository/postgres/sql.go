// Package postgres holds sqlx-backed repositories. Wire format for the
// wide stat blocks is jsonb; ranking and lookup columns are relational.
package postgres

import (
	"database/sql"

	crerr "github.com/cockroachdb/errors"
)

func isNotFound(err error) bool {
	return crerr.Is(err, sql.ErrNoRows)
}
