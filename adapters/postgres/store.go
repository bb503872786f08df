// Package postgres is the remote store adapter.
package postgres

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"qiming/internal/errors"
)

// Open connects to postgres with the given DSN.
func Open(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "opening postgres database")
	}
	return db, nil
}
