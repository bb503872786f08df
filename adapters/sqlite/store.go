// Package sqlite is the file- or memory-backed store adapter, used for
// local runs and tests.
package sqlite

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"qiming/internal/errors"
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Open connects to a sqlite database. Use ":memory:" for an ephemeral
// store.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "opening sqlite database")
	}
	// The driver rejects concurrent writers; one connection keeps the
	// group transactions serialized.
	db.SetMaxOpenConns(1)
	return db, nil
}
