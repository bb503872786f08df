// Package migration creates and evolves the storage schema. Steps are
// named, applied in lexicographic order, and recorded in a
// schema_migrations ledger so each runs at most once.
package migration

import (
	"context"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	"qiming/internal/errors"
	"qiming/internal/logging"
)

// Step is one migration with DDL per supported dialect.
type Step struct {
	Name     string
	Postgres string
	SQLite   string
}

// Runner applies the registered steps against one database.
type Runner struct {
	db     *sqlx.DB
	driver string // "postgres" or "sqlite"
	logger *logging.Logger
}

func NewRunner(db *sqlx.DB, driver string, logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.DefaultLogger
	}
	return &Runner{db: db, driver: driver, logger: logger}
}

func (r *Runner) sql(s Step) string {
	if r.driver == "postgres" {
		return s.Postgres
	}
	return s.SQLite
}

// Run ensures the ledger exists and applies every unapplied step.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.ensureLedger(ctx); err != nil {
		return errors.Wrap(err, "creating schema_migrations table")
	}

	ordered := append([]Step{}, steps...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	for _, step := range ordered {
		applied, err := r.isApplied(ctx, step.Name)
		if err != nil {
			return errors.Wrapf(err, "checking migration %s", step.Name)
		}
		if applied {
			continue
		}
		r.logger.Info("applying migration %s", step.Name)
		if _, err := r.db.ExecContext(ctx, r.sql(step)); err != nil {
			return errors.Wrapf(err, "applying migration %s", step.Name)
		}
		if err := r.record(ctx, step.Name); err != nil {
			return errors.Wrapf(err, "recording migration %s", step.Name)
		}
	}
	return nil
}

func (r *Runner) ensureLedger(ctx context.Context) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL
		)`
	if r.driver == "postgres" {
		ddl = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL
		)`
	}
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

func (r *Runner) isApplied(ctx context.Context, name string) (bool, error) {
	var count int
	query := r.db.Rebind("SELECT COUNT(*) FROM schema_migrations WHERE name = ?")
	if err := r.db.GetContext(ctx, &count, query, name); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Runner) record(ctx context.Context, name string) error {
	query := r.db.Rebind("INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)")
	_, err := r.db.ExecContext(ctx, query, name, time.Now().UTC())
	return err
}
