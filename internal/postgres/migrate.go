package postgres

import (
	"context"
	_ "embed"

	ierr "github.com/flexprice/tuition/internal/errors"
)

//go:embed schema.sql
var schema string

// Migrate creates every table and index the repositories rely on. It is idempotent.
func (db *DB) Migrate(ctx context.Context) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		if _, err := db.GetQuerier(ctx).ExecContext(ctx, schema); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to apply the database schema").
				Mark(ierr.ErrDatabase)
		}
		db.logger.Infow("database schema applied")
		return nil
	})
}
