package postgres

import (
	"context"
	"time"

	domainSettings "github.com/flexprice/tuition/internal/domain/settings"
	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/logger"
	"github.com/flexprice/tuition/internal/postgres"
	"github.com/flexprice/tuition/internal/types"
)

type settingsRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSettingsRepository(db *postgres.DB, logger *logger.Logger) domainSettings.Repository {
	return &settingsRepository{db: db, logger: logger}
}

func (r *settingsRepository) GetByKey(ctx context.Context, key types.SettingKey) (*domainSettings.Setting, error) {
	var s domainSettings.Setting
	query := `SELECT * FROM settings WHERE key = $1 AND deleted_at IS NULL`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &s, query, key.String()); err != nil {
		return nil, mapError(err, "setting", key.String())
	}
	return &s, nil
}

// Upsert keeps the id of the live row for the key and replaces its value
func (r *settingsRepository) Upsert(ctx context.Context, setting *domainSettings.Setting) error {
	query := `
		INSERT INTO settings (
			id, key, value, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :key, :value, :created_at, :updated_at, :created_by, :updated_by
		)
		ON CONFLICT (key) WHERE deleted_at IS NULL DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by`

	r.logger.Debugw("storing setting", "key", setting.Key, "value", setting.Value)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, setting); err != nil {
		return mapError(err, "setting", setting.Key.String())
	}
	return nil
}

func (r *settingsRepository) DeleteByKey(ctx context.Context, key types.SettingKey) error {
	now := time.Now().UTC()
	query := `
		UPDATE settings SET
			deleted_at = $1,
			updated_at = $1,
			updated_by = $2
		WHERE key = $3 AND deleted_at IS NULL`

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, now, types.GetUserID(ctx), key.String())
	if err != nil {
		return mapError(err, "setting", key.String())
	}
	if n, err := result.RowsAffected(); err != nil || n == 0 {
		return ierr.NewError("setting not found").
			WithHintf("Setting %s was not found", key).
			WithReportableDetails(map[string]any{
				"key": key,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *settingsRepository) List(ctx context.Context) ([]*domainSettings.Setting, error) {
	q := newListQuery("settings", "key ASC", nil)
	return selectAll[domainSettings.Setting](ctx, r.db, "setting", q)
}
