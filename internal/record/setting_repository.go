package record

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// DBSettingRepository implements SettingRepository using sqlx.
type DBSettingRepository struct {
	db      *sqlx.DB
	dialect Dialect
}

// NewDBSettingRepository creates a new DBSettingRepository.
func NewDBSettingRepository(db *sqlx.DB) *DBSettingRepository {
	return &DBSettingRepository{db: db, dialect: DialectOf(db.DriverName())}
}

// Find returns the value of key and whether it is set.
func (r *DBSettingRepository) Find(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.GetContext(ctx, &value,
		r.db.Rebind("SELECT setting_value FROM settings WHERE setting_key = ?"), key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storageError("db.GetContext(settings)", err)
	}
	return value, true, nil
}

func (r *DBSettingRepository) Upsert(ctx context.Context, key, value string) error {
	query := "INSERT INTO settings (setting_key, setting_value) VALUES (?, ?) " +
		r.dialect.upsertSuffix("setting_key", "setting_value")
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), key, value); err != nil {
		return storageError("db.ExecContext(upsert setting)", err)
	}
	return nil
}
