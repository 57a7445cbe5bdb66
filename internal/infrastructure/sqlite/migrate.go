package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const createUserTable = `
CREATE TABLE IF NOT EXISTS user (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT UNIQUE NOT NULL,
	password TEXT NOT NULL,
	is_admin INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

// activityEntryColumns is the current full column set of the ledger table.
// The ledger is append-only; nothing in this codebase updates or deletes
// its rows.
const activityEntryColumns = `
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL,
	salah_completed INTEGER NOT NULL DEFAULT 0,
	al_asaas_count INTEGER NOT NULL DEFAULT 0,
	marboota_shareef_count INTEGER NOT NULL DEFAULT 0,
	fatiha_count INTEGER NOT NULL DEFAULT 0,
	zikr_mufrith_count INTEGER NOT NULL DEFAULT 0,
	notes TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
`

const createActivityEntryIndexes = `
CREATE INDEX IF NOT EXISTS idx_activity_entry_username ON activity_entry(username);
CREATE INDEX IF NOT EXISTS idx_activity_entry_created_at ON activity_entry(created_at);
`

type migration struct {
	version int
	name    string
	up      func(tx *sqlx.Tx) error
}

// Migrations are applied in order, each inside its own transaction with the
// user_version bump as the last statement, so an interrupted run leaves the
// previous version fully intact.
var migrations = []migration{
	{1, "activity ledger baseline", migrateActivityBaseline},
}

// Migrate brings the schema to the latest version. Safe to run on every
// process start: already-applied versions are skipped.
func Migrate(db *sqlx.DB) error {
	var version int
	if err := db.Get(&version, "PRAGMA user_version"); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= version {
			continue
		}

		tx, err := db.Beginx()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.version, err)
		}

		if err := m.up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", m.version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
		}
	}

	return nil
}

// migrateActivityBaseline creates the current schema on a fresh database.
// On a database that predates the salah_completed column it rebuilds the
// ledger table: create the new shape, copy every existing row (defaulting
// the new column), then drop-and-rename as the final step. Copy first,
// replace last, so an interruption never loses rows.
func migrateActivityBaseline(tx *sqlx.Tx) error {
	if _, err := tx.Exec(createUserTable); err != nil {
		return fmt.Errorf("failed to create user table: %w", err)
	}

	exists, err := tableExists(tx, "activity_entry")
	if err != nil {
		return err
	}

	if !exists {
		if _, err := tx.Exec("CREATE TABLE activity_entry (" + activityEntryColumns + ")"); err != nil {
			return fmt.Errorf("failed to create activity_entry table: %w", err)
		}
		if _, err := tx.Exec(createActivityEntryIndexes); err != nil {
			return fmt.Errorf("failed to create activity_entry indexes: %w", err)
		}
		return nil
	}

	hasColumn, err := columnExists(tx, "activity_entry", "salah_completed")
	if err != nil {
		return err
	}
	if hasColumn {
		return nil
	}

	if _, err := tx.Exec("CREATE TABLE activity_entry_new (" + activityEntryColumns + ")"); err != nil {
		return fmt.Errorf("failed to create replacement table: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO activity_entry_new (id, username, al_asaas_count, marboota_shareef_count,
		                                fatiha_count, zikr_mufrith_count, notes, created_at)
		SELECT id, username, al_asaas_count, marboota_shareef_count,
		       fatiha_count, zikr_mufrith_count, COALESCE(notes, ''), created_at
		FROM activity_entry
	`)
	if err != nil {
		return fmt.Errorf("failed to copy existing entries: %w", err)
	}

	if _, err := tx.Exec("DROP TABLE activity_entry"); err != nil {
		return fmt.Errorf("failed to drop old table: %w", err)
	}
	if _, err := tx.Exec("ALTER TABLE activity_entry_new RENAME TO activity_entry"); err != nil {
		return fmt.Errorf("failed to rename replacement table: %w", err)
	}
	if _, err := tx.Exec(createActivityEntryIndexes); err != nil {
		return fmt.Errorf("failed to create activity_entry indexes: %w", err)
	}

	return nil
}

func tableExists(tx *sqlx.Tx, table string) (bool, error) {
	var name string
	err := tx.Get(&name, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	return true, nil
}

func columnExists(tx *sqlx.Tx, table, column string) (bool, error) {
	var columns []string
	if err := tx.Select(&columns, "SELECT name FROM pragma_table_info(?)", table); err != nil {
		return false, fmt.Errorf("failed to inspect columns of %s: %w", table, err)
	}
	for _, c := range columns {
		if c == column {
			return true, nil
		}
	}
	return false, nil
}
