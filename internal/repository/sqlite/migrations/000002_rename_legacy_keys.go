package migrations

import (
	"database/sql"
	"fmt"
)

func init() {
	RegisterGoMigration(2, Up_000002_rename_legacy_keys, Down_000002_rename_legacy_keys)
}

// LegacyKeys maps the storage keys used by early releases to the current ones
var LegacyKeys = map[string]string{
	"smart_calendar_tasks":     "paper2plan_tasks",
	"smart_calendar_events":    "paper2plan_events",
	"smart_calendar_calendars": "paper2plan_calendars",
	"smart_calendar_theme":     "paper2plan_theme",
}

// Up_000002_rename_legacy_keys moves legacy entries to the current keys.
// An existing current entry wins and the legacy copy is dropped.
func Up_000002_rename_legacy_keys(tx *sql.Tx) error {
	for legacy, current := range LegacyKeys {
		if err := moveKey(tx, legacy, current); err != nil {
			return err
		}
	}
	return nil
}

// Down_000002_rename_legacy_keys restores the legacy key names
func Down_000002_rename_legacy_keys(tx *sql.Tx) error {
	for legacy, current := range LegacyKeys {
		if err := moveKey(tx, current, legacy); err != nil {
			return err
		}
	}
	return nil
}

func moveKey(tx *sql.Tx, from, to string) error {
	_, err := tx.Exec(`
	INSERT OR IGNORE INTO kv_entries (key, value, updated_at)
	SELECT ?, value, updated_at FROM kv_entries WHERE key = ?`, to, from)
	if err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", from, to, err)
	}

	if _, err := tx.Exec(`DELETE FROM kv_entries WHERE key = ?`, from); err != nil {
		return fmt.Errorf("failed to remove %s: %w", from, err)
	}
	return nil
}
