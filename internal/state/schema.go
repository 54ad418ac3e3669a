package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS navigation_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			selected_label TEXT
		);

		CREATE TABLE IF NOT EXISTS navigation_path (
			depth INTEGER PRIMARY KEY,
			label TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS indicator_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			red INTEGER NOT NULL DEFAULT 0,
			green INTEGER NOT NULL DEFAULT 0,
			blue INTEGER NOT NULL DEFAULT 0
		);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
