package state

import (
	"database/sql"
	"errors"

	dbutil "github.com/sylvandb/radio/internal/db"
)

// Indicator is the on/off state of the three LED channels.
type Indicator struct {
	Red   bool
	Green bool
	Blue  bool
}

func getIndicator(db *sql.DB) (*Indicator, error) {
	var ind Indicator
	err := db.QueryRow(`SELECT red, green, blue FROM indicator_state WHERE id = 1`).
		Scan(&ind.Red, &ind.Green, &ind.Blue)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // LED never set
	}
	if err != nil {
		return nil, err
	}
	return &ind, nil
}

func saveIndicator(db *sql.DB, ind Indicator) error {
	_, err := db.Exec(`
		INSERT INTO indicator_state (id, red, green, blue)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			red = excluded.red,
			green = excluded.green,
			blue = excluded.blue
	`, dbutil.BoolInt(ind.Red), dbutil.BoolInt(ind.Green), dbutil.BoolInt(ind.Blue))
	return err
}
