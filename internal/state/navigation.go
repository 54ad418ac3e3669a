package state

import (
	"database/sql"
	"errors"
	"slices"

	dbutil "github.com/sylvandb/radio/internal/db"
)

// NavigationState is the menu position by label: the folder path below the
// root and the label selected in the innermost folder.
type NavigationState struct {
	Path     []string
	Selected string
}

// Equal reports whether two positions are the same.
func (s NavigationState) Equal(o NavigationState) bool {
	return s.Selected == o.Selected && slices.Equal(s.Path, o.Path)
}

func getNavigation(db *sql.DB) (*NavigationState, error) {
	var selected sql.NullString
	err := db.QueryRow(`SELECT selected_label FROM navigation_state WHERE id = 1`).Scan(&selected)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT label FROM navigation_path ORDER BY depth`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	state := NavigationState{Selected: dbutil.NullStringValue(selected)}
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		state.Path = append(state.Path, label)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &state, nil
}

func saveNavigation(db *sql.DB, state NavigationState) error {
	return dbutil.WithTx(db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO navigation_state (id, selected_label)
			VALUES (1, ?)
			ON CONFLICT(id) DO UPDATE SET selected_label = excluded.selected_label
		`, state.Selected)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(`DELETE FROM navigation_path`); err != nil {
			return err
		}
		for depth, label := range state.Path {
			if _, err := tx.Exec(`INSERT INTO navigation_path (depth, label) VALUES (?, ?)`, depth, label); err != nil {
				return err
			}
		}
		return nil
	})
}
