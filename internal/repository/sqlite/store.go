package sqlite

import (
	"database/sql"
)

// Logical storage keys. The layout mirrors the original journal so an
// existing database keeps working: whole collections are stored as
// single JSON blobs and rewritten on every mutation.
const (
	keySessionUser  = "lexicon_user"
	keyUserRegistry = "lexicon_users_list"
	keyTables       = "lexicon_tables"
	notesKeyPrefix  = "lexicon_notes_"
)

// getValue reads one key from the kv table. Absence is not an error.
func getValue(db *sql.DB, key string) (string, bool, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// setValue writes one key, last write wins
func setValue(db *sql.DB, key, value string) error {
	query := `
		INSERT INTO kv (key, value)
		VALUES (?, ?)
		ON CONFLICT (key)
		DO UPDATE SET value = excluded.value
	`
	_, err := db.Exec(query, key, value)
	return err
}

// deleteValue removes one key, no-op when absent
func deleteValue(db *sql.DB, key string) error {
	_, err := db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}
