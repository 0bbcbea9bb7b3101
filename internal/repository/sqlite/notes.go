package sqlite

import (
	"database/sql"
)

// NotesRepo implements repository.NotesRepository
type NotesRepo struct {
	db *sql.DB
}

// NewNotesRepo creates a new notes repository
func NewNotesRepo(db *sql.DB) *NotesRepo {
	return &NotesRepo{db: db}
}

// Notes returns the user's scratch text, empty when never saved
func (r *NotesRepo) Notes(userID string) (string, error) {
	text, ok, err := getValue(r.db, notesKeyPrefix+userID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return text, nil
}

// Save overwrites the user's scratch text
func (r *NotesRepo) Save(userID, text string) error {
	return setValue(r.db, notesKeyPrefix+userID, text)
}
