package repository

import (
	"github.com/wayne-14e/Lexicon-AI/internal/domain"
)

// UserRepository defines session and registry operations.
// Corrupt or missing stored records read back as absent (nil), never
// as a parse error.
type UserRepository interface {
	CurrentUser() (*domain.User, error)
	SetCurrentUser(user domain.User) error
	FindByName(username string) (*domain.User, error)
	Logout() error
}

// TableRepository defines vocabulary collection operations
type TableRepository interface {
	TablesFor(userID string) ([]domain.VocabTable, error)
	Save(table domain.VocabTable) error
	Delete(id string) error
}

// NotesRepository defines per-user scratchpad operations
type NotesRepository interface {
	Notes(userID string) (string, error)
	Save(userID, text string) error
}
