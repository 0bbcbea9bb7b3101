package sqlite

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/wayne-14e/Lexicon-AI/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// CurrentUser returns the active session user, or nil when no session
// record exists or the stored record cannot be parsed
func (r *UserRepo) CurrentUser() (*domain.User, error) {
	raw, ok, err := getValue(r.db, keySessionUser)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		// Corrupt session record reads back as logged out
		return nil, nil
	}
	return &user, nil
}

// SetCurrentUser persists the active session and appends the user to
// the registry when their username is not yet present. Usernames are
// matched case-insensitively; the registry only ever grows.
func (r *UserRepo) SetCurrentUser(user domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := setValue(r.db, keySessionUser, string(raw)); err != nil {
		return err
	}

	registry := r.registry()
	for _, u := range registry {
		if strings.EqualFold(u.Username, user.Username) {
			return nil
		}
	}
	registry = append(registry, user)

	rawList, err := json.Marshal(registry)
	if err != nil {
		return err
	}
	return setValue(r.db, keyUserRegistry, string(rawList))
}

// FindByName scans the registry case-insensitively, nil when absent
func (r *UserRepo) FindByName(username string) (*domain.User, error) {
	for _, u := range r.registry() {
		if strings.EqualFold(u.Username, username) {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

// Logout clears the session record only; registry and tables persist
func (r *UserRepo) Logout() error {
	return deleteValue(r.db, keySessionUser)
}

// registry loads the user list, degrading corrupt or missing data to
// an empty registry
func (r *UserRepo) registry() []domain.User {
	raw, ok, err := getValue(r.db, keyUserRegistry)
	if err != nil || !ok {
		return nil
	}

	var users []domain.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil
	}
	return users
}
