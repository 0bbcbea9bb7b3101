package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/wayne-14e/Lexicon-AI/internal/domain"
	"github.com/wayne-14e/Lexicon-AI/internal/repository"
)

var (
	// ErrEmptyUsername rejects blank identity input before any lookup
	ErrEmptyUsername = errors.New("username cannot be empty")
	// ErrAccountNotFound means login was attempted for an unregistered name
	ErrAccountNotFound = errors.New("account not found")
	// ErrIdentityExists means registration collided with an existing name
	ErrIdentityExists = errors.New("identity already exists")
)

// AuthService handles the local profile registry. There is no real
// authentication: a name is the whole credential.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates a new profile and makes it the active session.
// Usernames are unique case-insensitively within the local registry.
func (s *AuthService) Register(name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyUsername
	}

	existing, err := s.userRepo.FindByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrIdentityExists
	}

	user := domain.User{
		ID:       uuid.NewString(),
		Username: name,
		Email:    domain.DeriveEmail(name),
	}
	if err := s.userRepo.SetCurrentUser(user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login resumes an existing profile by name, case-insensitively
func (s *AuthService) Login(name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyUsername
	}

	user, err := s.userRepo.FindByName(name)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrAccountNotFound
	}

	if err := s.userRepo.SetCurrentUser(*user); err != nil {
		return nil, err
	}
	return user, nil
}

// CurrentUser returns the restored session user, nil when logged out
func (s *AuthService) CurrentUser() (*domain.User, error) {
	return s.userRepo.CurrentUser()
}

// Logout clears the session record; registry and tables persist
func (s *AuthService) Logout() error {
	return s.userRepo.Logout()
}
