package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wayne-14e/Lexicon-AI/internal/ai"
	"github.com/wayne-14e/Lexicon-AI/internal/domain"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CurrentUser() (*domain.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SetCurrentUser(user domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByName(username string) (*domain.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Logout() error {
	args := m.Called()
	return args.Error(0)
}

// MockTableRepository is a mock for TableRepository
type MockTableRepository struct {
	mock.Mock
}

func (m *MockTableRepository) TablesFor(userID string) ([]domain.VocabTable, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VocabTable), args.Error(1)
}

func (m *MockTableRepository) Save(table domain.VocabTable) error {
	args := m.Called(table)
	return args.Error(0)
}

func (m *MockTableRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockNotesRepository is a mock for NotesRepository
type MockNotesRepository struct {
	mock.Mock
}

func (m *MockNotesRepository) Notes(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockNotesRepository) Save(userID, text string) error {
	args := m.Called(userID, text)
	return args.Error(0)
}

// MockGenerator is a deterministic stand-in for the AI gateway
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateVocabEntries(ctx context.Context, words []string) ([]ai.GeneratedEntry, error) {
	args := m.Called(ctx, words)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ai.GeneratedEntry), args.Error(1)
}

func (m *MockGenerator) GenerateContextPassage(ctx context.Context, words []string, title string) domain.ContextPassage {
	args := m.Called(ctx, words, title)
	return args.Get(0).(domain.ContextPassage)
}

func (m *MockGenerator) Speak(ctx context.Context, word string) []byte {
	args := m.Called(ctx, word)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]byte)
}
