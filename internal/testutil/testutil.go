package testutil

import (
	"time"

	"go.uber.org/zap"

	"github.com/wayne-14e/Lexicon-AI/internal/domain"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(id, username string) *domain.User {
	return &domain.User{
		ID:       id,
		Username: username,
		Email:    domain.DeriveEmail(username),
	}
}

// NewTestEntry creates a test vocabulary entry
func NewTestEntry(id, word string, progress int) domain.VocabEntry {
	return domain.VocabEntry{
		ID:           id,
		Word:         word,
		PartOfSpeech: "noun",
		Meaning:      "meaning of " + word,
		Synonyms:     "synonyms of " + word,
		Sentence:     "A sentence using " + word + ".",
		Progress:     progress,
	}
}

// NewTestTable creates a test table with the given entries
func NewTestTable(id, userID, title string, entries ...domain.VocabEntry) domain.VocabTable {
	if entries == nil {
		entries = []domain.VocabEntry{}
	}
	return domain.VocabTable{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Links:     []string{},
		Entries:   entries,
		CreatedAt: time.Now().UnixMilli(),
	}
}
