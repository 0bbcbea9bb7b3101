package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wayne-14e/Lexicon-AI/internal/ai"
	"github.com/wayne-14e/Lexicon-AI/internal/domain"
	"github.com/wayne-14e/Lexicon-AI/internal/testutil"
)

func TestTableService_Compose(t *testing.T) {
	generated := []ai.GeneratedEntry{
		{Word: "ubiquitous", PartOfSpeech: "adjective", Meaning: "found everywhere", Synonyms: "omnipresent", Sentence: "Wi-Fi is ubiquitous."},
		{Word: "ephemeral"},
	}

	mockGen := new(testutil.MockGenerator)
	mockGen.On("GenerateVocabEntries", mock.Anything, []string{"ubiquitous", "ephemeral"}).
		Return(generated, nil)

	service := NewTableService(new(testutil.MockTableRepository), mockGen, testutil.NewTestLogger())

	table, err := service.Compose(context.Background(), "u1", ComposeInput{
		Title: "  Set A  ",
		Words: "ubiquitous\n, ephemeral ,\n",
		Links: "https://example.com\n\n  ",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, table.ID)
	assert.Equal(t, "u1", table.UserID)
	assert.Equal(t, "Set A", table.Title)
	assert.Equal(t, []string{"https://example.com"}, table.Links)
	assert.NotZero(t, table.CreatedAt)
	assert.Len(t, table.Entries, 2)

	first := table.Entries[0]
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "ubiquitous", first.Word)
	assert.Equal(t, "found everywhere", first.Meaning)
	assert.Equal(t, 0, first.Progress)

	// Sparse AI output gets display defaults
	second := table.Entries[1]
	assert.Equal(t, "N/A", second.PartOfSpeech)
	assert.Equal(t, "No definition found.", second.Meaning)
	assert.Equal(t, "N/A", second.Synonyms)
	assert.Equal(t, "", second.Sentence)

	mockGen.AssertExpectations(t)
}

func TestTableService_Compose_DefaultTitleAndExisting(t *testing.T) {
	existing := testutil.NewTestTable("t1", "u1", "Old")
	existing.CreatedAt = 12345

	mockGen := new(testutil.MockGenerator)
	mockGen.On("GenerateVocabEntries", mock.Anything, []string{"word"}).
		Return([]ai.GeneratedEntry{{Word: "word"}}, nil)

	service := NewTableService(new(testutil.MockTableRepository), mockGen, testutil.NewTestLogger())

	table, err := service.Compose(context.Background(), "u1", ComposeInput{
		Words:    "word",
		Existing: &existing,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Untitled Vocabulary Collection", table.Title)
	// Editing keeps identity and creation time
	assert.Equal(t, "t1", table.ID)
	assert.Equal(t, int64(12345), table.CreatedAt)
}

func TestTableService_Compose_Failures(t *testing.T) {
	tests := []struct {
		name     string
		words    string
		genError error
		expected error
	}{
		{
			name:     "blank word list blocked before any request",
			words:    "  \n , \n ",
			expected: ErrEmptyWordList,
		},
		{
			name:     "gateway failure propagates",
			words:    "word",
			genError: fmt.Errorf("network down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockGen := new(testutil.MockGenerator)
			if tt.genError != nil {
				mockGen.On("GenerateVocabEntries", mock.Anything, []string{"word"}).
					Return(nil, tt.genError)
			}

			service := NewTableService(new(testutil.MockTableRepository), mockGen, testutil.NewTestLogger())

			_, err := service.Compose(context.Background(), "u1", ComposeInput{Words: tt.words})

			assert.Error(t, err)
			if tt.expected != nil {
				assert.ErrorIs(t, err, tt.expected)
			}
			mockGen.AssertExpectations(t)
		})
	}
}

func TestTableService_UpdateEntryProgress(t *testing.T) {
	tests := []struct {
		name          string
		start         int
		known         bool
		expected      int
		entryID       string
		expectedError bool
	}{
		{
			name:     "known rewards 20",
			start:    40,
			known:    true,
			expected: 60,
			entryID:  "e1",
		},
		{
			name:     "unknown penalizes 35 with floor",
			start:    20,
			known:    false,
			expected: 0,
			entryID:  "e1",
		},
		{
			name:          "unknown entry id",
			start:         40,
			entryID:       "missing",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := testutil.NewTestTable("t1", "u1", "Set A", testutil.NewTestEntry("e1", "word", tt.start))

			mockRepo := new(testutil.MockTableRepository)
			if !tt.expectedError {
				mockRepo.On("Save", mock.AnythingOfType("domain.VocabTable")).Return(nil)
			}

			service := NewTableService(mockRepo, new(testutil.MockGenerator), testutil.NewTestLogger())

			err := service.UpdateEntryProgress(&table, tt.entryID, tt.known)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, table.Entries[0].Progress)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTableService_RemoveEntry(t *testing.T) {
	table := testutil.NewTestTable("t1", "u1", "Set A",
		testutil.NewTestEntry("e1", "one", 0),
		testutil.NewTestEntry("e2", "two", 0),
	)

	mockRepo := new(testutil.MockTableRepository)
	mockRepo.On("Save", mock.MatchedBy(func(saved domain.VocabTable) bool {
		return len(saved.Entries) == 1 && saved.Entries[0].ID == "e2"
	})).Return(nil)

	service := NewTableService(mockRepo, new(testutil.MockGenerator), testutil.NewTestLogger())

	err := service.RemoveEntry(&table, "e1")

	assert.NoError(t, err)
	assert.Len(t, table.Entries, 1)
	mockRepo.AssertExpectations(t)
}

func TestTableService_RemoveEntry_LeavesOldSliceIntact(t *testing.T) {
	table := testutil.NewTestTable("t1", "u1", "Set A",
		testutil.NewTestEntry("e1", "one", 0),
		testutil.NewTestEntry("e2", "two", 0),
	)
	view := table.Entries

	mockRepo := new(testutil.MockTableRepository)
	mockRepo.On("Save", mock.AnythingOfType("domain.VocabTable")).Return(nil)

	service := NewTableService(mockRepo, new(testutil.MockGenerator), testutil.NewTestLogger())

	err := service.RemoveEntry(&table, "e1")

	assert.NoError(t, err)
	// Holders of the previous entries slice see the original contents
	assert.Equal(t, "e1", view[0].ID)
	assert.Equal(t, "e2", view[1].ID)
}

func TestTableService_RegenerateEntry(t *testing.T) {
	table := testutil.NewTestTable("t1", "u1", "Set A", testutil.NewTestEntry("e1", "old", 60))

	mockGen := new(testutil.MockGenerator)
	mockGen.On("GenerateVocabEntries", mock.Anything, []string{"new"}).
		Return([]ai.GeneratedEntry{{Word: "new", PartOfSpeech: "noun", Meaning: "fresh meaning", Synonyms: "novel", Sentence: "A new sentence."}}, nil)

	mockRepo := new(testutil.MockTableRepository)
	mockRepo.On("Save", mock.AnythingOfType("domain.VocabTable")).Return(nil)

	service := NewTableService(mockRepo, mockGen, testutil.NewTestLogger())

	err := service.RegenerateEntry(context.Background(), &table, "e1", "new")

	assert.NoError(t, err)
	entry := table.Entries[0]
	// Every field replaced except the id
	assert.Equal(t, "e1", entry.ID)
	assert.Equal(t, "new", entry.Word)
	assert.Equal(t, "fresh meaning", entry.Meaning)
	assert.Equal(t, 0, entry.Progress)

	mockGen.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestTableService_EnsureContextPassage(t *testing.T) {
	t.Run("generates and caches on first use", func(t *testing.T) {
		table := testutil.NewTestTable("t1", "u1", "Set A",
			testutil.NewTestEntry("e1", "ubiquitous", 0),
			testutil.NewTestEntry("e2", "ephemeral", 0),
		)
		passage := domain.ContextPassage{Title: "A Tale", Text: "Once upon a time."}

		mockGen := new(testutil.MockGenerator)
		mockGen.On("GenerateContextPassage", mock.Anything, []string{"ubiquitous", "ephemeral"}, "Set A").
			Return(passage)

		mockRepo := new(testutil.MockTableRepository)
		mockRepo.On("Save", mock.MatchedBy(func(saved domain.VocabTable) bool {
			return saved.ContextPassage != nil && saved.ContextPassage.Title == "A Tale"
		})).Return(nil)

		service := NewTableService(mockRepo, mockGen, testutil.NewTestLogger())

		err := service.EnsureContextPassage(context.Background(), &table)

		assert.NoError(t, err)
		assert.Equal(t, &passage, table.ContextPassage)
		mockGen.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})

	t.Run("cached passage is never regenerated", func(t *testing.T) {
		table := testutil.NewTestTable("t1", "u1", "Set A", testutil.NewTestEntry("e1", "word", 0))
		table.ContextPassage = &domain.ContextPassage{Title: "Cached", Text: "Kept."}

		// No generator or repository call expected
		service := NewTableService(new(testutil.MockTableRepository), new(testutil.MockGenerator), testutil.NewTestLogger())

		err := service.EnsureContextPassage(context.Background(), &table)

		assert.NoError(t, err)
		assert.Equal(t, "Cached", table.ContextPassage.Title)
	})
}
