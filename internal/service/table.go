package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wayne-14e/Lexicon-AI/internal/ai"
	"github.com/wayne-14e/Lexicon-AI/internal/domain"
	"github.com/wayne-14e/Lexicon-AI/internal/repository"
)

// ErrEmptyWordList blocks generation before any request is made
var ErrEmptyWordList = errors.New("please enter at least one word")

// Defaults applied to sparse AI output and blank creation input
const (
	defaultTitle        = "Untitled Vocabulary Collection"
	defaultPartOfSpeech = "N/A"
	defaultMeaning      = "No definition found."
	defaultSynonyms     = "N/A"
)

// ComposeInput is the raw creation-flow form
type ComposeInput struct {
	Title       string
	Description string
	Words       string // one word per line, commas also accepted
	Links       string // one link per line
	Existing    *domain.VocabTable
}

// TableService owns collection lifecycle and study bookkeeping
type TableService struct {
	tableRepo repository.TableRepository
	generator ai.Generator
	logger    *zap.Logger
}

// NewTableService creates a new table service
func NewTableService(tableRepo repository.TableRepository, generator ai.Generator, logger *zap.Logger) *TableService {
	return &TableService{
		tableRepo: tableRepo,
		generator: generator,
		logger:    logger,
	}
}

// Compose builds a table from the creation form, asking the gateway
// for one structured record per word. When editing, the existing id
// and creation time are preserved.
func (s *TableService) Compose(ctx context.Context, userID string, input ComposeInput) (domain.VocabTable, error) {
	words := splitWords(input.Words)
	if len(words) == 0 {
		return domain.VocabTable{}, ErrEmptyWordList
	}

	generated, err := s.generator.GenerateVocabEntries(ctx, words)
	if err != nil {
		s.logger.Error("Vocabulary generation failed", zap.Strings("words", words), zap.Error(err))
		return domain.VocabTable{}, fmt.Errorf("generate entries: %w", err)
	}

	table := domain.VocabTable{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Links:       splitLinks(input.Links),
		Entries:     expandEntries(generated),
		CreatedAt:   time.Now().UnixMilli(),
	}
	if table.Title == "" {
		table.Title = defaultTitle
	}
	if input.Existing != nil {
		table.ID = input.Existing.ID
		table.CreatedAt = input.Existing.CreatedAt
	}

	return table, nil
}

// Save upserts the table
func (s *TableService) Save(table domain.VocabTable) error {
	return s.tableRepo.Save(table)
}

// Delete removes a table by id
func (s *TableService) Delete(id string) error {
	return s.tableRepo.Delete(id)
}

// TablesFor returns the user's collections in stored order
func (s *TableService) TablesFor(userID string) ([]domain.VocabTable, error) {
	return s.tableRepo.TablesFor(userID)
}

// UpdateEntryProgress applies one flashcard judgment to the table and
// persists it
func (s *TableService) UpdateEntryProgress(table *domain.VocabTable, entryID string, known bool) error {
	entry := table.Entry(entryID)
	if entry == nil {
		return fmt.Errorf("entry %s not found in table %s", entryID, table.ID)
	}

	entry.ApplyJudgment(known)
	return s.tableRepo.Save(*table)
}

// RemoveEntry deletes one entry from the table and persists it. The
// kept entries go into a fresh slice, leaving views of the old one
// untouched.
func (s *TableService) RemoveEntry(table *domain.VocabTable, entryID string) error {
	kept := make([]domain.VocabEntry, 0, len(table.Entries))
	for _, e := range table.Entries {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	table.Entries = kept
	return s.tableRepo.Save(*table)
}

// RegenerateEntry replaces every field of one entry except its id by
// re-running generation for the edited word
func (s *TableService) RegenerateEntry(ctx context.Context, table *domain.VocabTable, entryID, word string) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return ErrEmptyWordList
	}

	entry := table.Entry(entryID)
	if entry == nil {
		return fmt.Errorf("entry %s not found in table %s", entryID, table.ID)
	}

	generated, err := s.generator.GenerateVocabEntries(ctx, []string{word})
	if err != nil {
		return fmt.Errorf("regenerate entry: %w", err)
	}
	if len(generated) == 0 {
		return fmt.Errorf("no record returned for %q", word)
	}

	fresh := expandEntries(generated[:1])[0]
	fresh.ID = entry.ID
	*entry = fresh

	return s.tableRepo.Save(*table)
}

// EnsureContextPassage generates and caches the narrative passage on
// first use. A cached passage is never regenerated, even when entries
// have since changed.
func (s *TableService) EnsureContextPassage(ctx context.Context, table *domain.VocabTable) error {
	if table.ContextPassage != nil {
		return nil
	}

	passage := s.generator.GenerateContextPassage(ctx, table.Words(), table.Title)
	table.ContextPassage = &passage

	return s.tableRepo.Save(*table)
}

// Speak plays pronunciation audio for one word
func (s *TableService) Speak(ctx context.Context, word string) []byte {
	return s.generator.Speak(ctx, word)
}

// expandEntries fills sparse AI output with display defaults and mints
// fresh entry ids, progress starting at zero
func expandEntries(generated []ai.GeneratedEntry) []domain.VocabEntry {
	entries := make([]domain.VocabEntry, 0, len(generated))
	for _, g := range generated {
		entry := domain.VocabEntry{
			ID:           uuid.NewString(),
			Word:         g.Word,
			PartOfSpeech: g.PartOfSpeech,
			Meaning:      g.Meaning,
			Synonyms:     g.Synonyms,
			Sentence:     g.Sentence,
		}
		if entry.PartOfSpeech == "" {
			entry.PartOfSpeech = defaultPartOfSpeech
		}
		if entry.Meaning == "" {
			entry.Meaning = defaultMeaning
		}
		if entry.Synonyms == "" {
			entry.Synonyms = defaultSynonyms
		}
		entries = append(entries, entry)
	}
	return entries
}

// splitWords accepts one word per line or comma-separated input
func splitWords(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ','
	})

	var words []string
	for _, f := range fields {
		if w := strings.TrimSpace(f); w != "" {
			words = append(words, w)
		}
	}
	return words
}

func splitLinks(raw string) []string {
	links := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if l := strings.TrimSpace(line); l != "" {
			links = append(links, l)
		}
	}
	return links
}
