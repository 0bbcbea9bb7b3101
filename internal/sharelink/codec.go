// Package sharelink encodes one vocabulary table into a self-contained
// URL token and back. The wire format is base64 over a JSON shorthand
// and must stay stable: previously issued links have to keep decoding.
package sharelink

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/wayne-14e/Lexicon-AI/internal/domain"
)

// DefaultTitle is used when a token carries no title
const DefaultTitle = "Shared Collection"

// sharedIDPrefix marks decoded tables as shared/import artifacts
const sharedIDPrefix = "shared-"

// shorthand is the compact on-wire schema. All fields are optional;
// decode defaults anything missing. `sen` is the current sentence key,
// `ex` is accepted for tokens minted by older versions.
type shorthand struct {
	Title       string           `json:"t,omitempty"`
	Description string           `json:"d,omitempty"`
	Links       []string         `json:"l,omitempty"`
	CreatedAt   int64            `json:"c,omitempty"`
	Entries     []shorthandEntry `json:"e,omitempty"`
}

type shorthandEntry struct {
	Word         string `json:"w,omitempty"`
	PartOfSpeech string `json:"p,omitempty"`
	Meaning      string `json:"m,omitempty"`
	Synonyms     string `json:"s,omitempty"`
	Sentence     string `json:"sen,omitempty"`
	Example      string `json:"ex,omitempty"`
	Progress     int    `json:"pr,omitempty"`
}

// Encode produces a share token for the table
func Encode(table domain.VocabTable) (string, error) {
	sh := shorthand{
		Title:       table.Title,
		Description: table.Description,
		Links:       table.Links,
		CreatedAt:   table.CreatedAt,
	}
	for _, e := range table.Entries {
		sh.Entries = append(sh.Entries, shorthandEntry{
			Word:         e.Word,
			PartOfSpeech: e.PartOfSpeech,
			Meaning:      e.Meaning,
			Synonyms:     e.Synonyms,
			Sentence:     e.Sentence,
			Progress:     e.Progress,
		})
	}

	raw, err := json.Marshal(sh)
	if err != nil {
		return "", fmt.Errorf("encode share payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decode expands a share token into a transient table owned by the
// "public" pseudo-user. The table and its entries get fresh ids; the
// result must never be persisted.
func Decode(token string) (domain.VocabTable, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return domain.VocabTable{}, fmt.Errorf("decode share token: %w", err)
	}
	// The payload is the UTF-8 text of the JSON document
	if !utf8.Valid(raw) {
		return domain.VocabTable{}, fmt.Errorf("decode share token: payload is not valid UTF-8")
	}

	var sh shorthand
	if err := json.Unmarshal(raw, &sh); err != nil {
		return domain.VocabTable{}, fmt.Errorf("parse share payload: %w", err)
	}

	table := domain.VocabTable{
		ID:          sharedIDPrefix + uuid.NewString(),
		UserID:      domain.PublicUserID,
		Title:       sh.Title,
		Description: sh.Description,
		Links:       sh.Links,
		CreatedAt:   sh.CreatedAt,
		Entries:     []domain.VocabEntry{},
	}
	if table.Title == "" {
		table.Title = DefaultTitle
	}
	if table.Links == nil {
		table.Links = []string{}
	}
	if table.CreatedAt == 0 {
		table.CreatedAt = time.Now().UnixMilli()
	}

	for _, e := range sh.Entries {
		sentence := e.Sentence
		if sentence == "" {
			sentence = e.Example
		}
		table.Entries = append(table.Entries, domain.VocabEntry{
			ID:           uuid.NewString(),
			Word:         e.Word,
			PartOfSpeech: e.PartOfSpeech,
			Meaning:      e.Meaning,
			Synonyms:     e.Synonyms,
			Sentence:     sentence,
			Progress:     domain.ClampProgress(e.Progress),
		})
	}

	return table, nil
}
