package domain

import "math/rand"

// Progress step sizes. Mistakes are penalized harder than correct
// answers are rewarded, so mastery requires sustained correctness.
const (
	ProgressReward  = 20
	ProgressPenalty = 35

	MinProgress = 0
	MaxProgress = 100
)

// VocabEntry is a single studied word inside a collection
type VocabEntry struct {
	ID           string `json:"id"`
	Word         string `json:"word"`
	PartOfSpeech string `json:"partOfSpeech"`
	Meaning      string `json:"meaning"`
	Synonyms     string `json:"synonyms"`
	Sentence     string `json:"sentence"`
	Progress     int    `json:"progress"`
}

// ApplyJudgment updates the mastery score after one flashcard answer,
// clamped to [MinProgress, MaxProgress]
func (e *VocabEntry) ApplyJudgment(known bool) {
	if known {
		e.Progress += ProgressReward
	} else {
		e.Progress -= ProgressPenalty
	}
	e.Progress = ClampProgress(e.Progress)
}

// ClampProgress bounds a raw score to the valid progress range
func ClampProgress(p int) int {
	if p < MinProgress {
		return MinProgress
	}
	if p > MaxProgress {
		return MaxProgress
	}
	return p
}

// ContextPassage is a cached narrative generated from a table's words
type ContextPassage struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// VocabTable is a vocabulary collection owned by exactly one user
type VocabTable struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Links          []string        `json:"links"`
	Entries        []VocabEntry    `json:"entries"`
	CreatedAt      int64           `json:"createdAt"` // epoch millis
	ContextPassage *ContextPassage `json:"contextPassage,omitempty"`
}

// Clone returns a copy detached from the receiver's backing arrays, so
// mutating one never shows through the other
func (t VocabTable) Clone() VocabTable {
	clone := t
	clone.Links = append([]string(nil), t.Links...)
	clone.Entries = append([]VocabEntry(nil), t.Entries...)
	if t.ContextPassage != nil {
		passage := *t.ContextPassage
		clone.ContextPassage = &passage
	}
	return clone
}

// Words returns the table's words in entry order
func (t VocabTable) Words() []string {
	words := make([]string, 0, len(t.Entries))
	for _, e := range t.Entries {
		words = append(words, e.Word)
	}
	return words
}

// Entry returns a pointer to the entry with the given id, or nil
func (t *VocabTable) Entry(entryID string) *VocabEntry {
	for i := range t.Entries {
		if t.Entries[i].ID == entryID {
			return &t.Entries[i]
		}
	}
	return nil
}

// ShuffledEntries returns a Fisher-Yates shuffled copy of the entries
// for flashcard order. The table's own ordering is left untouched.
func (t VocabTable) ShuffledEntries() []VocabEntry {
	entries := make([]VocabEntry, len(t.Entries))
	copy(entries, t.Entries)
	for i := len(entries) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}
