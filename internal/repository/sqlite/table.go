package sqlite

import (
	"database/sql"
	"encoding/json"
	"sync"

	"github.com/wayne-14e/Lexicon-AI/internal/domain"
)

// TableRepo implements repository.TableRepository.
//
// The full collection is stored as one JSON blob, so every mutation is
// a read-modify-write cycle. The mutex serializes those cycles within
// the process; without it two in-flight saves could interleave and one
// table's changes would silently vanish under last-write-wins.
type TableRepo struct {
	db *sql.DB
	mu sync.Mutex
}

// NewTableRepo creates a new table repository
func NewTableRepo(db *sql.DB) *TableRepo {
	return &TableRepo{db: db}
}

// TablesFor returns all tables owned by userID, preserving stored order
func (r *TableRepo) TablesFor(userID string) ([]domain.VocabTable, error) {
	all, err := r.load()
	if err != nil {
		return nil, err
	}

	var tables []domain.VocabTable
	for _, t := range all {
		if t.UserID == userID {
			tables = append(tables, t)
		}
	}
	return tables, nil
}

// Save upserts a table by id: update in place when the id matches,
// append otherwise. Saving the same table twice leaves one copy.
func (r *TableRepo) Save(table domain.VocabTable) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return err
	}

	replaced := false
	for i := range all {
		if all[i].ID == table.ID {
			all[i] = table
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, table)
	}

	return r.persist(all)
}

// Delete removes the matching table, no-op when absent
func (r *TableRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return err
	}

	kept := all[:0]
	for _, t := range all {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(all) {
		return nil
	}

	return r.persist(kept)
}

// load reads the whole collection, degrading corrupt or missing data
// to an empty list
func (r *TableRepo) load() ([]domain.VocabTable, error) {
	raw, ok, err := getValue(r.db, keyTables)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var tables []domain.VocabTable
	if err := json.Unmarshal([]byte(raw), &tables); err != nil {
		return nil, nil
	}
	return tables, nil
}

func (r *TableRepo) persist(tables []domain.VocabTable) error {
	if tables == nil {
		tables = []domain.VocabTable{}
	}
	raw, err := json.Marshal(tables)
	if err != nil {
		return err
	}
	return setValue(r.db, keyTables, string(raw))
}
