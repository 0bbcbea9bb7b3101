// Package app holds the session/state controller: one explicit state
// object for the current user, loaded tables, active table and view,
// with the persistence layer as its only side-effecting boundary.
package app

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/wayne-14e/Lexicon-AI/internal/domain"
	"github.com/wayne-14e/Lexicon-AI/internal/service"
	"github.com/wayne-14e/Lexicon-AI/internal/sharelink"
)

var (
	// ErrNotSignedIn guards operations that need a session user
	ErrNotSignedIn = errors.New("no active session")
	// ErrNoActiveTable guards operations that need a selected table
	ErrNoActiveTable = errors.New("no active table")
	// ErrTableNotFound means the requested id is not among loaded tables
	ErrTableNotFound = errors.New("table not found")
	// ErrSharedReadOnly rejects mutations of a shared (public) table
	ErrSharedReadOnly = errors.New("shared collections are read-only")
)

// State is a point-in-time snapshot handed to the presentation layer
type State struct {
	User        *domain.User        `json:"user,omitempty"`
	Tables      []domain.VocabTable `json:"tables"`
	ActiveTable *domain.VocabTable  `json:"activeTable,omitempty"`
	View        domain.View         `json:"view"`
	Fetching    bool                `json:"fetching"`
}

// Controller mediates every UI action. It is the single writer to the
// persistence layer; the mutex keeps snapshots consistent when the
// HTTP layer drives it from concurrent requests.
type Controller struct {
	auth   *service.AuthService
	tables *service.TableService
	notes  *service.NotesService
	logger *zap.Logger

	mu       sync.Mutex
	user     *domain.User
	loaded   []domain.VocabTable
	active   *domain.VocabTable
	view     domain.View
	fetching bool
}

// NewController creates a new controller showing the dashboard
func NewController(
	auth *service.AuthService,
	tables *service.TableService,
	notes *service.NotesService,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		auth:   auth,
		tables: tables,
		notes:  notes,
		logger: logger,
		view:   domain.ViewDashboard,
	}
}

// Startup restores the session. A present, decodable share token wins
// and shows the shared table read-only, bypassing auth; a bad token is
// logged and startup proceeds normally. Restore failures are best
// effort and never abort the shell.
func (c *Controller) Startup(shareToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if shareToken != "" {
		table, err := sharelink.Decode(shareToken)
		if err == nil {
			c.active = &table
			c.view = domain.ViewPublicShared
			return
		}
		c.logger.Error("Failed to decode shared collection", zap.Error(err))
	}

	user, err := c.auth.CurrentUser()
	if err != nil {
		c.logger.Error("Failed to restore session", zap.Error(err))
	}
	if user != nil {
		c.user = user
		c.reloadTablesLocked()
	}
	c.view = domain.ViewDashboard
}

// OpenShared switches to the read-only shared view for a token
func (c *Controller) OpenShared(token string) error {
	table, err := sharelink.Decode(token)
	if err != nil {
		c.logger.Error("Failed to decode shared collection", zap.Error(err))
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = &table
	c.view = domain.ViewPublicShared
	return nil
}

// Register creates a profile and enters the dashboard
func (c *Controller) Register(name string) (*domain.User, error) {
	user, err := c.auth.Register(name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = user
	c.reloadTablesLocked()
	c.view = domain.ViewDashboard
	return user, nil
}

// Login resumes a profile and enters the dashboard
func (c *Controller) Login(name string) (*domain.User, error) {
	user, err := c.auth.Login(name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = user
	c.reloadTablesLocked()
	c.view = domain.ViewDashboard
	return user, nil
}

// Logout clears the session; stored registry and tables persist
func (c *Controller) Logout() error {
	if err := c.auth.Logout(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = nil
	c.loaded = nil
	c.active = nil
	c.view = domain.ViewDashboard
	return nil
}

// State returns a consistent snapshot for rendering. Tables are deep
// copies, so a snapshot never changes after it is taken and can be
// encoded while other requests mutate the live state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := State{
		Tables:   make([]domain.VocabTable, len(c.loaded)),
		View:     c.view,
		Fetching: c.fetching,
	}
	for i := range c.loaded {
		snapshot.Tables[i] = c.loaded[i].Clone()
	}
	if c.user != nil {
		user := *c.user
		snapshot.User = &user
	}
	if c.active != nil {
		active := c.active.Clone()
		snapshot.ActiveTable = &active
	}
	return snapshot
}

// BeginCreate enters the creation flow
func (c *Controller) BeginCreate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil {
		return ErrNotSignedIn
	}
	c.view = domain.ViewCreate
	return nil
}

// CancelCreate abandons the creation flow
func (c *Controller) CancelCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = domain.ViewDashboard
}

// CreateTable runs generation, persists the new table and shows it
func (c *Controller) CreateTable(ctx context.Context, input service.ComposeInput) (domain.VocabTable, error) {
	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		return domain.VocabTable{}, ErrNotSignedIn
	}
	userID := c.user.ID
	c.fetching = true
	c.mu.Unlock()

	defer c.clearFetching()

	table, err := c.tables.Compose(ctx, userID, input)
	if err != nil {
		return domain.VocabTable{}, err
	}
	if err := c.tables.Save(table); err != nil {
		return domain.VocabTable{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.reloadTablesLocked()
	c.active = &table
	c.view = domain.ViewTable
	return table, nil
}

// OpenTable selects one of the loaded tables
func (c *Controller) OpenTable(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.loaded {
		if c.loaded[i].ID == id {
			table := c.loaded[i].Clone()
			c.active = &table
			c.view = domain.ViewTable
			return nil
		}
	}
	return ErrTableNotFound
}

// Back steps one view up: study and context-learning return to the
// table, the table returns to the dashboard
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.view {
	case domain.ViewStudy, domain.ViewContextLearning:
		c.view = domain.ViewTable
	default:
		c.view = domain.ViewDashboard
	}
}

// DeleteTable removes the table and returns to the dashboard
func (c *Controller) DeleteTable(id string) error {
	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		return ErrNotSignedIn
	}
	c.fetching = true
	c.mu.Unlock()

	defer c.clearFetching()

	if err := c.tables.Delete(id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.reloadTablesLocked()
	c.active = nil
	c.view = domain.ViewDashboard
	return nil
}

// StartStudy enters the flashcard session for the active table
func (c *Controller) StartStudy() ([]domain.VocabEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return nil, ErrNoActiveTable
	}
	// The shared view offers no study session
	if c.active.UserID == domain.PublicUserID {
		return nil, ErrSharedReadOnly
	}
	c.view = domain.ViewStudy
	return c.active.ShuffledEntries(), nil
}

// Judge applies one flashcard answer to the active table, mirrors it
// into the loaded list and persists
func (c *Controller) Judge(entryID string, known bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return ErrNoActiveTable
	}
	if c.active.UserID == domain.PublicUserID {
		return ErrSharedReadOnly
	}

	if err := c.tables.UpdateEntryProgress(c.active, entryID, known); err != nil {
		return err
	}
	c.syncLoadedLocked(*c.active)
	return nil
}

// RemoveEntry deletes one entry from the active table
func (c *Controller) RemoveEntry(entryID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return ErrNoActiveTable
	}
	if c.active.UserID == domain.PublicUserID {
		return ErrSharedReadOnly
	}

	if err := c.tables.RemoveEntry(c.active, entryID); err != nil {
		return err
	}
	c.syncLoadedLocked(*c.active)
	return nil
}

// RegenerateEntry re-runs generation for one edited word
func (c *Controller) RegenerateEntry(ctx context.Context, entryID, word string) error {
	c.mu.Lock()
	if c.active == nil {
		c.mu.Unlock()
		return ErrNoActiveTable
	}
	if c.active.UserID == domain.PublicUserID {
		c.mu.Unlock()
		return ErrSharedReadOnly
	}
	// The AI call runs against a private copy so the live state is
	// never touched outside the lock
	working := c.active.Clone()
	c.fetching = true
	c.mu.Unlock()

	defer c.clearFetching()

	if err := c.tables.RegenerateEntry(ctx, &working, entryID, word); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.swapActiveLocked(working)
	return nil
}

// EnterContextLearning shows the narrative passage, generating and
// persisting it first when no cached passage exists
func (c *Controller) EnterContextLearning(ctx context.Context) error {
	c.mu.Lock()
	if c.active == nil {
		c.mu.Unlock()
		return ErrNoActiveTable
	}
	if c.active.ContextPassage != nil {
		c.view = domain.ViewContextLearning
		c.mu.Unlock()
		return nil
	}
	if c.active.UserID == domain.PublicUserID {
		c.mu.Unlock()
		return ErrSharedReadOnly
	}
	working := c.active.Clone()
	c.fetching = true
	c.mu.Unlock()

	defer c.clearFetching()

	if err := c.tables.EnsureContextPassage(ctx, &working); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.swapActiveLocked(working)
	c.view = domain.ViewContextLearning
	return nil
}

// ShareToken encodes the active table into a share link token
func (c *Controller) ShareToken() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return "", ErrNoActiveTable
	}
	return sharelink.Encode(*c.active)
}

// Speak returns pronunciation audio for one word
func (c *Controller) Speak(ctx context.Context, word string) []byte {
	return c.tables.Speak(ctx, word)
}

// Notes returns the session user's scratch text
func (c *Controller) Notes() (string, error) {
	c.mu.Lock()
	user := c.user
	c.mu.Unlock()

	if user == nil {
		return "", ErrNotSignedIn
	}
	return c.notes.Notes(user.ID)
}

// QueueNotes schedules a debounced scratchpad save
func (c *Controller) QueueNotes(text string) error {
	c.mu.Lock()
	user := c.user
	c.mu.Unlock()

	if user == nil {
		return ErrNotSignedIn
	}
	c.notes.Queue(user.ID, text)
	return nil
}

// ClearNotes wipes the scratchpad immediately, bypassing the debounce
func (c *Controller) ClearNotes() error {
	c.mu.Lock()
	user := c.user
	c.mu.Unlock()

	if user == nil {
		return ErrNotSignedIn
	}
	return c.notes.SaveNow(user.ID, "")
}

// reloadTablesLocked refreshes the loaded list for the session user.
// Failures are logged and leave the previous list in place.
func (c *Controller) reloadTablesLocked() {
	if c.user == nil {
		c.loaded = nil
		return
	}
	tables, err := c.tables.TablesFor(c.user.ID)
	if err != nil {
		c.logger.Error("Failed to load tables", zap.String("user_id", c.user.ID), zap.Error(err))
		return
	}
	c.loaded = tables
}

// syncLoadedLocked mirrors an updated table into the loaded list. The
// stored copy is detached so later in-place edits of the active table
// do not leak into it between syncs.
func (c *Controller) syncLoadedLocked(table domain.VocabTable) {
	for i := range c.loaded {
		if c.loaded[i].ID == table.ID {
			c.loaded[i] = table.Clone()
			return
		}
	}
}

// swapActiveLocked installs a table mutated off-lock, unless the user
// navigated to a different table in the meantime
func (c *Controller) swapActiveLocked(table domain.VocabTable) {
	if c.active != nil && c.active.ID == table.ID {
		c.active = &table
	}
	c.syncLoadedLocked(table)
}

func (c *Controller) clearFetching() {
	c.mu.Lock()
	c.fetching = false
	c.mu.Unlock()
}
