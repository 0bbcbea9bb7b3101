package service

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wayne-14e/Lexicon-AI/internal/repository"
)

// DefaultAutosaveDelay is how long the scratchpad waits after the last
// keystroke before persisting
const DefaultAutosaveDelay = 800 * time.Millisecond

// NotesService persists the per-user scratchpad. Writes are debounced:
// a burst of keystrokes collapses into one write carrying the final
// text, and every new keystroke restarts the pending timer.
type NotesService struct {
	notesRepo repository.NotesRepository
	delay     time.Duration
	logger    *zap.Logger

	mu          sync.Mutex
	seq         int // invalidates timers that fired after being superseded
	timer       *time.Timer
	pendingUser string
	pendingText string
}

// NewNotesService creates a new notes service
func NewNotesService(notesRepo repository.NotesRepository, delay time.Duration, logger *zap.Logger) *NotesService {
	return &NotesService{
		notesRepo: notesRepo,
		delay:     delay,
		logger:    logger,
	}
}

// Notes returns the user's scratch text
func (s *NotesService) Notes(userID string) (string, error) {
	return s.notesRepo.Notes(userID)
}

// Queue schedules a debounced save of the user's scratch text
func (s *NotesService) Queue(userID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		// Switching users flushes the previous user's pending text so
		// it is not lost to the restarted timer
		if s.pendingUser != "" && s.pendingUser != userID {
			s.saveLocked(s.pendingUser, s.pendingText)
		}
	}

	s.seq++
	seq := s.seq
	s.pendingUser = userID
	s.pendingText = text
	s.timer = time.AfterFunc(s.delay, func() { s.flushPending(seq) })
}

// SaveNow bypasses the debounce, used by the explicit clear action
func (s *NotesService) SaveNow(userID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil && s.pendingUser == userID {
		s.timer.Stop()
		s.timer = nil
		s.pendingUser = ""
		s.seq++
	}
	return s.notesRepo.Save(userID, text)
}

// Flush persists any pending text immediately, called at shutdown
func (s *NotesService) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer == nil || s.pendingUser == "" {
		return
	}
	s.timer.Stop()
	s.timer = nil
	s.seq++
	s.saveLocked(s.pendingUser, s.pendingText)
	s.pendingUser = ""
}

func (s *NotesService) flushPending(seq int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer keystroke, flush, or immediate save superseded this timer
	if seq != s.seq || s.pendingUser == "" {
		return
	}
	s.saveLocked(s.pendingUser, s.pendingText)
	s.pendingUser = ""
	s.timer = nil
}

func (s *NotesService) saveLocked(userID, text string) {
	if err := s.notesRepo.Save(userID, text); err != nil {
		s.logger.Error("Scratchpad auto-save failed", zap.String("user_id", userID), zap.Error(err))
	}
}
