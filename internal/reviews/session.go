package reviews

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is a live editor for one review document. It owns the draft,
// the edit lock, and the save scheduler. All methods are safe for
// concurrent use; the draft is only ever read or written under the
// session mutex.
type Session struct {
	CaseID uuid.UUID
	Slot   Slot

	lock       sync.Mutex
	draft      Draft
	reviewDate *string
	locked     bool
	closed     bool

	scheduler   *Scheduler
	savedWindow time.Duration
	logger      *slog.Logger
}

// SessionConfig carries the tunables a session needs from configuration.
type SessionConfig struct {
	// Delay is the debounce window; zero means save on every mutation.
	Delay time.Duration
	// SavedWindow bounds how long the "saved" indicator is shown.
	SavedWindow time.Duration
}

// NewSession creates a session over an already-merged draft. The initial
// population of the draft never schedules a save; only mutations after
// construction do.
func NewSession(
	caseID uuid.UUID,
	slot Slot,
	draft Draft,
	reviewDate *string,
	cfg SessionConfig,
	save SaveFunc,
	logger *slog.Logger,
) *Session {
	s := &Session{
		CaseID:      caseID,
		Slot:        slot,
		draft:       draft,
		reviewDate:  reviewDate,
		locked:      slot.LocksOnLoad(),
		savedWindow: cfg.SavedWindow,
		logger:      logger.With("session", slot.String(), "case_id", caseID),
	}

	delay := cfg.Delay
	if slot.Immediate() {
		delay = 0
	}

	s.scheduler = NewScheduler(delay, s.Snapshot, save)
	return s
}

// Snapshot returns a deep copy of the current draft.
func (s *Session) Snapshot() Draft {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.draft.Clone()
}

// ReviewDate returns a copy of the review date currently held by the
// session. Writes to the session's date must go through SetReviewDate so
// the lock guard applies.
func (s *Session) ReviewDate() *string {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.reviewDate == nil {
		return nil
	}
	date := *s.reviewDate
	return &date
}

// Locked reports the current edit-lock state.
func (s *Session) Locked() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.locked
}

// Mutate applies a field edit and schedules an auto-save. When field is
// empty the section value is replaced wholesale (line-item list edits).
// Mutations are rejected with ErrLocked while the session is locked and
// ErrSessionClosed after teardown; the guard lives here, not in the UI,
// so programmatic mutation attempts are also refused.
func (s *Session) Mutate(ctx context.Context, section, field string, value any) error {
	s.lock.Lock()
	if s.closed {
		s.lock.Unlock()
		return ErrSessionClosed
	}
	if s.locked {
		s.lock.Unlock()
		return ErrLocked
	}

	if field == "" {
		s.draft.Replace(section, value)
	} else {
		s.draft.Set(section, field, value)
	}
	s.lock.Unlock()

	s.scheduler.Notify(ctx)
	return nil
}

// SetReviewDate updates the review date and schedules an auto-save.
// Subject to the same lock guard as field mutations.
func (s *Session) SetReviewDate(ctx context.Context, date *string) error {
	s.lock.Lock()
	if s.closed {
		s.lock.Unlock()
		return ErrSessionClosed
	}
	if s.locked {
		s.lock.Unlock()
		return ErrLocked
	}
	s.reviewDate = date
	s.lock.Unlock()

	s.scheduler.Notify(ctx)
	return nil
}

// SetLocked transitions the edit lock. Unlocking is immediate with no
// save side effect. Locking first flushes any pending save and awaits
// its outcome; the lock proceeds even when the flush fails, but the
// failure is returned so the caller can surface it rather than swallow it.
func (s *Session) SetLocked(ctx context.Context, locked bool) error {
	s.lock.Lock()
	if s.closed {
		s.lock.Unlock()
		return ErrSessionClosed
	}
	if s.locked == locked {
		s.lock.Unlock()
		return nil
	}

	if !locked {
		s.locked = false
		s.lock.Unlock()
		return nil
	}
	s.lock.Unlock()

	err := s.scheduler.Flush(ctx)

	s.lock.Lock()
	s.locked = true
	s.lock.Unlock()

	if err != nil {
		s.logger.Warn("flush on lock failed", "error", err)
	}
	return err
}

// Flush forces any pending save to complete now.
func (s *Session) Flush(ctx context.Context) error {
	return s.scheduler.Flush(ctx)
}

// Status derives the transient save indicator from scheduler state.
func (s *Session) Status() SaveStatus {
	if s.scheduler.Saving() {
		return SaveStatus{State: SaveSaving}
	}
	if err := s.scheduler.LastError(); err != nil {
		return SaveStatus{State: SaveError, Message: err.Error()}
	}
	if last := s.scheduler.LastSaved(); !last.IsZero() && time.Since(last) < s.savedWindow {
		return SaveStatus{State: SaveSaved}
	}
	return SaveStatus{State: SaveIdle}
}

// Close flushes pending work and permanently retires the session.
// Teardown flushes rather than discarding, so switching cases or closing
// a form never silently loses an edit.
func (s *Session) Close(ctx context.Context) error {
	s.lock.Lock()
	if s.closed {
		s.lock.Unlock()
		return nil
	}
	s.closed = true
	s.lock.Unlock()

	return s.scheduler.Close(ctx)
}
