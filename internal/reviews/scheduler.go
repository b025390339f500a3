package reviews

import (
	"context"
	"sync"
	"time"
)

// SaveFunc persists a draft snapshot. Implementations must be safe to
// call from the scheduler's goroutines.
type SaveFunc func(ctx context.Context, draft Draft) error

// SnapshotFunc returns the current draft at the moment a save is issued.
// The scheduler always persists the result of this call, never a copy
// captured when the save was scheduled, so edits that land during
// network latency are not lost.
type SnapshotFunc func() Draft

// Scheduler coalesces bursts of mutations into a single backend write per
// pause in editing. At most one save is in flight at a time; edits that
// arrive while one is in flight trigger a follow-up save immediately on
// resolution. A zero delay saves on every mutation.
type Scheduler struct {
	delay    time.Duration
	snapshot SnapshotFunc
	save     SaveFunc

	mu       sync.Mutex
	timer    *time.Timer
	dirty    bool
	inflight bool
	closed   bool
	lastErr  error
	lastSave time.Time
	waiters  []chan error
}

// NewScheduler creates a Scheduler with the given debounce delay.
func NewScheduler(delay time.Duration, snapshot SnapshotFunc, save SaveFunc) *Scheduler {
	return &Scheduler{
		delay:    delay,
		snapshot: snapshot,
		save:     save,
	}
}

// Notify records that the draft has mutated and (re)starts the debounce
// window. With a zero delay the save is issued immediately. The initial
// population of a draft on load must not call Notify.
func (s *Scheduler) Notify(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.dirty = true

	if s.delay == 0 {
		s.startLocked(ctx)
		return
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.startLocked(ctx)
	})
}

// Flush cancels any pending debounce window and forces the save to run
// now, blocking until it (and any follow-up covering later edits)
// resolves. Concurrent callers share a single backend write and observe
// the same outcome. With nothing pending and nothing in flight, Flush
// returns nil immediately.
func (s *Scheduler) Flush(ctx context.Context) error {
	s.mu.Lock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if !s.dirty && !s.inflight {
		s.mu.Unlock()
		return nil
	}

	done := make(chan error, 1)
	s.waiters = append(s.waiters, done)
	s.startLocked(ctx)
	s.mu.Unlock()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes outstanding work and stops the scheduler. Further
// notifications are ignored. Teardown paths must call Close so pending
// edits are not silently discarded.
func (s *Scheduler) Close(ctx context.Context) error {
	err := s.Flush(ctx)

	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	return err
}

// Saving reports whether a backend write is currently in flight.
func (s *Scheduler) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight
}

// LastError returns the failure of the most recent save attempt, cleared
// by the next successful save.
func (s *Scheduler) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// LastSaved returns the completion time of the most recent successful save.
func (s *Scheduler) LastSaved() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSave
}

// startLocked launches the save goroutine unless one is already running.
// Callers must hold s.mu. If a save is in flight, the dirty flag makes
// its completion handler issue the follow-up.
func (s *Scheduler) startLocked(ctx context.Context) {
	if s.inflight || !s.dirty || s.closed {
		return
	}

	s.inflight = true
	s.dirty = false

	// The save outlives the request that scheduled it: the debounce
	// window always expires after the mutating handler has returned and
	// its context has been cancelled. Keep the context's values but
	// detach its cancellation.
	go s.run(context.WithoutCancel(ctx))
}

func (s *Scheduler) run(ctx context.Context) {
	for {
		draft := s.snapshot()
		err := s.save(ctx, draft)

		s.mu.Lock()
		s.lastErr = err
		if err == nil {
			s.lastSave = time.Now()
		}

		if s.dirty && !s.closed {
			// Edits landed mid-save; go again with the now-current draft.
			// Waiters keep waiting so their edits are covered.
			s.dirty = false
			s.mu.Unlock()
			continue
		}

		s.inflight = false
		waiters := s.waiters
		s.waiters = nil
		s.mu.Unlock()

		for _, w := range waiters {
			w <- err
		}
		return
	}
}
