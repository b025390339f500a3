package reviews_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/docket/internal/reviews"
)

// saveRecorder is a thread-safe fake backend for scheduler tests.
type saveRecorder struct {
	mu     sync.Mutex
	count  atomic.Int64
	drafts []reviews.Draft
	err    error
	delay  time.Duration
}

func (r *saveRecorder) save(ctx context.Context, draft reviews.Draft) error {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	r.count.Add(1)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts = append(r.drafts, draft)
	return r.err
}

func (r *saveRecorder) last() reviews.Draft {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.drafts) == 0 {
		return nil
	}
	return r.drafts[len(r.drafts)-1]
}

// mutableDraft simulates the session's live draft for scheduler tests.
type mutableDraft struct {
	mu    sync.Mutex
	draft reviews.Draft
}

func newMutableDraft() *mutableDraft {
	return &mutableDraft{draft: reviews.Draft{}}
}

func (m *mutableDraft) set(section, field string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.Set(section, field, value)
}

func (m *mutableDraft) snapshot() reviews.Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft.Clone()
}

func TestSchedulerCoalescesBurst(t *testing.T) {
	rec := &saveRecorder{}
	draft := newMutableDraft()
	s := reviews.NewScheduler(40*time.Millisecond, draft.snapshot, rec.save)
	ctx := context.Background()

	for i, v := range []string{"1", "12", "120", "1200.50"} {
		draft.set("tax", "tlr_hmrc_owed", v)
		s.Notify(ctx)
		if i < 3 {
			time.Sleep(5 * time.Millisecond)
		}
	}

	time.Sleep(300 * time.Millisecond)

	if got := rec.count.Load(); got != 1 {
		t.Fatalf("save count = %d, want exactly 1 for a burst", got)
	}
	if got := rec.last().Section("tax")["tlr_hmrc_owed"]; got != "1200.50" {
		t.Errorf("saved value = %v, want the final edit of the burst", got)
	}
}

func TestSchedulerZeroDelaySavesImmediately(t *testing.T) {
	rec := &saveRecorder{}
	draft := newMutableDraft()
	s := reviews.NewScheduler(0, draft.snapshot, rec.save)
	ctx := context.Background()

	draft.set("progress", "realisations_summary", "first distributions paid")
	s.Notify(ctx)

	if err := s.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got := rec.count.Load(); got < 1 {
		t.Errorf("save count = %d, want at least 1 immediate save", got)
	}
}

func TestSchedulerFlushIdempotent(t *testing.T) {
	rec := &saveRecorder{delay: 30 * time.Millisecond}
	draft := newMutableDraft()
	s := reviews.NewScheduler(time.Hour, draft.snapshot, rec.save)
	ctx := context.Background()

	draft.set("review", "review_summary", "pending")
	s.Notify(ctx)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Go(func() {
			errs[i] = s.Flush(ctx)
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("Flush()[%d] error = %v", i, err)
		}
	}
	if got := rec.count.Load(); got != 1 {
		t.Errorf("save count = %d, want exactly 1 for concurrent flushes", got)
	}
}

func TestSchedulerFlushWithNothingPending(t *testing.T) {
	rec := &saveRecorder{}
	s := reviews.NewScheduler(time.Hour, newMutableDraft().snapshot, rec.save)

	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush() error = %v, want no-op success", err)
	}
	if got := rec.count.Load(); got != 0 {
		t.Errorf("save count = %d, want 0", got)
	}
}

func TestSchedulerSavesCurrentDraftNotScheduledSnapshot(t *testing.T) {
	rec := &saveRecorder{delay: 40 * time.Millisecond}
	draft := newMutableDraft()
	s := reviews.NewScheduler(0, draft.snapshot, rec.save)
	ctx := context.Background()

	draft.set("funding", "estimated_costs", "1000")
	s.Notify(ctx)

	// Edit while the first save is in flight; a follow-up save must
	// carry the newer value.
	time.Sleep(10 * time.Millisecond)
	draft.set("funding", "estimated_costs", "2500")
	s.Notify(ctx)

	if err := s.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if got := rec.last().Section("funding")["estimated_costs"]; got != "2500" {
		t.Errorf("final saved value = %v, want the mid-flight edit", got)
	}
}

func TestSchedulerSingleInflightSerializesSaves(t *testing.T) {
	var inflight, maxInflight atomic.Int64
	draft := newMutableDraft()

	save := func(ctx context.Context, d reviews.Draft) error {
		cur := inflight.Add(1)
		for {
			prev := maxInflight.Load()
			if cur <= prev || maxInflight.CompareAndSwap(prev, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inflight.Add(-1)
		return nil
	}

	s := reviews.NewScheduler(0, draft.snapshot, save)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		draft.set("progress", "realisations_summary", "edit")
		s.Notify(ctx)
		time.Sleep(5 * time.Millisecond)
	}

	if err := s.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got := maxInflight.Load(); got != 1 {
		t.Errorf("max concurrent saves = %d, want 1", got)
	}
}

func TestSchedulerErrorRetainedUntilNextSuccess(t *testing.T) {
	rec := &saveRecorder{err: errors.New("backend unavailable")}
	draft := newMutableDraft()
	s := reviews.NewScheduler(time.Hour, draft.snapshot, rec.save)
	ctx := context.Background()

	draft.set("tax", "tlr_hmrc_owed", "900")
	s.Notify(ctx)

	if err := s.Flush(ctx); err == nil {
		t.Fatal("Flush() = nil, want backend error")
	}
	if s.LastError() == nil {
		t.Error("LastError() = nil, want retained failure")
	}

	// The failed save is retried by the next mutation, not automatically.
	if got := rec.count.Load(); got != 1 {
		t.Errorf("save count = %d, want 1 (no automatic retry)", got)
	}

	rec.err = nil
	draft.set("tax", "tlr_hmrc_owed", "950")
	s.Notify(ctx)

	if err := s.Flush(ctx); err != nil {
		t.Fatalf("Flush() after recovery error = %v", err)
	}
	if s.LastError() != nil {
		t.Errorf("LastError() = %v, want cleared after success", s.LastError())
	}
}

func TestSchedulerCloseFlushesPendingEdit(t *testing.T) {
	rec := &saveRecorder{}
	draft := newMutableDraft()
	s := reviews.NewScheduler(time.Hour, draft.snapshot, rec.save)
	ctx := context.Background()

	draft.set("narrative", "progress_summary", "unsaved on teardown")
	s.Notify(ctx)

	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if got := rec.count.Load(); got != 1 {
		t.Fatalf("save count = %d, want teardown flush", got)
	}

	// Post-close notifications are ignored.
	s.Notify(ctx)
	time.Sleep(50 * time.Millisecond)
	if got := rec.count.Load(); got != 1 {
		t.Errorf("save count after close = %d, want 1", got)
	}
}

func TestSchedulerSaveSurvivesCallerCancel(t *testing.T) {
	rec := &saveRecorder{}
	draft := newMutableDraft()

	var ctxLive atomic.Bool
	save := func(ctx context.Context, d reviews.Draft) error {
		ctxLive.Store(ctx.Err() == nil)
		return rec.save(ctx, d)
	}
	s := reviews.NewScheduler(30*time.Millisecond, draft.snapshot, save)

	// The mutating request returns, and its context is cancelled, long
	// before the debounce window expires.
	ctx, cancel := context.WithCancel(context.Background())
	draft.set("strategy", "case_objectives", "collect outstanding book debts")
	s.Notify(ctx)
	cancel()

	time.Sleep(200 * time.Millisecond)

	if got := rec.count.Load(); got != 1 {
		t.Fatalf("save count = %d, want 1 after the window expires", got)
	}
	if !ctxLive.Load() {
		t.Error("save ran on the cancelled caller context")
	}
	if err := s.LastError(); err != nil {
		t.Errorf("LastError() = %v, want nil", err)
	}
}
