package reviews

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/JaimeStill/docket/pkg/lifecycle"
)

// Manager owns the live editor sessions, one per (case, slot). Sessions
// are opened on demand, reused while live, and always flushed on
// teardown so a case switch or shutdown never drops a pending edit.
type Manager struct {
	store  Store
	cfg    SessionConfig
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager over the given store.
func NewManager(store Store, cfg SessionConfig, logger *slog.Logger) *Manager {
	return &Manager{
		store:    store,
		cfg:      cfg,
		logger:   logger.With("system", "reviews"),
		sessions: make(map[string]*Session),
	}
}

// Start registers a shutdown hook that flushes and closes every live session.
func (m *Manager) Start(lc *lifecycle.Coordinator) error {
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		m.logger.Info("flushing review sessions")
		// Shutdown context is done; flush with a fresh context so
		// pending saves still reach the backend.
		m.CloseAll(context.Background())
	})
	return nil
}

func sessionKey(caseID uuid.UUID, slot Slot) string {
	return fmt.Sprintf("%s:%s", caseID, slot)
}

// Session returns the live session for the slot, opening one if needed.
// Opening loads the stored payload, merges it over the slot defaults, and
// never triggers a save.
func (m *Manager) Session(ctx context.Context, caseID uuid.UUID, slot Slot) (*Session, error) {
	key := sessionKey(caseID, slot)

	m.mu.Lock()
	if sess, ok := m.sessions[key]; ok {
		m.mu.Unlock()
		return sess, nil
	}
	m.mu.Unlock()

	payload, reviewDate, err := m.store.Load(ctx, caseID, slot)
	if err != nil {
		return nil, err
	}

	var raw any
	if payload != nil {
		raw = *payload
	}
	draft := DecodeSlotPayload(slot, raw, m.logger)

	var sess *Session
	save := func(ctx context.Context, d Draft) error {
		encoded, err := EncodePayload(slot, d)
		if err != nil {
			return err
		}
		return m.store.Save(ctx, caseID, slot, encoded, sess.ReviewDate())
	}

	sess = NewSession(caseID, slot, draft, reviewDate, m.cfg, save, m.logger)

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[key]; ok {
		// Lost the race to another open; keep the first.
		return existing, nil
	}
	m.sessions[key] = sess
	return sess, nil
}

// Reload discards the live session for a slot after flushing it, so the
// next access sees freshly loaded state.
func (m *Manager) Reload(ctx context.Context, caseID uuid.UUID, slot Slot) error {
	key := sessionKey(caseID, slot)

	m.mu.Lock()
	sess, ok := m.sessions[key]
	delete(m.sessions, key)
	m.mu.Unlock()

	if !ok {
		return nil
	}
	return sess.Close(ctx)
}

// CloseCase flushes and retires every session belonging to a case.
func (m *Manager) CloseCase(ctx context.Context, caseID uuid.UUID) error {
	prefix := caseID.String() + ":"

	m.mu.Lock()
	var doomed []*Session
	for key, sess := range m.sessions {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			doomed = append(doomed, sess)
			delete(m.sessions, key)
		}
	}
	m.mu.Unlock()

	var firstErr error
	for _, sess := range doomed {
		if err := sess.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// CloseAll flushes and retires every live session.
func (m *Manager) CloseAll(ctx context.Context) {
	m.mu.Lock()
	doomed := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		doomed = append(doomed, sess)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, sess := range doomed {
		if err := sess.Close(ctx); err != nil {
			m.logger.Warn("session close failed",
				"case_id", sess.CaseID,
				"slot", sess.Slot.String(),
				"error", err,
			)
		}
	}
}
