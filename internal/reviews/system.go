package reviews

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/docket/pkg/lifecycle"
)

// CaseInfo is the case context a review export needs.
type CaseInfo struct {
	CompanyName string
	Reference   string
}

// CaseDirectory resolves case context for exports. Implemented by the
// cases domain.
type CaseDirectory interface {
	Info(ctx context.Context, id uuid.UUID) (CaseInfo, error)
}

// SessionView is the wire representation of a live editor session.
type SessionView struct {
	CaseID     uuid.UUID  `json:"case_id"`
	Slot       string     `json:"slot"`
	Draft      Draft      `json:"draft"`
	ReviewDate *string    `json:"review_date"`
	Locked     bool       `json:"locked"`
	Status     SaveStatus `json:"status"`
}

// MutateCommand carries one field edit. A non-empty Section targets a
// draft field (empty Field replaces the whole section, used for line-item
// lists); otherwise the review date is updated, or cleared when
// ClearReviewDate is set.
type MutateCommand struct {
	Section string `json:"section,omitempty"`
	Field   string `json:"field,omitempty"`
	Value   any    `json:"value,omitempty"`

	ReviewDate      *string `json:"review_date,omitempty"`
	ClearReviewDate bool    `json:"clear_review_date,omitempty"`
}

// LockCommand carries an edit-lock transition request.
type LockCommand struct {
	Locked bool `json:"locked"`
}

// LockResult reports a lock transition. SaveError carries the flush
// failure when the lock proceeded despite an unsaved write.
type LockResult struct {
	Locked    bool   `json:"locked"`
	SaveError string `json:"save_error,omitempty"`
}

// AddCommand names a new additional review.
type AddCommand struct {
	ReviewName string `json:"review_name"`
}

// System defines the public contract for review domain operations.
type System interface {
	Handler() *Handler

	Open(ctx context.Context, caseID uuid.UUID, slot Slot) (*SessionView, error)
	Mutate(ctx context.Context, caseID uuid.UUID, slot Slot, cmd MutateCommand) (*SessionView, error)
	SetLock(ctx context.Context, caseID uuid.UUID, slot Slot, locked bool) (*LockResult, error)
	Flush(ctx context.Context, caseID uuid.UUID, slot Slot) error
	Export(ctx context.Context, caseID uuid.UUID, slot Slot) (string, error)

	ListAdditional(ctx context.Context, caseID uuid.UUID) ([]AdditionalMeta, error)
	AddAdditional(ctx context.Context, caseID uuid.UUID, cmd AddCommand) (*AdditionalMeta, error)
	RemoveAdditional(ctx context.Context, caseID uuid.UUID, index int) error

	CloseCase(ctx context.Context, caseID uuid.UUID) error
	Start(lc *lifecycle.Coordinator) error
}

type system struct {
	manager *Manager
	store   Store
	cases   CaseDirectory
	logger  *slog.Logger
}

// New creates the review system over the given database connection.
func New(
	db *sql.DB,
	cases CaseDirectory,
	cfg SessionConfig,
	logger *slog.Logger,
) System {
	store := NewStore(db, logger)
	return &system{
		manager: NewManager(store, cfg, logger),
		store:   store,
		cases:   cases,
		logger:  logger.With("system", "reviews"),
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *system) Start(lc *lifecycle.Coordinator) error {
	return s.manager.Start(lc)
}

func (s *system) Open(ctx context.Context, caseID uuid.UUID, slot Slot) (*SessionView, error) {
	sess, err := s.manager.Session(ctx, caseID, slot)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *system) Mutate(ctx context.Context, caseID uuid.UUID, slot Slot, cmd MutateCommand) (*SessionView, error) {
	sess, err := s.manager.Session(ctx, caseID, slot)
	if err != nil {
		return nil, err
	}

	if cmd.Section != "" {
		err = sess.Mutate(ctx, cmd.Section, cmd.Field, cmd.Value)
	} else if cmd.ClearReviewDate {
		err = sess.SetReviewDate(ctx, nil)
	} else {
		err = sess.SetReviewDate(ctx, cmd.ReviewDate)
	}

	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *system) SetLock(ctx context.Context, caseID uuid.UUID, slot Slot, locked bool) (*LockResult, error) {
	sess, err := s.manager.Session(ctx, caseID, slot)
	if err != nil {
		return nil, err
	}

	result := &LockResult{Locked: locked}
	if err := sess.SetLocked(ctx, locked); err != nil {
		// Lock transitions proceed on save failure; the failure is
		// reported, never swallowed.
		result.SaveError = err.Error()
	}
	return result, nil
}

func (s *system) Flush(ctx context.Context, caseID uuid.UUID, slot Slot) error {
	sess, err := s.manager.Session(ctx, caseID, slot)
	if err != nil {
		return err
	}
	return sess.Flush(ctx)
}

func (s *system) Export(ctx context.Context, caseID uuid.UUID, slot Slot) (string, error) {
	sess, err := s.manager.Session(ctx, caseID, slot)
	if err != nil {
		return "", err
	}

	info, err := s.cases.Info(ctx, caseID)
	if err != nil {
		return "", err
	}

	meta := ExportMeta{
		CompanyName:   info.CompanyName,
		CaseReference: info.Reference,
		Title:         exportTitle(slot, info.CompanyName),
	}

	return ExportHTML(meta, sess.Snapshot(), sess.ReviewDate()), nil
}

func (s *system) ListAdditional(ctx context.Context, caseID uuid.UUID) ([]AdditionalMeta, error) {
	return s.store.ListAdditional(ctx, caseID)
}

func (s *system) AddAdditional(ctx context.Context, caseID uuid.UUID, cmd AddCommand) (*AdditionalMeta, error) {
	index, err := s.store.AddAdditional(ctx, caseID, cmd.ReviewName)
	if err != nil {
		return nil, err
	}

	metas, err := s.store.ListAdditional(ctx, caseID)
	if err != nil {
		return nil, err
	}
	return &metas[index], nil
}

func (s *system) RemoveAdditional(ctx context.Context, caseID uuid.UUID, index int) error {
	slot := Slot{Kind: Additional, Index: index}
	if err := s.manager.Reload(ctx, caseID, slot); err != nil {
		s.logger.Warn("session teardown before removal failed",
			"case_id", caseID, "index", index, "error", err)
	}

	// Indexes above the removed element shift down; retire their
	// sessions so stale indexes cannot write over the wrong element.
	if err := s.manager.CloseCase(ctx, caseID); err != nil {
		s.logger.Warn("case session teardown failed", "case_id", caseID, "error", err)
	}

	return s.store.RemoveAdditional(ctx, caseID, index)
}

func (s *system) CloseCase(ctx context.Context, caseID uuid.UUID) error {
	return s.manager.CloseCase(ctx, caseID)
}

func (s *system) view(sess *Session) *SessionView {
	return &SessionView{
		CaseID:     sess.CaseID,
		Slot:       sess.Slot.String(),
		Draft:      sess.Snapshot(),
		ReviewDate: sess.ReviewDate(),
		Locked:     sess.Locked(),
		Status:     sess.Status(),
	}
}

func exportTitle(slot Slot, company string) string {
	var kind string
	switch slot.Kind {
	case CaseStrategy:
		kind = "Case Strategy Review"
	case OneMonth:
		kind = "1 Month Review"
	case SixMonth:
		kind = "6 Month Review"
	case Additional:
		kind = "Additional Review"
	}

	if company == "" {
		return kind
	}
	return company + " - " + kind
}
