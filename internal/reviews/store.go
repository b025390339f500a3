package reviews

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/docket/pkg/repository"
)

// Store persists review slot payloads against the parent case record.
// Updates are partial: only the columns belonging to one slot are written.
type Store interface {
	// Load returns the stored payload text and review date for a slot.
	// A case with no saved payload yields an empty payload, not an error.
	Load(ctx context.Context, caseID uuid.UUID, slot Slot) (payload *string, reviewDate *string, err error)
	// Save writes the payload text and review date for a slot.
	Save(ctx context.Context, caseID uuid.UUID, slot Slot, payload string, reviewDate *string) error
	// ListAdditional returns metadata for the case's additional reviews.
	ListAdditional(ctx context.Context, caseID uuid.UUID) ([]AdditionalMeta, error)
	// AddAdditional appends a new empty additional review and returns its index.
	AddAdditional(ctx context.Context, caseID uuid.UUID, name string) (int, error)
	// RemoveAdditional deletes the additional review at the given index.
	RemoveAdditional(ctx context.Context, caseID uuid.UUID, index int) error
}

type store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore creates a Store over the cases table.
func NewStore(db *sql.DB, logger *slog.Logger) Store {
	return &store{
		db:     db,
		logger: logger.With("system", "reviews"),
	}
}

func slotColumns(kind SlotKind) (noteCol, dateCol string) {
	switch kind {
	case CaseStrategy:
		return "case_strategy_note", "case_strategy_note_date"
	case OneMonth:
		return "review_1_month_note", "review_1_month_date"
	case SixMonth:
		return "review_6_month_note", "review_6_month_date"
	default:
		return "", ""
	}
}

func (s *store) Load(ctx context.Context, caseID uuid.UUID, slot Slot) (*string, *string, error) {
	if slot.Kind == Additional {
		return s.loadAdditional(ctx, caseID, slot.Index)
	}

	noteCol, dateCol := slotColumns(slot.Kind)
	q := fmt.Sprintf(
		"SELECT %s::text, %s::text FROM cases WHERE id = $1",
		noteCol, dateCol,
	)

	type row struct {
		note *string
		date *string
	}

	r, err := repository.QueryOne(ctx, s.db, q, []any{caseID},
		func(sc repository.Scanner) (row, error) {
			var v row
			err := sc.Scan(&v.note, &v.date)
			return v, err
		})
	if err != nil {
		return nil, nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	return r.note, r.date, nil
}

func (s *store) Save(ctx context.Context, caseID uuid.UUID, slot Slot, payload string, reviewDate *string) error {
	if slot.Kind == Additional {
		return s.saveAdditional(ctx, caseID, slot.Index, payload, reviewDate)
	}

	noteCol, dateCol := slotColumns(slot.Kind)
	noteCast := ""
	if slot.Kind == SixMonth {
		noteCast = "::jsonb"
	}
	q := fmt.Sprintf(
		"UPDATE cases SET %s = $1%s, %s = $2::date, updated_at = NOW() WHERE id = $3",
		noteCol, noteCast, dateCol,
	)

	if err := repository.ExecExpectOne(ctx, s.db, q, payload, reviewDate, caseID); err != nil {
		return repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	s.logger.Debug("slot saved", "case_id", caseID, "slot", slot.String())
	return nil
}

func (s *store) loadAdditional(ctx context.Context, caseID uuid.UUID, index int) (*string, *string, error) {
	items, err := s.readAdditional(ctx, s.db, caseID)
	if err != nil {
		return nil, nil, err
	}
	if index < 0 || index >= len(items) {
		return nil, nil, fmt.Errorf("%w: additional review %d", ErrNotFound, index)
	}

	note := items[index].ReviewNote
	return &note, items[index].ReviewDate, nil
}

func (s *store) saveAdditional(ctx context.Context, caseID uuid.UUID, index int, payload string, reviewDate *string) error {
	_, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (struct{}, error) {
		items, err := s.readAdditionalForUpdate(ctx, tx, caseID)
		if err != nil {
			return struct{}{}, err
		}
		if index < 0 || index >= len(items) {
			return struct{}{}, fmt.Errorf("%w: additional review %d", ErrNotFound, index)
		}

		items[index].ReviewNote = payload
		items[index].ReviewDate = reviewDate

		return struct{}{}, s.writeAdditional(ctx, tx, caseID, items)
	})
	return err
}

func (s *store) ListAdditional(ctx context.Context, caseID uuid.UUID) ([]AdditionalMeta, error) {
	items, err := s.readAdditional(ctx, s.db, caseID)
	if err != nil {
		return nil, err
	}

	metas := make([]AdditionalMeta, len(items))
	for i, item := range items {
		metas[i] = AdditionalMeta{
			Index:      i,
			ReviewName: item.ReviewName,
			ReviewDate: item.ReviewDate,
		}
	}
	return metas, nil
}

func (s *store) AddAdditional(ctx context.Context, caseID uuid.UUID, name string) (int, error) {
	return repository.WithTx(ctx, s.db, func(tx *sql.Tx) (int, error) {
		items, err := s.readAdditionalForUpdate(ctx, tx, caseID)
		if err != nil {
			return 0, err
		}

		if name == "" {
			name = fmt.Sprintf("Review %d", len(items)+1)
		}

		empty, err := EncodePayload(Slot{Kind: Additional}, DefaultDraft(Additional))
		if err != nil {
			return 0, err
		}

		items = append(items, AdditionalReview{
			ReviewName: name,
			ReviewNote: empty,
		})

		if err := s.writeAdditional(ctx, tx, caseID, items); err != nil {
			return 0, err
		}

		index := len(items) - 1
		s.logger.Info("additional review added", "case_id", caseID, "index", index, "name", name)
		return index, nil
	})
}

func (s *store) RemoveAdditional(ctx context.Context, caseID uuid.UUID, index int) error {
	_, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (struct{}, error) {
		items, err := s.readAdditionalForUpdate(ctx, tx, caseID)
		if err != nil {
			return struct{}{}, err
		}
		if index < 0 || index >= len(items) {
			return struct{}{}, fmt.Errorf("%w: additional review %d", ErrNotFound, index)
		}

		items = append(items[:index], items[index+1:]...)
		if err := s.writeAdditional(ctx, tx, caseID, items); err != nil {
			return struct{}{}, err
		}

		s.logger.Info("additional review removed", "case_id", caseID, "index", index)
		return struct{}{}, nil
	})
	return err
}

func (s *store) readAdditional(ctx context.Context, q repository.Querier, caseID uuid.UUID) ([]AdditionalReview, error) {
	raw, err := repository.QueryOne(ctx, q,
		"SELECT additional_reviews FROM cases WHERE id = $1",
		[]any{caseID},
		func(sc repository.Scanner) (*string, error) {
			var v *string
			err := sc.Scan(&v)
			return v, err
		})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	return DecodeAdditionalReviews(raw, s.logger), nil
}

func (s *store) readAdditionalForUpdate(ctx context.Context, tx *sql.Tx, caseID uuid.UUID) ([]AdditionalReview, error) {
	raw, err := repository.QueryOne(ctx, tx,
		"SELECT additional_reviews FROM cases WHERE id = $1 FOR UPDATE",
		[]any{caseID},
		func(sc repository.Scanner) (*string, error) {
			var v *string
			err := sc.Scan(&v)
			return v, err
		})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	return DecodeAdditionalReviews(raw, s.logger), nil
}

func (s *store) writeAdditional(ctx context.Context, tx *sql.Tx, caseID uuid.UUID, items []AdditionalReview) error {
	encoded, err := EncodeAdditionalReviews(items)
	if err != nil {
		return err
	}

	if err := repository.ExecExpectOne(
		ctx, tx,
		"UPDATE cases SET additional_reviews = $1::jsonb, updated_at = NOW() WHERE id = $2",
		encoded, caseID,
	); err != nil {
		return repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return nil
}
