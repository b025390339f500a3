package cases

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/docket/pkg/pagination"
	"github.com/JaimeStill/docket/pkg/query"
	"github.com/JaimeStill/docket/pkg/repository"
	"github.com/JaimeStill/docket/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	sessions   SessionRegistry
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a case repository implementing the System interface.
// Blob storage is needed so deleting a case can clean up the blobs its
// attachments own after the rows cascade away.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "cases"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

// BindSessions wires the live editor registry in after construction.
// The reviews system depends on cases for export context, so it cannot
// be a constructor argument here.
func (r *repo) BindSessions(s SessionRegistry) {
	r.sessions = s
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Case], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Reference", "CompanyName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count cases: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCase)
	if err != nil {
		return nil, fmt.Errorf("query cases: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Case, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCase)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

// Info satisfies the review system's directory contract.
func (r *repo) Info(ctx context.Context, id uuid.UUID) (CaseInfo, error) {
	c, err := r.Find(ctx, id)
	if err != nil {
		return CaseInfo{}, err
	}
	return CaseInfo{CompanyName: c.CompanyName, Reference: c.Reference}, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Case, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	status := cmd.Status
	if status == "" {
		status = StatusOpen
	}

	q := `
		INSERT INTO cases(id, reference, company_name, case_type, status, appointment_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, reference, company_name, case_type, status, appointment_date,
				  archived, created_at, updated_at`

	insertArgs := []any{
		uuid.New(),
		cmd.Reference,
		cmd.CompanyName,
		cmd.CaseType,
		status,
		cmd.AppointmentDate,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Case, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanCase)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("case created", "id", c.ID, "reference", c.Reference)
	return &c, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Case, error) {
	if cmd.CaseType != nil && !validCaseType(*cmd.CaseType) {
		return nil, ErrInvalidCase
	}
	if cmd.Status != nil && !validStatus(*cmd.Status) {
		return nil, ErrInvalidCase
	}

	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Archived {
		return nil, ErrArchived
	}

	// COALESCE keeps columns whose command field is nil.
	updateQ := `
		UPDATE cases
		SET reference = COALESCE($1, reference),
			company_name = COALESCE($2, company_name),
			case_type = COALESCE($3, case_type),
			status = COALESCE($4, status),
			appointment_date = COALESCE($5, appointment_date),
			updated_at = NOW()
		WHERE id = $6
		RETURNING id, reference, company_name, case_type, status, appointment_date,
				  archived, created_at, updated_at`

	updateArgs := []any{
		cmd.Reference,
		cmd.CompanyName,
		cmd.CaseType,
		cmd.Status,
		cmd.AppointmentDate,
		id,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Case, error) {
		return repository.QueryOne(ctx, tx, updateQ, updateArgs, scanCase)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("case updated", "id", c.ID)
	return &c, nil
}

func (r *repo) Archive(ctx context.Context, id uuid.UUID, archived bool) (*Case, error) {
	// Flush and release any live editor sessions before the case goes
	// read-only; an unsaved edit must not be stranded behind the archive.
	if archived && r.sessions != nil {
		if err := r.sessions.CloseCase(ctx, id); err != nil {
			r.logger.Warn("session close before archive failed", "id", id, "error", err)
		}
	}

	q := `
		UPDATE cases
		SET archived = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, reference, company_name, case_type, status, appointment_date,
				  archived, created_at, updated_at`

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Case, error) {
		return repository.QueryOne(ctx, tx, q, []any{archived, id}, scanCase)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("case archive state changed", "id", id, "archived", archived)
	return &c, nil
}

// Delete removes a case and everything hanging off it. Attachment and
// report rows cascade away with the case row; attachment blobs are
// removed afterwards, best effort, since blob storage is outside the
// transaction.
func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.sessions != nil {
		if err := r.sessions.CloseCase(ctx, id); err != nil {
			r.logger.Warn("session close before delete failed", "id", id, "error", err)
		}
	}

	keys, err := repository.QueryMany(ctx, r.db,
		"SELECT storage_key FROM attachments WHERE case_id = $1",
		[]any{id},
		func(s repository.Scanner) (string, error) {
			var key string
			err := s.Scan(&key)
			return key, err
		},
	)
	if err != nil {
		return fmt.Errorf("collect attachment keys: %w", err)
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM cases WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	for _, key := range keys {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("blob delete failed after case delete", "key", key, "error", delErr)
		}
	}

	r.logger.Info("case deleted", "id", id, "attachments_purged", len(keys))
	return nil
}
