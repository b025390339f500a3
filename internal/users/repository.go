package users

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/docket/pkg/pagination"
	"github.com/JaimeStill/docket/pkg/query"
	"github.com/JaimeStill/docket/pkg/repository"
)

type repo struct {
	db         *sql.DB
	gate       *Gate
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a user repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) (System, error) {
	gate, err := NewGate(db, logger)
	if err != nil {
		return nil, err
	}

	return &repo{
		db:         db,
		gate:       gate,
		logger:     logger.With("system", "users"),
		pagination: pagination,
	}, nil
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Gate() *Gate {
	return r.gate
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[User], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Email", "DisplayName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanUser)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*User, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*User, error) {
	if cmd.Email == "" || cmd.DisplayName == "" {
		return nil, ErrInvalidUser
	}

	q := `
		INSERT INTO users(email, display_name, grade)
		VALUES ($1, $2, $3)
		RETURNING id, email, display_name, grade, active, created_at, updated_at`

	args := []any{cmd.Email, cmd.DisplayName, cmd.Grade}

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		return repository.QueryOne(ctx, tx, q, args, scanUser)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user created", "id", u.ID, "email", u.Email, "grade", u.Grade)
	return &u, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*User, error) {
	q := `
		UPDATE users
		SET email = COALESCE($1, email),
			display_name = COALESCE($2, display_name),
			grade = COALESCE($3, grade),
			active = COALESCE($4, active),
			updated_at = NOW()
		WHERE id = $5
		RETURNING id, email, display_name, grade, active, created_at, updated_at`

	args := []any{cmd.Email, cmd.DisplayName, cmd.Grade, cmd.Active, id}

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		return repository.QueryOne(ctx, tx, q, args, scanUser)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user updated", "id", u.ID)
	return &u, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM users WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user deleted", "id", id)
	return nil
}
