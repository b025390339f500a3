package reports

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/docket/internal/workflow"
	"github.com/JaimeStill/docket/pkg/pagination"
	"github.com/JaimeStill/docket/pkg/query"
	"github.com/JaimeStill/docket/pkg/repository"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

type repo struct {
	db         *sql.DB
	rt         *workflow.Runtime
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a report repository implementing the System interface.
// It internally constructs the workflow runtime from the provided dependencies.
func New(
	db *sql.DB,
	agent gaconfig.AgentConfig,
	logger *slog.Logger,
	pagination pagination.Config,
	cases workflow.CaseSource,
	reviews workflow.ReviewSource,
	templates workflow.TemplateSource,
) System {
	rt := &workflow.Runtime{
		Agent:     agent,
		Cases:     cases,
		Reviews:   reviews,
		Templates: templates,
		Logger:    logger.With("workflow", "report"),
	}
	return &repo{
		db:         db,
		rt:         rt,
		logger:     logger.With("system", "reports"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Report], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Summary")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanReport)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Report, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rep, err := repository.QueryOne(ctx, r.db, q, args, scanReport)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rep, nil
}

func (r *repo) Generate(ctx context.Context, caseID uuid.UUID) (*Report, error) {
	result, err := workflow.Execute(ctx, r.rt, caseID)
	if err != nil {
		return nil, fmt.Errorf("generate report for case %s: %w", caseID, err)
	}

	sectionsJSON, err := json.Marshal(result.Draft.Sections)
	if err != nil {
		return nil, fmt.Errorf("marshal sections: %w", err)
	}

	insertQ := `
		INSERT INTO reports(
			id, case_id, title, summary, sections,
			model_name, provider_name
		)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7)
		RETURNING id, case_id, title, summary, sections,
				  generated_at, model_name, provider_name`

	insertArgs := []any{
		uuid.New(),
		caseID,
		result.Draft.Title,
		result.Draft.Summary,
		string(sectionsJSON),
		r.rt.Agent.Model.Name,
		r.rt.Agent.Provider.Name,
	}

	rep, err := repository.QueryOne(ctx, r.db, insertQ, insertArgs, scanReport)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("report generated",
		"id", rep.ID,
		"case_id", caseID,
		"title", rep.Title,
		"model", rep.ModelName,
	)
	return &rep, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM reports WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("report deleted", "id", id)
	return nil
}
