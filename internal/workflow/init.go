package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/docket/internal/cases"
	"github.com/JaimeStill/docket/internal/reviews"
)

// InitNode returns a state node that loads the case and all of its review
// drafts, assembles the Dossier, and seeds the empty ReportDraft in the
// workflow state bag.
func InitNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		caseID, err := extractCaseID(s)
		if err != nil {
			return s, fmt.Errorf("init: %w", err)
		}

		dossier, err := assembleDossier(ctx, rt, caseID)
		if err != nil {
			return s, fmt.Errorf("init: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "init node complete",
			"case_id", caseID,
			"review_count", len(dossier.Reviews),
		)

		s = s.Set(KeyDossier, *dossier)
		s = s.Set(KeyDraft, emptyDraft())

		return s, nil
	})
}

func assembleDossier(ctx context.Context, rt *Runtime, caseID uuid.UUID) (*Dossier, error) {
	c, err := rt.Cases.Find(ctx, caseID)
	if err != nil {
		if errors.Is(err, cases.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCaseNotFound, caseID)
		}
		return nil, fmt.Errorf("%w: load case: %w", ErrDossierFailed, err)
	}

	d := &Dossier{
		CaseID:      c.ID,
		Reference:   c.Reference,
		CompanyName: c.CompanyName,
		CaseType:    c.CaseType,
		Status:      c.Status,
	}

	if c.AppointmentDate != nil {
		appointed := c.AppointmentDate.Format("2006-01-02")
		d.AppointmentDate = &appointed
	}

	for _, slot := range []reviews.Slot{
		{Kind: reviews.CaseStrategy},
		{Kind: reviews.OneMonth},
		{Kind: reviews.SixMonth},
	} {
		extract, err := extractReview(ctx, rt, caseID, slot, "")
		if err != nil {
			return nil, err
		}
		d.Reviews = append(d.Reviews, *extract)
	}

	metas, err := rt.Reviews.ListAdditional(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("%w: list additional reviews: %w", ErrDossierFailed, err)
	}

	for _, meta := range metas {
		slot := reviews.Slot{Kind: reviews.Additional, Index: meta.Index}
		extract, err := extractReview(ctx, rt, caseID, slot, meta.ReviewName)
		if err != nil {
			return nil, err
		}
		d.Reviews = append(d.Reviews, *extract)
	}

	return d, nil
}

func extractReview(
	ctx context.Context,
	rt *Runtime,
	caseID uuid.UUID,
	slot reviews.Slot,
	name string,
) (*ReviewExtract, error) {
	view, err := rt.Reviews.Open(ctx, caseID, slot)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s review: %w", ErrDossierFailed, slot, err)
	}

	return &ReviewExtract{
		Slot:       view.Slot,
		ReviewName: name,
		ReviewDate: view.ReviewDate,
		Content:    view.Draft,
	}, nil
}

func emptyDraft() ReportDraft {
	sections := make([]ReportSection, len(reportSections))
	for i, title := range reportSections {
		sections[i] = ReportSection{Title: title}
	}
	return ReportDraft{Sections: sections}
}

func extractCaseID(s state.State) (uuid.UUID, error) {
	val, ok := s.Get(KeyCaseID)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: missing %s in state", ErrDossierFailed, KeyCaseID)
	}

	caseID, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %s is not uuid.UUID", ErrDossierFailed, KeyCaseID)
	}

	return caseID, nil
}
