package workflow

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/docket/internal/cases"
	"github.com/JaimeStill/docket/internal/reviews"
	"github.com/JaimeStill/docket/internal/templates"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// CaseSource resolves the case under report. Satisfied by cases.System.
type CaseSource interface {
	Find(ctx context.Context, id uuid.UUID) (*cases.Case, error)
}

// ReviewSource supplies review drafts for the dossier. Satisfied by
// reviews.System.
type ReviewSource interface {
	Open(ctx context.Context, caseID uuid.UUID, slot reviews.Slot) (*reviews.SessionView, error)
	ListAdditional(ctx context.Context, caseID uuid.UUID) ([]reviews.AdditionalMeta, error)
}

// TemplateSource supplies the active report template used as drafting
// instructions. Satisfied by templates.System.
type TemplateSource interface {
	ActiveForKind(ctx context.Context, kind templates.Kind) (*templates.Template, error)
}

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and Domain systems.
type Runtime struct {
	Agent     gaconfig.AgentConfig
	Cases     CaseSource
	Reviews   ReviewSource
	Templates TemplateSource
	Logger    *slog.Logger
}
