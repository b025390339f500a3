package cases

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/docket/internal/reviews"
	"github.com/JaimeStill/docket/pkg/pagination"
)

// CaseInfo is the case context handed to the review system for exports.
type CaseInfo = reviews.CaseInfo

// SessionRegistry releases live editor sessions for a case before it is
// archived or deleted. Implemented by the reviews system.
type SessionRegistry interface {
	CloseCase(ctx context.Context, caseID uuid.UUID) error
}

// System defines the public contract for case domain operations.
type System interface {
	reviews.CaseDirectory

	Handler() *Handler
	BindSessions(s SessionRegistry)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Case], error)

	Find(ctx context.Context, id uuid.UUID) (*Case, error)
	Create(ctx context.Context, cmd CreateCommand) (*Case, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Case, error)
	Archive(ctx context.Context, id uuid.UUID, archived bool) (*Case, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
