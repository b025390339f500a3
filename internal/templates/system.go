package templates

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/docket/pkg/pagination"
)

// System defines the public contract for template domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Template], error)

	Find(ctx context.Context, id uuid.UUID) (*Template, error)
	ActiveForKind(ctx context.Context, kind Kind) (*Template, error)
	Create(ctx context.Context, cmd CreateCommand) (*Template, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Template, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Activate(ctx context.Context, id uuid.UUID) (*Template, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*Template, error)
}
