package accounts

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/docket/pkg/pagination"
)

// System defines the public contract for account domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Account], error)

	Find(ctx context.Context, id uuid.UUID) (*Account, error)
	Create(ctx context.Context, cmd CreateCommand) (*Account, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
