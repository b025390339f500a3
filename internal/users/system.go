package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/docket/pkg/pagination"
)

// System defines the public contract for user domain operations.
type System interface {
	Handler() *Handler
	Gate() *Gate

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[User], error)

	Find(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, cmd CreateCommand) (*User, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
