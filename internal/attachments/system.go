package attachments

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/JaimeStill/docket/pkg/pagination"
)

// System defines the public contract for attachment domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Attachment], error)

	Find(ctx context.Context, id uuid.UUID) (*Attachment, error)
	Create(ctx context.Context, cmd CreateCommand) (*Attachment, error)
	Download(ctx context.Context, id uuid.UUID) (*Attachment, io.ReadCloser, error)
	Preview(ctx context.Context, id uuid.UUID, page int) ([]byte, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
