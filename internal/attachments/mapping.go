package attachments

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/JaimeStill/docket/pkg/query"
	"github.com/JaimeStill/docket/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "attachments", "a").
	Project("id", "ID").
	Project("case_id", "CaseID").
	Project("kind", "Kind").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("uploaded_at", "UploadedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UploadedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for attachment queries.
// Nil fields are ignored. CaseID, Kind, and ContentType use exact
// matching; Filename uses case-insensitive contains matching.
type Filters struct {
	CaseID      *uuid.UUID `json:"case_id,omitempty"`
	Kind        *string    `json:"kind,omitempty"`
	Filename    *string    `json:"filename,omitempty"`
	ContentType *string    `json:"content_type,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("CaseID", f.CaseID).
		WhereEquals("Kind", f.Kind).
		WhereContains("Filename", f.Filename).
		WhereEquals("ContentType", f.ContentType)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if cid := values.Get("case_id"); cid != "" {
		if v, err := uuid.Parse(cid); err == nil {
			f.CaseID = &v
		}
	}

	if k := values.Get("kind"); k != "" {
		f.Kind = &k
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}

	return f
}

func scanAttachment(s repository.Scanner) (Attachment, error) {
	var a Attachment
	err := s.Scan(
		&a.ID,
		&a.CaseID,
		&a.Kind,
		&a.Filename,
		&a.ContentType,
		&a.SizeBytes,
		&a.PageCount,
		&a.StorageKey,
		&a.UploadedAt,
		&a.UpdatedAt,
	)
	return a, err
}
