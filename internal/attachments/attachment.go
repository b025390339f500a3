// Package attachments implements case file attachments for Docket.
// It provides types, data access, and business logic for uploading
// supporting files (screenshots, signatures, correspondence) to blob
// storage and managing their metadata per case.
package attachments

import (
	"time"

	"github.com/google/uuid"
)

// Attachment kinds.
const (
	KindScreenshot     = "screenshot"
	KindSignature      = "signature"
	KindCorrespondence = "correspondence"
	KindDocument       = "document"
)

// Attachment represents an uploaded case file with its metadata and blob
// storage reference.
type Attachment struct {
	ID          uuid.UUID `json:"id"`
	CaseID      uuid.UUID `json:"case_id"`
	Kind        string    `json:"kind"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count"`
	StorageKey  string    `json:"storage_key"`
	UploadedAt  time.Time `json:"uploaded_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to upload and register a new
// attachment. Data holds the raw file bytes. PageCount is optional and
// may be extracted by the caller via pdfcpu; nil values are stored as NULL.
type CreateCommand struct {
	Data        []byte
	CaseID      uuid.UUID
	Kind        string
	Filename    string
	ContentType string
	PageCount   *int
}

func validKind(k string) bool {
	switch k {
	case KindScreenshot, KindSignature, KindCorrespondence, KindDocument:
		return true
	}
	return false
}
