package attachments

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/JaimeStill/document-context/pkg/config"
	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/image"
)

const previewSource = "source.pdf"

// Preview renders a single page of a PDF attachment to a PNG image.
// Rendering goes through ImageMagick, so the blob is staged to a
// temporary file first.
func (r *repo) Preview(ctx context.Context, id uuid.UUID, page int) ([]byte, error) {
	a, stream, err := r.Download(ctx, id)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	if a.ContentType != "application/pdf" {
		return nil, ErrNotPDF
	}
	if page < 1 || (a.PageCount != nil && page > *a.PageCount) {
		return nil, ErrPageOutOfRange
	}

	tempDir, err := os.MkdirTemp("", "attachment-preview-*")
	if err != nil {
		return nil, fmt.Errorf("stage preview: %w", err)
	}
	defer os.RemoveAll(tempDir)

	pdfPath := filepath.Join(tempDir, previewSource)
	if err := stageBlob(pdfPath, stream); err != nil {
		return nil, fmt.Errorf("stage preview: %w", err)
	}

	data, err := renderPage(pdfPath, page)
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "attachment preview rendered", "id", id, "page", page)
	return data, nil
}

func stageBlob(path string, stream io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, stream); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func renderPage(pdfPath string, page int) ([]byte, error) {
	pdfDoc, err := document.OpenPDF(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer pdfDoc.Close()

	p, err := pdfDoc.ExtractPage(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageOutOfRange, err)
	}

	renderer, err := image.NewImageMagickRenderer(config.DefaultImageConfig())
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	data, err := p.ToImage(renderer, nil)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", page, err)
	}
	return data, nil
}
