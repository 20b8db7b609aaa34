// Package pdfreport extracts appointment records from SimplesVet agenda
// report PDFs. It rebuilds the report's per-staff tables from positioned
// page text and runs them through the report package's header and row rules.
package pdfreport

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrEmptyDocument is returned when the supplied blob holds no data.
var ErrEmptyDocument = errors.New("document is empty")

// Document is an open report PDF. It is owned by a single extraction call
// and holds no file handles; the blob stays in memory for its lifetime.
type Document struct {
	reader *pdf.Reader
	pages  int
}

// Open validates and opens a PDF blob. Validation runs in relaxed mode so
// the vendor's slightly out-of-spec reports still open; a blob that is not
// a PDF at all fails here rather than mid-extraction.
func Open(blob []byte) (*Document, error) {
	if len(blob) == 0 {
		return nil, ErrEmptyDocument
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(blob), conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to determine page count: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	return &Document{reader: reader, pages: ctx.PageCount}, nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.pages
}

// page returns the 1-based page, or an empty page when out of range.
func (d *Document) page(n int) pdf.Page {
	return d.reader.Page(n)
}
