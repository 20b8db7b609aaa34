package pdfreport

import (
	"log/slog"
	"strings"

	"github.com/luabelo/automacao-simplesvet/internal/report"
)

// labelStopwords disqualify an uppercase line from being a staff section
// label; they mark header rows and report chrome instead.
var labelStopwords = []string{"cliente", "animal", "data", "hora", "status", "agenda"}

// Extractor walks every page of an agenda report and accumulates accepted
// records in document order.
type Extractor struct {
	log *slog.Logger
}

// NewExtractor creates an extractor logging through log. A nil logger
// discards all output.
func NewExtractor(log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Extractor{log: log}
}

// Extract opens the blob and returns every accepted record across all
// pages. A document with no recognizable tables yields an empty ledger and
// a nil error; only failing to open the blob aborts the call. Running twice
// on the same blob produces an identical ledger.
func (e *Extractor) Extract(blob []byte) (report.Ledger, error) {
	doc, err := Open(blob)
	if err != nil {
		return nil, err
	}
	e.log.Info("PDF opened", "pages", doc.PageCount())

	ledger := report.Ledger{}
	for pageNum := 1; pageNum <= doc.PageCount(); pageNum++ {
		records := e.extractPage(doc, pageNum)
		ledger = append(ledger, records...)
		e.log.Debug("page processed", "page", pageNum, "records", len(records))
	}
	return ledger, nil
}

// extractPage recovers from any panic inside the PDF library so a corrupt
// page degrades to zero records instead of aborting the document.
func (e *Extractor) extractPage(doc *Document, pageNum int) (records report.Ledger) {
	defer func() {
		if r := recover(); r != nil {
			records = nil
			e.log.Warn("page extraction failed", "page", pageNum, "reason", r)
		}
	}()

	page := doc.page(pageNum)
	if page.V.IsNull() {
		return nil
	}

	lines := buildLines(page.Content().Text)
	tables, labels := partitionPage(lines)
	if len(tables) == 0 {
		e.log.Debug("no tables on page", "page", pageNum)
		return nil
	}

	for i, table := range tables {
		veterinarian := labelForTable(labels, i)
		parsed := e.parseTable(table, veterinarian)
		records = append(records, parsed...)
	}
	return records
}

// labelForTable pairs tables and staff labels by position. When a page has
// more tables than labels the last label is reused; the vendor's layout
// gives no better signal for ambiguous section boundaries.
func labelForTable(labels []string, tableIdx int) string {
	if len(labels) == 0 {
		return ""
	}
	if tableIdx >= len(labels) {
		return labels[len(labels)-1]
	}
	return labels[tableIdx]
}

// partitionPage splits a page's visual lines into tables and staff labels,
// both in page order. A table opens at a header line and runs until the
// next header, the next staff label, or the end of the page.
func partitionPage(lines []line) (tables [][]line, labels []string) {
	var current []line
	flush := func() {
		if current != nil {
			tables = append(tables, current)
			current = nil
		}
	}

	for _, ln := range lines {
		text := ln.text()
		switch {
		case isHeaderLine(ln):
			flush()
			current = []line{ln}
		case isStaffLabel(text):
			labels = append(labels, strings.TrimSpace(text))
			flush()
		default:
			if current != nil {
				current = append(current, ln)
			}
		}
	}
	flush()
	return tables, labels
}

// isHeaderLine matches the vendor's header rows: multiple cells, one of
// them carrying the client label.
func isHeaderLine(ln line) bool {
	if len(ln.cells) < 2 {
		return false
	}
	return strings.Contains(strings.ToLower(ln.text()), "cliente")
}

// isStaffLabel matches the distinctly formatted all-uppercase section
// titles naming the veterinarian for the table that follows.
func isStaffLabel(s string) bool {
	s = strings.TrimSpace(s)
	if len([]rune(s)) <= 5 {
		return false
	}
	if s != strings.ToUpper(s) || s == strings.ToLower(s) {
		return false
	}
	lower := strings.ToLower(s)
	for _, stop := range labelStopwords {
		if strings.Contains(lower, stop) {
			return false
		}
	}
	return true
}

// parseTable projects a table's lines onto the header's column grid and
// classifies every row after the header.
func (e *Extractor) parseTable(table []line, veterinarian string) report.Ledger {
	if len(table) < 2 {
		return nil
	}

	starts := columnStarts(table[0])
	raw := make([][]string, len(table))
	for i, ln := range table {
		raw[i] = projectRow(ln, starts)
	}

	cm, headerIdx, ok := report.ResolveHeader(raw)
	if !ok {
		e.log.Debug("header not found in table", "firstRow", raw[0])
		return nil
	}

	var records report.Ledger
	for _, row := range raw[headerIdx+1:] {
		if rec, accepted := report.ClassifyRow(row, cm, veterinarian); accepted {
			records = append(records, rec)
		}
	}
	return records
}
