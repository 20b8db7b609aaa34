package pdfreport

import (
	"log/slog"

	"github.com/luabelo/automacao-simplesvet/internal/report"
	"github.com/luabelo/automacao-simplesvet/internal/workbook"
)

// Converter runs the full PDF path: extract the ledger, then write the
// spreadsheet artifact under the monthly naming contract.
type Converter struct {
	log       *slog.Logger
	extractor *Extractor
}

// NewConverter creates a converter logging through log.
func NewConverter(log *slog.Logger) *Converter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Converter{log: log, extractor: NewExtractor(log)}
}

// Convert extracts blob and writes the artifact into outDir, named from
// label and category. It returns the artifact path and the accepted record
// count so callers can report totals without re-reading the file. An empty
// ledger returns workbook.ErrNoRecords and writes nothing.
func (c *Converter) Convert(blob []byte, label, outDir string, category workbook.Category) (string, int, error) {
	ledger, err := c.extractor.Extract(blob)
	if err != nil {
		return "", 0, err
	}
	if len(ledger) == 0 {
		c.log.Warn("no records found in document")
		return "", 0, workbook.ErrNoRecords
	}

	path := workbook.ArtifactPath(outDir, label, category)
	if err := workbook.Write(path, "Agendamentos", report.Headers(), ledger.Rows()); err != nil {
		return "", 0, err
	}

	c.log.Info("workbook created", "path", path, "records", len(ledger))
	return path, len(ledger), nil
}
