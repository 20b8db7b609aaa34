package sales

import (
	"log/slog"

	"github.com/luabelo/automacao-simplesvet/internal/workbook"
)

// Converter runs the full sales path: parse the delimited export, then
// write the spreadsheet artifact.
type Converter struct {
	log    *slog.Logger
	parser *Parser
}

// NewConverter creates a converter logging through log.
func NewConverter(log *slog.Logger) *Converter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Converter{log: log, parser: NewParser(log)}
}

// Convert parses blob and writes the sales artifact into outDir, named
// from label. It returns the artifact path and the record count. An export
// with a header but no data rows returns workbook.ErrNoRecords.
func (c *Converter) Convert(blob []byte, label, outDir string) (string, int, error) {
	records, err := c.parser.Parse(blob)
	if err != nil {
		return "", 0, err
	}
	if len(records) == 0 {
		c.log.Warn("no sales found in export")
		return "", 0, workbook.ErrNoRecords
	}

	path := workbook.ArtifactPath(outDir, label, workbook.CategorySales)
	if err := workbook.Write(path, "Vendas", Headers(), Rows(records)); err != nil {
		return "", 0, err
	}

	c.log.Info("sales workbook created", "path", path, "records", len(records))
	return path, len(records), nil
}
