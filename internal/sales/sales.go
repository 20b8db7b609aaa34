// Package sales parses the SimplesVet sales export, a ";"-delimited text
// file, into typed records with normalized numeric fields.
package sales

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/luabelo/automacao-simplesvet/internal/report"
)

// ErrEmptyExport is returned when the export blob holds no data rows.
var ErrEmptyExport = errors.New("sales export is empty")

// SaleRecord is one sale line. Numeric fields are nil when the vendor cell
// could not be parsed; a missing value is never written as zero.
type SaleRecord struct {
	DateTime   string
	SaleID     string
	SaleStatus string
	Employee   string
	Client     string
	Animal     string
	ItemType   string
	Group      string
	Product    string
	UnitValue  *float64
	Quantity   *float64
	Gross      *float64
	Discount   *float64
	Net        *float64
}

// column binds an export header label to its record accessor. Order is the
// canonical output order.
type column struct {
	label   string
	numeric bool
	get     func(*SaleRecord) *string
	getNum  func(*SaleRecord) **float64
}

var columns = []column{
	{label: "Data e hora", get: func(r *SaleRecord) *string { return &r.DateTime }},
	{label: "Venda", get: func(r *SaleRecord) *string { return &r.SaleID }},
	{label: "Status da venda", get: func(r *SaleRecord) *string { return &r.SaleStatus }},
	{label: "Funcionário", get: func(r *SaleRecord) *string { return &r.Employee }},
	{label: "Cliente", get: func(r *SaleRecord) *string { return &r.Client }},
	{label: "Animal", get: func(r *SaleRecord) *string { return &r.Animal }},
	{label: "Tipo do Item", get: func(r *SaleRecord) *string { return &r.ItemType }},
	{label: "Grupo", get: func(r *SaleRecord) *string { return &r.Group }},
	{label: "Produto/serviço", get: func(r *SaleRecord) *string { return &r.Product }},
	{label: "Valor Unitário", numeric: true, getNum: func(r *SaleRecord) **float64 { return &r.UnitValue }},
	{label: "Quantidade", numeric: true, getNum: func(r *SaleRecord) **float64 { return &r.Quantity }},
	{label: "Bruto", numeric: true, getNum: func(r *SaleRecord) **float64 { return &r.Gross }},
	{label: "Desconto", numeric: true, getNum: func(r *SaleRecord) **float64 { return &r.Discount }},
	{label: "Líquido", numeric: true, getNum: func(r *SaleRecord) **float64 { return &r.Net }},
}

// Headers returns the sheet header labels in canonical column order.
func Headers() []string {
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.label
	}
	return headers
}

// Parser reads sales exports.
type Parser struct {
	log *slog.Logger
}

// NewParser creates a parser logging through log.
func NewParser(log *slog.Logger) *Parser {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Parser{log: log}
}

// Parse decodes and parses a sales export blob. The export is UTF-8 with a
// Latin-1 fallback; the first row is the vendor header and only known
// columns are projected. Numeric cells go through the locale normalizer;
// unparseable ones stay missing.
func (p *Parser) Parse(blob []byte) ([]SaleRecord, error) {
	if len(bytes.TrimSpace(blob)) == 0 {
		return nil, ErrEmptyExport
	}

	decoded, err := decode(blob)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	r.Comma = ';'
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptyExport
		}
		return nil, fmt.Errorf("failed to read export header: %w", err)
	}

	indexes := mapHeader(header)
	p.log.Debug("export header mapped", "columns", len(indexes))

	var records []SaleRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read export row: %w", err)
		}
		records = append(records, p.parseRow(row, indexes))
	}
	return records, nil
}

// decode strips a UTF-8 BOM and falls back to Latin-1 when the blob is not
// valid UTF-8.
func decode(blob []byte) ([]byte, error) {
	blob = bytes.TrimPrefix(blob, []byte("\xef\xbb\xbf"))
	if utf8.Valid(blob) {
		return blob, nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(blob)
	if err != nil {
		return nil, fmt.Errorf("failed to decode export as Latin-1: %w", err)
	}
	return decoded, nil
}

// mapHeader matches export header cells to the known column set. Unknown
// vendor columns are ignored; known columns missing from the export are
// simply absent from the map.
func mapHeader(header []string) map[string]int {
	indexes := make(map[string]int, len(columns))
	for idx, cell := range header {
		label := strings.TrimSpace(cell)
		for _, c := range columns {
			if strings.EqualFold(label, c.label) {
				indexes[c.label] = idx
				break
			}
		}
	}
	return indexes
}

func (p *Parser) parseRow(row []string, indexes map[string]int) SaleRecord {
	var rec SaleRecord
	for _, c := range columns {
		idx, ok := indexes[c.label]
		if !ok || idx >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[idx])
		if c.numeric {
			v, err := report.ParseDecimal(value)
			if err != nil {
				continue
			}
			*c.getNum(&rec) = &v
		} else {
			*c.get(&rec) = value
		}
	}
	return rec
}

// Rows converts records into sheet rows in canonical column order. Missing
// numeric values become nil cells.
func Rows(records []SaleRecord) [][]any {
	rows := make([][]any, len(records))
	for i := range records {
		rec := &records[i]
		row := make([]any, len(columns))
		for j, c := range columns {
			if c.numeric {
				if v := *c.getNum(rec); v != nil {
					row[j] = *v
				}
			} else {
				row[j] = *c.get(rec)
			}
		}
		rows[i] = row
	}
	return rows
}
