package report

import "strings"

// headerAnchor is the one label every real header row in the vendor's
// reports carries. Tables without it yield no records.
const headerAnchor = "cliente"

// headerRule maps header-cell keywords to a semantic field. Rules are
// evaluated in order per cell and the first match wins, so a cell matching
// several keywords ("Tipo de atendimento") is assigned exactly once.
type headerRule struct {
	field    Field
	keywords []string
}

var headerRules = []headerRule{
	{FieldClient, []string{"cliente"}},
	{FieldAnimal, []string{"animal"}},
	{FieldServiceType, []string{"tipo", "atendimento"}},
	{FieldDate, []string{"data"}},
	{FieldTime, []string{"hora"}},
	{FieldStatus, []string{"status"}},
}

// ColumnMap maps semantic fields to zero-based column indexes within one
// table. Fields with no matching header cell are absent; lookups for them
// return blank cells.
type ColumnMap map[Field]int

// Cell returns the trimmed cell value for a mapped field, or "" when the
// field is unmapped or the row is too short.
func (cm ColumnMap) Cell(row []string, f Field) string {
	idx, ok := cm[f]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ResolveHeader scans the table top to bottom for the first row containing
// the anchor label and builds the column map from that row. The returned
// index is the header's row position; ok is false when no row anchors.
func ResolveHeader(table [][]string) (ColumnMap, int, bool) {
	for idx, row := range table {
		if !rowHasAnchor(row) {
			continue
		}
		return mapColumns(row), idx, true
	}
	return nil, 0, false
}

func rowHasAnchor(row []string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), headerAnchor) {
			return true
		}
	}
	return false
}

func mapColumns(header []string) ColumnMap {
	cm := make(ColumnMap, len(headerRules))
	for idx, cell := range header {
		label := strings.ToLower(strings.TrimSpace(cell))
		if label == "" {
			continue
		}
		for _, rule := range headerRules {
			if matchesAny(label, rule.keywords) {
				cm[rule.field] = idx
				break
			}
		}
	}
	return cm
}

func matchesAny(label string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(label, kw) {
			return true
		}
	}
	return false
}
