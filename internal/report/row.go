package report

import (
	"regexp"
	"strings"
	"time"
)

// annotationPhrases flags rows that are observations or dosage notes the
// vendor interleaves with real appointment rows. Matching is a lowercase
// substring check against the row's first cell.
var annotationPhrases = []string{
	"paga na hora",
	"valor normal",
	"valor",
	"observ",
	"v4",
	"v5",
	"queixa:",
	"contato de quem",
	"endereço completo",
	"sem custo",
	"2° dose",
	"dose v",
}

var datePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// ValidDate reports whether s is a DD/MM/YYYY string naming a real calendar
// date. This is the structural filter that separates appointment rows from
// free-text annotation rows sharing the same table.
func ValidDate(s string) bool {
	s = strings.TrimSpace(s)
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse("02/01/2006", s)
	return err == nil
}

// ClassifyRow turns one data row into a Record, or rejects it. Checks run
// in order: all-blank row, annotation first cell, invalid date, and finally
// the client-or-animal requirement. The veterinarian is supplied by the
// caller from the table's section label.
func ClassifyRow(row []string, cm ColumnMap, veterinarian string) (Record, bool) {
	if rowBlank(row) {
		return Record{}, false
	}
	if isAnnotationRow(row) {
		return Record{}, false
	}

	rec := Record{
		Veterinarian: strings.TrimSpace(veterinarian),
		Client:       cm.Cell(row, FieldClient),
		Animal:       cm.Cell(row, FieldAnimal),
		ServiceType:  cm.Cell(row, FieldServiceType),
		Date:         cm.Cell(row, FieldDate),
		Time:         cm.Cell(row, FieldTime),
		Status:       cm.Cell(row, FieldStatus),
	}

	if !ValidDate(rec.Date) {
		return Record{}, false
	}
	if rec.Client == "" && rec.Animal == "" {
		return Record{}, false
	}
	return rec, true
}

func rowBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isAnnotationRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(row[0]))
	if first == "" {
		return false
	}
	for _, phrase := range annotationPhrases {
		if strings.Contains(first, phrase) {
			return true
		}
	}
	return false
}
