// Package report contains the record model and row-level parsing rules for
// SimplesVet appointment and procedure reports.
package report

// Field identifies one semantic column of an appointment report.
type Field string

const (
	FieldVeterinarian Field = "veterinario"
	FieldClient       Field = "cliente"
	FieldAnimal       Field = "animal"
	FieldServiceType  Field = "tipo_atendimento"
	FieldDate         Field = "data"
	FieldTime         Field = "hora"
	FieldStatus       Field = "status"
)

// Record is one accepted appointment row. All fields are kept as the vendor
// printed them, trimmed of surrounding whitespace.
type Record struct {
	Veterinarian string
	Client       string
	Animal       string
	ServiceType  string
	Date         string
	Time         string
	Status       string
}

// Ledger accumulates accepted records in document order. It is never
// re-sorted; page and table order is the only ordering guarantee callers get.
type Ledger []Record

// ColumnOrder is the canonical output column order for appointment sheets.
var ColumnOrder = []Field{
	FieldVeterinarian,
	FieldClient,
	FieldAnimal,
	FieldServiceType,
	FieldDate,
	FieldTime,
	FieldStatus,
}

// Get returns the record value for a semantic field.
func (r Record) Get(f Field) string {
	switch f {
	case FieldVeterinarian:
		return r.Veterinarian
	case FieldClient:
		return r.Client
	case FieldAnimal:
		return r.Animal
	case FieldServiceType:
		return r.ServiceType
	case FieldDate:
		return r.Date
	case FieldTime:
		return r.Time
	case FieldStatus:
		return r.Status
	}
	return ""
}

// fieldLabels maps semantic fields to the Portuguese header labels printed
// in the output sheets.
var fieldLabels = map[Field]string{
	FieldVeterinarian: "Veterinário",
	FieldClient:       "Cliente",
	FieldAnimal:       "Animal",
	FieldServiceType:  "Tipo de atendimento",
	FieldDate:         "Data",
	FieldTime:         "Hora",
	FieldStatus:       "Status",
}

// Headers returns the sheet header labels in canonical column order.
func Headers() []string {
	headers := make([]string, len(ColumnOrder))
	for i, f := range ColumnOrder {
		headers[i] = fieldLabels[f]
	}
	return headers
}

// Rows converts the ledger into sheet rows in canonical column order.
func (l Ledger) Rows() [][]any {
	rows := make([][]any, len(l))
	for i, rec := range l {
		row := make([]any, len(ColumnOrder))
		for j, f := range ColumnOrder {
			row[j] = rec.Get(f)
		}
		rows[i] = row
	}
	return rows
}
