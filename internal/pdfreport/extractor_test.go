package pdfreport

import (
	"errors"
	"reflect"
	"testing"
)

func headerLineFixture() line {
	return line{y: 700, cells: []cell{
		{x: 10, text: "Cliente"},
		{x: 120, text: "Animal"},
		{x: 200, text: "Tipo de atendimento"},
		{x: 320, text: "Data"},
		{x: 400, text: "Hora"},
		{x: 460, text: "Status"},
	}}
}

func dataLineFixture(y float64, client, animal, service, date, hour, status string) line {
	ln := line{y: y}
	values := []struct {
		x float64
		s string
	}{
		{10, client}, {120, animal}, {200, service}, {320, date}, {400, hour}, {460, status},
	}
	for _, v := range values {
		if v.s != "" {
			ln.cells = append(ln.cells, cell{x: v.x, text: v.s})
		}
	}
	return ln
}

func TestOpenEmptyBlob(t *testing.T) {
	if _, err := Open(nil); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
	if _, err := Open([]byte{}); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument for zero-length blob, got %v", err)
	}
}

func TestOpenRejectsNonPDF(t *testing.T) {
	if _, err := Open([]byte("this is not a pdf document")); err == nil {
		t.Error("expected error for non-PDF blob")
	}
}

func TestIsStaffLabel(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"DRA. ANA LIMA", true},
		{"DR. JOÃO CARLOS PEREIRA", true},
		{"Dra. Ana Lima", false},   // mixed case
		{"REX", false},             // too short
		{"CLIENTE ANIMAL", false},  // field labels
		{"AGENDA DO DIA", false},   // report chrome
		{"05/10/2025", false},      // no cased letters
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := isStaffLabel(tt.input); got != tt.want {
				t.Errorf("isStaffLabel(%q) = %v, expected %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPartitionPage(t *testing.T) {
	lines := []line{
		{y: 720, cells: []cell{{x: 10, text: "DRA. ANA LIMA"}}},
		headerLineFixture(),
		dataLineFixture(690, "Maria Souza", "Rex", "Consulta", "05/10/2025", "09:00", "Confirmado"),
		{y: 670, cells: []cell{{x: 10, text: "DR. BRUNO COSTA"}}},
		headerLineFixture(),
		dataLineFixture(640, "Ana Paula", "Mia", "Vacina", "06/10/2025", "10:00", "Confirmado"),
	}

	tables, labels := partitionPage(lines)
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	if !reflect.DeepEqual(labels, []string{"DRA. ANA LIMA", "DR. BRUNO COSTA"}) {
		t.Errorf("unexpected labels: %v", labels)
	}
	if len(tables[0]) != 2 || len(tables[1]) != 2 {
		t.Errorf("unexpected table sizes: %d, %d", len(tables[0]), len(tables[1]))
	}
}

func TestLabelForTableReusesLast(t *testing.T) {
	labels := []string{"DRA. ANA LIMA"}

	if got := labelForTable(labels, 0); got != "DRA. ANA LIMA" {
		t.Errorf("unexpected label for first table: %q", got)
	}
	// More tables than labels: the last label is reused.
	if got := labelForTable(labels, 1); got != "DRA. ANA LIMA" {
		t.Errorf("expected last label reuse, got %q", got)
	}
	if got := labelForTable(nil, 0); got != "" {
		t.Errorf("expected blank label without sections, got %q", got)
	}
}

func TestParseTable(t *testing.T) {
	table := []line{
		headerLineFixture(),
		dataLineFixture(690, "Maria Souza", "Rex", "Consulta", "05/10/2025", "09:00", "Confirmado"),
		dataLineFixture(680, "Paga na hora", "", "", "", "", ""),
		dataLineFixture(670, "Ana Paula", "Mia", "Vacina", "06/10/2025", "10:00", "Aguardando"),
		dataLineFixture(660, "Carlos Prado", "Thor", "Retorno", "31/02/2025", "11:00", "Confirmado"),
	}

	e := NewExtractor(nil)
	records := e.parseTable(table, "DRA. ANA LIMA")

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, rec := range records {
		if rec.Veterinarian != "DRA. ANA LIMA" {
			t.Errorf("expected section label attached, got %q", rec.Veterinarian)
		}
		if rec.Date == "" {
			t.Error("accepted record must carry a date")
		}
	}
	if records[0].Client != "Maria Souza" || records[1].Client != "Ana Paula" {
		t.Errorf("unexpected record order: %q, %q", records[0].Client, records[1].Client)
	}
}

func TestParseTableWithoutHeader(t *testing.T) {
	table := []line{
		dataLineFixture(700, "Maria Souza", "Rex", "Consulta", "05/10/2025", "09:00", ""),
		dataLineFixture(690, "Ana Paula", "Mia", "Vacina", "06/10/2025", "10:00", ""),
	}

	e := NewExtractor(nil)
	if records := e.parseTable(table, ""); len(records) != 0 {
		t.Errorf("table without header must yield no records, got %d", len(records))
	}
}

func TestParseTableDeterministic(t *testing.T) {
	table := []line{
		headerLineFixture(),
		dataLineFixture(690, "Maria Souza", "Rex", "Consulta", "05/10/2025", "09:00", "Confirmado"),
		dataLineFixture(680, "Ana Paula", "Mia", "Vacina", "06/10/2025", "10:00", "Confirmado"),
	}

	e := NewExtractor(nil)
	first := e.parseTable(table, "DRA. ANA LIMA")
	second := e.parseTable(table, "DRA. ANA LIMA")

	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same table twice must produce identical records")
	}
}
