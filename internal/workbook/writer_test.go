package workbook

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		category Category
		expected string
	}{
		{name: "appointments", label: "202510", category: CategoryAppointments, expected: "202510-agendamentos.xlsx"},
		{name: "sales", label: "202510", category: CategorySales, expected: "202510-vendas.xlsx"},
		{name: "vaccines", label: "202509", category: CategoryVaccines, expected: "202509-vacina.xlsx"},
		{name: "exams", label: "202509", category: CategoryExams, expected: "202509-exames.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ArtifactPath("/out", tt.label, tt.category)
			assert.Equal(t, filepath.Join("/out", tt.expected), got)
		})
	}
}

func TestArtifactPathTimestampFallback(t *testing.T) {
	got := filepath.Base(ArtifactPath("/out", "", CategorySales))
	// 20060102_150405 timestamp prefix.
	require.True(t, strings.HasSuffix(got, "-vendas.xlsx"), got)
	prefix := strings.TrimSuffix(got, "-vendas.xlsx")
	assert.Len(t, prefix, 15)
	assert.Contains(t, prefix, "_")
}

func TestWriteNoRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	err := Write(path, "Agendamentos", []string{"cliente"}, nil)
	assert.ErrorIs(t, err, ErrNoRecords)
	assert.NoFileExists(t, path, "no artifact may be written for zero records")
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	headers := []string{"cliente", "animal", "bruto"}
	rows := [][]any{
		{"Maria Souza", "Rex", 1500.00},
		{"Ana Paula", "Mia", nil},
	}

	require.NoError(t, Write(path, "Vendas", headers, rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := f.GetRows("Vendas")
	require.NoError(t, err)
	require.Len(t, got, 3, "header plus two data rows")
	assert.Equal(t, headers, got[0])
	assert.Equal(t, []string{"Maria Souza", "Rex", "1500"}, got[1])
	assert.Equal(t, "Ana Paula", got[2][0])
	if len(got[2]) > 2 {
		assert.Equal(t, "", got[2][2], "missing numeric stays an empty cell")
	}
}

func TestWriteColumnWidthCapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.xlsx")
	long := strings.Repeat("x", 120)

	require.NoError(t, Write(path, "Agendamentos", []string{"cliente"}, [][]any{{long}}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	width, err := f.GetColWidth("Agendamentos", "A")
	require.NoError(t, err)
	assert.InDelta(t, float64(maxColumnWidth), width, 0.01)
}

func TestWriteColumnWidthCountsRunes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accents.xlsx")
	// 30 runes, 60 bytes; a byte count would size the column at the 50 cap.
	accented := strings.Repeat("ã", 30)

	require.NoError(t, Write(path, "Vendas", []string{"produto"}, [][]any{{accented}}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	width, err := f.GetColWidth("Vendas", "A")
	require.NoError(t, err)
	assert.InDelta(t, 32.0, width, 0.01, "30 characters plus padding")
}

func TestWriteOverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, Write(path, "Vendas", []string{"venda"}, [][]any{{"old"}}))
	require.NoError(t, Write(path, "Vendas", []string{"venda"}, [][]any{{"new"}}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Vendas")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "new", rows[1][0])
}
