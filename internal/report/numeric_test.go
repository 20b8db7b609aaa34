package report

import (
	"errors"
	"math"
	"testing"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "thousands dot and decimal comma", input: "1.234,56", expected: 1234.56},
		{name: "currency prefix stripped", input: "R$ 10,00", expected: 10.00},
		{name: "plain integer", input: "3", expected: 3},
		{name: "negative value", input: "-15,50", expected: -15.50},
		{name: "large amount", input: "1.500,00", expected: 1500.00},
		{name: "surrounding whitespace", input: "  42,10  ", expected: 42.10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseDecimal(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(v-tt.expected) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.expected, v)
			}
		})
	}
}

func TestParseDecimalNotNumeric(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty string", input: ""},
		{name: "blank string", input: "   "},
		{name: "letters only", input: "consulta"},
		{name: "lone minus", input: "-"},
		{name: "dots only", input: "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDecimal(tt.input)
			if err == nil {
				t.Fatal("expected error for unparseable input")
			}
			if !errors.Is(err, ErrNotNumeric) {
				t.Errorf("expected ErrNotNumeric, got %v", err)
			}
		})
	}
}
