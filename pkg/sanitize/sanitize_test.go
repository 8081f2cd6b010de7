package sanitize

import (
	"testing"

	"github.com/fincast/assumptions/pkg/constants"
	"github.com/fincast/assumptions/pkg/mathutil"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{
			name:     "Empty string",
			input:    "",
			expected: 0,
		},
		{
			name:     "Whitespace only",
			input:    "   ",
			expected: 0,
		},
		{
			name:     "Plain integer",
			input:    "500",
			expected: 500,
		},
		{
			name:     "Decimal value",
			input:    "3.75",
			expected: 3.75,
		},
		{
			name:     "Negative value",
			input:    "-12.5",
			expected: -12.5,
		},
		{
			name:     "Literal zero",
			input:    "0",
			expected: 0,
		},
		{
			name:     "Non-numeric text",
			input:    "ten thousand",
			expected: 0,
		},
		{
			name:     "Currency symbol is not parsed",
			input:    "$500",
			expected: 0,
		},
		{
			name:     "Percent suffix is not parsed",
			input:    "5%",
			expected: 0,
		},
		{
			name:     "Leading and trailing whitespace",
			input:    "  42  ",
			expected: 42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Number(tt.input)
			if !mathutil.WithinTolerance(got, tt.expected, constants.CurrencyTolerance) {
				t.Errorf("Number(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{
			name:     "Plain integer",
			input:    "12",
			expected: 12,
		},
		{
			name:     "Fraction truncates",
			input:    "12.9",
			expected: 12,
		},
		{
			name:     "Garbage defaults to zero",
			input:    "twelve",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Int(tt.input); got != tt.expected {
				t.Errorf("Int(%q) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSplitNumberList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []float64
	}{
		{
			name:     "Typical comma list",
			input:    "2000,2000,2000",
			expected: []float64{2000, 2000, 2000},
		},
		{
			name:     "Entries sanitized independently",
			input:    "100,abc,300",
			expected: []float64{100, 0, 300},
		},
		{
			name:     "Whitespace around entries",
			input:    " 10 , 20 ,30",
			expected: []float64{10, 20, 30},
		},
		{
			name:     "Empty input yields empty slice",
			input:    "",
			expected: []float64{},
		},
		{
			name:     "Trailing comma yields trailing zero",
			input:    "5,",
			expected: []float64{5, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitNumberList(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("SplitNumberList(%q) returned %d entries, expected %d", tt.input, len(got), len(tt.expected))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("SplitNumberList(%q)[%d] = %v, expected %v", tt.input, i, got[i], tt.expected[i])
				}
			}
		})
	}
}
