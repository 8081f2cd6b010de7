package units

import (
	"testing"

	"github.com/fincast/assumptions/pkg/mathutil"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		from     Unit
		to       Unit
		expected float64
	}{
		{
			name:     "Annual to monthly divides by twelve",
			amount:   2400,
			from:     Annual,
			to:       Monthly,
			expected: 200,
		},
		{
			name:     "Monthly to annual multiplies by twelve",
			amount:   200,
			from:     Monthly,
			to:       Annual,
			expected: 2400,
		},
		{
			name:     "Same unit is identity",
			amount:   123.45,
			from:     Monthly,
			to:       Monthly,
			expected: 123.45,
		},
		{
			name:     "Zero amount",
			amount:   0,
			from:     Annual,
			to:       Monthly,
			expected: 0,
		},
		{
			name:     "Unknown unit passes through",
			amount:   77,
			from:     Unit("weekly"),
			to:       Monthly,
			expected: 77,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.amount, tt.from, tt.to)
			if !mathutil.WithinTolerance(got, tt.expected, 1e-9) {
				t.Errorf("Convert(%v, %s, %s) = %v, expected %v", tt.amount, tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	// Converting an annual amount to monthly and back must recover the
	// original within floating-point tolerance.
	amounts := []float64{0, 1, 12, 100, 2400, 99999.99, 1234567.89}
	for _, amount := range amounts {
		monthly := Convert(amount, Annual, Monthly)
		back := Convert(monthly, Monthly, Annual)
		if !mathutil.WithinTolerance(back, amount, 1e-6) {
			t.Errorf("round trip of %v came back as %v", amount, back)
		}
	}
}
