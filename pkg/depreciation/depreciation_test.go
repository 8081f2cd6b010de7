package depreciation

import "testing"

func TestResolver(t *testing.T) {
	tests := []struct {
		name         string
		method       Method
		salvage      bool
		unitDetail   bool
		normalizedAs Method
	}{
		{
			name:         "Straight line needs nothing extra",
			method:       StraightLine,
			normalizedAs: StraightLine,
		},
		{
			name:         "Double declining needs nothing extra",
			method:       DoubleDeclining,
			normalizedAs: DoubleDeclining,
		},
		{
			name:         "Sum of years digits needs salvage value",
			method:       SumOfYearsDigits,
			salvage:      true,
			normalizedAs: SumOfYearsDigits,
		},
		{
			name:         "Units of production needs unit detail",
			method:       UnitsOfProduction,
			unitDetail:   true,
			normalizedAs: UnitsOfProduction,
		},
		{
			name:         "Unknown method defaults to straight line",
			method:       Method("macrs"),
			normalizedAs: StraightLine,
		},
		{
			name:         "Empty method defaults to straight line",
			method:       Method(""),
			normalizedAs: StraightLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.method); got != tt.normalizedAs {
				t.Errorf("Normalize(%q) = %q, expected %q", tt.method, got, tt.normalizedAs)
			}
			if got := RequiresSalvageValue(tt.method); got != tt.salvage {
				t.Errorf("RequiresSalvageValue(%q) = %v, expected %v", tt.method, got, tt.salvage)
			}
			if got := RequiresUnitDetail(tt.method); got != tt.unitDetail {
				t.Errorf("RequiresUnitDetail(%q) = %v, expected %v", tt.method, got, tt.unitDetail)
			}
			if got := RequiresExtraDetail(tt.method); got != (tt.salvage || tt.unitDetail) {
				t.Errorf("RequiresExtraDetail(%q) = %v, expected %v", tt.method, got, tt.salvage || tt.unitDetail)
			}
		})
	}
}
