// Package depreciation maps a capital item's depreciation method to the set
// of additional parameters that method requires.
//
// The resolver governs which optional inputs are meaningful for a capital
// item; it does not compute depreciation schedules (that is the forecasting
// engine's responsibility). An unknown method tag resolves as straight-line,
// the default assigned when an item is created.
package depreciation

// Method tags the depreciation variants.
type Method string

const (
	StraightLine      Method = "straight_line"
	DoubleDeclining   Method = "double_declining"
	SumOfYearsDigits  Method = "sum_of_years_digits"
	UnitsOfProduction Method = "units_of_production"
)

// Normalize maps an unknown or empty method tag to the creation-time default.
func Normalize(m Method) Method {
	switch m {
	case StraightLine, DoubleDeclining, SumOfYearsDigits, UnitsOfProduction:
		return m
	default:
		return StraightLine
	}
}

// RequiresSalvageValue reports whether the method needs a salvage value
// beyond cost, useful life, and purchase date.
func RequiresSalvageValue(m Method) bool {
	return Normalize(m) == SumOfYearsDigits
}

// RequiresUnitDetail reports whether the method needs total expected units
// and a per-year unit-allocation sequence.
func RequiresUnitDetail(m Method) bool {
	return Normalize(m) == UnitsOfProduction
}

// RequiresExtraDetail reports whether the method carries any additional
// depreciation details at all.
func RequiresExtraDetail(m Method) bool {
	return RequiresSalvageValue(m) || RequiresUnitDetail(m)
}
