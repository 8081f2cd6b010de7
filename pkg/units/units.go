// Package units converts periodic amounts between monthly and annual
// representations.
//
// Growth-rate-method revenue and expense entries are held in monthly terms
// internally; when a section is declared annual the assembler converts the
// entered amounts down by dividing by twelve. Yearly-values-method entries
// are taken at face value in the section's declared unit and never converted.
package units

import "github.com/fincast/assumptions/pkg/constants"

// Unit is the periodicity a section's amounts are declared in.
type Unit string

const (
	Monthly Unit = "monthly"
	Annual  Unit = "annual"
)

// Valid reports whether u is a recognized unit.
func (u Unit) Valid() bool {
	return u == Monthly || u == Annual
}

// Convert translates amount from one unit to the other. Converting to the
// same unit, or between unrecognized units, returns the amount unchanged.
func Convert(amount float64, from, to Unit) float64 {
	switch {
	case from == to:
		return amount
	case from == Annual && to == Monthly:
		return amount / constants.MonthsPerYear
	case from == Monthly && to == Annual:
		return amount * constants.MonthsPerYear
	default:
		return amount
	}
}

// ToMonthly normalizes an amount declared in the given unit down to monthly
// terms, the canonical internal representation for growth-rate entries.
func ToMonthly(amount float64, declared Unit) float64 {
	return Convert(amount, declared, Monthly)
}
