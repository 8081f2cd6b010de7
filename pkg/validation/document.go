// Package validation provides advisory checks over assembled documents.
// Warnings never block assembly; malformed input sanitizes to zero upstream
// and these checks only surface values a user probably did not intend.
package validation

import (
	"fmt"

	"github.com/fincast/assumptions/pkg/constants"
	"github.com/fincast/assumptions/pkg/datetime"
	"github.com/fincast/assumptions/pkg/document"
	"github.com/fincast/assumptions/pkg/mathutil"
)

// ValidateCapitalStructure checks that the declared equity and debt weights
// cover the whole capital base.
func ValidateCapitalStructure(equityPercent, debtPercent float64) (string, bool) {
	total := mathutil.Round(equityPercent + debtPercent)
	if mathutil.WithinTolerance(total, constants.PercentageMultiplier, constants.CurrencyTolerance) {
		return "", false
	}
	return fmt.Sprintf("Equity and debt weights sum to %.2f%%, not 100%% - WACC weighting will be skewed",
		total), true
}

// ValidatePayoutPercent checks a dividend payout percentage for range.
func ValidatePayoutPercent(label string, payout float64) (string, bool) {
	if payout < 0 || payout > constants.PercentageMultiplier {
		return fmt.Sprintf("Dividend period '%s' pays out %.2f%% of net income - expected 0-100%%",
			label, payout), true
	}
	return "", false
}

// ValidateLoanDates checks that dated loans fall inside the forecast window.
// The window is anchored at the document's generation date when stamped,
// otherwise at each loan's own start date.
func ValidateLoanDates(doc *document.Document) []string {
	var warnings []string
	horizonMonths := doc.Forecast.Period
	if doc.Forecast.Type != "months" {
		horizonMonths = doc.Forecast.Period * constants.MonthsPerYear
	}

	for i, loan := range doc.Loans {
		if loan.StartDate == "" {
			continue
		}
		if datetime.ParseOrZero(loan.StartDate).IsZero() {
			warnings = append(warnings, fmt.Sprintf("Loan %d start date '%s' is not in %s format",
				i+1, loan.StartDate, constants.DateLayout))
			continue
		}
		if horizonMonths <= 0 {
			continue
		}

		anchor := loan.StartDate
		if !doc.GeneratedAt.IsZero() {
			anchor = doc.GeneratedAt.Format(constants.DateLayout)
		}
		windowEnd, err := datetime.OffsetDate(anchor, constants.DateLayout, horizonMonths)
		if err != nil {
			continue
		}
		termMonths := int(loan.Years * constants.MonthsPerYear)
		loanEnd, err := datetime.OffsetDate(loan.StartDate, constants.DateLayout, termMonths)
		if err != nil {
			continue
		}
		if past, err := datetime.DateBeforeDate(windowEnd, loanEnd); err == nil && past {
			warnings = append(warnings, fmt.Sprintf("Loan %d runs until %s, past the forecast window ending %s - tail payments fall outside the model",
				i+1, loanEnd, windowEnd))
		}
	}
	return warnings
}

// ValidateShareholderSplit checks that ownership percentages do not exceed
// the whole company.
func ValidateShareholderSplit(shareholders []document.Shareholder) (string, bool) {
	if len(shareholders) == 0 {
		return "", false
	}
	total := 0.0
	for _, sh := range shareholders {
		total += sh.Percent
	}
	total = mathutil.Round(total)
	if mathutil.IsZero(total) {
		// An all-blank split means ownership was left unspecified.
		return "", false
	}
	if total > constants.PercentageMultiplier+constants.CurrencyTolerance {
		return fmt.Sprintf("Shareholder ownership sums to %.2f%% - exceeds 100%%", total), true
	}
	return "", false
}

// ValidateDocument runs every advisory check over an assembled document and
// returns the collected warnings.
func ValidateDocument(doc *document.Document) []string {
	var warnings []string

	if w := doc.WaccComponents; w != nil {
		if msg, bad := ValidateCapitalStructure(w.EquityPercent, w.DebtPercent); bad {
			warnings = append(warnings, msg)
		}
	}

	for _, period := range doc.Dividends {
		if msg, bad := ValidatePayoutPercent(period.Year, period.PayoutPercent); bad {
			warnings = append(warnings, msg)
		}
	}

	warnings = append(warnings, ValidateLoanDates(doc)...)

	if msg, bad := ValidateShareholderSplit(doc.Shareholders); bad {
		warnings = append(warnings, msg)
	}

	if doc.Forecast.Period <= 0 {
		warnings = append(warnings, "Forecast period is zero - the engine will produce an empty forecast")
	}
	if doc.TvMethod == "perpetuity" && doc.TerminalGrowth >= doc.DiscountRate {
		warnings = append(warnings, fmt.Sprintf("Terminal growth (%.2f%%) meets or exceeds the discount rate (%.2f%%) - perpetuity value is undefined",
			doc.TerminalGrowth, doc.DiscountRate))
	}

	return warnings
}
