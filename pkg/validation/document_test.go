package validation

import (
	"strings"
	"testing"

	"github.com/fincast/assumptions/pkg/constants"
	"github.com/fincast/assumptions/pkg/datetime"
	"github.com/fincast/assumptions/pkg/document"
)

func TestValidateCapitalStructure(t *testing.T) {
	tests := []struct {
		name    string
		equity  float64
		debt    float64
		warning bool
	}{
		{"balanced", 60, 40, false},
		{"exact hundred", 100, 0, false},
		{"under", 50, 40, true},
		{"over", 70, 40, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bad := ValidateCapitalStructure(tt.equity, tt.debt)
			if bad != tt.warning {
				t.Errorf("warning = %v for %.0f/%.0f, want %v", bad, tt.equity, tt.debt, tt.warning)
			}
		})
	}
}

func TestValidateShareholderSplit(t *testing.T) {
	over := []document.Shareholder{{Name: "A", Percent: 60}, {Name: "B", Percent: 70}}
	if _, bad := ValidateShareholderSplit(over); !bad {
		t.Error("130% ownership should warn")
	}

	unspecified := []document.Shareholder{{Name: "A"}, {Name: "B"}}
	if msg, bad := ValidateShareholderSplit(unspecified); bad {
		t.Errorf("blank split warned: %q", msg)
	}
}

func TestValidateLoanDates(t *testing.T) {
	doc := &document.Document{
		Forecast: document.Forecast{Period: 12, Type: "months"},
		Loans: []document.Loan{
			{StartDate: "2026-01-15", Years: 1},
			{StartDate: "15/01/2026", Years: 1},
			{StartDate: "2026-01-15", Years: 5},
			{Years: 30}, // undated loans are not checked
		},
	}

	warnings := ValidateLoanDates(doc)
	if len(warnings) != 2 {
		t.Fatalf("warnings = %d, want 2: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "not in 2006-01-02 format") {
		t.Errorf("warnings[0] = %q, want format warning", warnings[0])
	}
	if !strings.Contains(warnings[1], "runs until 2031-01-15, past the forecast window ending 2027-01-15") {
		t.Errorf("warnings[1] = %q, want window warning", warnings[1])
	}
}

func TestValidateLoanDatesAnchorsAtGenerationDate(t *testing.T) {
	// A one-year loan starting mid-window outlives a one-year forecast that
	// began at the generation date, even though its term fits the horizon.
	doc := &document.Document{
		GeneratedAt: datetime.MustParseTime(constants.DateLayout, "2026-01-01"),
		Forecast:    document.Forecast{Period: 12, Type: "months"},
		Loans: []document.Loan{
			{StartDate: "2026-06-01", Years: 1},
		},
	}

	warnings := ValidateLoanDates(doc)
	if len(warnings) != 1 {
		t.Fatalf("warnings = %d, want 1: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "runs until 2027-06-01, past the forecast window ending 2027-01-01") {
		t.Errorf("warnings[0] = %q, want window warning", warnings[0])
	}

	doc.Loans[0].StartDate = "2026-01-01"
	if warnings := ValidateLoanDates(doc); len(warnings) != 0 {
		t.Errorf("warnings = %v for loan matching the window, want none", warnings)
	}
}

func TestValidateDocument(t *testing.T) {
	doc := &document.Document{
		Forecast:     document.Forecast{Period: 12, Type: "months"},
		DiscountRate: 10,
		TvMethod:     "perpetuity",
		TerminalGrowth: 2,
		WaccComponents: &document.WaccComponents{EquityPercent: 60, DebtPercent: 40},
		Dividends: []document.DividendPeriod{
			{Year: "Year 1+", PayoutPercent: 20},
		},
		Shareholders: []document.Shareholder{
			{Name: "A", Percent: 60},
			{Name: "B", Percent: 30},
		},
	}
	if warnings := ValidateDocument(doc); len(warnings) != 0 {
		t.Errorf("warnings = %v for well-formed document, want none", warnings)
	}

	doc.WaccComponents.DebtPercent = 50
	doc.Dividends[0].PayoutPercent = 150
	doc.Shareholders[1].Percent = 70
	doc.TerminalGrowth = 12
	doc.Forecast.Period = 0

	warnings := ValidateDocument(doc)
	if len(warnings) != 5 {
		t.Fatalf("warnings = %d, want 5: %v", len(warnings), warnings)
	}
}
