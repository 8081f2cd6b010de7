package document

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestHorizonYears(t *testing.T) {
	tests := []struct {
		name     string
		forecast Forecast
		want     int
	}{
		{"twelve months", Forecast{Period: 12, Type: "months"}, 1},
		{"partial year rounds up", Forecast{Period: 13, Type: "months"}, 2},
		{"five years", Forecast{Period: 5, Type: "years"}, 5},
		{"zero period", Forecast{Period: 0, Type: "months"}, 0},
		{"negative period", Forecast{Period: -3, Type: "years"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Document{Forecast: tt.forecast}
			if got := d.HorizonYears(); got != tt.want {
				t.Errorf("HorizonYears() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoanFixedShape(t *testing.T) {
	// Conditional loan fields stay present in the serialized form even when
	// zero, so consumers can rely on a stable schema.
	data, err := json.Marshal(Loan{Amount: 10000, LoanType: "working_capital"})
	if err != nil {
		t.Fatalf("marshaling loan: %v", err)
	}
	for _, key := range []string{
		"revolvingLimit", "utilizationRate", "collateralType", "guaranteeAmount",
		"tradeDocumentType", "tenor", "equityStake", "royaltyPercentage",
		"fixedRoyaltyAmount",
	} {
		if !strings.Contains(string(data), `"`+key+`"`) {
			t.Errorf("serialized loan missing %q: %s", key, data)
		}
	}
}

func TestTaxRateNullability(t *testing.T) {
	data, err := json.Marshal(&Document{})
	if err != nil {
		t.Fatalf("marshaling document: %v", err)
	}
	if !strings.Contains(string(data), `"taxRate":null`) {
		t.Errorf("document without tax rate should serialize taxRate as null: %s", data)
	}

	var doc Document
	if err := json.Unmarshal([]byte(`{"taxRate": 25}`), &doc); err != nil {
		t.Fatalf("unmarshaling document: %v", err)
	}
	if doc.TaxRate == nil || *doc.TaxRate != 25 {
		t.Errorf("taxRate = %v, want 25", doc.TaxRate)
	}
}
