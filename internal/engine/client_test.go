package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fincast/assumptions/pkg/document"
)

func TestCalculate(t *testing.T) {
	var gotPath string
	var gotDoc document.Document
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotDoc); err != nil {
			t.Errorf("decoding submitted document: %v", err)
		}
		json.NewEncoder(w).Encode(CalculationResult{
			IncomeStatement: Statement{
				Years: []string{"Year 1", "Year 2"},
				LineItems: []LineItem{
					{Label: "Revenue", Values: []float64{60000, 61800}},
				},
			},
			KPIs: map[string]float64{"npv": 125000},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0, nil)
	doc := &document.Document{ID: "doc-1"}
	result, err := client.Calculate(context.Background(), doc)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if gotPath != "/calculate" {
		t.Errorf("request path = %q, want /calculate", gotPath)
	}
	if gotDoc.ID != "doc-1" {
		t.Errorf("submitted document ID = %q, want doc-1", gotDoc.ID)
	}
	if len(result.IncomeStatement.LineItems) != 1 {
		t.Fatalf("line items = %d, want 1", len(result.IncomeStatement.LineItems))
	}
	if result.IncomeStatement.LineItems[0].Values[1] != 61800 {
		t.Errorf("revenue year 2 = %v, want 61800", result.IncomeStatement.LineItems[0].Values[1])
	}
	if result.KPIs["npv"] != 125000 {
		t.Errorf("npv = %v, want 125000", result.KPIs["npv"])
	}
}

func TestCalculateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "engine overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0, nil)
	_, err := client.Calculate(context.Background(), &document.Document{})
	if err == nil {
		t.Fatal("Calculate() error = nil, want status error")
	}
}

func TestCalculateContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL, 0, nil)
	_, err := client.Calculate(ctx, &document.Document{})
	if err == nil {
		t.Fatal("Calculate() error = nil with canceled context, want error")
	}
}
