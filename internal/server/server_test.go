package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/fincast/assumptions/internal/engine"
	"github.com/fincast/assumptions/internal/forms"
	"github.com/fincast/assumptions/pkg/document"
)

func postJSON(t *testing.T, h http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshaling payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func testState(t *testing.T) *forms.State {
	t.Helper()
	s := forms.NewState()
	s.Revenue.HasServices = true
	s.Revenue.AddService()
	s.Revenue.Services.Update(0, func(v *forms.Service) {
		v.Name = "Consulting"
		v.Price = "500"
		v.Clients = "10"
	})
	return s
}

func TestHandleAssemble(t *testing.T) {
	h := NewHandler(nil, nil, 0, "test")

	rec := postJSON(t, h, "/api/assemble", testState(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Document document.Document `json:"document"`
		Warnings []string          `json:"warnings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Document.Services) != 1 || resp.Document.Services[0].Price != 500 {
		t.Errorf("document services = %+v, want one at price 500", resp.Document.Services)
	}
	if resp.Document.TaxRate == nil || *resp.Document.TaxRate != 25 {
		t.Errorf("taxRate = %v, want default 25", resp.Document.TaxRate)
	}
}

func TestHandleAssembleBadRequests(t *testing.T) {
	h := NewHandler(nil, nil, 0, "test")

	req := httptest.NewRequest(http.MethodGet, "/api/assemble", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/assemble", strings.NewReader(""))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty body status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/assemble", strings.NewReader("{not json"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", rec.Code)
	}
}

func TestHandleForecast(t *testing.T) {
	engineSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(engine.CalculationResult{
			IncomeStatement: engine.Statement{
				Years:     []string{"Year 1"},
				LineItems: []engine.LineItem{{Label: "Revenue", Values: []float64{60000}}},
			},
		})
	}))
	defer engineSrv.Close()

	client := engine.NewClient(engineSrv.URL, 0, nil)
	h := NewHandler(nil, client, 0, "test")

	rec := postJSON(t, h, "/api/forecast", testState(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp forecastResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Result == nil || len(resp.Result.IncomeStatement.LineItems) != 1 {
		t.Errorf("result = %+v, want one income line item", resp.Result)
	}
	if resp.Document == nil || resp.Document.ID == "" {
		t.Error("document missing from forecast response")
	}
}

func TestHandleForecastWithoutEngine(t *testing.T) {
	h := NewHandler(nil, nil, 0, "test")
	rec := postJSON(t, h, "/api/forecast", testState(t))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d without engine, want 503", rec.Code)
	}
}

func TestHandleExport(t *testing.T) {
	h := NewHandler(nil, nil, 0, "test")

	rec := postJSON(t, h, "/api/export", exportRequest{
		CompanyName: "Acme",
		Result: &engine.CalculationResult{
			IncomeStatement: engine.Statement{
				Years:     []string{"Year 1"},
				LineItems: []engine.LineItem{{Label: "Revenue", Values: []float64{60000}}},
			},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("content type = %q, want spreadsheet", ct)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("opening exported workbook: %v", err)
	}
	defer f.Close()
	got, err := f.GetCellValue("Income Statement", "A5")
	if err != nil {
		t.Fatalf("reading exported cell: %v", err)
	}
	if got != "Revenue" {
		t.Errorf("A5 = %q, want Revenue", got)
	}

	// Export without a result is rejected.
	rec = postJSON(t, h, "/api/export", exportRequest{CompanyName: "Acme"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d without result, want 400", rec.Code)
	}
}

func TestHandleImport(t *testing.T) {
	wb := excelize.NewFile()
	if _, err := wb.NewSheet("services"); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	header := []interface{}{"name", "price", "clients", "growth", "cost"}
	row := []interface{}{"Consulting", "500", "10", "3", "50"}
	if err := wb.SetSheetRow("services", "A1", &header); err != nil {
		t.Fatalf("SetSheetRow: %v", err)
	}
	if err := wb.SetSheetRow("services", "A2", &row); err != nil {
		t.Fatalf("SetSheetRow: %v", err)
	}

	var fileBuf bytes.Buffer
	if err := wb.Write(&fileBuf); err != nil {
		t.Fatalf("writing workbook: %v", err)
	}
	wb.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "input.xlsx")
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := part.Write(fileBuf.Bytes()); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	mw.Close()

	h := NewHandler(nil, nil, 1024*1024, "test")
	req := httptest.NewRequest(http.MethodPost, "/api/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var state forms.State
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decoding imported state: %v", err)
	}
	if !state.Revenue.HasServices || state.Revenue.Services.Len() != 1 {
		t.Errorf("imported services = %d (toggle %v), want 1 enabled",
			state.Revenue.Services.Len(), state.Revenue.HasServices)
	}
}

func TestHandlePrefill(t *testing.T) {
	h := NewHandler(nil, nil, 0, "test")

	tax := 20.0
	rec := postJSON(t, h, "/api/prefill", document.Document{
		Services: []document.Service{{Name: "Consulting", Price: 500}},
		TaxRate:  &tax,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var state forms.State
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decoding prefilled state: %v", err)
	}
	if !state.Revenue.HasServices {
		t.Error("HasServices = false after prefill, want true")
	}
	if state.Tax.Rate != "20" {
		t.Errorf("tax rate = %q after prefill, want 20", state.Tax.Rate)
	}
}

func TestHandleVersion(t *testing.T) {
	h := NewHandler(nil, nil, 0, "1.2.3")
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding version response: %v", err)
	}
	if resp["version"] != "1.2.3" {
		t.Errorf("version = %q, want 1.2.3", resp["version"])
	}
}
