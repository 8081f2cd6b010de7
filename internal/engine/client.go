// Package engine talks to the external forecasting engine: it submits an
// assembled Assumptions Document and decodes the calculated statements that
// come back. All financial math lives on the other side of this boundary.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/fincast/assumptions/pkg/document"
)

// Statement is one financial statement as the engine reports it.
type Statement struct {
	Years     []string   `json:"years"`
	LineItems []LineItem `json:"line_items"`
}

// LineItem is a labeled row of per-period values.
type LineItem struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// AmortizationTable is the combined loan repayment schedule.
type AmortizationTable struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// CalculationResult is the engine's full response to a submitted document.
type CalculationResult struct {
	IncomeStatement Statement          `json:"income_statement"`
	BalanceSheet    Statement          `json:"balance_sheet"`
	CashFlow        Statement          `json:"cash_flow"`
	KPIs            map[string]float64 `json:"kpis,omitempty"`
	Amortization    *AmortizationTable `json:"amortization_table,omitempty"`
}

// DefaultTimeout bounds one engine round trip when the config does not set
// its own.
const DefaultTimeout = 30 * time.Second

// Client submits documents to a forecasting engine over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient returns a client for the engine at baseURL. A zero timeout
// falls back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Calculate submits doc and returns the engine's statements.
func (c *Client) Calculate(ctx context.Context, doc *document.Document) (*CalculationResult, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document, %w", err)
	}

	url := c.baseURL + "/calculate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build engine request, %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("submitting document to engine",
		zap.String("op", "engine.Calculate"),
		zap.String("url", url),
		zap.String("documentId", doc.ID),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("engine request failed, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("engine returned status %d: %s", resp.StatusCode, body)
	}

	var result CalculationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode engine response, %w", err)
	}

	c.logger.Debug("received engine response",
		zap.String("op", "engine.Calculate"),
		zap.String("documentId", doc.ID),
		zap.Int("incomeLineItems", len(result.IncomeStatement.LineItems)),
	)
	return &result, nil
}
