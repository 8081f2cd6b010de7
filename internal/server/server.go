// Package server exposes the assembly pipeline over HTTP: form state in,
// assembled documents, engine forecasts, and spreadsheet exchanges out.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/fincast/assumptions/internal/assemble"
	"github.com/fincast/assumptions/internal/engine"
	"github.com/fincast/assumptions/internal/excel"
	"github.com/fincast/assumptions/internal/forms"
	"github.com/fincast/assumptions/pkg/constants"
	"github.com/fincast/assumptions/pkg/document"
	"github.com/fincast/assumptions/pkg/validation"
)

type handler struct {
	logger        *zap.Logger
	assembler     *assemble.Assembler
	engineClient  *engine.Client
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler serving the assembly API. The
// engine client may be nil, in which case the forecast endpoint reports the
// engine as unconfigured.
func NewHandler(logger *zap.Logger, engineClient *engine.Client, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		assembler:     assemble.New(logger),
		engineClient:  engineClient,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()

	// Form state in, assembled document plus warnings out
	mux.HandleFunc("/api/assemble", h.handleAssemble)

	// Form state in, engine forecast out
	mux.HandleFunc("/api/forecast", h.handleForecast)

	// Engine results in, formatted workbook out
	mux.HandleFunc("/api/export", h.handleExport)

	// Business-input workbook upload, form state out
	mux.HandleFunc("/api/import", h.handleImport)

	// Prefill document in, rehydrated form state out
	mux.HandleFunc("/api/prefill", h.handlePrefill)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type assembleResponse struct {
	Document *document.Document `json:"document"`
	Warnings []string           `json:"warnings,omitempty"`
	Duration string             `json:"duration"`
}

type forecastResponse struct {
	Document *document.Document        `json:"document"`
	Result   *engine.CalculationResult `json:"result"`
	Warnings []string                  `json:"warnings,omitempty"`
	Duration string                    `json:"duration"`
}

type exportRequest struct {
	CompanyName string                    `json:"companyName"`
	ModelName   string                    `json:"modelName"`
	Result      *engine.CalculationResult `json:"result"`
}

func (h *handler) handleAssemble(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	state, ok := h.decodeState(w, r, "server.handleAssemble")
	if !ok {
		return
	}

	doc := h.assembler.Assemble(state)
	h.writeJSON(w, http.StatusOK, assembleResponse{
		Document: doc,
		Warnings: validation.ValidateDocument(doc),
		Duration: time.Since(start).String(),
	})
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.engineClient == nil {
		h.respondErrorWithOp(w, http.StatusServiceUnavailable,
			"no forecasting engine configured", "server.handleForecast")
		return
	}

	start := time.Now()
	state, ok := h.decodeState(w, r, "server.handleForecast")
	if !ok {
		return
	}

	doc := h.assembler.Assemble(state)
	result, err := h.engineClient.Calculate(r.Context(), doc)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadGateway,
			fmt.Sprintf("engine calculation failed: %v", err), "server.handleForecast")
		return
	}

	h.writeJSON(w, http.StatusOK, forecastResponse{
		Document: doc,
		Result:   result,
		Warnings: validation.ValidateDocument(doc),
		Duration: time.Since(start).String(),
	})
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest,
			fmt.Sprintf("failed to parse export request: %v", err), "server.handleExport")
		return
	}
	if req.Result == nil {
		h.respondErrorWithOp(w, http.StatusBadRequest,
			"missing calculation result", "server.handleExport")
		return
	}

	f, err := excel.ExportStatements(req.Result, excel.ExportMeta{
		CompanyName: req.CompanyName,
		ModelName:   req.ModelName,
		ExportDate:  time.Now(),
	})
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError,
			fmt.Sprintf("failed to build workbook: %v", err), "server.handleExport")
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError,
			fmt.Sprintf("failed to render workbook: %v", err), "server.handleExport")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="statements.xlsx"`)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write workbook response",
			zap.String("op", "server.handleExport"),
			zap.Error(err),
		)
	}
}

func (h *handler) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleImport")
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest,
			fmt.Sprintf("failed to parse upload: %v", err), "server.handleImport")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest,
			"missing workbook file", "server.handleImport")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleImport"),
				zap.Error(closeErr),
			)
		}
	}()

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest,
			fmt.Sprintf("failed to read workbook: %v", err), "server.handleImport")
		return
	}
	defer workbook.Close()

	state, err := excel.ImportBusinessInput(workbook)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest,
			fmt.Sprintf("failed to import workbook: %v", err), "server.handleImport")
		return
	}

	h.writeJSON(w, http.StatusOK, state)
}

func (h *handler) handlePrefill(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	var doc document.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest,
			fmt.Sprintf("failed to parse document: %v", err), "server.handlePrefill")
		return
	}

	h.writeJSON(w, http.StatusOK, forms.FromDocument(&doc))
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeState reads a JSON form state off the request. The zero state is a
// usable default, so an empty body is rejected but partial states are not.
func (h *handler) decodeState(w http.ResponseWriter, r *http.Request, op string) (*forms.State, bool) {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest,
			fmt.Sprintf("failed to read request: %v", err), op)
		return nil, false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing form state", op)
		return nil, false
	}

	state := forms.NewState()
	if err := json.Unmarshal(body, state); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest,
			fmt.Sprintf("failed to parse form state: %v", err), op)
		return nil, false
	}
	return state, true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
