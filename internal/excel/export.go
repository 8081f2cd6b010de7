// Package excel is the spreadsheet boundary: it renders engine results into
// formatted workbooks and reads business inputs back out of uploaded ones.
package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fincast/assumptions/internal/engine"
)

// Sheet names in the exported workbook.
const (
	SheetIncomeStatement = "Income Statement"
	SheetBalanceSheet    = "Balance Sheet"
	SheetCashFlow        = "Cash Flow"
	SheetAmortization    = "Amortization"
)

// ExportMeta labels the exported workbook.
type ExportMeta struct {
	CompanyName string
	ModelName   string
	ExportDate  time.Time
}

func (m ExportMeta) companyName() string {
	if m.CompanyName == "" {
		return "Company"
	}
	return m.CompanyName
}

func (m ExportMeta) modelName() string {
	if m.ModelName == "" {
		return "Financial Model"
	}
	return m.ModelName
}

// ExportStatements renders a calculation result into a workbook with one
// sheet per statement, each carrying a title block, a header row, and the
// line items. The amortization sheet is added only when the engine returned
// a schedule.
func ExportStatements(result *engine.CalculationResult, meta ExportMeta) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeStatementSheet(f, SheetIncomeStatement, result.IncomeStatement, meta); err != nil {
		return nil, err
	}
	if err := writeStatementSheet(f, SheetBalanceSheet, result.BalanceSheet, meta); err != nil {
		return nil, err
	}
	if err := writeStatementSheet(f, SheetCashFlow, result.CashFlow, meta); err != nil {
		return nil, err
	}
	if result.Amortization != nil {
		if err := writeAmortizationSheet(f, result.Amortization, meta); err != nil {
			return nil, err
		}
	}

	// The first statement replaces the default sheet.
	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(SheetIncomeStatement); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// SaveStatements writes the exported workbook to path.
func SaveStatements(path string, result *engine.CalculationResult, meta ExportMeta) error {
	f, err := ExportStatements(result, meta)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook, %w", err)
	}
	return nil
}

func writeStatementSheet(f *excelize.File, name string, stmt engine.Statement, meta ExportMeta) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s, %w", name, err)
	}

	if err := writeRow(f, name, 1, []interface{}{meta.companyName(), meta.modelName()}); err != nil {
		return err
	}
	title := []interface{}{name, "", "", "", meta.ExportDate.Format("2006-01-02")}
	if err := writeRow(f, name, 2, title); err != nil {
		return err
	}

	header := make([]interface{}, 0, len(stmt.Years)+1)
	header = append(header, "Line Item")
	for _, year := range stmt.Years {
		header = append(header, year)
	}
	if err := writeRow(f, name, 4, header); err != nil {
		return err
	}

	for i, item := range stmt.LineItems {
		row := make([]interface{}, 0, len(item.Values)+1)
		row = append(row, item.Label)
		for _, v := range item.Values {
			row = append(row, v)
		}
		if err := writeRow(f, name, 5+i, row); err != nil {
			return err
		}
	}
	return nil
}

func writeAmortizationSheet(f *excelize.File, table *engine.AmortizationTable, meta ExportMeta) error {
	if _, err := f.NewSheet(SheetAmortization); err != nil {
		return fmt.Errorf("failed to create sheet %s, %w", SheetAmortization, err)
	}

	if err := writeRow(f, SheetAmortization, 1, []interface{}{meta.companyName(), meta.modelName()}); err != nil {
		return err
	}
	title := []interface{}{"Loan Amortization Schedule", "", "", "", meta.ExportDate.Format("2006-01-02")}
	if err := writeRow(f, SheetAmortization, 2, title); err != nil {
		return err
	}

	header := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := writeRow(f, SheetAmortization, 4, header); err != nil {
		return err
	}
	for i, cells := range table.Rows {
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		if err := writeRow(f, SheetAmortization, 5+i, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s, %w", row, sheet, err)
	}
	return nil
}
