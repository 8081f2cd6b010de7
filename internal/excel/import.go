package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fincast/assumptions/internal/forms"
)

// Workbook sheet names recognized on import. Each sheet carries a header row
// naming its columns; unknown sheets and unknown columns are ignored, so a
// workbook that only covers some sections still imports cleanly.
const (
	sectionServices      = "services"
	sectionExpenses      = "expenses"
	sectionEquipment     = "equipment"
	sectionShareholders  = "shareholders"
	sectionLoans         = "loans"
	sectionOther         = "other"
	sectionInvestments   = "investments"
	sectionAssumptions   = "assumptions"
	sectionWacc          = "wacc"
	sectionTerminalValue = "terminal_value"
	sectionGlobalRates   = "global_interest_rates"
)

// ImportBusinessInput reads a business-input workbook into a fresh form
// state. Values land in the forms untouched; sanitization stays an
// assembly-time concern.
func ImportBusinessInput(f *excelize.File) (*forms.State, error) {
	s := forms.NewState()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s, %w", sheet, err)
		}
		if len(rows) < 2 {
			continue
		}
		records := tableRecords(rows)

		switch strings.ToLower(strings.TrimSpace(sheet)) {
		case sectionServices:
			importServices(s, records)
		case sectionExpenses:
			importExpenses(s, records)
		case sectionEquipment:
			importEquipment(s, records)
		case sectionShareholders:
			importShareholders(s, records)
		case sectionLoans:
			importLoans(s, records)
		case sectionOther:
			importOther(s, records)
		case sectionInvestments:
			importInvestments(s, records)
		case sectionAssumptions:
			importAssumptions(s, records)
		case sectionWacc:
			importWacc(s, records)
		case sectionTerminalValue:
			importTerminalValue(s, records)
		case sectionGlobalRates:
			importGlobalRates(s, records)
		}
	}
	return s, nil
}

// ImportBusinessInputFile opens the workbook at path and imports it.
func ImportBusinessInputFile(path string) (*forms.State, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook, %w", err)
	}
	defer f.Close()
	return ImportBusinessInput(f)
}

// tableRecords maps each data row by its header-row column name. Header
// matching is case-insensitive; short rows read as empty cells.
func tableRecords(rows [][]string) []map[string]string {
	headers := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(headers))
		empty := true
		for i, h := range headers {
			key := strings.ToLower(strings.TrimSpace(h))
			if key == "" {
				continue
			}
			val := ""
			if i < len(row) {
				val = strings.TrimSpace(row[i])
			}
			if val != "" {
				empty = false
			}
			rec[key] = val
		}
		if !empty {
			records = append(records, rec)
		}
	}
	return records
}

func parseImportBool(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "yes", "1", "on":
		return true
	}
	return false
}

func importServices(s *forms.State, records []map[string]string) {
	for _, rec := range records {
		s.Revenue.AddService()
		s.Revenue.Services.Update(s.Revenue.Services.Len()-1, func(v *forms.Service) {
			v.Name = rec["name"]
			v.Price = rec["price"]
			v.Clients = rec["clients"]
			v.Growth = rec["growth"]
			v.Cost = rec["cost"]
		})
	}
	s.Revenue.HasServices = s.Revenue.Services.Len() > 0
}

func importExpenses(s *forms.State, records []map[string]string) {
	for _, rec := range records {
		name := rec["category"]
		if name == "" {
			name = rec["name"]
		}
		s.Expenses.AddExpense()
		s.Expenses.Expenses.Update(s.Expenses.Expenses.Len()-1, func(e *forms.Expense) {
			e.Name = name
			e.Amount = rec["amount"]
			e.GrowthRate = rec["growthrate"]
			e.Notes = rec["notes"]
		})
	}
}

func importEquipment(s *forms.State, records []map[string]string) {
	for _, rec := range records {
		s.Capital.AddItem()
		s.Capital.Items.Update(s.Capital.Items.Len()-1, func(c *forms.CapitalItem) {
			c.Name = rec["name"]
			c.Cost = rec["cost"]
			c.UsefulLife = rec["usefullife"]
			c.PurchaseDate = rec["purchasedate"]
			c.Notes = rec["notes"]
		})
	}
	s.Capital.Enabled = s.Capital.Items.Len() > 0
}

func importShareholders(s *forms.State, records []map[string]string) {
	for _, rec := range records {
		s.Funding.Shareholders.Add(forms.Shareholder{
			Name:    rec["name"],
			Amount:  rec["amount"],
			Percent: rec["percent"],
			Notes:   rec["notes"],
		})
	}
	s.Funding.HasShareholders = s.Funding.Shareholders.Len() > 0
}

func importLoans(s *forms.State, records []map[string]string) {
	for _, rec := range records {
		s.Funding.AddLoan()
		s.Funding.Loans.Update(s.Funding.Loans.Len()-1, func(l *forms.Loan) {
			l.Amount = rec["amount"]
			l.Rate = rec["rate"]
			l.Years = rec["years"]
			l.StartDate = rec["startdate"]
		})
	}
	s.Funding.HasLoans = s.Funding.Loans.Len() > 0
}

func importOther(s *forms.State, records []map[string]string) {
	for _, rec := range records {
		s.Other.Items.Add(forms.OtherItem{
			Name:     rec["type"],
			Amount:   rec["amount"],
			Notes:    rec["notes"],
			IsIncome: parseImportBool(rec["isincome"]),
		})
	}
	s.Other.Enabled = s.Other.Items.Len() > 0
}

func importInvestments(s *forms.State, records []map[string]string) {
	for _, rec := range records {
		s.Investments.Add(forms.Investment{
			Name:           rec["name"],
			Amount:         rec["amount"],
			Date:           rec["date"],
			ExpectedReturn: rec["expectedreturn"],
			MaturityValue:  rec["maturityvalue"],
			MaturityType:   rec["maturitytype"],
			Income:         parseImportBool(rec["income"]),
			IncomeAmount:   rec["incomeamount"],
		})
	}
}

// importAssumptions flattens the first assumptions row into the top-level
// fields; additional rows are ignored.
func importAssumptions(s *forms.State, records []map[string]string) {
	if len(records) == 0 {
		return
	}
	rec := records[0]
	if v := rec["taxrate"]; v != "" {
		s.Tax.Enabled = true
		s.Tax.Rate = v
	}
	if v := rec["forecast"]; v != "" {
		s.Forecast.Period = v
	}
	if v := rec["selffunding"]; v != "" {
		s.Funding.SelfFunding = v
	}
}

func importWacc(s *forms.State, records []map[string]string) {
	if len(records) == 0 {
		return
	}
	rec := records[0]
	s.Valuation.UseWaccBuildUp = parseImportBool(rec["usewaccbuildup"])
	s.Valuation.CostOfEquityOnly = parseImportBool(rec["usecostofequityonly"])
	setIfPresent(&s.Valuation.RiskFreeRate, rec["rfrate"])
	setIfPresent(&s.Valuation.Beta, rec["beta"])
	setIfPresent(&s.Valuation.MarketRiskPremium, rec["marketpremium"])
	setIfPresent(&s.Valuation.PreTaxCostOfDebt, rec["costofdebt"])
	setIfPresent(&s.Valuation.TaxRate, rec["taxratewacc"])
	setIfPresent(&s.Valuation.EquityPercent, rec["equitypct"])
	setIfPresent(&s.Valuation.DebtPercent, rec["debtpct"])
}

func importTerminalValue(s *forms.State, records []map[string]string) {
	if len(records) == 0 {
		return
	}
	rec := records[0]
	setIfPresent(&s.Valuation.TvMethod, rec["tvmethod"])
	setIfPresent(&s.Valuation.TvMetric, rec["tvmetric"])
	setIfPresent(&s.Valuation.TvMultiple, rec["tvmultiple"])
	setIfPresent(&s.Valuation.TvCustomValue, rec["tvcustomvalue"])
	setIfPresent(&s.Valuation.TvYear, rec["tvyear"])
}

func importGlobalRates(s *forms.State, records []map[string]string) {
	if len(records) == 0 {
		return
	}
	rec := records[0]
	s.Rates.Enabled = parseImportBool(rec["hasglobalinterestrates"])
	setIfPresent(&s.Rates.ShortTerm, rec["shortterminterestrate"])
	setIfPresent(&s.Rates.LongTerm, rec["longterminterestrate"])
	setIfPresent(&s.Rates.Investment, rec["investmentinterestrate"])
	s.Rates.UseForLoans = parseImportBool(rec["useglobalratesforloans"])
}

func setIfPresent(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}
