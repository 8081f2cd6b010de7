// Package forms models the working state of the planning input forms: free
// text numeric fields, section toggles, dynamic row lists, and per-section
// year counters. Nothing here is sanitized; the assembly step owns the
// conversion from form state to the outbound document.
package forms

import (
	"fmt"
	"strconv"

	"github.com/fincast/assumptions/pkg/constants"
	"github.com/fincast/assumptions/pkg/depreciation"
	"github.com/fincast/assumptions/pkg/document"
	"github.com/fincast/assumptions/pkg/loanschema"
	"github.com/fincast/assumptions/pkg/units"
)

// InputMethod selects how a section's values are entered.
type InputMethod string

const (
	// MethodGrowthRate enters a base value plus a growth percentage.
	MethodGrowthRate InputMethod = "growth_rate"
	// MethodYearlyValues enters one value per forecast year.
	MethodYearlyValues InputMethod = "yearly_values"
)

// Product is a retail revenue row.
type Product struct {
	Name         string
	Price        string
	Units        string
	GrowthRate   string
	Cost         string
	UnitsPerYear []string
}

// Service is a service-business revenue row.
type Service struct {
	Name           string
	Price          string
	Clients        string
	Growth         string
	Cost           string
	ClientsPerYear []string
}

// Expense is a recurring cost row.
type Expense struct {
	Name           string
	Amount         string
	GrowthRate     string
	Notes          string
	AmountsPerYear []string
}

// CapitalItem is an equipment row. UnitsPerYear holds a comma-separated
// list in a single field; AdditionsPerYear is a year-synchronized series
// used by the advanced planning mode.
type CapitalItem struct {
	Name               string
	AssetClass         string
	Notes              string
	DepreciationMethod string
	Cost               string
	UsefulLife         string
	PurchaseDate       string
	SalvageValue       string
	TotalUnits         string
	UnitsPerYear       string
	Advanced           bool
	DepreciationRate   string
	AdditionsPerYear   []string
}

// Loan is a loan row. Every schema field is kept even while inactive so a
// user flipping the loan type back and forth never loses an entered value;
// assembly zeroes whatever the final type leaves inactive.
type Loan struct {
	Amount             string
	Rate               string
	Years              string
	StartDate          string
	LoanType           string
	SubType            string
	RoyaltyType        string
	RevolvingLimit     string
	UtilizationRate    string
	CollateralType     string
	GuaranteeAmount    string
	TradeDocumentType  string
	Tenor              string
	EquityStake        string
	RoyaltyPercentage  string
	FixedRoyaltyAmount string
}

// Investment is a cash investment row.
type Investment struct {
	Name           string
	Amount         string
	Date           string
	ExpectedReturn string
	MaturityValue  string
	MaturityType   string
	Income         bool
	IncomeAmount   string
}

// DividendPeriod is one payout period row. Labels are owned by the section
// and rewritten on every add or remove.
type DividendPeriod struct {
	Label  string
	Payout string
}

// Shareholder is an additional equity holder row.
type Shareholder struct {
	Name    string
	Amount  string
	Percent string
	Notes   string
}

// OtherItem is a miscellaneous income or cost row.
type OtherItem struct {
	Name     string
	Amount   string
	Notes    string
	IsIncome bool
}

// RevenueSection holds the revenue rows plus the input method, unit, and
// year count governing them.
type RevenueSection struct {
	Method      InputMethod
	Unit        units.Unit
	Years       YearCounter
	HasProducts bool
	HasServices bool
	Products    List[Product]
	Services    List[Service]
}

// SetMethod switches the input method. Yearly values are always entered as
// annual figures, so switching to that method forces the annual unit.
func (s *RevenueSection) SetMethod(m InputMethod) {
	s.Method = m
	if m == MethodYearlyValues {
		s.Unit = units.Annual
	}
}

// AddYear extends every revenue series by one zero-valued year.
func (s *RevenueSection) AddYear() {
	if s.Years.Increment() {
		s.resize()
	}
}

// RemoveYear truncates every revenue series by one year, discarding the
// last entry.
func (s *RevenueSection) RemoveYear() {
	if s.Years.Decrement() {
		s.resize()
	}
}

func (s *RevenueSection) resize() {
	resizeAll(&s.Products, s.Years.Count, func(p *Product) *[]string { return &p.UnitsPerYear })
	resizeAll(&s.Services, s.Years.Count, func(v *Service) *[]string { return &v.ClientsPerYear })
}

// AddProduct appends a blank product row sized to the current year count.
func (s *RevenueSection) AddProduct() {
	s.Products.Add(Product{UnitsPerYear: newSeries(s.Years.Count)})
}

// AddService appends a blank service row sized to the current year count.
func (s *RevenueSection) AddService() {
	s.Services.Add(Service{ClientsPerYear: newSeries(s.Years.Count)})
}

// ExpenseSection holds the expense rows plus their input method, unit, and
// year count.
type ExpenseSection struct {
	Method   InputMethod
	Unit     units.Unit
	Years    YearCounter
	Expenses List[Expense]
}

// SetMethod switches the input method, forcing the annual unit for yearly
// values.
func (s *ExpenseSection) SetMethod(m InputMethod) {
	s.Method = m
	if m == MethodYearlyValues {
		s.Unit = units.Annual
	}
}

// AddYear extends every expense series by one zero-valued year.
func (s *ExpenseSection) AddYear() {
	if s.Years.Increment() {
		s.resize()
	}
}

// RemoveYear truncates every expense series by one year.
func (s *ExpenseSection) RemoveYear() {
	if s.Years.Decrement() {
		s.resize()
	}
}

func (s *ExpenseSection) resize() {
	resizeAll(&s.Expenses, s.Years.Count, func(e *Expense) *[]string { return &e.AmountsPerYear })
}

// AddExpense appends a blank expense row sized to the current year count.
func (s *ExpenseSection) AddExpense() {
	s.Expenses.Add(Expense{AmountsPerYear: newSeries(s.Years.Count)})
}

// CapitalSection holds the equipment rows behind their toggle.
type CapitalSection struct {
	Enabled bool
	Years   YearCounter
	Items   List[CapitalItem]
}

// AddYear extends the advanced-mode additions series by one year, up to the
// section cap.
func (s *CapitalSection) AddYear() {
	if s.Years.Increment() {
		s.resize()
	}
}

// RemoveYear truncates the advanced-mode additions series by one year, down
// to the section floor.
func (s *CapitalSection) RemoveYear() {
	if s.Years.Decrement() {
		s.resize()
	}
}

func (s *CapitalSection) resize() {
	resizeAll(&s.Items, s.Years.Count, func(c *CapitalItem) *[]string { return &c.AdditionsPerYear })
}

// AddItem appends an equipment row with the straight-line default.
func (s *CapitalSection) AddItem() {
	s.Items.Add(CapitalItem{
		DepreciationMethod: string(depreciation.StraightLine),
		AdditionsPerYear:   newSeries(s.Years.Count),
	})
}

// FundingSection holds self funding, shareholders, and loans.
type FundingSection struct {
	SelfFunding     string
	HasShareholders bool
	Shareholders    List[Shareholder]
	HasLoans        bool
	Loans           List[Loan]
}

// AddLoan appends a loan row with the default type.
func (s *FundingSection) AddLoan() {
	s.Loans.Add(Loan{LoanType: string(loanschema.WorkingCapital)})
}

// AddShareholder appends a blank shareholder row.
func (s *FundingSection) AddShareholder() {
	s.Shareholders.Add(Shareholder{})
}

// RatesSection holds the global interest-rate defaults behind their toggle.
type RatesSection struct {
	Enabled     bool
	ShortTerm   string
	LongTerm    string
	Investment  string
	UseForLoans bool
}

// TaxSection holds the corporate tax rate behind its toggle.
type TaxSection struct {
	Enabled bool
	Rate    string
}

// DividendSection holds the payout periods behind their toggle.
type DividendSection struct {
	Enabled bool
	Periods []DividendPeriod
}

// AddPeriod appends a payout period and renumbers the labels.
func (s *DividendSection) AddPeriod() {
	s.Periods = append(s.Periods, DividendPeriod{})
	s.relabel()
}

// RemovePeriod deletes the period at index and renumbers the labels.
// Out-of-range indexes are ignored.
func (s *DividendSection) RemovePeriod(index int) {
	if index < 0 || index >= len(s.Periods) {
		return
	}
	s.Periods = append(s.Periods[:index], s.Periods[index+1:]...)
	s.relabel()
}

// UpdatePayout sets the payout percentage of the period at index.
func (s *DividendSection) UpdatePayout(index int, payout string) {
	if index < 0 || index >= len(s.Periods) {
		return
	}
	s.Periods[index].Payout = payout
}

// relabel rewrites labels "Year 1".."Year N" with the open-ended "+" suffix
// on exactly the last period.
func (s *DividendSection) relabel() {
	for i := range s.Periods {
		label := fmt.Sprintf("Year %d", i+1)
		if i == len(s.Periods)-1 {
			label += "+"
		}
		s.Periods[i].Label = label
	}
}

// CreditSalesSection captures sales made on credit behind its toggle.
type CreditSalesSection struct {
	Enabled        bool
	Percent        string
	CollectionDays string
}

// PayablesSection captures supplier payment terms behind its toggle.
type PayablesSection struct {
	Enabled bool
	Days    string
}

// OwnerSalarySection captures owner drawings behind its toggle.
type OwnerSalarySection struct {
	Enabled   bool
	Amount    string
	Frequency string
}

// OtherSection holds miscellaneous income and cost rows behind their toggle.
type OtherSection struct {
	Enabled bool
	Items   List[OtherItem]
}

// ForecastSection holds the explicit forecast horizon.
type ForecastSection struct {
	Period string
	Type   string
}

// ValuationSection holds the discount-rate inputs and terminal-value
// parameters. The build-up fields feed the capital-structure composition;
// DiscountRate is the manual override used when the build-up is off.
type ValuationSection struct {
	DiscountRate      string
	UseWaccBuildUp    bool
	CostOfEquityOnly  bool
	RiskFreeRate      string
	Beta              string
	MarketRiskPremium string
	PreTaxCostOfDebt  string
	TaxRate           string
	EquityPercent     string
	DebtPercent       string

	TerminalGrowth string
	TvMethod       string
	TvMetric       string
	TvMultiple     string
	TvCustomValue  string
	TvYear         string
}

// State is the complete working state of the planning forms.
type State struct {
	FiscalYearStart string

	Revenue  RevenueSection
	Expenses ExpenseSection
	Capital  CapitalSection
	Funding  FundingSection
	Rates    RatesSection
	Tax      TaxSection
	Other    OtherSection

	Investments   List[Investment]
	Dividends     DividendSection
	CreditSales   CreditSalesSection
	Payables      PayablesSection
	OwnerSalary   OwnerSalarySection
	InventoryDays string

	Forecast  ForecastSection
	Valuation ValuationSection
}

// NewState returns a form state carrying the creation-time defaults.
func NewState() *State {
	s := &State{
		FiscalYearStart: constants.DefaultFiscalYearStart,
		Revenue: RevenueSection{
			Method: MethodGrowthRate,
			Unit:   units.Monthly,
			Years:  YearCounter{Count: constants.DefaultYearCount, Min: constants.MinRevenueYears},
		},
		Expenses: ExpenseSection{
			Method: MethodGrowthRate,
			Unit:   units.Monthly,
			Years:  YearCounter{Count: constants.DefaultYearCount, Min: constants.MinExpenseYears},
		},
		Capital: CapitalSection{
			Years: YearCounter{
				Count: constants.DefaultYearCount,
				Min:   constants.MinCapitalYears,
				Max:   constants.MaxCapitalYears,
			},
		},
		Rates: RatesSection{
			ShortTerm:  constants.DefaultShortTermRate,
			LongTerm:   constants.DefaultLongTermRate,
			Investment: constants.DefaultInvestmentRate,
		},
		Tax: TaxSection{Enabled: true, Rate: constants.DefaultTaxRate},
		Forecast: ForecastSection{
			Period: constants.DefaultForecastPeriod,
			Type:   constants.DefaultForecastType,
		},
		Valuation: ValuationSection{
			DiscountRate:      constants.DefaultDiscountRate,
			RiskFreeRate:      constants.DefaultRiskFreeRate,
			Beta:              constants.DefaultBeta,
			MarketRiskPremium: constants.DefaultMarketPremium,
			PreTaxCostOfDebt:  constants.DefaultCostOfDebt,
			TaxRate:           constants.DefaultTaxRate,
			EquityPercent:     constants.DefaultEquityPercent,
			DebtPercent:       constants.DefaultDebtPercent,
			TerminalGrowth:    constants.DefaultTerminalGrowth,
			TvMethod:          constants.DefaultTerminalMethod,
			TvMetric:          constants.DefaultTerminalMetric,
			TvMultiple:        constants.DefaultTerminalMultiple,
			TvYear:            constants.DefaultTerminalYear,
		},
	}
	for i := 0; i < constants.DefaultDividendPeriods; i++ {
		s.Dividends.Periods = append(s.Dividends.Periods, DividendPeriod{Payout: "0"})
	}
	s.Dividends.relabel()
	return s
}

// newSeries returns a zero-valued series of n entries.
func newSeries(n int) []string {
	return resizeSeries(nil, n)
}

// formatNumber renders a document value back into a form field.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatSeries(values []float64, n int) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, formatNumber(v))
	}
	return resizeSeries(out, n)
}

// FromDocument rehydrates a form state from a previously assembled document.
// Missing sections keep their defaults; list sections adopt the document's
// rows and toggles switch on for any section the document populated.
func FromDocument(doc *document.Document) *State {
	s := NewState()
	if doc == nil {
		return s
	}

	if doc.FiscalYearStart != "" {
		s.FiscalYearStart = doc.FiscalYearStart
	}
	if doc.RevenueUnit != "" {
		s.Revenue.Unit = doc.RevenueUnit
	}
	if doc.ExpenseUnit != "" {
		s.Expenses.Unit = doc.ExpenseUnit
	}

	for _, p := range doc.Products {
		row := Product{
			Name:       p.Name,
			Price:      formatNumber(p.Price),
			Units:      formatNumber(p.Units),
			GrowthRate: formatNumber(p.GrowthRate),
			Cost:       formatNumber(p.Cost),
		}
		if len(p.UnitsPerYear) > 0 {
			s.Revenue.SetMethod(MethodYearlyValues)
			s.Revenue.Years.Count = len(p.UnitsPerYear)
		}
		row.UnitsPerYear = formatSeries(p.UnitsPerYear, s.Revenue.Years.Count)
		s.Revenue.Products.Add(row)
	}
	s.Revenue.HasProducts = len(doc.Products) > 0

	for _, v := range doc.Services {
		row := Service{
			Name:    v.Name,
			Price:   formatNumber(v.Price),
			Clients: formatNumber(v.Clients),
			Growth:  formatNumber(v.Growth),
			Cost:    formatNumber(v.Cost),
		}
		if len(v.ClientsPerYear) > 0 {
			s.Revenue.SetMethod(MethodYearlyValues)
			s.Revenue.Years.Count = len(v.ClientsPerYear)
		}
		row.ClientsPerYear = formatSeries(v.ClientsPerYear, s.Revenue.Years.Count)
		s.Revenue.Services.Add(row)
	}
	s.Revenue.HasServices = len(doc.Services) > 0
	s.Revenue.resize()

	for _, e := range doc.Expenses {
		row := Expense{
			Name:       e.Name,
			Amount:     formatNumber(e.Amount),
			GrowthRate: formatNumber(e.GrowthRate),
			Notes:      e.Notes,
		}
		if len(e.AmountsPerYear) > 0 {
			s.Expenses.SetMethod(MethodYearlyValues)
			s.Expenses.Years.Count = len(e.AmountsPerYear)
		}
		row.AmountsPerYear = formatSeries(e.AmountsPerYear, s.Expenses.Years.Count)
		s.Expenses.Expenses.Add(row)
	}
	s.Expenses.resize()

	for _, c := range doc.Equipment {
		if len(c.AdditionsPerYear) > 0 {
			s.Capital.Years.Count = clampInt(len(c.AdditionsPerYear),
				constants.MinCapitalYears, constants.MaxCapitalYears)
		}
		s.Capital.Items.Add(CapitalItem{
			Name:               c.Name,
			AssetClass:         c.AssetClass,
			Notes:              c.Notes,
			DepreciationMethod: string(depreciation.Normalize(c.DepreciationMethod)),
			Cost:               formatNumber(c.Cost),
			UsefulLife:         formatNumber(c.UsefulLife),
			PurchaseDate:       c.PurchaseDate,
			SalvageValue:       formatNumber(c.SalvageValue),
			TotalUnits:         formatNumber(c.TotalUnits),
			UnitsPerYear:       joinNumbers(c.UnitsPerYear),
			Advanced:           c.Advanced,
			DepreciationRate:   formatNumber(c.DepreciationRate),
			AdditionsPerYear:   formatSeries(c.AdditionsPerYear, s.Capital.Years.Count),
		})
	}
	s.Capital.Enabled = len(doc.Equipment) > 0
	s.Capital.resize()

	s.Funding.SelfFunding = formatNumber(doc.SelfFunding)
	for _, l := range doc.Loans {
		s.Funding.Loans.Add(Loan{
			Amount:             formatNumber(l.Amount),
			Rate:               formatNumber(l.Rate),
			Years:              formatNumber(l.Years),
			StartDate:          l.StartDate,
			LoanType:           string(loanschema.Normalize(l.LoanType)),
			SubType:            string(l.SubType),
			RoyaltyType:        string(l.RoyaltyType),
			RevolvingLimit:     formatNumber(l.RevolvingLimit),
			UtilizationRate:    formatNumber(l.UtilizationRate),
			CollateralType:     l.CollateralType,
			GuaranteeAmount:    formatNumber(l.GuaranteeAmount),
			TradeDocumentType:  l.TradeDocumentType,
			Tenor:              formatNumber(l.Tenor),
			EquityStake:        formatNumber(l.EquityStake),
			RoyaltyPercentage:  formatNumber(l.RoyaltyPercentage),
			FixedRoyaltyAmount: formatNumber(l.FixedRoyaltyAmount),
		})
	}
	s.Funding.HasLoans = len(doc.Loans) > 0
	for _, sh := range doc.Shareholders {
		s.Funding.Shareholders.Add(Shareholder{
			Name:    sh.Name,
			Amount:  formatNumber(sh.Amount),
			Percent: formatNumber(sh.Percent),
			Notes:   sh.Notes,
		})
	}
	s.Funding.HasShareholders = len(doc.Shareholders) > 0

	for _, inv := range doc.Investments {
		s.Investments.Add(Investment{
			Name:           inv.Name,
			Amount:         formatNumber(inv.Amount),
			Date:           inv.Date,
			ExpectedReturn: formatNumber(inv.ExpectedReturn),
			MaturityValue:  formatNumber(inv.MaturityValue),
			MaturityType:   inv.MaturityType,
			Income:         inv.Income,
			IncomeAmount:   formatNumber(inv.IncomeAmount),
		})
	}

	if len(doc.Dividends) > 0 {
		s.Dividends.Enabled = true
		s.Dividends.Periods = nil
		for _, d := range doc.Dividends {
			s.Dividends.Periods = append(s.Dividends.Periods, DividendPeriod{
				Payout: formatNumber(d.PayoutPercent),
			})
		}
		s.Dividends.relabel()
	}

	for _, o := range doc.Other {
		s.Other.Items.Add(OtherItem{
			Name:     o.Name,
			Amount:   formatNumber(o.Amount),
			Notes:    o.Notes,
			IsIncome: o.IsIncome,
		})
	}
	s.Other.Enabled = len(doc.Other) > 0

	if r := doc.GlobalInterestRates; r != nil {
		s.Rates = RatesSection{
			Enabled:     true,
			ShortTerm:   formatNumber(r.ShortTerm),
			LongTerm:    formatNumber(r.LongTerm),
			Investment:  formatNumber(r.Investment),
			UseForLoans: r.UseForLoans,
		}
	}
	if c := doc.CreditSales; c != nil {
		s.CreditSales = CreditSalesSection{
			Enabled:        true,
			Percent:        formatNumber(c.Percent),
			CollectionDays: formatNumber(c.CollectionDays),
		}
	}
	if p := doc.AccountsPayable; p != nil {
		s.Payables = PayablesSection{Enabled: true, Days: formatNumber(p.Days)}
	}
	if o := doc.OwnerSalary; o != nil {
		s.OwnerSalary = OwnerSalarySection{
			Enabled:   true,
			Amount:    formatNumber(o.Amount),
			Frequency: o.Frequency,
		}
	}

	if doc.TaxRate != nil {
		s.Tax = TaxSection{Enabled: true, Rate: formatNumber(*doc.TaxRate)}
	} else {
		s.Tax.Enabled = false
	}
	if doc.InventoryDays != 0 {
		s.InventoryDays = formatNumber(doc.InventoryDays)
	}

	if doc.Forecast.Period != 0 {
		s.Forecast.Period = strconv.Itoa(doc.Forecast.Period)
	}
	if doc.Forecast.Type != "" {
		s.Forecast.Type = doc.Forecast.Type
	}

	if doc.DiscountRate != 0 {
		s.Valuation.DiscountRate = formatNumber(doc.DiscountRate)
	}
	if doc.TerminalGrowth != 0 {
		s.Valuation.TerminalGrowth = formatNumber(doc.TerminalGrowth)
	}
	if doc.TvMethod != "" {
		s.Valuation.TvMethod = doc.TvMethod
	}
	if doc.TvMetric != "" {
		s.Valuation.TvMetric = doc.TvMetric
	}
	if doc.TvMultiple != 0 {
		s.Valuation.TvMultiple = formatNumber(doc.TvMultiple)
	}
	if doc.TvCustomValue != 0 {
		s.Valuation.TvCustomValue = formatNumber(doc.TvCustomValue)
	}
	if doc.TvYear != 0 {
		s.Valuation.TvYear = formatNumber(doc.TvYear)
	}
	if w := doc.WaccComponents; w != nil {
		s.Valuation.UseWaccBuildUp = true
		s.Valuation.RiskFreeRate = formatNumber(w.RiskFreeRate)
		s.Valuation.Beta = formatNumber(w.Beta)
		s.Valuation.MarketRiskPremium = formatNumber(w.MarketRiskPremium)
		s.Valuation.PreTaxCostOfDebt = formatNumber(w.PreTaxCostOfDebt)
		s.Valuation.TaxRate = formatNumber(w.TaxRate)
		s.Valuation.EquityPercent = formatNumber(w.EquityPercent)
		s.Valuation.DebtPercent = formatNumber(w.DebtPercent)
	}

	return s
}

func joinNumbers(values []float64) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ","
		}
		out += formatNumber(v)
	}
	return out
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
