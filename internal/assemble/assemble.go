// Package assemble converts raw form state into the canonical Assumptions
// Document in a single pass: sanitizing every numeric field, converting
// growth-rate entries to monthly terms, filtering conditional loan and
// depreciation fields down to the active schema, and dropping sections whose
// toggles are off.
package assemble

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fincast/assumptions/internal/forms"
	"github.com/fincast/assumptions/pkg/depreciation"
	"github.com/fincast/assumptions/pkg/document"
	"github.com/fincast/assumptions/pkg/loanschema"
	"github.com/fincast/assumptions/pkg/sanitize"
	"github.com/fincast/assumptions/pkg/units"
	"github.com/fincast/assumptions/pkg/wacc"
)

// Assembler builds documents from form state. Now and NewID exist so tests
// can pin the generated timestamp and identifier.
type Assembler struct {
	logger *zap.Logger
	Now    func() time.Time
	NewID  func() string
}

// New returns an Assembler using the wall clock and random identifiers.
func New(logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{
		logger: logger,
		Now:    time.Now,
		NewID:  uuid.NewString,
	}
}

// Assemble produces the outbound document for the given form state. It never
// fails: malformed numeric text sanitizes to zero and unknown tags normalize
// to their defaults.
func (a *Assembler) Assemble(s *forms.State) *document.Document {
	doc := &document.Document{
		ID:              a.NewID(),
		GeneratedAt:     a.Now().UTC(),
		FiscalYearStart: s.FiscalYearStart,
		RevenueUnit:     s.Revenue.Unit,
		ExpenseUnit:     s.Expenses.Unit,
	}

	a.assembleRevenue(s, doc)
	a.assembleExpenses(s, doc)
	a.assembleCapital(s, doc)
	a.assembleFunding(s, doc)
	a.assembleInvestments(s, doc)
	a.assembleDistributions(s, doc)
	a.assembleWorkingCapital(s, doc)
	a.assembleValuation(s, doc)

	if s.Tax.Enabled {
		rate := sanitize.Number(s.Tax.Rate)
		doc.TaxRate = &rate
	}
	doc.InventoryDays = sanitize.Number(s.InventoryDays)

	doc.Forecast = document.Forecast{
		Period: sanitize.Int(s.Forecast.Period),
		Type:   s.Forecast.Type,
	}

	a.logger.Debug("assembled document",
		zap.String("op", "assemble.Assemble"),
		zap.String("id", doc.ID),
		zap.Int("products", len(doc.Products)),
		zap.Int("services", len(doc.Services)),
		zap.Int("expenses", len(doc.Expenses)),
		zap.Int("loans", len(doc.Loans)),
	)
	return doc
}

// flatValue sanitizes a growth-rate-method base value, converting annual
// entries down to monthly terms. Yearly-values entries are taken at face
// value in the declared unit.
func flatValue(raw string, method forms.InputMethod, unit units.Unit) float64 {
	n := sanitize.Number(raw)
	if method == forms.MethodGrowthRate {
		return units.ToMonthly(n, unit)
	}
	return n
}

func (a *Assembler) assembleRevenue(s *forms.State, doc *document.Document) {
	doc.Products = make([]document.Product, 0, s.Revenue.Products.Len())
	doc.Services = make([]document.Service, 0, s.Revenue.Services.Len())

	if s.Revenue.HasProducts {
		for _, p := range s.Revenue.Products.Items {
			out := document.Product{
				Name:       p.Name,
				Price:      sanitize.Number(p.Price),
				Units:      flatValue(p.Units, s.Revenue.Method, s.Revenue.Unit),
				GrowthRate: sanitize.Number(p.GrowthRate),
				Cost:       sanitize.Number(p.Cost),
			}
			if s.Revenue.Method == forms.MethodYearlyValues {
				out.UnitsPerYear = sanitize.NumberList(p.UnitsPerYear)
			}
			doc.Products = append(doc.Products, out)
		}
	}
	if s.Revenue.HasServices {
		for _, v := range s.Revenue.Services.Items {
			out := document.Service{
				Name:    v.Name,
				Price:   sanitize.Number(v.Price),
				Clients: flatValue(v.Clients, s.Revenue.Method, s.Revenue.Unit),
				Growth:  sanitize.Number(v.Growth),
				Cost:    sanitize.Number(v.Cost),
			}
			if s.Revenue.Method == forms.MethodYearlyValues {
				out.ClientsPerYear = sanitize.NumberList(v.ClientsPerYear)
			}
			doc.Services = append(doc.Services, out)
		}
	}
}

func (a *Assembler) assembleExpenses(s *forms.State, doc *document.Document) {
	doc.Expenses = make([]document.Expense, 0, s.Expenses.Expenses.Len())
	for _, e := range s.Expenses.Expenses.Items {
		out := document.Expense{
			Name:       e.Name,
			Amount:     flatValue(e.Amount, s.Expenses.Method, s.Expenses.Unit),
			GrowthRate: sanitize.Number(e.GrowthRate),
			Notes:      e.Notes,
		}
		if s.Expenses.Method == forms.MethodYearlyValues {
			out.AmountsPerYear = sanitize.NumberList(e.AmountsPerYear)
		}
		doc.Expenses = append(doc.Expenses, out)
	}
}

func (a *Assembler) assembleCapital(s *forms.State, doc *document.Document) {
	doc.Equipment = make([]document.CapitalItem, 0, s.Capital.Items.Len())
	if !s.Capital.Enabled {
		return
	}
	for _, c := range s.Capital.Items.Items {
		method := depreciation.Normalize(depreciation.Method(c.DepreciationMethod))
		out := document.CapitalItem{
			Name:               c.Name,
			AssetClass:         c.AssetClass,
			Notes:              c.Notes,
			DepreciationMethod: method,
			Cost:               sanitize.Number(c.Cost),
			UsefulLife:         sanitize.Number(c.UsefulLife),
			PurchaseDate:       c.PurchaseDate,
			UnitsPerYear:       []float64{},
		}
		if depreciation.RequiresSalvageValue(method) {
			out.SalvageValue = sanitize.Number(c.SalvageValue)
		}
		if depreciation.RequiresUnitDetail(method) {
			out.TotalUnits = sanitize.Number(c.TotalUnits)
			out.UnitsPerYear = sanitize.SplitNumberList(c.UnitsPerYear)
		}
		if c.Advanced {
			out.Advanced = true
			out.DepreciationRate = sanitize.Number(c.DepreciationRate)
			out.AdditionsPerYear = sanitize.NumberList(c.AdditionsPerYear)
		}
		doc.Equipment = append(doc.Equipment, out)
	}
}

func (a *Assembler) assembleFunding(s *forms.State, doc *document.Document) {
	doc.SelfFunding = sanitize.Number(s.Funding.SelfFunding)

	doc.Loans = make([]document.Loan, 0, s.Funding.Loans.Len())
	if s.Funding.HasLoans {
		for _, l := range s.Funding.Loans.Items {
			doc.Loans = append(doc.Loans, assembleLoan(l))
		}
	}

	doc.Shareholders = make([]document.Shareholder, 0, s.Funding.Shareholders.Len())
	if s.Funding.HasShareholders {
		for _, sh := range s.Funding.Shareholders.Items {
			doc.Shareholders = append(doc.Shareholders, document.Shareholder{
				Name:    sh.Name,
				Amount:  sanitize.Number(sh.Amount),
				Percent: sanitize.Number(sh.Percent),
				Notes:   sh.Notes,
			})
		}
	}

	if s.Rates.Enabled {
		doc.GlobalInterestRates = &document.GlobalInterestRates{
			ShortTerm:   sanitize.Number(s.Rates.ShortTerm),
			LongTerm:    sanitize.Number(s.Rates.LongTerm),
			Investment:  sanitize.Number(s.Rates.Investment),
			UseForLoans: s.Rates.UseForLoans,
		}
	}
}

// assembleLoan emits the fixed loan shape: core fields always sanitized,
// conditional fields populated only when the resolved schema marks them
// active, zero otherwise.
func assembleLoan(l forms.Loan) document.Loan {
	typ := loanschema.Normalize(loanschema.Type(l.LoanType))
	sub := loanschema.SubType(l.SubType)
	royalty := loanschema.RoyaltyType(l.RoyaltyType)
	active := loanschema.Resolve(typ, sub, royalty)

	out := document.Loan{
		Amount:    sanitize.Number(l.Amount),
		Rate:      sanitize.Number(l.Rate),
		Years:     sanitize.Number(l.Years),
		StartDate: l.StartDate,
		LoanType:  typ,
		SubType:   sub,
	}
	if active.Has(loanschema.FieldRevolvingLimit) {
		out.RevolvingLimit = sanitize.Number(l.RevolvingLimit)
	}
	if active.Has(loanschema.FieldUtilizationRate) {
		out.UtilizationRate = sanitize.Number(l.UtilizationRate)
	}
	if active.Has(loanschema.FieldCollateralType) {
		out.CollateralType = l.CollateralType
	}
	if active.Has(loanschema.FieldGuaranteeAmount) {
		out.GuaranteeAmount = sanitize.Number(l.GuaranteeAmount)
	}
	if active.Has(loanschema.FieldTradeDocumentType) {
		out.TradeDocumentType = l.TradeDocumentType
	}
	if active.Has(loanschema.FieldTenor) {
		out.Tenor = sanitize.Number(l.Tenor)
	}
	if active.Has(loanschema.FieldEquityStake) {
		out.EquityStake = sanitize.Number(l.EquityStake)
	}
	if active.Has(loanschema.FieldRoyaltyType) {
		out.RoyaltyType = loanschema.NormalizeRoyalty(royalty)
	}
	if active.Has(loanschema.FieldRoyaltyPercentage) {
		out.RoyaltyPercentage = sanitize.Number(l.RoyaltyPercentage)
	}
	if active.Has(loanschema.FieldFixedRoyaltyAmount) {
		out.FixedRoyaltyAmount = sanitize.Number(l.FixedRoyaltyAmount)
	}
	return out
}

func (a *Assembler) assembleInvestments(s *forms.State, doc *document.Document) {
	doc.Investments = make([]document.Investment, 0, s.Investments.Len())
	for _, inv := range s.Investments.Items {
		out := document.Investment{
			Name:           inv.Name,
			Amount:         sanitize.Number(inv.Amount),
			Date:           inv.Date,
			ExpectedReturn: sanitize.Number(inv.ExpectedReturn),
			MaturityValue:  sanitize.Number(inv.MaturityValue),
			MaturityType:   inv.MaturityType,
			Income:         inv.Income,
		}
		if inv.Income {
			out.IncomeAmount = sanitize.Number(inv.IncomeAmount)
		}
		doc.Investments = append(doc.Investments, out)
	}
}

func (a *Assembler) assembleDistributions(s *forms.State, doc *document.Document) {
	doc.Dividends = make([]document.DividendPeriod, 0, len(s.Dividends.Periods))
	if s.Dividends.Enabled {
		for _, p := range s.Dividends.Periods {
			doc.Dividends = append(doc.Dividends, document.DividendPeriod{
				Year:          p.Label,
				PayoutPercent: sanitize.Number(p.Payout),
			})
		}
	}

	doc.Other = make([]document.OtherItem, 0, s.Other.Items.Len())
	if s.Other.Enabled {
		for _, o := range s.Other.Items.Items {
			doc.Other = append(doc.Other, document.OtherItem{
				Name:     o.Name,
				Amount:   sanitize.Number(o.Amount),
				Notes:    o.Notes,
				IsIncome: o.IsIncome,
			})
		}
	}

	if s.OwnerSalary.Enabled {
		doc.OwnerSalary = &document.OwnerSalary{
			Amount:    sanitize.Number(s.OwnerSalary.Amount),
			Frequency: s.OwnerSalary.Frequency,
		}
	}
}

func (a *Assembler) assembleWorkingCapital(s *forms.State, doc *document.Document) {
	if s.CreditSales.Enabled {
		doc.CreditSales = &document.CreditSales{
			Percent:        sanitize.Number(s.CreditSales.Percent),
			CollectionDays: sanitize.Number(s.CreditSales.CollectionDays),
		}
	}
	if s.Payables.Enabled {
		doc.AccountsPayable = &document.AccountsPayable{
			Days: sanitize.Number(s.Payables.Days),
		}
	}
}

func (a *Assembler) assembleValuation(s *forms.State, doc *document.Document) {
	v := s.Valuation
	if v.UseWaccBuildUp {
		in := wacc.Inputs{
			RiskFreeRate:      sanitize.Number(v.RiskFreeRate),
			Beta:              sanitize.Number(v.Beta),
			MarketRiskPremium: sanitize.Number(v.MarketRiskPremium),
			PreTaxCostOfDebt:  sanitize.Number(v.PreTaxCostOfDebt),
			TaxRate:           sanitize.Number(v.TaxRate),
			EquityPercent:     sanitize.Number(v.EquityPercent),
			DebtPercent:       sanitize.Number(v.DebtPercent),
		}
		doc.DiscountRate = in.DiscountRate(v.CostOfEquityOnly)
		doc.WaccComponents = &document.WaccComponents{
			RiskFreeRate:       in.RiskFreeRate,
			Beta:               in.Beta,
			MarketRiskPremium:  in.MarketRiskPremium,
			PreTaxCostOfDebt:   in.PreTaxCostOfDebt,
			TaxRate:            in.TaxRate,
			EquityPercent:      in.EquityPercent,
			DebtPercent:        in.DebtPercent,
			CostOfEquity:       in.CostOfEquity(),
			AfterTaxCostOfDebt: in.AfterTaxCostOfDebt(),
			Wacc:               in.WACC(),
		}
	} else {
		doc.DiscountRate = sanitize.Number(v.DiscountRate)
	}

	doc.TerminalGrowth = sanitize.Number(v.TerminalGrowth)
	doc.TvMethod = v.TvMethod
	doc.TvMetric = v.TvMetric
	doc.TvMultiple = sanitize.Number(v.TvMultiple)
	doc.TvCustomValue = sanitize.Number(v.TvCustomValue)
	doc.TvYear = sanitize.Number(v.TvYear)

	// The terminal year cannot exceed the forecast horizon.
	if horizon := horizonYears(s); horizon > 0 && doc.TvYear > float64(horizon) {
		a.logger.Debug("clamping terminal year to forecast horizon",
			zap.String("op", "assemble.assembleValuation"),
			zap.Float64("tvYear", doc.TvYear),
			zap.Int("horizonYears", horizon),
		)
		doc.TvYear = float64(horizon)
	}
}

func horizonYears(s *forms.State) int {
	d := document.Document{Forecast: document.Forecast{
		Period: sanitize.Int(s.Forecast.Period),
		Type:   s.Forecast.Type,
	}}
	return d.HorizonYears()
}
