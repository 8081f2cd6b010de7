// Package document defines the Assumptions Document, the canonical,
// fully-sanitized record produced by the assembly pipeline and consumed by
// the external forecasting engine.
//
// The document is JSON-serializable and carries a fixed shape: conditionally
// meaningful fields (loan extras, depreciation details) are always present
// and sanitize to their zero values when inactive. The same shape is accepted
// back as an optional prefill, so every field must tolerate total absence.
package document

import (
	"time"

	"github.com/fincast/assumptions/pkg/depreciation"
	"github.com/fincast/assumptions/pkg/loanschema"
	"github.com/fincast/assumptions/pkg/units"
)

// Product is a revenue line for a retail business.
type Product struct {
	Name         string    `json:"name" mapstructure:"name"`
	Price        float64   `json:"price" mapstructure:"price"`
	Units        float64   `json:"units" mapstructure:"units"`
	GrowthRate   float64   `json:"growthRate" mapstructure:"growthRate"`
	Cost         float64   `json:"cost" mapstructure:"cost"`
	UnitsPerYear []float64 `json:"unitsPerYear,omitempty" mapstructure:"unitsPerYear"`
}

// Service is a revenue line for a service business.
type Service struct {
	Name           string    `json:"name" mapstructure:"name"`
	Price          float64   `json:"price" mapstructure:"price"`
	Clients        float64   `json:"clients" mapstructure:"clients"`
	Growth         float64   `json:"growth" mapstructure:"growth"`
	Cost           float64   `json:"cost" mapstructure:"cost"`
	ClientsPerYear []float64 `json:"clientsPerYear,omitempty" mapstructure:"clientsPerYear"`
}

// Expense is a recurring cost line.
type Expense struct {
	Name           string    `json:"name" mapstructure:"name"`
	Amount         float64   `json:"amount" mapstructure:"amount"`
	GrowthRate     float64   `json:"growthRate" mapstructure:"growthRate"`
	Notes          string    `json:"notes,omitempty" mapstructure:"notes"`
	AmountsPerYear []float64 `json:"amountsPerYear,omitempty" mapstructure:"amountsPerYear"`
}

// CapitalItem is an equipment purchase or other capital expenditure.
// Depreciation-detail fields are populated only when the depreciation method
// requires them; the advanced planning fields replace the one-time cost with
// a rate plus a per-year additions sequence.
type CapitalItem struct {
	Name               string              `json:"name" mapstructure:"name"`
	AssetClass         string              `json:"assetClass,omitempty" mapstructure:"assetClass"`
	Notes              string              `json:"notes,omitempty" mapstructure:"notes"`
	DepreciationMethod depreciation.Method `json:"depreciationMethod" mapstructure:"depreciationMethod"`
	Cost               float64             `json:"cost" mapstructure:"cost"`
	UsefulLife         float64             `json:"usefulLife" mapstructure:"usefulLife"`
	PurchaseDate       string              `json:"purchaseDate,omitempty" mapstructure:"purchaseDate"`
	SalvageValue       float64             `json:"salvageValue" mapstructure:"salvageValue"`
	TotalUnits         float64             `json:"totalUnits" mapstructure:"totalUnits"`
	UnitsPerYear       []float64           `json:"unitsPerYear" mapstructure:"unitsPerYear"`
	Advanced           bool                `json:"advanced,omitempty" mapstructure:"advanced"`
	DepreciationRate   float64             `json:"depreciationRate,omitempty" mapstructure:"depreciationRate"`
	AdditionsPerYear   []float64           `json:"additionsPerYear,omitempty" mapstructure:"additionsPerYear"`
}

// Loan carries the fixed loan shape. Fields outside the active set for the
// loan's (type, subtype) pair are zero-valued, never omitted.
type Loan struct {
	Amount             float64                `json:"amount" mapstructure:"amount"`
	Rate               float64                `json:"rate" mapstructure:"rate"`
	Years              float64                `json:"years" mapstructure:"years"`
	StartDate          string                 `json:"startDate,omitempty" mapstructure:"startDate"`
	LoanType           loanschema.Type        `json:"loanType" mapstructure:"loanType"`
	SubType            loanschema.SubType     `json:"subType,omitempty" mapstructure:"subType"`
	RevolvingLimit     float64                `json:"revolvingLimit" mapstructure:"revolvingLimit"`
	UtilizationRate    float64                `json:"utilizationRate" mapstructure:"utilizationRate"`
	CollateralType     string                 `json:"collateralType" mapstructure:"collateralType"`
	GuaranteeAmount    float64                `json:"guaranteeAmount" mapstructure:"guaranteeAmount"`
	TradeDocumentType  string                 `json:"tradeDocumentType" mapstructure:"tradeDocumentType"`
	Tenor              float64                `json:"tenor" mapstructure:"tenor"`
	EquityStake        float64                `json:"equityStake" mapstructure:"equityStake"`
	RoyaltyType        loanschema.RoyaltyType `json:"royaltyType,omitempty" mapstructure:"royaltyType"`
	RoyaltyPercentage  float64                `json:"royaltyPercentage" mapstructure:"royaltyPercentage"`
	FixedRoyaltyAmount float64                `json:"fixedRoyaltyAmount" mapstructure:"fixedRoyaltyAmount"`
}

// Investment is a cash investment with an optional recurring income stream.
type Investment struct {
	Name           string  `json:"name" mapstructure:"name"`
	Amount         float64 `json:"amount" mapstructure:"amount"`
	Date           string  `json:"date,omitempty" mapstructure:"date"`
	ExpectedReturn float64 `json:"expectedReturn" mapstructure:"expectedReturn"`
	MaturityValue  float64 `json:"maturityValue" mapstructure:"maturityValue"`
	MaturityType   string  `json:"maturityType,omitempty" mapstructure:"maturityType"`
	Income         bool    `json:"income" mapstructure:"income"`
	IncomeAmount   float64 `json:"incomeAmount" mapstructure:"incomeAmount"`
}

// DividendPeriod is one payout period. Labels are sequential and exactly the
// last period carries the open-ended "+" suffix.
type DividendPeriod struct {
	Year          string  `json:"year" mapstructure:"year"`
	PayoutPercent float64 `json:"payoutPercent" mapstructure:"payoutPercent"`
}

// Shareholder is an additional equity holder.
type Shareholder struct {
	Name    string  `json:"name" mapstructure:"name"`
	Amount  float64 `json:"amount" mapstructure:"amount"`
	Percent float64 `json:"percent" mapstructure:"percent"`
	Notes   string  `json:"notes,omitempty" mapstructure:"notes"`
}

// OtherItem is any income or cost not covered by a dedicated section.
type OtherItem struct {
	Name     string  `json:"name" mapstructure:"name"`
	Amount   float64 `json:"amount" mapstructure:"amount"`
	Notes    string  `json:"notes,omitempty" mapstructure:"notes"`
	IsIncome bool    `json:"isIncome" mapstructure:"isIncome"`
}

// GlobalInterestRates are the default rates that may override per-loan rates.
type GlobalInterestRates struct {
	ShortTerm   float64 `json:"shortTerm" mapstructure:"shortTerm"`
	LongTerm    float64 `json:"longTerm" mapstructure:"longTerm"`
	Investment  float64 `json:"investment" mapstructure:"investment"`
	UseForLoans bool    `json:"useForLoans" mapstructure:"useForLoans"`
}

// CreditSales captures sales made on credit.
type CreditSales struct {
	Percent        float64 `json:"percent" mapstructure:"percent"`
	CollectionDays float64 `json:"collectionDays" mapstructure:"collectionDays"`
}

// AccountsPayable captures supplier payment terms.
type AccountsPayable struct {
	Days float64 `json:"days" mapstructure:"days"`
}

// OwnerSalary captures owner salary or drawings.
type OwnerSalary struct {
	Amount    float64 `json:"amount" mapstructure:"amount"`
	Frequency string  `json:"frequency" mapstructure:"frequency"`
}

// Forecast is the explicit forecast horizon.
type Forecast struct {
	Period int    `json:"period" mapstructure:"period"`
	Type   string `json:"type" mapstructure:"type"`
}

// WaccComponents records the capital-structure build-up when the form used
// it, alongside the three composed rates.
type WaccComponents struct {
	RiskFreeRate       float64 `json:"riskFreeRate" mapstructure:"riskFreeRate"`
	Beta               float64 `json:"beta" mapstructure:"beta"`
	MarketRiskPremium  float64 `json:"marketRiskPremium" mapstructure:"marketRiskPremium"`
	PreTaxCostOfDebt   float64 `json:"preTaxCostOfDebt" mapstructure:"preTaxCostOfDebt"`
	TaxRate            float64 `json:"taxRate" mapstructure:"taxRate"`
	EquityPercent      float64 `json:"equityPercent" mapstructure:"equityPercent"`
	DebtPercent        float64 `json:"debtPercent" mapstructure:"debtPercent"`
	CostOfEquity       float64 `json:"costOfEquity" mapstructure:"costOfEquity"`
	AfterTaxCostOfDebt float64 `json:"afterTaxCostOfDebt" mapstructure:"afterTaxCostOfDebt"`
	Wacc               float64 `json:"wacc" mapstructure:"wacc"`
}

// Document is the aggregate handed to the external forecasting engine, and
// the shape accepted back for prefill.
type Document struct {
	ID          string    `json:"id,omitempty" mapstructure:"id"`
	GeneratedAt time.Time `json:"currentDate" mapstructure:"currentDate"`

	FiscalYearStart string `json:"fiscalYearStart" mapstructure:"fiscalYearStart"`

	Products []Product `json:"products" mapstructure:"products"`
	Services []Service `json:"services" mapstructure:"services"`
	Expenses []Expense `json:"expenses" mapstructure:"expenses"`

	RevenueUnit units.Unit `json:"revenueInputType,omitempty" mapstructure:"revenueInputType"`
	ExpenseUnit units.Unit `json:"expenseInputType,omitempty" mapstructure:"expenseInputType"`

	Equipment   []CapitalItem `json:"equipment" mapstructure:"equipment"`
	Loans       []Loan        `json:"loans" mapstructure:"loans"`
	Investments []Investment  `json:"investments" mapstructure:"investments"`

	Dividends    []DividendPeriod `json:"dividends" mapstructure:"dividends"`
	Shareholders []Shareholder    `json:"shareholders" mapstructure:"shareholders"`
	Other        []OtherItem      `json:"other" mapstructure:"other"`

	GlobalInterestRates *GlobalInterestRates `json:"globalInterestRates,omitempty" mapstructure:"globalInterestRates"`
	CreditSales         *CreditSales         `json:"creditSales,omitempty" mapstructure:"creditSales"`
	AccountsPayable     *AccountsPayable     `json:"accountsPayable,omitempty" mapstructure:"accountsPayable"`
	OwnerSalary         *OwnerSalary         `json:"ownerSalary,omitempty" mapstructure:"ownerSalary"`

	TaxRate       *float64 `json:"taxRate" mapstructure:"taxRate"`
	SelfFunding   float64  `json:"selfFunding" mapstructure:"selfFunding"`
	InventoryDays float64  `json:"inventoryDays" mapstructure:"inventoryDays"`

	Forecast Forecast `json:"forecast" mapstructure:"forecast"`

	DiscountRate    float64         `json:"discountRate" mapstructure:"discountRate"`
	TerminalGrowth  float64         `json:"terminalGrowth" mapstructure:"terminalGrowth"`
	TvMethod        string          `json:"tvMethod" mapstructure:"tvMethod"`
	TvMetric        string          `json:"tvMetric" mapstructure:"tvMetric"`
	TvMultiple      float64         `json:"tvMultiple" mapstructure:"tvMultiple"`
	TvCustomValue   float64         `json:"tvCustomValue" mapstructure:"tvCustomValue"`
	TvYear          float64         `json:"tvYear" mapstructure:"tvYear"`
	WaccComponents  *WaccComponents `json:"waccComponents,omitempty" mapstructure:"waccComponents"`
}

// HorizonYears converts the forecast horizon to whole years, rounding any
// partial year up. A months horizon of 12 is one year; 13 months is two.
func (d *Document) HorizonYears() int {
	if d.Forecast.Period <= 0 {
		return 0
	}
	if d.Forecast.Type == "months" {
		years := d.Forecast.Period / 12
		if d.Forecast.Period%12 != 0 {
			years++
		}
		return years
	}
	return d.Forecast.Period
}
