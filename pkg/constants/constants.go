// Package constants provides shared constants for the assumptions pipeline.
package constants

// DateLayout is the format expected for loan start dates, investment dates,
// and capital item purchase dates.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Form defaults. These are the values a freshly created form carries before
// the user touches anything.
const (
	DefaultTaxRate          = "25"
	DefaultDiscountRate     = "10"
	DefaultTerminalGrowth   = "2"
	DefaultRiskFreeRate     = "4"
	DefaultBeta             = "1.0"
	DefaultMarketPremium    = "6"
	DefaultCostOfDebt       = "6"
	DefaultEquityPercent    = "60"
	DefaultDebtPercent      = "40"
	DefaultForecastPeriod   = "12"
	DefaultForecastType     = "months"
	DefaultTerminalMethod   = "perpetuity"
	DefaultFiscalYearStart  = "January"
	DefaultShortTermRate    = "5"
	DefaultLongTermRate     = "6"
	DefaultInvestmentRate   = "4"
	DefaultTerminalMetric   = "EBITDA"
	DefaultTerminalMultiple = "8"
	DefaultTerminalYear     = "5"
)

// Year-series limits per section.
const (
	// MinRevenueYears is the floor for the revenue section year count
	MinRevenueYears = 1

	// MinExpenseYears is the floor for the expense section year count
	MinExpenseYears = 1

	// MinCapitalYears is the floor for the capital-expenditure section year count
	MinCapitalYears = 2

	// MaxCapitalYears is the cap for the capital-expenditure section year count
	MaxCapitalYears = 10

	// DefaultYearCount is the initial year count for every section
	DefaultYearCount = 3
)

// DefaultDividendPeriods is the number of dividend periods a fresh dividend
// policy starts with ("Year 1", "Year 2", "Year 3+").
const DefaultDividendPeriods = 3

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for
	// form-state payloads (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Configuration file constants
const (
	// DefaultConfigFile is the default form-state file name
	DefaultConfigFile = "assumptions.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Output format constants
const (
	// OutputFormatJSON emits the assembled document as JSON
	OutputFormatJSON = "json"

	// OutputFormatYAML emits the assembled document as YAML
	OutputFormatYAML = "yaml"
)
