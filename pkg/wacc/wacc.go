// Package wacc composes a blended discount rate from capital-structure
// components. All rates are percentages expressed as plain numbers (5 means
// 5%), matching the input form. Every function is pure; callers recompute on
// each read rather than caching.
package wacc

import "github.com/fincast/assumptions/pkg/constants"

// Inputs holds the capital-structure parameters for the WACC build-up.
// EquityPercent and DebtPercent conventionally sum to 100 but this is not
// enforced.
type Inputs struct {
	RiskFreeRate      float64
	Beta              float64
	MarketRiskPremium float64
	PreTaxCostOfDebt  float64
	TaxRate           float64
	EquityPercent     float64
	DebtPercent       float64
}

// CostOfEquity computes the CAPM cost of equity:
// riskFreeRate + beta * marketRiskPremium.
func CostOfEquity(riskFreeRate, beta, marketRiskPremium float64) float64 {
	return riskFreeRate + beta*marketRiskPremium
}

// AfterTaxCostOfDebt applies the tax shield to a pre-tax cost of debt.
func AfterTaxCostOfDebt(preTaxCostOfDebt, taxRate float64) float64 {
	return preTaxCostOfDebt * (1 - taxRate/constants.PercentageMultiplier)
}

// CostOfEquity computes the CAPM cost of equity from the full input set.
func (in Inputs) CostOfEquity() float64 {
	return CostOfEquity(in.RiskFreeRate, in.Beta, in.MarketRiskPremium)
}

// AfterTaxCostOfDebt computes the tax-shielded cost of debt from the full
// input set.
func (in Inputs) AfterTaxCostOfDebt() float64 {
	return AfterTaxCostOfDebt(in.PreTaxCostOfDebt, in.TaxRate)
}

// WACC weights cost of equity and after-tax cost of debt by the declared
// capital-structure percentages.
func (in Inputs) WACC() float64 {
	ke := in.CostOfEquity()
	kd := in.AfterTaxCostOfDebt()
	e := in.EquityPercent / constants.PercentageMultiplier
	d := in.DebtPercent / constants.PercentageMultiplier
	return e*ke + d*kd
}

// DiscountRate returns the rate submitted downstream. When the
// cost-of-equity-only switch is active the unlevered rate bypasses WACC
// entirely rather than blending.
func (in Inputs) DiscountRate(costOfEquityOnly bool) float64 {
	if costOfEquityOnly {
		return in.CostOfEquity()
	}
	return in.WACC()
}
