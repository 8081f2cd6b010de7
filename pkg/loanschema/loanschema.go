// Package loanschema maps a loan's type and subtype tags to the set of
// extra fields that are semantically meaningful for it.
//
// The resolver is the single source of truth for which conditional loan
// fields survive into the assembled document. It is a pure lookup with no
// side effects, total over every declared tag combination; an unknown type
// tag resolves as a working-capital loan, the default assigned when a loan
// is created.
package loanschema

// Type tags the loan taxonomy.
type Type string

const (
	WorkingCapital    Type = "working_capital"
	SMELoan           Type = "sme_loan"
	TradeFinance      Type = "trade_finance"
	LetterOfGuarantee Type = "letter_of_guarantee"
	StartupLoan       Type = "startup_loan"
)

// SubType refines trade-finance and startup loans.
type SubType string

const (
	// Trade finance subtypes
	LetterOfCredit   SubType = "letter_of_credit"
	BillsDiscounting SubType = "bills_discounting"

	// Startup loan subtypes
	Equity  SubType = "equity"
	Royalty SubType = "royalty"
	Fixed   SubType = "fixed"
)

// RoyaltyType selects how a royalty-based startup loan is compensated.
type RoyaltyType string

const (
	RoyaltyPercentage RoyaltyType = "percentage"
	RoyaltyFixed      RoyaltyType = "fixed"
)

// Field identifies one conditional loan field.
type Field string

const (
	FieldRevolvingLimit     Field = "revolvingLimit"
	FieldUtilizationRate    Field = "utilizationRate"
	FieldCollateralType     Field = "collateralType"
	FieldGuaranteeAmount    Field = "guaranteeAmount"
	FieldTradeDocumentType  Field = "tradeDocumentType"
	FieldTenor              Field = "tenor"
	FieldEquityStake        Field = "equityStake"
	FieldRoyaltyType        Field = "royaltyType"
	FieldRoyaltyPercentage  Field = "royaltyPercentage"
	FieldFixedRoyaltyAmount Field = "fixedRoyaltyAmount"
)

// FieldSet is the collection of fields active for one tag combination.
type FieldSet map[Field]struct{}

// Has reports whether the field is active.
func (fs FieldSet) Has(f Field) bool {
	_, ok := fs[f]
	return ok
}

func fieldSet(fields ...Field) FieldSet {
	fs := make(FieldSet, len(fields))
	for _, f := range fields {
		fs[f] = struct{}{}
	}
	return fs
}

// Normalize maps an unknown or empty type tag to the creation-time default.
func Normalize(typ Type) Type {
	switch typ {
	case WorkingCapital, SMELoan, TradeFinance, LetterOfGuarantee, StartupLoan:
		return typ
	default:
		return WorkingCapital
	}
}

// NormalizeRoyalty maps an unknown royalty tag to the percentage default.
func NormalizeRoyalty(rt RoyaltyType) RoyaltyType {
	if rt == RoyaltyFixed {
		return RoyaltyFixed
	}
	return RoyaltyPercentage
}

// Resolve returns the set of extra fields that are semantically active for
// the given tag combination. Fields outside the returned set are retained in
// the fixed document shape but sanitize to their zero values.
func Resolve(typ Type, sub SubType, royalty RoyaltyType) FieldSet {
	switch Normalize(typ) {
	case SMELoan:
		return fieldSet(FieldCollateralType)
	case LetterOfGuarantee:
		return fieldSet(FieldGuaranteeAmount)
	case TradeFinance:
		// Both trade-finance subtypes carry the same instrument fields.
		return fieldSet(FieldTradeDocumentType, FieldTenor)
	case StartupLoan:
		switch sub {
		case Equity:
			return fieldSet(FieldEquityStake)
		case Royalty:
			if NormalizeRoyalty(royalty) == RoyaltyFixed {
				return fieldSet(FieldRoyaltyType, FieldFixedRoyaltyAmount)
			}
			return fieldSet(FieldRoyaltyType, FieldRoyaltyPercentage)
		case Fixed:
			return fieldSet(FieldFixedRoyaltyAmount)
		default:
			return fieldSet()
		}
	default:
		return fieldSet(FieldRevolvingLimit, FieldUtilizationRate)
	}
}
