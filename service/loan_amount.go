package service

import (
	"github.com/shopspring/decimal"

	"quickgfe/domain"
)

// LoanAmount is the resolved loan for a scenario. UpfrontFee is split into
// the part rolled into the loan and the part due in cash at closing.
type LoanAmount struct {
	BaseLoan           decimal.Decimal
	DownPayment        decimal.Decimal
	UpfrontFee         decimal.Decimal
	FinancedUpfrontFee decimal.Decimal
	UpfrontFeeDue      decimal.Decimal
	TotalLoan          decimal.Decimal
}

// BaseLoan is the price less the down payment, in whole currency units.
func BaseLoan(in domain.ScenarioInput) decimal.Decimal {
	financed := decimal.NewFromInt(1).Sub(pct(in.DownPaymentPct))
	return wholeUnits(dec(in.PurchasePrice).Mul(financed))
}

// ResolveLoanAmount applies the program's upfront fee to the base loan.
// Exempt VA borrowers reach here with a zero fee.
func ResolveLoanAmount(in domain.ScenarioInput, baseLoan, upfrontFee decimal.Decimal) LoanAmount {
	la := LoanAmount{
		BaseLoan:           baseLoan,
		DownPayment:        dec(in.PurchasePrice).Sub(baseLoan),
		UpfrontFee:         upfrontFee,
		FinancedUpfrontFee: decimal.Zero,
		UpfrontFeeDue:      decimal.Zero,
		TotalLoan:          baseLoan,
	}
	if in.FinanceUpfrontFee {
		la.FinancedUpfrontFee = upfrontFee
		la.TotalLoan = baseLoan.Add(upfrontFee)
	} else {
		la.UpfrontFeeDue = upfrontFee
	}
	return la
}
