package service

import (
	"math"

	"github.com/shopspring/decimal"

	"quickgfe/domain"
)

// PrincipalAndInterest is the level monthly payment of a fully amortizing
// loan, rounded to cents.
func PrincipalAndInterest(loan decimal.Decimal, ratePct float64, termMonths int) decimal.Decimal {
	if loan.IsZero() || termMonths <= 0 {
		return decimal.Zero
	}
	if ratePct == 0 {
		return cents(loan.Div(decimal.NewFromInt(int64(termMonths))))
	}

	monthlyRate := ratePct / 100 / monthsPerYear
	n := float64(termMonths)
	factor := monthlyRate / (1 - math.Pow(1+monthlyRate, -n))

	return cents(loan.Mul(decimal.NewFromFloat(factor)))
}

// ComputeMonthly builds the monthly payment. P&I amortizes the total loan,
// financed upfront fee included. The total is the sum of the rounded parts.
func ComputeMonthly(in domain.ScenarioInput, totalLoan, monthlyMI decimal.Decimal) domain.MonthlyPayment {
	price := dec(in.PurchasePrice)

	pi := PrincipalAndInterest(totalLoan, in.RatePct, in.TermMonths)
	insurance := cents(price.Mul(pct(in.HomeInsuranceRatePct)).Div(twelve))
	tax := cents(price.Mul(pct(in.PropertyTaxRatePct)).Div(twelve))
	mi := cents(monthlyMI)
	hoa := cents(dec(in.HoaMonthly))

	return domain.MonthlyPayment{
		PrincipalAndInterest: amount(pi),
		HomeownersInsurance:  amount(insurance),
		PropertyTax:          amount(tax),
		MortgageInsurance:    amount(mi),
		Hoa:                  amount(hoa),
		TotalMonthlyPayment:  amount(pi.Add(insurance).Add(tax).Add(mi).Add(hoa)),
	}
}
