package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"quickgfe/domain"
)

// Charges are the program-specific costs of a loan: a one-time upfront fee
// and a monthly mortgage insurance premium.
type Charges struct {
	UpfrontFee decimal.Decimal
	MonthlyMI  decimal.Decimal
}

// ProgramCharges computes the upfront fee and monthly MI of one program.
type ProgramCharges interface {
	Compute(in domain.ScenarioInput, d ProgramDefaults, baseLoan decimal.Decimal) (Charges, error)
}

var programCharges = map[domain.Program]ProgramCharges{
	domain.ProgramConventional: conventionalCharges{},
	domain.ProgramFHA:          fhaCharges{},
	domain.ProgramVA:           vaCharges{},
}

// ChargesFor returns the charge strategy registered for a program.
func ChargesFor(program domain.Program) (ProgramCharges, error) {
	c, ok := programCharges[program]
	if !ok {
		return nil, &domain.ConfigurationGapError{Program: program, Detail: "no charge rules registered"}
	}
	return c, nil
}

func noCharges() Charges {
	return Charges{UpfrontFee: decimal.Zero, MonthlyMI: decimal.Zero}
}

// monthlyPremium spreads an annual rate on the loan over twelve months.
func monthlyPremium(baseLoan decimal.Decimal, annualPct float64) decimal.Decimal {
	return cents(baseLoan.Mul(pct(annualPct)).Div(twelve))
}

type conventionalCharges struct{}

// Compute charges private MI only above 80% LTV, at the table rate for the
// borrower's down payment and FICO bands.
func (conventionalCharges) Compute(in domain.ScenarioInput, d ProgramDefaults, baseLoan decimal.Decimal) (Charges, error) {
	ltv := hundred.Sub(dec(in.DownPaymentPct))
	if !ltv.GreaterThan(dec(ConventionalMIMaxLTVPct)) || baseLoan.IsZero() {
		return noCharges(), nil
	}

	for _, row := range d.MITable {
		if !row.contains(in.DownPaymentPct) {
			continue
		}
		for _, band := range row.ByFico {
			if band.contains(float64(in.Fico)) {
				return Charges{UpfrontFee: decimal.Zero, MonthlyMI: monthlyPremium(baseLoan, band.RatePct)}, nil
			}
		}
	}
	return Charges{}, &domain.ConfigurationGapError{
		Program: in.Program,
		Detail:  fmt.Sprintf("no MI rate for down payment %g%% and FICO %d", in.DownPaymentPct, in.Fico),
	}
}

type fhaCharges struct{}

// Compute charges UFMIP and annual MIP regardless of LTV.
func (fhaCharges) Compute(_ domain.ScenarioInput, d ProgramDefaults, baseLoan decimal.Decimal) (Charges, error) {
	c := noCharges()
	if d.UpfrontFee != nil {
		c.UpfrontFee = wholeUnits(baseLoan.Mul(pct(d.UpfrontFee.RatePct)))
	}
	c.MonthlyMI = monthlyPremium(baseLoan, d.AnnualMIPct)
	return c, nil
}

type vaCharges struct{}

// Compute charges the funding fee of the down payment tier. VA loans carry
// no monthly MI.
func (vaCharges) Compute(in domain.ScenarioInput, d ProgramDefaults, baseLoan decimal.Decimal) (Charges, error) {
	if in.VAFundingExempt || baseLoan.IsZero() {
		return noCharges(), nil
	}

	for _, tier := range d.FundingFeeTable {
		if !tier.contains(in.DownPaymentPct) {
			continue
		}
		rate := tier.FirstUsePct
		if in.VASubsequentUse {
			rate = tier.SubsequentUsePct
		}
		return Charges{UpfrontFee: wholeUnits(baseLoan.Mul(pct(rate))), MonthlyMI: decimal.Zero}, nil
	}
	return Charges{}, &domain.ConfigurationGapError{
		Program: in.Program,
		Detail:  fmt.Sprintf("no funding fee tier for down payment %g%%", in.DownPaymentPct),
	}
}
