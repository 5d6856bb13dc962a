package service

import (
	"fmt"

	"quickgfe/domain"
)

// ComputeQuote validates a raw scenario against the defaults table and
// assembles its quote. It fails only with a *domain.ValidationError or a
// *domain.ConfigurationGapError.
func ComputeQuote(req domain.ScenarioRequest, defaults *Defaults) (domain.QuoteOutput, error) {
	in, pd, err := Resolve(req, defaults)
	if err != nil {
		return domain.QuoteOutput{}, err
	}
	return Compute(in, pd)
}

// Resolve checks the program tag, looks up its defaults and normalizes the
// scenario.
func Resolve(req domain.ScenarioRequest, defaults *Defaults) (domain.ScenarioInput, ProgramDefaults, error) {
	if req.Program == "" {
		errs := &domain.ValidationError{}
		errs.Add("program", "is required")
		return domain.ScenarioInput{}, ProgramDefaults{}, errs
	}
	program, err := domain.ParseProgram(req.Program)
	if err != nil {
		errs := &domain.ValidationError{}
		errs.Add("program", "must be one of %q, %q or %q", domain.ProgramConventional, domain.ProgramFHA, domain.ProgramVA)
		return domain.ScenarioInput{}, ProgramDefaults{}, errs
	}

	pd, err := defaults.For(program)
	if err != nil {
		return domain.ScenarioInput{}, ProgramDefaults{}, err
	}

	in, err := Normalize(req, pd)
	if err != nil {
		return domain.ScenarioInput{}, ProgramDefaults{}, err
	}
	return in, pd, nil
}

// Compute assembles the quote of a canonical scenario. The same input always
// yields the same quote.
func Compute(in domain.ScenarioInput, pd ProgramDefaults) (domain.QuoteOutput, error) {
	strategy, err := ChargesFor(in.Program)
	if err != nil {
		return domain.QuoteOutput{}, err
	}

	baseLoan := BaseLoan(in)
	charges, err := strategy.Compute(in, pd, baseLoan)
	if err != nil {
		return domain.QuoteOutput{}, fmt.Errorf("program charges: %w", err)
	}

	loan := ResolveLoanAmount(in, baseLoan, charges.UpfrontFee)
	closing := AggregateClosing(ComposeFees(in, baseLoan), loan.UpfrontFeeDue)

	return domain.QuoteOutput{
		Program: domain.ProgramInfo{Key: in.Program, Label: pd.Label},
		Loan: domain.LoanAmounts{
			BaseLoan:           amount(loan.BaseLoan),
			DownPayment:        amount(loan.DownPayment),
			FinancedUpfrontFee: amount(loan.FinancedUpfrontFee),
			TotalLoan:          amount(loan.TotalLoan),
			LTVPct:             amount(hundred.Sub(dec(in.DownPaymentPct))),
		},
		Closing:     closing,
		Monthly:     ComputeMonthly(in, loan.TotalLoan, charges.MonthlyMI),
		CashToClose: CashToClose(closing),
	}, nil
}
