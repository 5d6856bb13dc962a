package service

import (
	"math"

	"quickgfe/domain"
)

// fieldReader resolves raw form fields against defaults, recording every
// rejected field instead of stopping at the first one.
type fieldReader struct {
	errs *domain.ValidationError
}

// float returns the supplied value or the fallback when absent. ok is false
// when the field was supplied but is not a number.
func (r fieldReader) float(field string, n domain.Number, fallback float64) (float64, bool) {
	if !n.IsSet() {
		return fallback, true
	}
	v, ok := n.Float()
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		r.errs.Add(field, "must be a number, got %q", n.Raw())
		return 0, false
	}
	return v, true
}

func (r fieldReader) between(field string, n domain.Number, fallback, lo, hi float64) float64 {
	v, ok := r.float(field, n, fallback)
	if ok && (v < lo || v > hi) {
		r.errs.Add(field, "must be between %g and %g", lo, hi)
	}
	return v
}

func (r fieldReader) nonNegative(field string, n domain.Number, fallback float64) float64 {
	v, ok := r.float(field, n, fallback)
	if ok && v < 0 {
		r.errs.Add(field, "must not be negative")
	}
	return v
}

// count reads a whole number in [0, limit]. Out-of-range values are reported
// and never converted, so they cannot wrap.
func (r fieldReader) count(field string, n domain.Number, fallback, limit int) int {
	v, ok := r.float(field, n, float64(fallback))
	if !ok {
		return 0
	}
	switch {
	case v != math.Trunc(v):
		r.errs.Add(field, "must be a whole number")
	case v < 0:
		r.errs.Add(field, "must not be negative")
	case v > float64(limit):
		r.errs.Add(field, "must not exceed %d", limit)
	default:
		return int(v)
	}
	return 0
}

// Normalize validates a raw scenario and resolves every absent field from the
// program defaults. The returned error is a *domain.ValidationError listing
// all offending fields.
func Normalize(req domain.ScenarioRequest, d ProgramDefaults) (domain.ScenarioInput, error) {
	errs := &domain.ValidationError{}
	r := fieldReader{errs: errs}

	in := domain.ScenarioInput{
		Program: d.Program,
		Zip:     req.Zip,
		County:  req.County,
	}

	if req.Program != string(d.Program) {
		errs.Add("program", "must be %q for these defaults", d.Program)
	}

	switch p := domain.LoanPurpose(req.LoanPurpose); p {
	case "":
		in.LoanPurpose = domain.LoanPurposePurchase
	case domain.LoanPurposePurchase, domain.LoanPurposeRefinance:
		in.LoanPurpose = p
	default:
		errs.Add("loanPurpose", "must be %q or %q", domain.LoanPurposePurchase, domain.LoanPurposeRefinance)
	}

	if !req.PurchasePrice.IsSet() {
		errs.Add("purchasePrice", "is required")
	} else if v, ok := r.float("purchasePrice", req.PurchasePrice, 0); ok {
		switch {
		case v <= 0:
			errs.Add("purchasePrice", "must be greater than 0")
		case v > MaxPurchasePrice:
			errs.Add("purchasePrice", "must not exceed %.0f", MaxPurchasePrice)
		}
		in.PurchasePrice = v
	}

	in.DownPaymentPct = r.between("downPaymentPct", req.DownPaymentPct, d.DownPaymentPct, 0, MaxPercent)

	if v, ok := r.float("ratePct", req.RatePct, d.RatePct); ok {
		switch {
		case v <= 0:
			errs.Add("ratePct", "must be greater than 0")
		case v > MaxRatePct:
			errs.Add("ratePct", "must not exceed %g", MaxRatePct)
		}
		in.RatePct = v
	}

	if v, ok := r.float("termMonths", req.TermMonths, float64(d.TermMonths)); ok {
		if v != math.Trunc(v) || v < MinTermMonths || v > MaxTermMonths {
			errs.Add("termMonths", "must be a whole number of months between %d and %d", MinTermMonths, MaxTermMonths)
		}
		in.TermMonths = int(v)
	}

	if v, ok := r.float("fico", req.Fico, DefaultFico); ok {
		in.Fico = clampFico(v)
	}

	in.PropertyTaxRatePct = r.between("propertyTaxRatePct", req.PropertyTaxRatePct, d.PropertyTaxRatePct, 0, MaxPercent)
	in.HomeInsuranceRatePct = r.between("homeInsuranceRatePct", req.HomeInsuranceRatePct, d.HomeInsuranceRatePct, 0, MaxPercent)
	in.HoaMonthly = r.nonNegative("hoaMonthly", req.HoaMonthly, d.HoaMonthly)
	in.PerDiemInterestDays = r.count("perDiemInterestDays", req.PerDiemInterestDays, d.PerDiemInterestDays, MaxPerDiemDays)

	in.EscrowMonths = domain.EscrowMonths{
		Taxes:     r.count("escrowMonths.taxes", req.EscrowMonths.Taxes, d.EscrowMonths.Taxes, MaxEscrowMonths),
		Insurance: r.count("escrowMonths.insurance", req.EscrowMonths.Insurance, d.EscrowMonths.Insurance, MaxEscrowMonths),
		Hoa:       r.count("escrowMonths.hoa", req.EscrowMonths.Hoa, d.EscrowMonths.Hoa, MaxEscrowMonths),
	}

	f := req.Fees
	in.Fees = domain.Fees{
		Lender:          r.nonNegative("fees.lender", f.Lender, d.Fees.Lender),
		Broker:          r.nonNegative("fees.broker", f.Broker, d.Fees.Broker),
		CreditReport:    r.nonNegative("fees.creditReport", f.CreditReport, d.Fees.CreditReport),
		Flood:           r.nonNegative("fees.flood", f.Flood, d.Fees.Flood),
		Appraisal:       r.nonNegative("fees.appraisal", f.Appraisal, d.Fees.Appraisal),
		Title:           r.nonNegative("fees.title", f.Title, d.Fees.Title),
		Escrow:          r.nonNegative("fees.escrow", f.Escrow, d.Fees.Escrow),
		Recording:       r.nonNegative("fees.recording", f.Recording, d.Fees.Recording),
		TransferRatePct: r.between("fees.transferRatePct", f.TransferRatePct, d.Fees.TransferRatePct, 0, MaxPercent),
	}

	// Transfer may be negative when it is a seller credit.
	if f.Transfer.IsSet() {
		if v, ok := r.float("fees.transfer", f.Transfer, 0); ok {
			in.Fees.Transfer = v
			in.TransferOverridden = true
		}
	} else {
		in.Fees.Transfer = TransferTax(in.PurchasePrice, in.Fees.TransferRatePct)
	}

	in.FinanceUpfrontFee = d.UpfrontFee != nil && d.UpfrontFee.FinancedByDefault
	if req.FinanceUpfrontFee != nil {
		in.FinanceUpfrontFee = *req.FinanceUpfrontFee
	}
	if d.Program == domain.ProgramVA {
		in.VAFundingExempt = req.VAFundingExempt != nil && *req.VAFundingExempt
		in.VASubsequentUse = req.VASubsequentUse != nil && *req.VASubsequentUse
	}

	if err := errs.Err(); err != nil {
		return domain.ScenarioInput{}, err
	}
	return in, nil
}

// clampFico clamps before converting so huge scores land on MaxFico.
func clampFico(v float64) int {
	v = math.Max(MinFico, math.Min(MaxFico, v))
	return int(math.Round(v))
}
