package domain

// ScenarioRequest is the raw scenario as posted by a form client. Absent
// fields fall back to the program defaults. A present fees.transfer is an
// explicit override of the derived transfer tax.
type ScenarioRequest struct {
	Program              string              `json:"program"`
	LoanPurpose          string              `json:"loanPurpose,omitempty"`
	PurchasePrice        Number              `json:"purchasePrice"`
	DownPaymentPct       Number              `json:"downPaymentPct"`
	RatePct              Number              `json:"ratePct"`
	TermMonths           Number              `json:"termMonths"`
	Fico                 Number              `json:"fico"`
	PropertyTaxRatePct   Number              `json:"propertyTaxRatePct"`
	HomeInsuranceRatePct Number              `json:"homeInsuranceRatePct"`
	HoaMonthly           Number              `json:"hoaMonthly"`
	PerDiemInterestDays  Number              `json:"perDiemInterestDays"`
	EscrowMonths         EscrowMonthsRequest `json:"escrowMonths"`
	Fees                 FeesRequest         `json:"fees"`
	FinanceUpfrontFee    *bool               `json:"financeUpfrontFee,omitempty"`
	VAFundingExempt      *bool               `json:"vaFundingExempt,omitempty"`
	VASubsequentUse      *bool               `json:"vaSubsequentUse,omitempty"`
	Zip                  string              `json:"zip,omitempty"`
	County               string              `json:"county,omitempty"`
}

type EscrowMonthsRequest struct {
	Taxes     Number `json:"taxes"`
	Insurance Number `json:"insurance"`
	Hoa       Number `json:"hoa"`
}

type FeesRequest struct {
	Lender          Number `json:"lender"`
	Broker          Number `json:"broker"`
	CreditReport    Number `json:"creditReport"`
	Flood           Number `json:"flood"`
	Appraisal       Number `json:"appraisal"`
	Title           Number `json:"title"`
	Escrow          Number `json:"escrow"`
	Recording       Number `json:"recording"`
	Transfer        Number `json:"transfer"`
	TransferRatePct Number `json:"transferRatePct"`
}

// ScenarioInput is the canonical, fully resolved scenario the engine
// computes on. It is passed by value.
type ScenarioInput struct {
	Program              Program      `json:"program"`
	LoanPurpose          LoanPurpose  `json:"loanPurpose"`
	PurchasePrice        float64      `json:"purchasePrice"`
	DownPaymentPct       float64      `json:"downPaymentPct"`
	RatePct              float64      `json:"ratePct"`
	TermMonths           int          `json:"termMonths"`
	Fico                 int          `json:"fico"`
	PropertyTaxRatePct   float64      `json:"propertyTaxRatePct"`
	HomeInsuranceRatePct float64      `json:"homeInsuranceRatePct"`
	HoaMonthly           float64      `json:"hoaMonthly"`
	PerDiemInterestDays  int          `json:"perDiemInterestDays"`
	EscrowMonths         EscrowMonths `json:"escrowMonths"`
	Fees                 Fees         `json:"fees"`
	TransferOverridden   bool         `json:"transferOverridden"`
	FinanceUpfrontFee    bool         `json:"financeUpfrontFee"`
	VAFundingExempt      bool         `json:"vaFundingExempt"`
	VASubsequentUse      bool         `json:"vaSubsequentUse"`
	Zip                  string       `json:"zip,omitempty"`
	County               string       `json:"county,omitempty"`
}

// LTVPct is the loan-to-value ratio implied by the down payment.
func (in ScenarioInput) LTVPct() float64 {
	return 100 - in.DownPaymentPct
}

type EscrowMonths struct {
	Taxes     int `json:"taxes"`
	Insurance int `json:"insurance"`
	Hoa       int `json:"hoa"`
}

type Fees struct {
	Lender          float64 `json:"lender"`
	Broker          float64 `json:"broker"`
	CreditReport    float64 `json:"creditReport"`
	Flood           float64 `json:"flood"`
	Appraisal       float64 `json:"appraisal"`
	Title           float64 `json:"title"`
	Escrow          float64 `json:"escrow"`
	Recording       float64 `json:"recording"`
	Transfer        float64 `json:"transfer"`
	TransferRatePct float64 `json:"transferRatePct"`
}

// Request converts a canonical input back into the raw form the engine
// accepts. Transfer is carried only when the caller overrode it, so the
// engine keeps deriving it from the price otherwise.
func (in ScenarioInput) Request() ScenarioRequest {
	financed := in.FinanceUpfrontFee
	exempt := in.VAFundingExempt
	subsequent := in.VASubsequentUse

	req := ScenarioRequest{
		Program:              string(in.Program),
		LoanPurpose:          string(in.LoanPurpose),
		PurchasePrice:        Num(in.PurchasePrice),
		DownPaymentPct:       Num(in.DownPaymentPct),
		RatePct:              Num(in.RatePct),
		TermMonths:           Num(float64(in.TermMonths)),
		Fico:                 Num(float64(in.Fico)),
		PropertyTaxRatePct:   Num(in.PropertyTaxRatePct),
		HomeInsuranceRatePct: Num(in.HomeInsuranceRatePct),
		HoaMonthly:           Num(in.HoaMonthly),
		PerDiemInterestDays:  Num(float64(in.PerDiemInterestDays)),
		EscrowMonths: EscrowMonthsRequest{
			Taxes:     Num(float64(in.EscrowMonths.Taxes)),
			Insurance: Num(float64(in.EscrowMonths.Insurance)),
			Hoa:       Num(float64(in.EscrowMonths.Hoa)),
		},
		Fees: FeesRequest{
			Lender:          Num(in.Fees.Lender),
			Broker:          Num(in.Fees.Broker),
			CreditReport:    Num(in.Fees.CreditReport),
			Flood:           Num(in.Fees.Flood),
			Appraisal:       Num(in.Fees.Appraisal),
			Title:           Num(in.Fees.Title),
			Escrow:          Num(in.Fees.Escrow),
			Recording:       Num(in.Fees.Recording),
			TransferRatePct: Num(in.Fees.TransferRatePct),
		},
		FinanceUpfrontFee: &financed,
		VAFundingExempt:   &exempt,
		VASubsequentUse:   &subsequent,
		Zip:               in.Zip,
		County:            in.County,
	}
	if in.TransferOverridden {
		req.Fees.Transfer = Num(in.Fees.Transfer)
	}
	return req
}
