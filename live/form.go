package live

import (
	"fmt"
	"sync"

	"quickgfe/domain"
	"quickgfe/service"
)

// Field paths a Form accepts. They match the JSON field names of a scenario.
const (
	FieldPurchasePrice        = "purchasePrice"
	FieldDownPaymentPct       = "downPaymentPct"
	FieldRatePct              = "ratePct"
	FieldTermMonths           = "termMonths"
	FieldFico                 = "fico"
	FieldPropertyTaxRatePct   = "propertyTaxRatePct"
	FieldHomeInsuranceRatePct = "homeInsuranceRatePct"
	FieldHoaMonthly           = "hoaMonthly"
	FieldPerDiemInterestDays  = "perDiemInterestDays"
	FieldEscrowTaxes          = "escrowMonths.taxes"
	FieldEscrowInsurance      = "escrowMonths.insurance"
	FieldEscrowHoa            = "escrowMonths.hoa"
	FieldLenderFee            = "fees.lender"
	FieldBrokerFee            = "fees.broker"
	FieldCreditReportFee      = "fees.creditReport"
	FieldFloodFee             = "fees.flood"
	FieldAppraisalFee         = "fees.appraisal"
	FieldTitleFee             = "fees.title"
	FieldEscrowFee            = "fees.escrow"
	FieldRecordingFee         = "fees.recording"
	FieldTransfer             = "fees.transfer"
	FieldTransferRatePct      = "fees.transferRatePct"
	FieldFinanceUpfrontFee    = "financeUpfrontFee"
	FieldVAFundingExempt      = "vaFundingExempt"
	FieldVASubsequentUse      = "vaSubsequentUse"
	FieldLoanPurpose          = "loanPurpose"
	FieldZip                  = "zip"
	FieldCounty               = "county"
)

// Form holds the scenario a borrower is editing and which fields they have
// touched. An untouched transfer tax keeps following the purchase price.
type Form struct {
	defaults *service.Defaults

	mu     sync.Mutex
	values domain.ScenarioInput
	dirty  map[string]bool
}

// NewForm starts a form from the program's prefilled scenario.
func NewForm(defaults *service.Defaults, program domain.Program) (*Form, error) {
	f := &Form{defaults: defaults}
	if err := f.Reset(program); err != nil {
		return nil, err
	}
	return f, nil
}

// Reset restores the program defaults and clears every dirty flag.
func (f *Form) Reset(program domain.Program) error {
	in, err := service.DefaultScenario(f.defaults, program)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = in
	f.dirty = make(map[string]bool)
	return nil
}

// SetNumber edits a numeric field and marks it dirty. Validation is left to
// the engine, so out-of-range values are accepted here.
func (f *Form) SetNumber(path string, v float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	in := &f.values
	switch path {
	case FieldPurchasePrice:
		in.PurchasePrice = v
	case FieldDownPaymentPct:
		in.DownPaymentPct = v
	case FieldRatePct:
		in.RatePct = v
	case FieldTermMonths:
		in.TermMonths = int(v)
	case FieldFico:
		in.Fico = int(v)
	case FieldPropertyTaxRatePct:
		in.PropertyTaxRatePct = v
	case FieldHomeInsuranceRatePct:
		in.HomeInsuranceRatePct = v
	case FieldHoaMonthly:
		in.HoaMonthly = v
	case FieldPerDiemInterestDays:
		in.PerDiemInterestDays = int(v)
	case FieldEscrowTaxes:
		in.EscrowMonths.Taxes = int(v)
	case FieldEscrowInsurance:
		in.EscrowMonths.Insurance = int(v)
	case FieldEscrowHoa:
		in.EscrowMonths.Hoa = int(v)
	case FieldLenderFee:
		in.Fees.Lender = v
	case FieldBrokerFee:
		in.Fees.Broker = v
	case FieldCreditReportFee:
		in.Fees.CreditReport = v
	case FieldFloodFee:
		in.Fees.Flood = v
	case FieldAppraisalFee:
		in.Fees.Appraisal = v
	case FieldTitleFee:
		in.Fees.Title = v
	case FieldEscrowFee:
		in.Fees.Escrow = v
	case FieldRecordingFee:
		in.Fees.Recording = v
	case FieldTransfer:
		in.Fees.Transfer = v
	case FieldTransferRatePct:
		in.Fees.TransferRatePct = v
	default:
		return fmt.Errorf("unknown numeric field %q", path)
	}

	f.dirty[path] = true
	f.syncDerivedLocked()
	return nil
}

func (f *Form) SetBool(path string, v bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch path {
	case FieldFinanceUpfrontFee:
		f.values.FinanceUpfrontFee = v
	case FieldVAFundingExempt:
		f.values.VAFundingExempt = v
	case FieldVASubsequentUse:
		f.values.VASubsequentUse = v
	default:
		return fmt.Errorf("unknown flag %q", path)
	}
	f.dirty[path] = true
	return nil
}

func (f *Form) SetText(path, v string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch path {
	case FieldLoanPurpose:
		f.values.LoanPurpose = domain.LoanPurpose(v)
	case FieldZip:
		f.values.Zip = v
	case FieldCounty:
		f.values.County = v
	default:
		return fmt.Errorf("unknown text field %q", path)
	}
	f.dirty[path] = true
	return nil
}

// syncDerivedLocked re-derives the transfer tax unless the borrower edited it.
func (f *Form) syncDerivedLocked() {
	f.values.TransferOverridden = f.dirty[FieldTransfer]
	if !f.values.TransferOverridden {
		f.values.Fees.Transfer = service.TransferTax(f.values.PurchasePrice, f.values.Fees.TransferRatePct)
	}
}

func (f *Form) IsDirty(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty[path]
}

// Values returns the scenario as currently shown.
func (f *Form) Values() domain.ScenarioInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Request builds the engine request. An untouched transfer tax is left out
// so the engine derives it from the current price.
func (f *Form) Request() domain.ScenarioRequest {
	return f.Values().Request()
}
