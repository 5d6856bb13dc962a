package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"quickgfe/domain"
)

// Line item codes. The numeric ones follow the legacy disclosure lines.
const (
	CodeLender          = "801"
	CodeAppraisal       = "803"
	CodeBroker          = "810"
	CodeCreditReport    = "814"
	CodeFlood           = "819"
	CodeTitle           = "title"
	CodeEscrow          = "escrow"
	CodeRecording       = "recording"
	CodeTransfer        = "transfer"
	CodePrepaidInterest = "prepaidInterest"
	CodeHazardInsurance = "hazardInsurance"
	CodePropertyTax     = "propertyTax"
	CodeHoaReserves     = "hoaReserves"
)

// FeeBuckets are the itemized charges of a scenario, grouped the way the
// disclosure presents them.
type FeeBuckets struct {
	ItemsPayable   []domain.LineItem
	TitleAndEscrow []domain.LineItem
	Prepaids       []domain.LineItem
}

// TransferTax derives the transfer tax from the price.
func TransferTax(purchasePrice, transferRatePct float64) float64 {
	return amount(wholeUnits(dec(purchasePrice).Mul(pct(transferRatePct))))
}

func item(code, label string, v decimal.Decimal) domain.LineItem {
	return domain.LineItem{Code: code, Label: label, Amount: amount(wholeUnits(v))}
}

// ComposeFees builds the line items of every bucket. Prepaid interest
// accrues on the base loan.
func ComposeFees(in domain.ScenarioInput, baseLoan decimal.Decimal) FeeBuckets {
	transfer := in.Fees.Transfer
	if !in.TransferOverridden {
		transfer = TransferTax(in.PurchasePrice, in.Fees.TransferRatePct)
	}

	price := dec(in.PurchasePrice)
	dailyRate := pct(in.RatePct).Div(yearDays)
	monthlyInsurance := price.Mul(pct(in.HomeInsuranceRatePct)).Div(twelve)
	monthlyTax := price.Mul(pct(in.PropertyTaxRatePct)).Div(twelve)

	return FeeBuckets{
		ItemsPayable: []domain.LineItem{
			item(CodeLender, "Origination / lender fees", dec(in.Fees.Lender)),
			item(CodeBroker, "Broker / processing fees", dec(in.Fees.Broker)),
			item(CodeAppraisal, "Appraisal", dec(in.Fees.Appraisal)),
			item(CodeCreditReport, "Credit report", dec(in.Fees.CreditReport)),
			item(CodeFlood, "Flood certification", dec(in.Fees.Flood)),
		},
		TitleAndEscrow: []domain.LineItem{
			item(CodeTitle, "Title insurance", dec(in.Fees.Title)),
			item(CodeEscrow, "Escrow / settlement", dec(in.Fees.Escrow)),
			item(CodeRecording, "Recording", dec(in.Fees.Recording)),
			item(CodeTransfer, "Transfer / state tax", dec(transfer)),
		},
		Prepaids: []domain.LineItem{
			item(CodePrepaidInterest,
				fmt.Sprintf("Prepaid interest (%d days)", in.PerDiemInterestDays),
				baseLoan.Mul(dailyRate).Mul(decimal.NewFromInt(int64(in.PerDiemInterestDays)))),
			item(CodeHazardInsurance,
				fmt.Sprintf("Hazard insurance reserves (%d months)", in.EscrowMonths.Insurance),
				monthlyInsurance.Mul(decimal.NewFromInt(int64(in.EscrowMonths.Insurance)))),
			item(CodePropertyTax,
				fmt.Sprintf("Property tax reserves (%d months)", in.EscrowMonths.Taxes),
				monthlyTax.Mul(decimal.NewFromInt(int64(in.EscrowMonths.Taxes)))),
			item(CodeHoaReserves,
				fmt.Sprintf("HOA reserves (%d months)", in.EscrowMonths.Hoa),
				dec(in.HoaMonthly).Mul(decimal.NewFromInt(int64(in.EscrowMonths.Hoa)))),
		},
	}
}
