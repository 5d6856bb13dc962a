package domain

// LineItem is one itemized disclosure charge in whole currency units.
type LineItem struct {
	Code   string  `json:"code"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type ProgramInfo struct {
	Key   Program `json:"key"`
	Label string  `json:"label"`
}

type LoanAmounts struct {
	BaseLoan           float64 `json:"baseLoan"`
	DownPayment        float64 `json:"downPayment"`
	FinancedUpfrontFee float64 `json:"financedUpfrontFee"`
	TotalLoan          float64 `json:"totalLoan"`
	LTVPct             float64 `json:"ltvPct"`
}

type ClosingCosts struct {
	ItemsPayable               []LineItem `json:"itemsPayable"`
	TitleAndEscrow             []LineItem `json:"titleAndEscrow"`
	Prepaids                   []LineItem `json:"prepaids"`
	// UpfrontFeeDue is an FHA UFMIP or VA funding fee the borrower chose not
	// to finance. It is paid at closing but is not counted in
	// TotalEstimatedClosingCosts; cash to close adds it separately.
	UpfrontFeeDue              float64    `json:"upfrontFeeDue"`
	TotalEstimatedClosingCosts float64    `json:"totalEstimatedClosingCosts"`
	TotalEstimatedPrepaids     float64    `json:"totalEstimatedPrepaids"`
}

type MonthlyPayment struct {
	PrincipalAndInterest float64 `json:"principalAndInterest"`
	HomeownersInsurance  float64 `json:"homeownersInsurance"`
	PropertyTax          float64 `json:"propertyTax"`
	MortgageInsurance    float64 `json:"mortgageInsurance"`
	Hoa                  float64 `json:"hoa"`
	TotalMonthlyPayment  float64 `json:"totalMonthlyPayment"`
}

type QuoteOutput struct {
	Program     ProgramInfo    `json:"program"`
	Loan        LoanAmounts    `json:"loan"`
	Closing     ClosingCosts   `json:"closing"`
	Monthly     MonthlyPayment `json:"monthly"`
	CashToClose float64        `json:"cashToClose"`
}
