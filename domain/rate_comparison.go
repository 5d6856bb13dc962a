package domain

type RateComparisonInput struct {
	LoanAmount float64 `json:"loanAmount"`
	TermMonths int     `json:"termMonths"`
}

// LenderRate is one row of the illustrative comparison table.
type LenderRate struct {
	Lender         string  `json:"lender"`
	RatePct        float64 `json:"ratePct"`
	APRPct         float64 `json:"aprPct"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	LenderFees     float64 `json:"lenderFees"`
	Points         float64 `json:"points"`
}

type RateComparisonResult struct {
	LoanAmount   float64      `json:"loanAmount"`
	TermMonths   int          `json:"termMonths"`
	Lenders      []LenderRate `json:"lenders"`
	Illustrative bool         `json:"illustrative"`
}
