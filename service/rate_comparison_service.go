package service

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"quickgfe/domain"
)

// IllustrativeLender is a sample offer shown on the comparison page. The
// figures are not live pricing.
type IllustrativeLender struct {
	Name       string
	RatePct    float64
	LenderFees float64
	Points     float64
}

var illustrativeLenders = []IllustrativeLender{
	{Name: "Acme Bank", RatePct: 6.000, LenderFees: 1200, Points: 0.25},
	{Name: "BlueLend", RatePct: 6.125, LenderFees: 900, Points: 0.15},
	{Name: "HomeFirst", RatePct: 6.250, LenderFees: 1500, Points: 0.50},
	{Name: "LendRight", RatePct: 6.625, LenderFees: 995, Points: 0},
}

type RateComparisonService struct {
	lenders []IllustrativeLender
}

func NewRateComparisonService() *RateComparisonService {
	return &RateComparisonService{lenders: illustrativeLenders}
}

// Compare prices the loan with every sample lender, cheapest monthly
// payment first.
func (s *RateComparisonService) Compare(input domain.RateComparisonInput) (domain.RateComparisonResult, error) {
	errs := &domain.ValidationError{}
	if input.LoanAmount <= 0 {
		errs.Add("loanAmount", "must be greater than 0")
	} else if input.LoanAmount > MaxPurchasePrice {
		errs.Add("loanAmount", "must not exceed %.0f", MaxPurchasePrice)
	}
	if input.TermMonths < MinTermMonths || input.TermMonths > MaxTermMonths {
		errs.Add("termMonths", "must be between %d and %d", MinTermMonths, MaxTermMonths)
	}
	if err := errs.Err(); err != nil {
		return domain.RateComparisonResult{}, err
	}

	loan := cents(dec(input.LoanAmount))
	rows := make([]domain.LenderRate, 0, len(s.lenders))

	for _, l := range s.lenders {
		payment := PrincipalAndInterest(loan, l.RatePct, input.TermMonths)
		pointsCost := loan.Mul(pct(l.Points))
		netProceeds := loan.Sub(dec(l.LenderFees)).Sub(pointsCost)

		rows = append(rows, domain.LenderRate{
			Lender:         l.Name,
			RatePct:        l.RatePct,
			APRPct:         aprPct(payment, netProceeds, input.TermMonths, l.RatePct),
			MonthlyPayment: amount(payment),
			LenderFees:     l.LenderFees,
			Points:         l.Points,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].MonthlyPayment != rows[j].MonthlyPayment {
			return rows[i].MonthlyPayment < rows[j].MonthlyPayment
		}
		return rows[i].Lender < rows[j].Lender
	})

	return domain.RateComparisonResult{
		LoanAmount:   amount(loan),
		TermMonths:   input.TermMonths,
		Lenders:      rows,
		Illustrative: true,
	}, nil
}

// aprPct finds the annual rate at which the payment stream is worth the net
// proceeds, by bisection. Costs only ever raise the APR above the note rate.
func aprPct(payment, netProceeds decimal.Decimal, termMonths int, notePct float64) float64 {
	pmt := payment.InexactFloat64()
	target := netProceeds.InexactFloat64()
	if pmt <= 0 || target <= 0 {
		return notePct
	}

	n := float64(termMonths)
	presentValue := func(annualPct float64) float64 {
		r := annualPct / 100 / monthsPerYear
		if r == 0 {
			return pmt * n
		}
		return pmt * (1 - math.Pow(1+r, -n)) / r
	}

	lo, hi := notePct, notePct+MaxRatePct
	for i := 0; i < 100 && hi-lo > 1e-9; i++ {
		mid := (lo + hi) / 2
		if presentValue(mid) > target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return amount(dec(lo).Round(3))
}
