package service

import (
	"github.com/shopspring/decimal"

	"quickgfe/domain"
)

func sumItems(items []domain.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(dec(it.Amount))
	}
	return total
}

// AggregateClosing totals the fee buckets. Items are already rounded, so the
// sums are exact and never rounded again. A financed upfront fee is part of
// the loan and never appears here.
func AggregateClosing(b FeeBuckets, upfrontFeeDue decimal.Decimal) domain.ClosingCosts {
	closing := sumItems(b.ItemsPayable).Add(sumItems(b.TitleAndEscrow))
	return domain.ClosingCosts{
		ItemsPayable:               b.ItemsPayable,
		TitleAndEscrow:             b.TitleAndEscrow,
		Prepaids:                   b.Prepaids,
		UpfrontFeeDue:              amount(upfrontFeeDue),
		TotalEstimatedClosingCosts: amount(closing),
		TotalEstimatedPrepaids:     amount(sumItems(b.Prepaids)),
	}
}

// CashToClose is what the borrower brings to closing beyond the down payment.
func CashToClose(c domain.ClosingCosts) float64 {
	return amount(dec(c.TotalEstimatedClosingCosts).
		Add(dec(c.TotalEstimatedPrepaids)).
		Add(dec(c.UpfrontFeeDue)))
}
