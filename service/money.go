package service

import "github.com/shopspring/decimal"

var (
	hundred  = decimal.NewFromInt(100)
	twelve   = decimal.NewFromInt(monthsPerYear)
	yearDays = decimal.NewFromInt(daysPerYear)
)

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// pct converts a percentage such as 6.25 into the ratio 0.0625.
func pct(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Div(hundred)
}

// wholeUnits rounds half away from zero to whole currency units, the
// precision every disclosure line item is shown at.
func wholeUnits(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

func cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func amount(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
