package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickgfe/domain"
)

func TestRateComparison_SortedByPayment(t *testing.T) {
	svc := NewRateComparisonService()

	res, err := svc.Compare(domain.RateComparisonInput{LoanAmount: 320000, TermMonths: 360})
	require.NoError(t, err)

	assert.True(t, res.Illustrative)
	require.Len(t, res.Lenders, 4)
	for i := 1; i < len(res.Lenders); i++ {
		assert.LessOrEqual(t, res.Lenders[i-1].MonthlyPayment, res.Lenders[i].MonthlyPayment)
	}
	assert.Equal(t, "Acme Bank", res.Lenders[0].Lender)
}

func TestRateComparison_APR(t *testing.T) {
	res, err := NewRateComparisonService().Compare(domain.RateComparisonInput{LoanAmount: 320000, TermMonths: 360})
	require.NoError(t, err)

	for _, l := range res.Lenders {
		assert.Greater(t, l.APRPct, l.RatePct, l.Lender)
		assert.Less(t, l.APRPct, l.RatePct+0.5, l.Lender)
	}
}

func TestRateComparison_Validation(t *testing.T) {
	_, err := NewRateComparisonService().Compare(domain.RateComparisonInput{LoanAmount: -1, TermMonths: 0})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 2)
}
