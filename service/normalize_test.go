package service

import (
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickgfe/domain"
)

func programDefaults(t *testing.T, p domain.Program) ProgramDefaults {
	t.Helper()
	pd, err := StandardDefaults().For(p)
	require.NoError(t, err)
	return pd
}

func decodeRequest(t *testing.T, body string) domain.ScenarioRequest {
	t.Helper()
	var req domain.ScenarioRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestNormalize_FillsDefaults(t *testing.T) {
	pd := programDefaults(t, domain.ProgramFHA)

	in, err := Normalize(domain.ScenarioRequest{
		Program:       "fha",
		PurchasePrice: domain.Num(350000),
	}, pd)
	require.NoError(t, err)

	assert.Equal(t, domain.LoanPurposePurchase, in.LoanPurpose)
	assert.Equal(t, 3.5, in.DownPaymentPct)
	assert.Equal(t, 6.0, in.RatePct)
	assert.Equal(t, 360, in.TermMonths)
	assert.Equal(t, DefaultFico, in.Fico)
	assert.Equal(t, domain.EscrowMonths{Taxes: 3, Insurance: 14, Hoa: 0}, in.EscrowMonths)
	assert.Equal(t, 700.0, in.Fees.Appraisal)
	assert.Equal(t, 350.0, in.Fees.Transfer)
	assert.False(t, in.TransferOverridden)
	assert.True(t, in.FinanceUpfrontFee, "FHA finances UFMIP by default")
}

func TestNormalize_AcceptsNumericStrings(t *testing.T) {
	req := decodeRequest(t, `{
		"program": "conventional",
		"purchasePrice": "425,000",
		"downPaymentPct": "10",
		"ratePct": 6.5,
		"fico": "701",
		"fees": {"lender": "995", "transfer": ""}
	}`)

	in, err := Normalize(req, programDefaults(t, domain.ProgramConventional))
	require.NoError(t, err)

	assert.Equal(t, 425000.0, in.PurchasePrice)
	assert.Equal(t, 10.0, in.DownPaymentPct)
	assert.Equal(t, 701, in.Fico)
	assert.Equal(t, 995.0, in.Fees.Lender)
	assert.False(t, in.TransferOverridden, "empty string is treated as absent")
	assert.Equal(t, 425.0, in.Fees.Transfer)
}

func TestNormalize_ReportsEveryField(t *testing.T) {
	req := decodeRequest(t, `{
		"program": "conventional",
		"purchasePrice": 0,
		"downPaymentPct": 120,
		"ratePct": "abc",
		"termMonths": 360.5,
		"hoaMonthly": -5,
		"escrowMonths": {"taxes": -1},
		"fees": {"title": -10},
		"loanPurpose": "cashout"
	}`)

	_, err := Normalize(req, programDefaults(t, domain.ProgramConventional))
	require.Error(t, err)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{
		"loanPurpose",
		"purchasePrice",
		"downPaymentPct",
		"ratePct",
		"termMonths",
		"hoaMonthly",
		"escrowMonths.taxes",
		"fees.title",
	}, fields)
	assert.Equal(t, "loanPurpose", verr.First().Field)
}

func TestNormalize_PurchasePriceRequired(t *testing.T) {
	_, err := Normalize(domain.ScenarioRequest{Program: "va"}, programDefaults(t, domain.ProgramVA))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, domain.FieldError{Field: "purchasePrice", Message: "is required"}, verr.First())
}

func TestNormalize_ClampsFico(t *testing.T) {
	pd := programDefaults(t, domain.ProgramConventional)

	low, err := Normalize(domain.ScenarioRequest{Program: "conventional", PurchasePrice: domain.Num(1), Fico: domain.Num(120)}, pd)
	require.NoError(t, err)
	assert.Equal(t, MinFico, low.Fico)

	high, err := Normalize(domain.ScenarioRequest{Program: "conventional", PurchasePrice: domain.Num(1), Fico: domain.Num(990)}, pd)
	require.NoError(t, err)
	assert.Equal(t, MaxFico, high.Fico)

	huge, err := Normalize(domain.ScenarioRequest{Program: "conventional", PurchasePrice: domain.Num(1), Fico: domain.Num(1e30)}, pd)
	require.NoError(t, err)
	assert.Equal(t, MaxFico, huge.Fico)

	tiny, err := Normalize(domain.ScenarioRequest{Program: "conventional", PurchasePrice: domain.Num(1), Fico: domain.Num(-1e30)}, pd)
	require.NoError(t, err)
	assert.Equal(t, MinFico, tiny.Fico)
}

func TestNormalize_HugeFicoPricesAsTopBand(t *testing.T) {
	req := func(fico float64) domain.ScenarioRequest {
		return domain.ScenarioRequest{
			Program:        "conventional",
			PurchasePrice:  domain.Num(350000),
			DownPaymentPct: domain.Num(5),
			Fico:           domain.Num(fico),
		}
	}

	top, err := ComputeQuote(req(900), StandardDefaults())
	require.NoError(t, err)
	huge, err := ComputeQuote(req(1e30), StandardDefaults())
	require.NoError(t, err)
	assert.Greater(t, top.Monthly.MortgageInsurance, 0.0)
	assert.Equal(t, top.Monthly.MortgageInsurance, huge.Monthly.MortgageInsurance)
}

func TestNormalize_RejectsOversizedCounts(t *testing.T) {
	req := domain.ScenarioRequest{
		Program:             "conventional",
		PurchasePrice:       domain.Num(350000),
		PerDiemInterestDays: domain.Num(367),
		EscrowMonths: domain.EscrowMonthsRequest{
			Taxes:     domain.Num(1e19),
			Insurance: domain.Num(601),
			Hoa:       domain.Num(MaxEscrowMonths),
		},
	}

	_, err := Normalize(req, programDefaults(t, domain.ProgramConventional))
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"perDiemInterestDays", "escrowMonths.taxes", "escrowMonths.insurance"}, fields)
	assert.Equal(t, domain.FieldError{Field: "perDiemInterestDays", Message: "must not exceed 366"}, verr.First())
}

func TestNormalize_TransferOverride(t *testing.T) {
	pd := programDefaults(t, domain.ProgramConventional)
	req := domain.ScenarioRequest{
		Program:       "conventional",
		PurchasePrice: domain.Num(500000),
		Fees:          domain.FeesRequest{Transfer: domain.Num(-250)},
	}

	in, err := Normalize(req, pd)
	require.NoError(t, err)
	assert.True(t, in.TransferOverridden)
	assert.Equal(t, -250.0, in.Fees.Transfer, "a credit is allowed")
}

func TestNormalize_VAFlagsIgnoredForOtherPrograms(t *testing.T) {
	yes := true
	in, err := Normalize(domain.ScenarioRequest{
		Program:         "conventional",
		PurchasePrice:   domain.Num(300000),
		VAFundingExempt: &yes,
	}, programDefaults(t, domain.ProgramConventional))
	require.NoError(t, err)
	assert.False(t, in.VAFundingExempt)
	assert.False(t, in.FinanceUpfrontFee)
}
