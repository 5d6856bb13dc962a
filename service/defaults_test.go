package service

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickgfe/domain"
)

func TestStandardDefaults_CoversEveryProgram(t *testing.T) {
	d := StandardDefaults()
	assert.Same(t, d, StandardDefaults(), "built once per process")

	for _, p := range domain.Programs {
		pd, err := d.For(p)
		require.NoError(t, err, p)
		assert.Equal(t, p, pd.Program)
		assert.NotEmpty(t, pd.Label)
		assert.Equal(t, 360, pd.TermMonths)
	}
}

func TestStandardDefaults_MITableCoversBelowEightyLTV(t *testing.T) {
	pd, err := StandardDefaults().For(domain.ProgramConventional)
	require.NoError(t, err)

	for down := 0.0; down < 20; down += 0.5 {
		for fico := MinFico; fico <= MaxFico; fico += 10 {
			in := domain.ScenarioInput{Program: domain.ProgramConventional, PurchasePrice: 100000, DownPaymentPct: down, Fico: fico}
			_, err := conventionalCharges{}.Compute(in, pd, BaseLoan(in))
			require.NoError(t, err, "down %g fico %d", down, fico)
		}
	}
}

func TestDefaults_ForUnknownProgram(t *testing.T) {
	_, err := StandardDefaults().For(domain.Program("jumbo"))

	var gap *domain.ConfigurationGapError
	require.True(t, errors.As(err, &gap))
	assert.Equal(t, domain.Program("jumbo"), gap.Program)
}

func TestLoadDefaults(t *testing.T) {
	d, err := LoadDefaults(strings.NewReader(`[
		{"program": "fha", "label": "FHA 30", "ratePct": 5.5, "downPaymentPct": 3.5, "termMonths": 360,
		 "upfrontFee": {"label": "Upfront MIP", "ratePct": 1.75, "financedByDefault": false},
		 "annualMiPct": 0.55}
	]`))
	require.NoError(t, err)

	pd, err := d.For(domain.ProgramFHA)
	require.NoError(t, err)
	assert.Equal(t, "FHA 30", pd.Label)
	assert.False(t, pd.UpfrontFee.FinancedByDefault)

	_, err = d.For(domain.ProgramConventional)
	assert.True(t, errors.Is(err, domain.ErrConfigurationGap))
}

func TestLoadDefaults_Rejects(t *testing.T) {
	_, err := LoadDefaults(strings.NewReader(`[{"program": "usda", "termMonths": 360}]`))
	assert.Error(t, err)

	_, err = LoadDefaults(strings.NewReader(`[{"program": "va", "termMonths": 0}]`))
	assert.Error(t, err)

	_, err = LoadDefaults(strings.NewReader(`{not json`))
	assert.Error(t, err)
}

func TestLoadDefaultsFile(t *testing.T) {
	d, err := LoadDefaultsFile("")
	require.NoError(t, err)
	assert.Same(t, StandardDefaults(), d)

	path := filepath.Join(t.TempDir(), "defaults.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"program":"va","label":"VA","ratePct":5.5,"termMonths":240}]`), 0o600))

	d, err = LoadDefaultsFile(path)
	require.NoError(t, err)
	pd, err := d.For(domain.ProgramVA)
	require.NoError(t, err)
	assert.Equal(t, 240, pd.TermMonths)

	_, err = LoadDefaultsFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestDefaultScenario(t *testing.T) {
	in, err := DefaultScenario(StandardDefaults(), domain.ProgramVA)
	require.NoError(t, err)

	assert.Equal(t, FormPurchasePrice, in.PurchasePrice)
	assert.Equal(t, DefaultFico, in.Fico)
	assert.Equal(t, 0.0, in.DownPaymentPct)
	assert.Equal(t, 5.875, in.RatePct)
	assert.Equal(t, 350.0, in.Fees.Transfer)
	assert.False(t, in.TransferOverridden)
	assert.True(t, in.FinanceUpfrontFee)
}
