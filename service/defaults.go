package service

import (
	"fmt"
	"io"
	"os"
	"sync"

	json "github.com/goccy/go-json"

	"quickgfe/domain"
)

// RateBracket covers the half-open interval [Min, Max). A zero Max leaves
// the bracket unbounded above.
type RateBracket struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	RatePct float64 `json:"ratePct"`
}

func (b RateBracket) contains(v float64) bool {
	return v >= b.Min && (b.Max == 0 || v < b.Max)
}

// MIBracket holds the annual MI rates for one down payment band, keyed by
// FICO band.
type MIBracket struct {
	DownPaymentMin float64       `json:"downPaymentMin"`
	DownPaymentMax float64       `json:"downPaymentMax"`
	ByFico         []RateBracket `json:"byFico"`
}

func (b MIBracket) contains(downPct float64) bool {
	return downPct >= b.DownPaymentMin && (b.DownPaymentMax == 0 || downPct < b.DownPaymentMax)
}

// FundingFeeBracket is one VA down payment tier. The top tier includes 100%.
type FundingFeeBracket struct {
	DownPaymentMin   float64 `json:"downPaymentMin"`
	DownPaymentMax   float64 `json:"downPaymentMax"`
	FirstUsePct      float64 `json:"firstUsePct"`
	SubsequentUsePct float64 `json:"subsequentUsePct"`
}

func (b FundingFeeBracket) contains(downPct float64) bool {
	return downPct >= b.DownPaymentMin && (b.DownPaymentMax == 0 || downPct < b.DownPaymentMax)
}

type UpfrontFee struct {
	Label             string  `json:"label"`
	RatePct           float64 `json:"ratePct"`
	FinancedByDefault bool    `json:"financedByDefault"`
}

type FeeSchedule struct {
	Lender          float64 `json:"lender"`
	Broker          float64 `json:"broker"`
	CreditReport    float64 `json:"creditReport"`
	Flood           float64 `json:"flood"`
	Appraisal       float64 `json:"appraisal"`
	Title           float64 `json:"title"`
	Escrow          float64 `json:"escrow"`
	Recording       float64 `json:"recording"`
	TransferRatePct float64 `json:"transferRatePct"`
}

// ProgramDefaults is the per-program configuration the normalizer falls back
// to and the charge strategies read their tables from. Values are shared and
// must be treated as read-only.
type ProgramDefaults struct {
	Program              domain.Program      `json:"program"`
	Label                string              `json:"label"`
	RatePct              float64             `json:"ratePct"`
	DownPaymentPct       float64             `json:"downPaymentPct"`
	TermMonths           int                 `json:"termMonths"`
	PropertyTaxRatePct   float64             `json:"propertyTaxRatePct"`
	HomeInsuranceRatePct float64             `json:"homeInsuranceRatePct"`
	HoaMonthly           float64             `json:"hoaMonthly"`
	PerDiemInterestDays  int                 `json:"perDiemInterestDays"`
	EscrowMonths         domain.EscrowMonths `json:"escrowMonths"`
	Fees                 FeeSchedule         `json:"fees"`
	UpfrontFee           *UpfrontFee         `json:"upfrontFee,omitempty"`
	AnnualMIPct          float64             `json:"annualMiPct"`
	MITable              []MIBracket         `json:"miTable,omitempty"`
	FundingFeeTable      []FundingFeeBracket `json:"fundingFeeTable,omitempty"`
}

// Defaults is an immutable program defaults table.
type Defaults struct {
	programs map[domain.Program]ProgramDefaults
}

// NewDefaults builds a table from explicit entries. Later entries for the
// same program replace earlier ones.
func NewDefaults(entries ...ProgramDefaults) (*Defaults, error) {
	d := &Defaults{programs: make(map[domain.Program]ProgramDefaults, len(entries))}
	for _, e := range entries {
		if _, err := domain.ParseProgram(string(e.Program)); err != nil {
			return nil, fmt.Errorf("program defaults: %w", err)
		}
		if e.TermMonths < MinTermMonths || e.TermMonths > MaxTermMonths {
			return nil, fmt.Errorf("program defaults %s: term %d out of range", e.Program, e.TermMonths)
		}
		d.programs[e.Program] = e
	}
	return d, nil
}

// For returns the defaults of a program or a ConfigurationGapError.
func (d *Defaults) For(program domain.Program) (ProgramDefaults, error) {
	pd, ok := d.programs[program]
	if !ok {
		return ProgramDefaults{}, &domain.ConfigurationGapError{Program: program}
	}
	return pd, nil
}

// LoadDefaults decodes a JSON array of program defaults.
func LoadDefaults(r io.Reader) (*Defaults, error) {
	var entries []ProgramDefaults
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode program defaults: %w", err)
	}
	return NewDefaults(entries...)
}

// LoadDefaultsFile reads an override file. An empty path yields the
// built-in table.
func LoadDefaultsFile(path string) (*Defaults, error) {
	if path == "" {
		return StandardDefaults(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open program defaults: %w", err)
	}
	defer f.Close()
	return LoadDefaults(f)
}

var standardDefaults = sync.OnceValue(func() *Defaults {
	d, err := NewDefaults(standardPrograms()...)
	if err != nil {
		panic(err)
	}
	return d
})

// StandardDefaults returns the built-in defaults, built once per process.
func StandardDefaults() *Defaults {
	return standardDefaults()
}

func standardFees(appraisal float64) FeeSchedule {
	return FeeSchedule{
		Lender:          1195,
		Broker:          0,
		CreditReport:    65,
		Flood:           15,
		Appraisal:       appraisal,
		Title:           1850,
		Escrow:          950,
		Recording:       225,
		TransferRatePct: 0.10,
	}
}

func ficoBands(rates ...float64) []RateBracket {
	bounds := []float64{300, 640, 680, 720, 760, 851}
	bands := make([]RateBracket, len(rates))
	for i, r := range rates {
		bands[i] = RateBracket{Min: bounds[i], Max: bounds[i+1], RatePct: r}
	}
	return bands
}

func standardPrograms() []ProgramDefaults {
	escrow := domain.EscrowMonths{Taxes: 3, Insurance: 14, Hoa: 0}

	return []ProgramDefaults{
		{
			Program:              domain.ProgramConventional,
			Label:                "Conventional",
			RatePct:              6.25,
			DownPaymentPct:       20,
			TermMonths:           360,
			PropertyTaxRatePct:   1.20,
			HomeInsuranceRatePct: 0.35,
			PerDiemInterestDays:  15,
			EscrowMonths:         escrow,
			Fees:                 standardFees(650),
			MITable: []MIBracket{
				{DownPaymentMin: 0, DownPaymentMax: 5, ByFico: ficoBands(1.51, 1.31, 0.96, 0.70, 0.58)},
				{DownPaymentMin: 5, DownPaymentMax: 10, ByFico: ficoBands(1.24, 1.07, 0.78, 0.55, 0.41)},
				{DownPaymentMin: 10, DownPaymentMax: 15, ByFico: ficoBands(0.94, 0.79, 0.58, 0.39, 0.30)},
				{DownPaymentMin: 15, DownPaymentMax: 20, ByFico: ficoBands(0.54, 0.42, 0.30, 0.22, 0.19)},
			},
		},
		{
			Program:              domain.ProgramFHA,
			Label:                "FHA",
			RatePct:              6.00,
			DownPaymentPct:       3.5,
			TermMonths:           360,
			PropertyTaxRatePct:   1.20,
			HomeInsuranceRatePct: 0.35,
			PerDiemInterestDays:  15,
			EscrowMonths:         escrow,
			Fees:                 standardFees(700),
			UpfrontFee:           &UpfrontFee{Label: "Upfront MIP", RatePct: 1.75, FinancedByDefault: true},
			AnnualMIPct:          0.55,
		},
		{
			Program:              domain.ProgramVA,
			Label:                "VA",
			RatePct:              5.875,
			DownPaymentPct:       0,
			TermMonths:           360,
			PropertyTaxRatePct:   1.20,
			HomeInsuranceRatePct: 0.35,
			PerDiemInterestDays:  15,
			EscrowMonths:         escrow,
			Fees:                 standardFees(750),
			UpfrontFee:           &UpfrontFee{Label: "VA funding fee", FinancedByDefault: true},
			FundingFeeTable: []FundingFeeBracket{
				{DownPaymentMin: 0, DownPaymentMax: 5, FirstUsePct: 2.15, SubsequentUsePct: 3.30},
				{DownPaymentMin: 5, DownPaymentMax: 10, FirstUsePct: 1.50, SubsequentUsePct: 1.50},
				{DownPaymentMin: 10, FirstUsePct: 1.25, SubsequentUsePct: 1.25},
			},
		},
	}
}
