package service

const (
	MaxPurchasePrice = 1_000_000_000.0 // 1 billion
	MaxRatePct       = 100.0
	MaxTermMonths    = 600 // 50 years
	MinTermMonths    = 1
	MaxPercent       = 100.0

	// Upper bounds for day and month counts.
	MaxPerDiemDays  = 366
	MaxEscrowMonths = 600

	// FICO outside this range is clamped, not rejected.
	MinFico     = 300
	MaxFico     = 850
	DefaultFico = 720

	// Purchase price the scenario form is prefilled with.
	FormPurchasePrice = 350_000.0

	// MI is charged on conventional loans strictly above this LTV.
	ConventionalMIMaxLTVPct = 80.0

	daysPerYear   = 365
	monthsPerYear = 12
)
