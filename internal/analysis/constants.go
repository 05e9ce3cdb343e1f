package analysis

const (
	// Qualifying run thresholds: anything shorter is excluded from every
	// aggregate, not just its own derived fields.
	MinRunDistanceM = 500.0
	MinRunDurationS = 300

	// Decoupling requires a sustained effort
	MinDecouplingDurationS = 1200

	// VDOT estimation requires at least 12 minutes of running
	MinVDOTDurationS = 720

	// EWMA time constants (days)
	ChronicLoadDays = 42
	AcuteLoadDays   = 7

	// Analysis window
	WindowDays = 90

	// Intensity-factor zone boundaries
	EasyIFMax     = 0.75
	ModerateIFMax = 0.88

	// A hard session for streak purposes
	HardSessionTSS = 80.0

	// Threshold detection needs this many pace/HR pairs
	MinThresholdPairs = 5

	// VDOT clamp range
	MinVDOT = 20.0
	MaxVDOT = 85.0

	// Race distances in meters
	Distance5K       = 5000.0
	Distance10K      = 10000.0
	DistanceHalfMara = 21097.5
	DistanceMarathon = 42195.0
)
