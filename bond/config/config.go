package config

// Config holds yield solver parameters.
// These were previously hardcoded magic numbers in the solver.
type Config struct {
	// ConvergenceTolerance is the price tolerance for Newton-Raphson
	// convergence: iteration stops once |PV(y) - dirty price| falls below it.
	ConvergenceTolerance float64

	// MaxIterations is the maximum number of Newton-Raphson steps.
	MaxIterations int

	// YieldFloor and YieldCeiling bound the yield after every Newton step
	// to prevent divergence. Expressed as decimals (-0.5 == -50%).
	YieldFloor   float64
	YieldCeiling float64

	// DerivativeThreshold is the minimum derivative magnitude.
	// Below this, Newton iteration stops to avoid division by near-zero.
	DerivativeThreshold float64
}

// DefaultConfig provides the UMOA market convention values.
var DefaultConfig = Config{
	ConvergenceTolerance: 1e-10,
	MaxIterations:        100,
	YieldFloor:           -0.5,
	YieldCeiling:         2.0,
	DerivativeThreshold:  1e-15,
}

// cfg is the active configuration. Defaults to DefaultConfig.
var cfg = DefaultConfig

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	return cfg
}
