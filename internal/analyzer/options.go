package analyzer

// StressWeights configures the stress aggregation arithmetic. The defaults
// double-weight lesions against every other stress factor.
type StressWeights struct {
	LesionPoints int
	FactorPoints int
	MaxPoints    int
	HealthyBelow float64
	MildBelow    float64
}

// Options provides flexible configuration for leaf analysis
type Options struct {
	// Decode-side cap: larger images are fitted down before analysis.
	// Zero disables downscaling.
	MaxDimension int

	// Execution
	Parallel   bool
	MaxWorkers int // 0 = CPU count

	// Local-statistics windows
	UniformityWindow int
	GlossWindow      int

	// Edge detection thresholds (gradient magnitude)
	CannyLow  float64
	CannyHigh float64

	// Contour simplification tolerance as a fraction of perimeter
	SimplifyFraction float64

	Stress StressWeights
}

// DefaultOptions returns the standard analysis configuration
func DefaultOptions() Options {
	return Options{
		MaxDimension:     1600,
		Parallel:         true,
		MaxWorkers:       0,
		UniformityWindow: 15,
		GlossWindow:      10,
		CannyLow:         50,
		CannyHigh:        150,
		SimplifyFraction: 0.02,
		Stress: StressWeights{
			LesionPoints: 2,
			FactorPoints: 1,
			MaxPoints:    10,
			HealthyBelow: 0.2,
			MildBelow:    0.5,
		},
	}
}

// SequentialOptions returns options with concurrent extraction disabled
func SequentialOptions() Options {
	opts := DefaultOptions()
	opts.Parallel = false
	return opts
}

// WithMaxDimension sets the decode-side downscale cap
func (opts Options) WithMaxDimension(dim int) Options {
	opts.MaxDimension = dim
	return opts
}

// WithWorkers enables parallel extraction with the given worker count
func (opts Options) WithWorkers(n int) Options {
	opts.Parallel = true
	opts.MaxWorkers = n
	return opts
}

// WithStressWeights overrides the stress aggregation constants
func (opts Options) WithStressWeights(w StressWeights) Options {
	opts.Stress = w
	return opts
}
