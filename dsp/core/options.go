package core

// AnalysisConfig holds the fixed dimensions of a filter analysis session.
type AnalysisConfig struct {
	// Order is the total number of coefficient slots K. It is split evenly
	// between the feedforward and feedback sides, so it must be even.
	Order int
	// ResponsePoints is the number of frequency samples M per response curve.
	ResponsePoints int
	// LogBase is the base of the logarithmic frequency mapping.
	LogBase float64
	// FloorDB and CeilingDB bound the magnitude response in dB.
	FloorDB   float64
	CeilingDB float64
	// SampleRate is only used to label frequencies in Hz.
	SampleRate float64
}

// AnalysisOption mutates an AnalysisConfig.
type AnalysisOption func(*AnalysisConfig)

// DefaultAnalysisConfig returns the settings of the interactive visualizer:
// twelve coefficient slots, 8192 response samples and a log base of 1000.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Order:          12,
		ResponsePoints: 8192,
		LogBase:        1000,
		FloorDB:        -60,
		CeilingDB:      1000,
		SampleRate:     44100,
	}
}

// WithOrder sets the total coefficient count. Odd or non-positive values are ignored.
func WithOrder(order int) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if order >= 2 && order%2 == 0 {
			cfg.Order = order
		}
	}
}

// WithResponsePoints sets the number of response samples.
func WithResponsePoints(points int) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if points > 0 {
			cfg.ResponsePoints = points
		}
	}
}

// WithLogBase sets the logarithmic mapping base. It must be greater than 1.
func WithLogBase(base float64) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if base > 1 {
			cfg.LogBase = base
		}
	}
}

// WithFloorDB sets the lower clamp of the magnitude response.
func WithFloorDB(floor float64) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if floor < cfg.CeilingDB {
			cfg.FloorDB = floor
		}
	}
}

// WithSampleRate sets the sample rate used for Hz labels and audio rendering.
func WithSampleRate(sampleRate float64) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// ApplyAnalysisOptions applies zero or more options to the default config.
func ApplyAnalysisOptions(opts ...AnalysisOption) AnalysisConfig {
	cfg := DefaultAnalysisConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// SideLength returns the number of coefficients per side (Order/2).
func (cfg AnalysisConfig) SideLength() int {
	return cfg.Order / 2
}
