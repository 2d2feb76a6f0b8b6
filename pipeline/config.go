package pipeline

import (
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/irisvc/pkg/errors"
)

// Config controls a Run. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	// TestSize is the fraction of rows held out for evaluation.
	TestSize float64
	Shuffle  bool
	Stratify bool
	// Seed seeds the shuffle. A negative seed draws a fresh split per run.
	Seed int64

	// Scaler optionally standardizes features before training:
	// "" (none), "standard" or "minmax".
	Scaler string

	// OutputDir receives the figures. FigureFormat is the file extension.
	OutputDir    string
	FigureFormat string
	FigureWidth  vg.Length
	FigureHeight vg.Length

	// ReportDigits is the precision of the classification report.
	ReportDigits int
}

// Option modifies a Config.
type Option func(*Config)

// DefaultConfig returns the settings of the reference walkthrough:
// a shuffled, stratified 90/10 split, no scaling and png figures under
// "figures".
func DefaultConfig(opts ...Option) Config {
	cfg := Config{
		TestSize:     0.1,
		Shuffle:      true,
		Stratify:     true,
		Seed:         -1,
		OutputDir:    "figures",
		FigureFormat: "png",
		FigureWidth:  6 * vg.Inch,
		FigureHeight: 6 * vg.Inch,
		ReportDigits: 2,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithTestSize sets the held-out fraction.
func WithTestSize(size float64) Option {
	return func(c *Config) { c.TestSize = size }
}

// WithSeed makes the split reproducible.
func WithSeed(seed int64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithStratify toggles stratification on the class name.
func WithStratify(stratify bool) Option {
	return func(c *Config) { c.Stratify = stratify }
}

// WithShuffle toggles shuffling before the split.
func WithShuffle(shuffle bool) Option {
	return func(c *Config) { c.Shuffle = shuffle }
}

// WithScaler enables feature scaling ("standard" or "minmax").
func WithScaler(kind string) Option {
	return func(c *Config) { c.Scaler = kind }
}

// WithOutputDir sets the figure directory.
func WithOutputDir(dir string) Option {
	return func(c *Config) { c.OutputDir = dir }
}

// WithFigureFormat sets the figure file extension (png, svg, pdf, ...).
func WithFigureFormat(format string) Option {
	return func(c *Config) { c.FigureFormat = format }
}

// WithFigureSize sets the figure size in inches.
func WithFigureSize(width, height float64) Option {
	return func(c *Config) {
		c.FigureWidth = vg.Length(width) * vg.Inch
		c.FigureHeight = vg.Length(height) * vg.Inch
	}
}

// Validate checks the settings that the individual stages do not.
func (c Config) Validate() error {
	if c.TestSize <= 0 || c.TestSize >= 1 {
		return errors.NewValidationError("test_size", "must be in (0, 1)", c.TestSize)
	}
	switch c.Scaler {
	case "", "standard", "minmax":
	default:
		return errors.NewValidationError("scaler", "must be empty, standard or minmax", c.Scaler)
	}
	if c.OutputDir == "" {
		return errors.NewValidationError("output_dir", "must not be empty", c.OutputDir)
	}
	switch c.FigureFormat {
	case "png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff":
	default:
		return errors.NewValidationError("figure_format", "unsupported image format", c.FigureFormat)
	}
	if c.FigureWidth <= 0 || c.FigureHeight <= 0 {
		return errors.NewValidationError("figure_size", "must be positive", [2]vg.Length{c.FigureWidth, c.FigureHeight})
	}
	if c.Stratify && !c.Shuffle {
		return errors.NewValidationError("stratify", "stratified split requires shuffle", c.Shuffle)
	}
	return nil
}
