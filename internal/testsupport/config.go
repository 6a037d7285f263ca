package testsupport

import (
	"path/filepath"
	"testing"

	"collabtopo/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataFile = filepath.Join(base, "documents.csv")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ResultsDB = filepath.Join(base, "output", "results.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDocuments writes rows as the corpus CSV referenced by the config.
func WithDocuments(rows ...Row) ConfigOption {
	return func(b *configBuilder) {
		WriteCorpusCSV(b.t, b.cfg.Paths.DataFile, rows)
	}
}

// WithWindows overrides the window schedule.
func WithWindows(start, end string, widthDays, strideDays int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Windows.Start = start
		b.cfg.Windows.End = end
		b.cfg.Windows.WidthDays = widthDays
		b.cfg.Windows.StrideDays = strideDays
	}
}

// WithMaxDimension overrides complex.max_dimension.
func WithMaxDimension(dim int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Complex.MaxDimension = dim
	}
}

// WithFaceCounting overrides complex.face_counting.
func WithFaceCounting(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Complex.FaceCounting = mode
	}
}

// WithoutDiagrams disables PNG rendering.
func WithoutDiagrams() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Diagram.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
