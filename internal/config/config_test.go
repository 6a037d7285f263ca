package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"collabtopo/internal/config"
	"collabtopo/internal/faults"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogs := filepath.Join(tempHome, ".local", "share", "collabtopo", "logs")
	if cfg.Paths.LogDir != wantLogs {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogs)
	}
	if !filepath.IsAbs(cfg.Paths.OutputDir) || filepath.Base(cfg.Paths.OutputDir) != "output" {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Paths.ResultsDB != filepath.Join(cfg.Paths.OutputDir, "results.db") {
		t.Fatalf("unexpected results db: %q", cfg.Paths.ResultsDB)
	}
	if cfg.Complex.MaxDimension != 2 || cfg.Complex.FiltrationCeiling != 50 {
		t.Fatalf("unexpected complex defaults: %+v", cfg.Complex)
	}
	if cfg.Complex.FaceCounting != "literal" {
		t.Fatalf("expected literal face counting, got %q", cfg.Complex.FaceCounting)
	}
	if cfg.Windows.End != cfg.Dataset.DateEnd {
		t.Fatalf("expected windows.end to default to dataset.date_end, got %q", cfg.Windows.End)
	}
	if cfg.Diagram.XMax == nil || *cfg.Diagram.XMax != 50 {
		t.Fatalf("expected manual diagram bounds by default, got %+v", cfg.Diagram)
	}

	start, end, err := cfg.WindowRange()
	if err != nil {
		t.Fatalf("WindowRange failed: %v", err)
	}
	if !start.Equal(time.Date(2008, 1, 1, 0, 0, 0, 0, time.UTC)) || !end.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected window range %s..%s", start, end)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "collabtopo.toml")

	type payload struct {
		Paths struct {
			DataFile  string `toml:"data_file"`
			OutputDir string `toml:"output_dir"`
		} `toml:"paths"`
		Complex struct {
			MaxDimension int    `toml:"max_dimension"`
			FaceCounting string `toml:"face_counting"`
		} `toml:"complex"`
		Dataset struct {
			DateEnd    string   `toml:"date_end"`
			Categories []string `toml:"categories"`
		} `toml:"dataset"`
		Diagram struct {
			AutoBounds bool `toml:"auto_bounds"`
		} `toml:"diagram"`
	}
	custom := payload{}
	custom.Paths.DataFile = filepath.Join(tempDir, "docs.xlsx")
	custom.Paths.OutputDir = filepath.Join(tempDir, "out")
	custom.Complex.MaxDimension = 1
	custom.Complex.FaceCounting = " Distinct "
	custom.Dataset.DateEnd = "2012-06-30"
	custom.Dataset.Categories = []string{"math.CO", " math.co ", "", "math.AG"}
	custom.Diagram.AutoBounds = true
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Complex.MaxDimension != 1 || cfg.Complex.FaceCounting != "distinct" {
		t.Fatalf("unexpected complex section: %+v", cfg.Complex)
	}
	if got := strings.Join(cfg.Dataset.Categories, ","); got != "math.CO,math.AG" {
		t.Fatalf("unexpected categories: %q", got)
	}
	if cfg.Paths.ResultsDB != filepath.Join(tempDir, "out", "results.db") {
		t.Fatalf("unexpected results db: %q", cfg.Paths.ResultsDB)
	}
	if cfg.Diagram.XMin != nil || cfg.Diagram.YMax != nil {
		t.Fatalf("expected auto bounds to clear manual limits, got %+v", cfg.Diagram)
	}
	_, end, err := cfg.WindowRange()
	if err != nil {
		t.Fatalf("WindowRange failed: %v", err)
	}
	if !end.Equal(time.Date(2012, 6, 30, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected window end to follow dataset.date_end, got %s", end)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(configPath, []byte("[complex\nmax_dimension = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := config.Load(configPath)
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "face_counting") {
		t.Fatalf("sample config missing face_counting: %s", contents)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Windows.WidthDays != 365 || cfg.Windows.StrideDays != 30 {
		t.Fatalf("unexpected window schedule: %+v", cfg.Windows)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := config.Default()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode encoded config: %v", err)
	}
	if decoded.Complex != cfg.Complex {
		t.Fatalf("complex section changed: %+v vs %+v", decoded.Complex, cfg.Complex)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"negative max dimension", func(c *config.Config) { c.Complex.MaxDimension = -1 }},
		{"unknown counting mode", func(c *config.Config) { c.Complex.FaceCounting = "fuzzy" }},
		{"bad dataset date", func(c *config.Config) { c.Dataset.DateStart = "2008/01/01" }},
		{"inverted dataset range", func(c *config.Config) { c.Dataset.DateEnd = "1800-01-01" }},
		{"unknown category", func(c *config.Config) { c.Dataset.Categories = []string{"physics.optics"} }},
		{"negative author cap", func(c *config.Config) { c.Dataset.MaxAuthors = -2 }},
		{"zero width", func(c *config.Config) { c.Windows.WidthDays = 0 }},
		{"zero stride", func(c *config.Config) { c.Windows.StrideDays = 0 }},
		{"window end before start", func(c *config.Config) { c.Windows.End = "2000-01-01" }},
		{"inverted x bounds", func(c *config.Config) {
			lo, hi := 10.0, 5.0
			c.Diagram.XMin, c.Diagram.XMax = &lo, &hi
		}},
		{"unknown log level", func(c *config.Config) { c.Logging.Level = "chatty" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, faults.ErrConfiguration) {
				t.Fatalf("expected configuration marker, got %v", err)
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}
