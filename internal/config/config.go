package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"collabtopo/internal/faults"
)

//go:embed sample_config.toml
var sampleConfig string

// DateLayout is the calendar date format used by every date key.
const DateLayout = "2006-01-02"

// Paths contains file and directory locations.
type Paths struct {
	DataFile  string `toml:"data_file"`
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	ResultsDB string `toml:"results_db"`
}

// Complex controls face enumeration, filtration, and persistence.
type Complex struct {
	MaxDimension      int     `toml:"max_dimension"`
	FiltrationCeiling float64 `toml:"filtration_ceiling"`
	FaceCounting      string  `toml:"face_counting"`
	MinPersistence    float64 `toml:"min_persistence"`
}

// Dataset restricts which documents are loaded into the corpus view.
type Dataset struct {
	DateStart  string   `toml:"date_start"`
	DateEnd    string   `toml:"date_end"`
	Categories []string `toml:"categories"`
	MaxAuthors int      `toml:"max_authors"`
}

// Windows describes the sliding window schedule.
type Windows struct {
	Start      string `toml:"start"`
	End        string `toml:"end"`
	WidthDays  int    `toml:"width_days"`
	StrideDays int    `toml:"stride_days"`
}

// Diagram contains persistence diagram rendering options. Nil bounds are
// derived from the data.
type Diagram struct {
	Enabled      bool     `toml:"enabled"`
	AutoBounds   bool     `toml:"auto_bounds"`
	XMin         *float64 `toml:"x_min"`
	XMax         *float64 `toml:"x_max"`
	YMin         *float64 `toml:"y_min"`
	YMax         *float64 `toml:"y_max"`
	WidthInches  float64  `toml:"width_inches"`
	HeightInches float64  `toml:"height_inches"`
}

// Metrics configures the optional Prometheus textfile export.
type Metrics struct {
	Textfile string `toml:"textfile"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for collabtopo.
//
// Configuration sections:
//   - Paths: corpus file, output tree, logs, results database
//   - Complex: max dimension, filtration ceiling, counting mode
//   - Dataset: date range, categories, author cap
//   - Windows: window start/end, width and stride in days
//   - Diagram: rendering toggle, manual bounds, image size
//   - Metrics: Prometheus textfile path
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Complex Complex `toml:"complex"`
	Dataset Dataset `toml:"dataset"`
	Windows Windows `toml:"windows"`
	Diagram Diagram `toml:"diagram"`
	Metrics Metrics `toml:"metrics"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, faults.Wrap(faults.ErrConfiguration, "config", "resolve", "", err)
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, faults.Wrap(faults.ErrConfiguration, "config", "open", resolvedPath, err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, faults.Wrap(faults.ErrConfiguration, "config", "parse", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, faults.Wrap(faults.ErrConfiguration, "config", "normalize", "", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Normalize expands paths and fills derived defaults. Callers that modify a
// loaded config (for example from command-line flags) run it again before
// Validate.
func (c *Config) Normalize() error {
	if err := c.normalize(); err != nil {
		return faults.Wrap(faults.ErrConfiguration, "config", "normalize", "", err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output, log, and results directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.OutputDir, c.Paths.LogDir, filepath.Dir(c.Paths.ResultsDB)}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LogFile returns the path of the persistent log file.
func (c *Config) LogFile() string {
	return filepath.Join(c.Paths.LogDir, "collabtopo.log")
}

// DatasetRange returns the half-open publish time range documents must fall in.
func (c *Config) DatasetRange() (time.Time, time.Time, error) {
	start, err := ParseDate(c.Dataset.DateStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("dataset.date_start: %w", err)
	}
	end, err := ParseDate(c.Dataset.DateEnd)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("dataset.date_end: %w", err)
	}
	return start, end, nil
}

// WindowRange returns the first window start and the last admissible start.
// An empty windows.end falls back to dataset.date_end.
func (c *Config) WindowRange() (time.Time, time.Time, error) {
	start, err := ParseDate(c.Windows.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("windows.start: %w", err)
	}
	endValue := c.Windows.End
	if strings.TrimSpace(endValue) == "" {
		endValue = c.Dataset.DateEnd
	}
	end, err := ParseDate(endValue)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("windows.end: %w", err)
	}
	return start, end, nil
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return t, nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
