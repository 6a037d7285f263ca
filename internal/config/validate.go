package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"collabtopo/internal/corpus"
	"collabtopo/internal/faults"
	"collabtopo/internal/simplex"
)

// Validate ensures the configuration is usable. Every failure carries
// faults.ErrConfiguration.
func (c *Config) Validate() error {
	checks := []func() error{
		c.validatePaths,
		c.validateComplex,
		c.validateDataset,
		c.validateWindows,
		c.validateDiagram,
		c.validateLogging,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return faults.Wrap(faults.ErrConfiguration, "config", "validate", "", err)
		}
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataFile) == "" {
		return errors.New("paths.data_file must be set")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateComplex() error {
	if c.Complex.MaxDimension < 0 {
		return fmt.Errorf("complex.max_dimension must be >= 0, got %d", c.Complex.MaxDimension)
	}
	if math.IsNaN(c.Complex.FiltrationCeiling) || math.IsInf(c.Complex.FiltrationCeiling, 0) {
		return errors.New("complex.filtration_ceiling must be finite")
	}
	if _, err := simplex.ParseCountingMode(c.Complex.FaceCounting); err != nil {
		return fmt.Errorf("complex.face_counting: %w", err)
	}
	if math.IsNaN(c.Complex.MinPersistence) {
		return errors.New("complex.min_persistence must be a number")
	}
	return nil
}

func (c *Config) validateDataset() error {
	start, end, err := c.DatasetRange()
	if err != nil {
		return err
	}
	if !end.After(start) {
		return errors.New("dataset.date_end must be after dataset.date_start")
	}
	if _, err := corpus.ParseSelection(c.Dataset.Categories); err != nil {
		return fmt.Errorf("dataset.categories: %w", err)
	}
	if c.Dataset.MaxAuthors < 0 {
		return errors.New("dataset.max_authors must be >= 0 (0 disables the cap)")
	}
	return nil
}

func (c *Config) validateWindows() error {
	start, end, err := c.WindowRange()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return errors.New("windows.end must not be before windows.start")
	}
	if c.Windows.WidthDays <= 0 {
		return errors.New("windows.width_days must be positive")
	}
	if c.Windows.StrideDays <= 0 {
		return errors.New("windows.stride_days must be positive")
	}
	return nil
}

func (c *Config) validateDiagram() error {
	bounds := map[string]*float64{
		"diagram.x_min": c.Diagram.XMin,
		"diagram.x_max": c.Diagram.XMax,
		"diagram.y_min": c.Diagram.YMin,
		"diagram.y_max": c.Diagram.YMax,
	}
	for key, value := range bounds {
		if value != nil && (math.IsNaN(*value) || math.IsInf(*value, 0)) {
			return fmt.Errorf("%s must be finite", key)
		}
	}
	if c.Diagram.XMin != nil && c.Diagram.XMax != nil && *c.Diagram.XMax <= *c.Diagram.XMin {
		return errors.New("diagram.x_max must be greater than diagram.x_min")
	}
	if c.Diagram.YMin != nil && c.Diagram.YMax != nil && *c.Diagram.YMax <= *c.Diagram.YMin {
		return errors.New("diagram.y_max must be greater than diagram.y_min")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
}
