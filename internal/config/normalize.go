package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeComplex()
	c.normalizeDataset()
	c.normalizeWindows()
	c.normalizeDiagram()
	if err := c.normalizeMetrics(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataFile) == "" {
		c.Paths.DataFile = defaultDataFile
	}
	if c.Paths.DataFile, err = expandPath(c.Paths.DataFile); err != nil {
		return fmt.Errorf("paths.data_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ResultsDB) == "" {
		c.Paths.ResultsDB = filepath.Join(c.Paths.OutputDir, defaultResultsDBName)
	}
	if c.Paths.ResultsDB, err = expandPath(c.Paths.ResultsDB); err != nil {
		return fmt.Errorf("paths.results_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeComplex() {
	c.Complex.FaceCounting = strings.ToLower(strings.TrimSpace(c.Complex.FaceCounting))
	if c.Complex.FaceCounting == "" {
		c.Complex.FaceCounting = defaultFaceCounting
	}
}

func (c *Config) normalizeDataset() {
	c.Dataset.DateStart = strings.TrimSpace(c.Dataset.DateStart)
	if c.Dataset.DateStart == "" {
		c.Dataset.DateStart = defaultDatasetStart
	}
	c.Dataset.DateEnd = strings.TrimSpace(c.Dataset.DateEnd)
	if c.Dataset.DateEnd == "" {
		c.Dataset.DateEnd = defaultDatasetEnd
	}
	if len(c.Dataset.Categories) == 0 {
		return
	}
	cats := make([]string, 0, len(c.Dataset.Categories))
	seen := make(map[string]struct{}, len(c.Dataset.Categories))
	for _, cat := range c.Dataset.Categories {
		trimmed := strings.TrimSpace(cat)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		cats = append(cats, trimmed)
	}
	c.Dataset.Categories = cats
}

func (c *Config) normalizeWindows() {
	c.Windows.Start = strings.TrimSpace(c.Windows.Start)
	if c.Windows.Start == "" {
		c.Windows.Start = defaultWindowStart
	}
	c.Windows.End = strings.TrimSpace(c.Windows.End)
	if c.Windows.End == "" {
		c.Windows.End = c.Dataset.DateEnd
	}
}

func (c *Config) normalizeDiagram() {
	if c.Diagram.AutoBounds {
		c.Diagram.XMin, c.Diagram.XMax, c.Diagram.YMin, c.Diagram.YMax = nil, nil, nil, nil
	}
	if c.Diagram.WidthInches <= 0 {
		c.Diagram.WidthInches = defaultDiagramInches
	}
	if c.Diagram.HeightInches <= 0 {
		c.Diagram.HeightInches = c.Diagram.WidthInches
	}
}

func (c *Config) normalizeMetrics() error {
	c.Metrics.Textfile = strings.TrimSpace(c.Metrics.Textfile)
	if c.Metrics.Textfile == "" {
		return nil
	}
	var err error
	if c.Metrics.Textfile, err = expandPath(c.Metrics.Textfile); err != nil {
		return fmt.Errorf("metrics.textfile: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
