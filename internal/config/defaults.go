package config

const (
	defaultConfigPath        = "~/.config/collabtopo/config.toml"
	projectConfigName        = "collabtopo.toml"
	defaultDataFile          = "data/documents.csv"
	defaultOutputDir         = "output"
	defaultLogDir            = "~/.local/share/collabtopo/logs"
	defaultResultsDBName     = "results.db"
	defaultMaxDimension      = 2
	defaultFiltrationCeiling = 50.0
	defaultFaceCounting      = "literal"
	defaultDatasetStart      = "1900-01-01"
	defaultDatasetEnd        = "2025-01-01"
	defaultMaxAuthors        = 10
	defaultWindowStart       = "2008-01-01"
	defaultWidthDays         = 365
	defaultStrideDays        = 30
	defaultDiagramInches     = 6.0
	defaultDiagramMin        = 0.0
	defaultDiagramMax        = 50.0
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataFile:  defaultDataFile,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Complex: Complex{
			MaxDimension:      defaultMaxDimension,
			FiltrationCeiling: defaultFiltrationCeiling,
			FaceCounting:      defaultFaceCounting,
		},
		Dataset: Dataset{
			DateStart:  defaultDatasetStart,
			DateEnd:    defaultDatasetEnd,
			MaxAuthors: defaultMaxAuthors,
		},
		Windows: Windows{
			Start:      defaultWindowStart,
			WidthDays:  defaultWidthDays,
			StrideDays: defaultStrideDays,
		},
		Diagram: Diagram{
			Enabled:      true,
			XMin:         float64Ptr(defaultDiagramMin),
			XMax:         float64Ptr(defaultDiagramMax),
			YMin:         float64Ptr(defaultDiagramMin),
			YMax:         float64Ptr(defaultDiagramMax),
			WidthInches:  defaultDiagramInches,
			HeightInches: defaultDiagramInches,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func float64Ptr(v float64) *float64 {
	return &v
}
