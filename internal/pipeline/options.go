package pipeline

import (
	"time"

	"collabtopo/internal/config"
	"collabtopo/internal/corpus"
	"collabtopo/internal/diagram"
	"collabtopo/internal/faults"
	"collabtopo/internal/simplex"
	"collabtopo/internal/window"
)

// Options are the resolved, immutable parameters of one run.
type Options struct {
	MaxDimension   int
	Counting       simplex.CountingMode
	Ceiling        float64
	MinPersistence float64

	Selection    corpus.Selection
	MaxAuthors   int
	DatasetStart time.Time
	DatasetEnd   time.Time

	WindowStart time.Time
	WindowEnd   time.Time
	Width       time.Duration
	Stride      time.Duration

	OutputDir   string
	Diagrams    bool
	Bounds      diagram.Bounds
	DiagramSize diagram.Size
}

// OptionsFromConfig converts a validated configuration into run options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	wrap := func(err error) error {
		return faults.Wrap(faults.ErrConfiguration, "pipeline", "options", "", err)
	}
	counting, err := simplex.ParseCountingMode(cfg.Complex.FaceCounting)
	if err != nil {
		return Options{}, wrap(err)
	}
	selection, err := corpus.ParseSelection(cfg.Dataset.Categories)
	if err != nil {
		return Options{}, wrap(err)
	}
	datasetStart, datasetEnd, err := cfg.DatasetRange()
	if err != nil {
		return Options{}, wrap(err)
	}
	windowStart, windowEnd, err := cfg.WindowRange()
	if err != nil {
		return Options{}, wrap(err)
	}

	return Options{
		MaxDimension:   cfg.Complex.MaxDimension,
		Counting:       counting,
		Ceiling:        cfg.Complex.FiltrationCeiling,
		MinPersistence: cfg.Complex.MinPersistence,
		Selection:      selection,
		MaxAuthors:     cfg.Dataset.MaxAuthors,
		DatasetStart:   datasetStart,
		DatasetEnd:     datasetEnd,
		WindowStart:    windowStart,
		WindowEnd:      windowEnd,
		Width:          window.Days(cfg.Windows.WidthDays),
		Stride:         window.Days(cfg.Windows.StrideDays),
		OutputDir:      cfg.Paths.OutputDir,
		Diagrams:       cfg.Diagram.Enabled,
		Bounds: diagram.Bounds{
			XMin: cfg.Diagram.XMin,
			XMax: cfg.Diagram.XMax,
			YMin: cfg.Diagram.YMin,
			YMax: cfg.Diagram.YMax,
		},
		DiagramSize: diagram.Size{
			Width:  diagram.SquareInches(cfg.Diagram.WidthInches).Width,
			Height: diagram.SquareInches(cfg.Diagram.HeightInches).Height,
		},
	}, nil
}

// Windows generates the window sequence for these options.
func (o Options) Windows() ([]window.Window, error) {
	wins, err := window.Generate(o.WindowStart, o.WindowEnd, o.Width, o.Stride)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "window", "generate", "", err)
	}
	return wins, nil
}

// DatasetQuery selects the documents the dataset summary reports on.
func (o Options) DatasetQuery() corpus.Query {
	return corpus.Query{
		Selection:  o.Selection,
		Interval:   window.Window{Start: o.DatasetStart, End: o.DatasetEnd},
		MaxAuthors: o.MaxAuthors,
	}
}
