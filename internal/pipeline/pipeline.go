package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"collabtopo/internal/corpus"
	"collabtopo/internal/diagram"
	"collabtopo/internal/faults"
	"collabtopo/internal/logging"
	"collabtopo/internal/metrics"
	"collabtopo/internal/persistence"
	"collabtopo/internal/results"
	"collabtopo/internal/simplex"
	"collabtopo/internal/window"
)

// RunDirLayout names per-run output directories.
const RunDirLayout = "20060102_150405"

const defaultDiagramInches = 6

// Recorder persists processed windows.
type Recorder interface {
	RecordWindow(ctx context.Context, runID string, seq int, rec results.WindowRecord) error
}

// WindowResult is the outcome of one non-empty window.
type WindowResult struct {
	Window      window.Window
	Documents   int
	Vertices    int
	Simplices   int
	Dimension   int
	Pairs       []persistence.Pair
	Betti       persistence.Betti
	DiagramPath string
	Duration    time.Duration
}

// Summary describes a finished (or aborted) run.
type Summary struct {
	RunID     string
	RunDir    string
	Windows   []WindowResult
	Total     int
	Processed int
	Skipped   int
}

// Final returns the last processed window, the snapshot a run reports as its
// result. ok is false when every window was empty.
func (s *Summary) Final() (WindowResult, bool) {
	if s == nil || len(s.Windows) == 0 {
		return WindowResult{}, false
	}
	return s.Windows[len(s.Windows)-1], true
}

// Pipeline processes the window sequence of one run.
type Pipeline struct {
	opts       Options
	docs       *corpus.Corpus
	engine     persistence.Engine
	enumerator *simplex.Enumerator
	logger     *slog.Logger
	recorder   Recorder
	metrics    *metrics.Metrics
	progress   Progress
	now        func() time.Time
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithRecorder stores every processed window.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithMetrics records per-window metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithProgress reports window progress.
func WithProgress(progress Progress) Option {
	return func(p *Pipeline) { p.progress = progress }
}

// WithClock overrides the clock used to name the run directory.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New validates the options and builds a pipeline. An invalid max dimension
// is a fatal configuration error reported before any window is processed.
func New(opts Options, docs *corpus.Corpus, engine persistence.Engine, options ...Option) (*Pipeline, error) {
	enumerator, err := simplex.NewEnumerator(opts.MaxDimension, opts.Counting)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "pipeline", "new", "", err)
	}
	if engine == nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "pipeline", "new", "persistence engine is required", nil)
	}
	if docs == nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "pipeline", "new", "corpus is required", nil)
	}
	if opts.Width <= 0 || opts.Stride <= 0 {
		return nil, faults.Wrap(faults.ErrConfiguration, "pipeline", "new", "window width and stride must be positive", nil)
	}

	if opts.DiagramSize.Width <= 0 || opts.DiagramSize.Height <= 0 {
		opts.DiagramSize = diagram.SquareInches(defaultDiagramInches)
	}

	p := &Pipeline{
		opts:       opts,
		docs:       docs,
		engine:     engine,
		enumerator: enumerator,
		now:        time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.logger = logging.NewComponentLogger(p.logger, "pipeline")
	if p.progress == nil {
		p.progress = nopProgress{}
	}
	return p, nil
}

// Run processes every window in order. Cancellation is honoured between
// windows; a window that has started always completes. The returned summary
// covers the windows visited so far even when an error is returned.
func (p *Pipeline) Run(ctx context.Context, runID string) (*Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.WithContext(ctx, p.logger)

	wins, err := p.opts.Windows()
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:  runID,
		RunDir: filepath.Join(p.opts.OutputDir, p.now().UTC().Format(RunDirLayout)),
		Total:  len(wins),
	}
	if err := os.MkdirAll(summary.RunDir, 0o755); err != nil {
		return summary, faults.Wrap(faults.ErrRender, "pipeline", "create run directory", summary.RunDir, err)
	}

	logger.Info("run started",
		logging.String("run_dir", summary.RunDir),
		logging.Int("windows", len(wins)),
		logging.Int("documents", p.docs.Len()),
		logging.Int("max_dimension", p.opts.MaxDimension),
		logging.String("face_counting", string(p.opts.Counting)),
	)

	p.progress.Start(len(wins))
	defer p.progress.Finish()

	for seq, w := range wins {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		docs := p.docs.Filter(corpus.Query{
			Selection:  p.opts.Selection,
			Interval:   w,
			MaxAuthors: p.opts.MaxAuthors,
		})
		if len(docs) == 0 {
			summary.Skipped++
			p.metrics.RecordSkipped()
			logger.Debug("window empty, skipped", logging.Args(logging.Window(w.Start, w.End)...)...)
			p.progress.Advance(w.String())
			continue
		}

		// A started window finishes, including its record, even if ctx is canceled meanwhile.
		windowCtx := context.WithoutCancel(ctx)
		result, err := p.processWindow(windowCtx, summary.RunDir, w, docs)
		if err != nil {
			logging.ErrorWithContext(logger, "window failed", "window_failed",
				append(logging.Window(w.Start, w.End),
					logging.String("error_kind", faults.Kind(err)),
					logging.Error(err),
				)...,
			)
			return summary, err
		}
		if p.recorder != nil {
			if err := p.recorder.RecordWindow(windowCtx, runID, seq, result.record()); err != nil {
				return summary, faults.Wrap(faults.ErrStorage, "results", "record window", w.String(), err)
			}
		}
		p.metrics.RecordWindow(result.Documents, result.Simplices, result.Betti, result.Duration)

		summary.Windows = append(summary.Windows, result)
		summary.Processed++
		logger.Info("window processed", logging.Args(append(logging.Window(w.Start, w.End),
			logging.Int("documents", result.Documents),
			logging.Int("simplices", result.Simplices),
			logging.Any("betti", []int(result.Betti)),
			logging.Duration("elapsed", result.Duration),
		)...)...)
		p.progress.Advance(w.String())
	}

	logger.Info("run finished",
		logging.Int("processed", summary.Processed),
		logging.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

func (p *Pipeline) processWindow(ctx context.Context, runDir string, w window.Window, docs []corpus.Document) (WindowResult, error) {
	started := time.Now()

	counts := p.enumerator.Count(corpus.AuthorSets(docs))
	cx, err := simplex.Assemble(counts, p.opts.Ceiling, p.opts.MaxDimension)
	if err != nil {
		return WindowResult{}, faults.Wrap(faults.ErrEngine, "complex", "assemble", w.String(), err)
	}

	res, err := p.engine.Compute(ctx, cx)
	if err != nil {
		return WindowResult{}, faults.Wrap(faults.ErrEngine, "persistence", "compute", w.String(), err)
	}

	result := WindowResult{
		Window:    w,
		Documents: len(docs),
		Vertices:  cx.NumVertices(),
		Simplices: cx.NumSimplices(),
		Dimension: cx.Dimension(),
		Pairs:     res.Pairs,
		Betti:     res.Betti,
	}

	if p.opts.Diagrams {
		path := filepath.Join(runDir, DiagramFileName(w))
		plan := diagram.Build(res.Pairs, p.opts.Bounds)
		if err := diagram.Save(plan, p.opts.DiagramSize, path); err != nil {
			return WindowResult{}, faults.Wrap(faults.ErrRender, "diagram", "save", path, err)
		}
		result.DiagramPath = path
	}

	result.Duration = time.Since(started)
	return result, nil
}

func (r WindowResult) record() results.WindowRecord {
	return results.WindowRecord{
		Start:       r.Window.Start,
		End:         r.Window.End,
		Documents:   r.Documents,
		Vertices:    r.Vertices,
		Simplices:   r.Simplices,
		Betti:       r.Betti,
		Pairs:       r.Pairs,
		DiagramPath: r.DiagramPath,
	}
}

// DiagramFileName names the diagram of a window after its start date,
// without zero padding: persistence_diagram_2008_1_1.png.
func DiagramFileName(w window.Window) string {
	return fmt.Sprintf("persistence_diagram_%s.png", w.Label())
}

// IsCanceled reports whether err stems from context cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
