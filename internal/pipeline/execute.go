package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"collabtopo/internal/config"
	"collabtopo/internal/corpus"
	"collabtopo/internal/faults"
	"collabtopo/internal/logging"
	"collabtopo/internal/metrics"
	"collabtopo/internal/persistence"
	"collabtopo/internal/results"
)

// ExecuteParams carries the collaborators of a full run. Zero fields get
// defaults: a reduction engine, a no-op logger, and no progress output.
type ExecuteParams struct {
	Config   *config.Config
	Logger   *slog.Logger
	Engine   persistence.Engine
	Progress Progress
	Clock    func() time.Time
}

// Execute runs the whole pipeline for a configuration: it loads the corpus,
// locks the output directory, records the run in the results store,
// processes every window, and exports metrics.
func Execute(ctx context.Context, params ExecuteParams) (*Summary, *results.Run, error) {
	cfg := params.Config
	if cfg == nil {
		return nil, nil, faults.Wrap(faults.ErrConfiguration, "pipeline", "execute", "configuration is required", nil)
	}
	logger := logging.NewComponentLogger(params.Logger, "run")

	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	loaded, err := corpus.Load(cfg.Paths.DataFile)
	if err != nil {
		return nil, nil, err
	}
	// Windows filter by their own interval only; the dataset range bounds
	// window starts, not the documents a window sees.
	info := loaded.Describe(opts.DatasetQuery())
	logger.Info("corpus loaded",
		logging.String("source", loaded.Source()),
		logging.Int("documents", loaded.Len()),
		logging.Int("in_dataset_range", info.NumDocuments),
		logging.String("categories", info.CategoryLabel()),
	)

	engine := params.Engine
	if engine == nil {
		engine = persistence.NewReductionEngine(cfg.Complex.MinPersistence)
	}

	lock, err := results.AcquireLock(cfg.Paths.OutputDir)
	if err != nil {
		return nil, nil, faults.Wrap(faults.ErrStorage, "results", "lock output", cfg.Paths.OutputDir, err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logging.WarnWithContext(logger, "failed to release output lock", "lock_release_failed",
				logging.String("lock", lock.Path()),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "remove the lock file if no run is active"),
			)
		}
	}()

	store, err := results.Open(cfg.Paths.ResultsDB)
	if err != nil {
		return nil, nil, faults.Wrap(faults.ErrStorage, "results", "open", cfg.Paths.ResultsDB, err)
	}
	defer store.Close()

	m := metrics.New()
	options := []Option{
		WithLogger(params.Logger),
		WithRecorder(store),
		WithMetrics(m),
		WithProgress(params.Progress),
	}
	if params.Clock != nil {
		options = append(options, WithClock(params.Clock))
	}
	p, err := New(opts, loaded, engine, options...)
	if err != nil {
		return nil, nil, err
	}

	snapshot, err := json.Marshal(cfg)
	if err != nil {
		return nil, nil, faults.Wrap(faults.ErrConfiguration, "pipeline", "snapshot config", "", err)
	}
	run, err := store.BeginRun(ctx, results.RunSpec{
		DataFile:   cfg.Paths.DataFile,
		OutputDir:  cfg.Paths.OutputDir,
		ConfigJSON: string(snapshot),
	})
	if err != nil {
		return nil, nil, faults.Wrap(faults.ErrStorage, "results", "begin run", "", err)
	}
	ctx = logging.WithRunID(ctx, run.ID)

	summary, runErr := p.Run(ctx, run.ID)

	status := results.StatusCompleted
	switch {
	case runErr == nil:
	case IsCanceled(runErr):
		status = results.StatusCanceled
	default:
		status = results.StatusFailed
	}
	var processed, skipped int
	if summary != nil {
		processed, skipped = summary.Processed, summary.Skipped
	}
	if err := store.FinishRun(context.WithoutCancel(ctx), run.ID, status, processed, skipped, runErr); err != nil {
		logging.WarnWithContext(logger, "failed to record run outcome", "run_finish_failed",
			logging.String(logging.FieldRunID, run.ID),
			logging.Error(err),
			logging.String(logging.FieldImpact, "runs listing shows the run as still running"),
		)
	}
	if finished, err := store.GetRun(context.WithoutCancel(ctx), run.ID); err == nil {
		run = finished
	}

	m.RecordRun(faults.Kind(runErr), time.Now())
	if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logging.WarnWithContext(logger, "failed to write metrics textfile", "metrics_write_failed",
			logging.String("path", cfg.Metrics.Textfile),
			logging.Error(err),
			logging.String(logging.FieldImpact, "metrics for this run are not exported"),
		)
	}

	return summary, run, runErr
}
