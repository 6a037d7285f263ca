package pipeline

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"collabtopo/internal/logging"
)

// Progress receives window progress events.
type Progress interface {
	Start(total int)
	Advance(label string)
	Finish()
}

// NewProgress draws a progress bar when out is a terminal and falls back to
// sampled log lines otherwise.
func NewProgress(out io.Writer, logger *slog.Logger) Progress {
	if f, ok := out.(*os.File); ok && shouldDrawBar(f) {
		return &barProgress{out: out}
	}
	return &logProgress{logger: logging.NewComponentLogger(logger, "progress"), sampler: logging.NewProgressSampler(10)}
}

func shouldDrawBar(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type barProgress struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

func (b *barProgress) Start(total int) {
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.out),
		progressbar.OptionSetDescription("windows"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

func (b *barProgress) Advance(label string) {
	if b.bar == nil {
		return
	}
	b.bar.Describe(label)
	_ = b.bar.Add(1)
}

func (b *barProgress) Finish() {
	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
}

type logProgress struct {
	logger  *slog.Logger
	sampler *logging.ProgressSampler
	total   int
	done    int
}

func (l *logProgress) Start(total int) {
	l.total = total
	l.done = 0
	l.sampler.Reset()
}

func (l *logProgress) Advance(label string) {
	l.done++
	if l.total <= 0 {
		return
	}
	percent := float64(l.done) * 100 / float64(l.total)
	if !l.sampler.ShouldLog(percent, "windows") {
		return
	}
	l.logger.Info("window progress",
		logging.Int("done", l.done),
		logging.Int("total", l.total),
		logging.Float64("percent", percent),
		logging.String("window", label),
	)
}

func (l *logProgress) Finish() {}

type nopProgress struct{}

func (nopProgress) Start(int)      {}
func (nopProgress) Advance(string) {}
func (nopProgress) Finish()        {}
