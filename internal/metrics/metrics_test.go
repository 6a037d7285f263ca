package metrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"collabtopo/internal/metrics"
)

func TestRecordWindowUpdatesCollectors(t *testing.T) {
	m := metrics.New()

	m.RecordSkipped()
	m.RecordWindow(12, 40, []int{3, 1, 0}, 250*time.Millisecond)
	m.RecordWindow(5, 9, []int{2}, 10*time.Millisecond)

	require.Equal(t, 1.0, testutil.ToFloat64(m.WindowsTotal.WithLabelValues("skipped")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.WindowsTotal.WithLabelValues("processed")))
	require.Equal(t, 9.0, testutil.ToFloat64(m.WindowSimplices))
	require.Equal(t, 2.0, testutil.ToFloat64(m.BettiNumber.WithLabelValues("0")))
	// Reset drops dimensions the last window no longer reports.
	require.Equal(t, 1, testutil.CollectAndCount(m.BettiNumber))
}

func TestRecordRun(t *testing.T) {
	m := metrics.New()
	finished := time.Unix(1_700_000_000, 0)

	m.RecordRun("engine", finished)
	require.Equal(t, 0.0, testutil.ToFloat64(m.LastRunSuccessful))
	require.Equal(t, 1.0, testutil.ToFloat64(m.RunFailuresTotal.WithLabelValues("engine")))

	m.RecordRun("", finished)
	require.Equal(t, 1.0, testutil.ToFloat64(m.LastRunSuccessful))
	require.Equal(t, float64(finished.Unix()), testutil.ToFloat64(m.LastRunTimestamp))
}

func TestWriteTextfile(t *testing.T) {
	m := metrics.New()
	m.RecordWindow(1, 1, []int{1}, time.Millisecond)

	path := filepath.Join(t.TempDir(), "collabtopo.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `collabtopo_windows_total{outcome="processed"} 1`))

	require.NoError(t, m.WriteTextfile(""))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	m.RecordSkipped()
	m.RecordWindow(1, 1, nil, 0)
	m.RecordRun("", time.Now())
	require.NoError(t, m.WriteTextfile("ignored"))
}
