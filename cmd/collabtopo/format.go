package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// formatBetti renders Betti numbers as "H0=1 H1=2".
func formatBetti(betti []int) string {
	if len(betti) == 0 {
		return "-"
	}
	parts := make([]string, len(betti))
	for i, b := range betti {
		parts[i] = fmt.Sprintf("H%d=%d", i, b)
	}
	return strings.Join(parts, " ")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.DateOnly)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Millisecond).String()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
