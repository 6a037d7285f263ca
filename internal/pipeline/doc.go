// Package pipeline drives a run over the sliding window sequence.
//
// For every window, in order, it selects the documents published inside the
// window, skips the window silently when none qualify, and otherwise counts
// co-authorship faces, assembles the filtered complex, computes persistence,
// renders the diagram, and records the outcome. Windows are processed one at
// a time and all per-window structures are dropped before the next window.
//
// Execute wraps a Pipeline with the surrounding run lifecycle: corpus load,
// output directory lock, results store bookkeeping, and metrics export.
package pipeline
