// Package window generates the fixed-width sliding time windows analysed by
// the pipeline.
//
// Windows are half-open intervals [Start, End). Generation is eager, pure, and
// deterministic: the same parameters always yield the same ordered sequence.
// Empty or out-of-range windows are kept; filtering documents is the corpus
// package's job.
package window
