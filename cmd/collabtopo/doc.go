// Package main hosts the collabtopo CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, applies command-line
// overrides, and hands off to the pipeline, corpus, and results packages.
// Commands here only parse flags and render output; the analysis itself
// lives in internal packages so it can be reused and tested directly.
package main
