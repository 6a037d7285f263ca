// Package results persists pipeline runs in SQLite.
//
// Every run gets a UUID row in runs; each processed window stores its
// document, vertex and simplex counts, Betti numbers and persistence pairs.
// The store backs the report and runs commands and keeps the full Betti time
// series instead of only the last window. A file lock on the output root
// keeps two runs from writing the same tree concurrently.
package results
