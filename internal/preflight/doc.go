// Package preflight provides readiness checks for the filesystem paths a
// run depends on.
//
// The CLI "collabtopo check" command runs RunAll and prints one line per
// check. Checks never modify state they do not own: the lock check releases
// immediately and the results check only opens an existing database.
package preflight
