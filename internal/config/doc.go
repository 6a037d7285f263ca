// Package config loads, normalizes, and validates collabtopo configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type replaces the handful of
// module-level knobs a run needs: corpus location, complex dimension and
// counting mode, dataset filters, the window schedule, and diagram bounds.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, parsed dates, and errors tagged as configuration failures.
package config
