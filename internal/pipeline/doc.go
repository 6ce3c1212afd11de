// Package pipeline orchestrates slide discovery, per-file processing, and
// batch summary reporting.
//
// A run is strictly sequential: discover → for each file:
// parse name → build payload → validate → upload (or dry-run) → update
// stats. A file that fails any step is counted and the run moves on; only
// cancellation of the context stops it early.
package pipeline
