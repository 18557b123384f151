// Package imaging connects PPM grids to the file system and summarizes their
// color content.
//
// The ppm package works on streams only. This package opens and closes the
// files around it, caches decoded grids for repeated lookups, and derives
// color statistics for reporting.
//
// # Error Handling
//
// ReadFile and Validate keep the two ppm failure channels apart: a file that
// cannot be opened or read is an error, while a readable file with bad
// contents comes back as a result describing what was wrong. GridCache.Load
// and LoadImageInfo fold bad contents into an *InvalidImageError so they can
// return a single error.
//
// # Thread Safety
//
// GridCache is safe for concurrent use. Summarize and the file helpers hold
// no shared state.
package imaging
