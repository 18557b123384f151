// Package ppm reads, transforms, and writes plain-text PPM (P3) images.
//
// The package is the pure core of the editor. It knows nothing about files,
// terminals, or processes; it works on an io.Reader handed to Read and an
// io.Writer handed to Write.
//
// # Pixel Grid
//
// A Grid holds rows × (cols*3) channel values. Each consecutive triple in a
// row is one pixel's red, green, and blue intensity in the range 0-255:
//
//	row 0: R G B R G B ...
//	row 1: R G B R G B ...
//
// # Two Failure Channels
//
// Callers must be able to tell a bad user file from caller misuse, so the
// package reports them differently:
//
//   - Contract violations (a nil grid, a malformed shape, a nil stream or
//     sink) are returned as errors wrapping one of the Err* sentinels.
//     Check them with errors.Is.
//   - Invalid file contents (wrong tag, bad header, short or out-of-range
//     data) are reported by Read through Result.Invalid. Read never returns
//     an error for bad data.
//
// # Transforms
//
// Invert, HighContrast, and Grayscale validate the grid and then rewrite
// every channel in place. They allocate nothing.
//
// # Thread Safety
//
// A Grid is a plain slice of slices and carries no locking. A single
// read-transform-write pipeline owns it exclusively.
package ppm
