// Package resource bounds what dataset loading may consume.
//
// A Controller enforces three independent limits:
//
//   - Memory: decoded bytes reserved with AcquireMemory. Reservation is
//     non-blocking; a request over the limit fails with ErrMemoryLimitExceeded.
//   - Fetches: the number of blobs read at the same time (AcquireFetch).
//   - IO: bytes per second read through a Reader returned by NewReader.
//
// A zero limit disables the corresponding check. All methods are safe on a
// nil *Controller, which imposes no limits.
package resource
