// Package conv provides safe integer conversions for untrusted file headers.
//
// IDX headers carry 32-bit unsigned counts and dimensions. Converting them to
// int and multiplying them into buffer sizes must never wrap silently.
package conv
