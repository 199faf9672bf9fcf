// Package mmap provides read-only memory-mapped file access for zero-copy I/O.
//
// # Usage
//
//	m, err := mmap.Open("train-images.idx3-ubyte")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) via golang.org/x/sys/unix
//   - Windows: CreateFileMapping/MapViewOfFile
//
// Callers must not touch Bytes() after Close() returns.
package mmap
