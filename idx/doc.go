// Package idx reads and writes the IDX binary format used by the MNIST
// distribution.
//
// An IDX file starts with a big-endian 32-bit magic number whose third byte
// is the element type and whose fourth byte is the number of dimensions,
// followed by one big-endian 32-bit size per dimension and the raw elements.
// Only unsigned byte elements (type 0x08) are supported:
//
//	labels: 0x00000801 count
//	images: 0x00000803 count rows cols
//
// Compressed inputs (gzip, zstd, lz4 frames) are detected by their leading
// bytes, see Decompress.
package idx
