//go:build !windows

package mmap

import (
	"os"

	"golang.org/x/sys/unix"
)

// mmap maps f read-only. IDX files are decoded front to back, so the kernel
// is told to read ahead aggressively.
func mmap(f *os.File, size int) ([]byte, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
	return data, nil
}

func munmap(data []byte) error {
	return unix.Munmap(data)
}
