//go:build unix

package interp

import (
	"golang.org/x/sys/unix"
)

// SysWriter is an FDWriter that writes directly to the file descriptors of the
// current process.
type SysWriter struct{}

// WriteFD implements FDWriter.
func (SysWriter) WriteFD(fd int32, p []byte) error {
	for len(p) > 0 {
		n, err := unix.Write(int(fd), p)
		if err == unix.EINTR {
			continue
		} else if err != nil {
			return err
		}

		p = p[n:]
	}

	return nil
}
