//go:build !unix

package interp

import (
	"fmt"
	"os"
)

// SysWriter is an FDWriter that writes to the standard streams of the current
// process.  Only file descriptors 1 and 2 are available on this platform.
type SysWriter struct{}

// WriteFD implements FDWriter.
func (SysWriter) WriteFD(fd int32, p []byte) error {
	switch fd {
	case 1:
		_, err := os.Stdout.Write(p)
		return err
	case 2:
		_, err := os.Stderr.Write(p)
		return err
	default:
		return fmt.Errorf("file descriptor %d is not available", fd)
	}
}
