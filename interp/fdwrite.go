package interp

import (
	"fmt"
	"io"
)

// FDWriter writes bytes to numbered file descriptors.
type FDWriter interface {
	// WriteFD writes all of p to file descriptor fd.
	WriteFD(fd int32, p []byte) error
}

// MapWriter is an FDWriter that routes each file descriptor to an io.Writer.
// Writes to file descriptors with no writer fail.
type MapWriter map[int32]io.Writer

// WriteFD implements FDWriter.
func (mw MapWriter) WriteFD(fd int32, p []byte) error {
	w, ok := mw[fd]
	if !ok {
		return fmt.Errorf("bad file descriptor")
	}

	_, err := w.Write(p)
	return err
}
