package build

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
)

// runTool runs an external tool and returns its error output as an error if it
// fails.
func runTool(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	stderrBuff := bytes.Buffer{}
	cmd.Stderr = &stderrBuff

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderrBuff.String()); msg != "" {
			return errors.New(msg)
		}

		return err
	}

	return nil
}
