// Package dpkg wraps the external Debian packaging tools the build pipeline
// shells out to: dpkg for architecture detection, dpkg-shlibdeps for shared
// library dependency resolution and dpkg-deb for the final archive assembly.
package dpkg

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external tool. It exists so the pipeline can be
// exercised in tests without the dpkg suite installed.
type Runner interface {
	// Run executes name with args in dir (empty dir means the caller's
	// working directory) and returns the captured standard output. A
	// non-zero exit is reported as an error.
	Run(dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs tools with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(dir, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	return cmd.Output()
}

// describe formats a failed invocation, folding in the standard error capture
// that exec.Cmd.Output attaches on non-zero exits.
func describe(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if msg := strings.TrimSpace(string(exitErr.Stderr)); msg != "" {
			return fmt.Sprintf("%v: %s", err, msg)
		}
	}
	return err.Error()
}
