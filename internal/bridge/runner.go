package bridge

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner abstracts executing the bridge binary.
// Implementations may call the real adb binary or simulate output in tests.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// ExecRunner executes the configured adb binary as a subprocess.
type ExecRunner struct {
	ADBBin  string
	Timeout time.Duration // per invocation; zero means no timeout
}

// NewExecRunner creates an ExecRunner for the given binary path.
// An empty path falls back to "adb" resolved via PATH.
func NewExecRunner(adbBin string, timeout time.Duration) *ExecRunner {
	if strings.TrimSpace(adbBin) == "" {
		adbBin = "adb"
	}
	return &ExecRunner{ADBBin: adbBin, Timeout: timeout}
}

// Run invokes the binary and returns its normalized stdout.
// Device shells emit CRLF (and sometimes CRCRLF) line endings; all carriage
// returns are stripped before the output is returned.
func (e *ExecRunner) Run(ctx context.Context, args ...string) (string, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.ADBBin, args...)
	var out bytes.Buffer
	var errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(errb.String())
		if msg == "" {
			msg = strings.TrimSpace(out.String())
		}
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("adb %s: %s", summarizeArgs(args), msg)
	}

	return normalizeOutput(out.String()), nil
}

// summarizeArgs returns the leading subcommand tokens for error messages,
// stopping before shell scripts and paths.
func summarizeArgs(args []string) string {
	safe := make([]string, 0, 2)
	for _, a := range args {
		if strings.ContainsAny(a, " '\"/") {
			break
		}
		safe = append(safe, a)
		if len(safe) == 2 {
			break
		}
	}
	if len(safe) == 0 {
		return "<args>"
	}
	return strings.Join(safe, " ")
}
