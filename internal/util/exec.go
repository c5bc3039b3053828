package util

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/ufispace/onlp2go/internal/ui"
)

// Runner executes a command and returns its trimmed stdout.
// Tests replace it with canned output.
type Runner func(executable string, args []string, timeout time.Duration) (string, error)

func SafeCmdExecution(executable string, args []string, timeout time.Duration) (string, error) {
	path, err := exec.LookPath(executable)
	if err != nil {
		return "", fmt.Errorf("cannot find %s: %w", executable, err)
	}
	if _, err := CheckFilePermissionsForExecution(path); err != nil {
		return "", errors.New(fmt.Sprintf("Cannot execute %s: %s", path, err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, args...)
	out, err := cmd.Output()

	if ctx.Err() == context.DeadlineExceeded {
		ui.Warning("Command timed out: %s", executable)
		return "", fmt.Errorf("%s timed out after %s", executable, timeout)
	}

	if err != nil {
		ui.Debug("Command failed to execute: %s %s: %v", executable, strings.Join(args, " "), err)
		return "", err
	}

	strout := string(out)
	strout = strings.Trim(strout, "\r\n")

	return strout, nil
}

// LastLine returns the last non empty line of a command output
func LastLine(output string) string {
	lines := strings.Split(strings.TrimRight(output, "\r\n"), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.Trim(lines[i], "\r\n")
		if len(line) > 0 {
			return line
		}
	}
	return ""
}
