package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	guperrors "gitup.dev/gitup/internal/errors"
)

// Status describes whether a working git binary is available on the host.
type Status struct {
	Installed bool
	Version   string
}

// Detect probes for a usable git binary by running `git --version`.
//
// A binary that is missing from PATH and a binary that exits non-zero are both
// reported as not installed. Only a probe that cannot run at all (for example
// the subprocess could not be spawned, or the bounded wait expired) returns an
// error.
func Detect(ctx context.Context) (Status, error) {
	if _, err := exec.LookPath(gitBinary); err != nil {
		return Status{}, nil
	}

	out, err := RunGitCommand(ctx, "--version")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Status{}, nil
		}
		if errors.Is(err, exec.ErrNotFound) {
			return Status{}, nil
		}
		return Status{}, fmt.Errorf("%w: %v", guperrors.ErrDetection, err)
	}

	return Status{Installed: true, Version: parseVersion(out)}, nil
}

// parseVersion extracts the version number from `git --version` output,
// e.g. "git version 2.43.0" -> "2.43.0". Unexpected shapes are passed
// through verbatim so the caller still has something to display.
func parseVersion(out string) string {
	fields := strings.Fields(out)
	if len(fields) >= 3 && fields[0] == "git" && fields[1] == "version" {
		return fields[2]
	}
	return out
}
