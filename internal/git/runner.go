package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	guperrors "gitup.dev/gitup/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands. Identity and
// version queries are local operations; anything slower than this is wedged.
const DefaultCommandTimeout = 30 * time.Second

// gitBinary is the executable name resolved from PATH for every command.
const gitBinary = "git"

// RunGitCommand executes a git command and returns the trimmed output.
func RunGitCommand(ctx context.Context, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, gitBinary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", guperrors.NewGitCommandError(gitBinary, args, stdout.String(), stderr.String(), ctx.Err())
		}
		return "", guperrors.NewGitCommandError(gitBinary, args, stdout.String(), stderr.String(), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
