package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	guperrors "gitup.dev/gitup/internal/errors"
)

// Exit codes. Scripts depend on these staying stable within a release series.
const (
	ExitOK               = 0
	ExitFailure          = 1
	ExitInstallFailed    = 2
	ExitInvalidIdentity  = 3
	ExitUnknownProfile   = 4
	ExitDuplicateProfile = 5
	ExitMalformedBackup  = 6
)

// ExitCode maps an error to the gitup exit code. A malformed backup wraps the
// identity validation failure that caused it, so that check runs first.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, guperrors.ErrMalformedBackup):
		return ExitMalformedBackup
	case errors.Is(err, guperrors.ErrDuplicateProfile):
		return ExitDuplicateProfile
	case errors.Is(err, guperrors.ErrUnknownProfile):
		return ExitUnknownProfile
	case errors.Is(err, guperrors.ErrInvalidIdentity), errors.Is(err, guperrors.ErrMissingField):
		return ExitInvalidIdentity
	case errors.Is(err, guperrors.ErrInstallFailed), errors.Is(err, guperrors.ErrUnsupportedPlatform):
		return ExitInstallFailed
	default:
		return ExitFailure
	}
}

// PrintError writes the diagnostic for err to stderr: one line for most
// failures, with the captured package-manager output kept underneath for
// install failures.
func PrintError(err error) {
	if err == nil {
		return
	}
	var installErr *guperrors.InstallError
	if errors.As(err, &installErr) {
		fmt.Fprintf(os.Stderr, "gitup: %s\n", installErr.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "gitup: %s\n", firstLine(err.Error()))
}

// firstLine returns s up to the first newline.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
