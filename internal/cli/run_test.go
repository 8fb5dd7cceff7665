package cli

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	guperrors "gitup.dev/gitup/internal/errors"
	"gitup.dev/gitup/internal/git"
	"gitup.dev/gitup/internal/paths"
	"gitup.dev/gitup/internal/platform"
	"gitup.dev/gitup/internal/tui"
	"gitup.dev/gitup/testhelpers"
)

func TestRunInstallReportsFailedAttempt(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX null device for stdin")
	}

	scene := testhelpers.NewScene(t)
	// With PATH empty neither sudo nor any package manager resolves, so the
	// attempt fails without spawning anything.
	testhelpers.EmptyPath(t)

	// Clear the non-interactive gate and point stdin at the null device, a
	// character device, so the interactive failure report runs. The retry
	// prompt then fails on that stdin and declines.
	t.Setenv("GITUP_NON_INTERACTIVE", "")
	devNull, err := os.Open(os.DevNull)
	require.NoError(t, err)
	defer devNull.Close()
	origStdin := os.Stdin
	os.Stdin = devNull
	t.Cleanup(func() { os.Stdin = origStdin })

	splog, err := tui.NewSplogWithConfig(paths.LogFilePath())
	require.NoError(t, err)
	defer func() { _ = splog.Close() }()
	splog.SetQuiet(true)

	_, err = runInstall(context.Background(), splog, platform.Debian, git.Status{})
	require.Error(t, err)
	require.ErrorIs(t, err, guperrors.ErrInstallFailed)

	// The failure was reported before the retry prompt gave up.
	data, err := os.ReadFile(filepath.Join(scene.StateDir, "gitup.log"))
	require.NoError(t, err)
	require.Contains(t, string(data), "Installation via apt-get failed.")
}
