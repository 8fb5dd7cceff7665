package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gitup.dev/gitup/internal/git"
	"gitup.dev/gitup/testhelpers"
)

func TestDetect(t *testing.T) {
	t.Run("reports installed with a version when git is on PATH", func(t *testing.T) {
		testhelpers.RequireGit(t)

		status, err := git.Detect(context.Background())
		require.NoError(t, err)
		require.True(t, status.Installed)
		require.Regexp(t, `^\d+\.\d+`, status.Version)
	})

	t.Run("reports not installed when PATH has no git", func(t *testing.T) {
		testhelpers.EmptyPath(t)

		status, err := git.Detect(context.Background())
		require.NoError(t, err)
		require.False(t, status.Installed)
		require.Empty(t, status.Version)
	})

	t.Run("reports not installed when the binary exits non-zero", func(t *testing.T) {
		testhelpers.EmptyPath(t)
		testhelpers.StubCommand(t, "git", "exit 1")

		status, err := git.Detect(context.Background())
		require.NoError(t, err)
		require.False(t, status.Installed)
	})

	t.Run("parses the version number from the probe output", func(t *testing.T) {
		testhelpers.EmptyPath(t)
		testhelpers.StubCommand(t, "git", `echo "git version 9.9.9"`)

		status, err := git.Detect(context.Background())
		require.NoError(t, err)
		require.True(t, status.Installed)
		require.Equal(t, "9.9.9", status.Version)
	})

	t.Run("passes unexpected probe output through verbatim", func(t *testing.T) {
		testhelpers.EmptyPath(t)
		testhelpers.StubCommand(t, "git", `echo "something else entirely"`)

		status, err := git.Detect(context.Background())
		require.NoError(t, err)
		require.True(t, status.Installed)
		require.Equal(t, "something else entirely", status.Version)
	})
}
