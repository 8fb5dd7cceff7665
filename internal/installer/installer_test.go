package installer

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	guperrors "gitup.dev/gitup/internal/errors"
	"gitup.dev/gitup/internal/platform"
)

// fakeRunner is a Runner that records invocations instead of spawning
// package managers.
type fakeRunner struct {
	available map[string]bool
	output    []byte
	err       error
	calls     [][]string
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.available[name] {
		return "/usr/bin/" + name, nil
	}
	return "", exec.ErrNotFound
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.output, f.err
}

// realExitError produces an *exec.ExitError with the given code by running a
// real shell, since the type cannot be constructed directly.
func realExitError(t *testing.T, code int) error {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	err := exec.Command("sh", "-c", fmt.Sprintf("exit %d", code)).Run()
	require.Error(t, err)
	return err
}

func TestPlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		family    platform.Family
		available map[string]bool
		manager   string
	}{
		{
			name:    "debian uses apt-get",
			family:  platform.Debian,
			manager: "apt-get",
		},
		{
			name:    "arch uses pacman",
			family:  platform.Arch,
			manager: "pacman",
		},
		{
			name:      "rhel prefers dnf",
			family:    platform.RHEL,
			available: map[string]bool{"dnf": true, "yum": true},
			manager:   "dnf",
		},
		{
			name:      "rhel falls back to yum",
			family:    platform.RHEL,
			available: map[string]bool{"yum": true},
			manager:   "yum",
		},
		{
			name:      "macos uses brew",
			family:    platform.MacOS,
			available: map[string]bool{"brew": true},
			manager:   "brew",
		},
		{
			name:      "windows prefers chocolatey",
			family:    platform.Windows,
			available: map[string]bool{"choco": true, "winget": true},
			manager:   "choco",
		},
		{
			name:      "windows falls back to winget",
			family:    platform.Windows,
			available: map[string]bool{"winget": true},
			manager:   "winget",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			inst := New(&fakeRunner{available: tt.available}, nil)

			manager, err := inst.Plan(tt.family)
			require.NoError(t, err)
			require.Equal(t, tt.manager, manager)
		})
	}

	t.Run("macos without homebrew fails before running anything", func(t *testing.T) {
		t.Parallel()
		inst := New(&fakeRunner{}, nil)

		_, err := inst.Plan(platform.MacOS)
		require.ErrorIs(t, err, guperrors.ErrInstallFailed)
		require.Contains(t, err.Error(), "homebrew is not installed")
	})

	t.Run("windows without any manager fails", func(t *testing.T) {
		t.Parallel()
		inst := New(&fakeRunner{}, nil)

		_, err := inst.Plan(platform.Windows)
		require.ErrorIs(t, err, guperrors.ErrInstallFailed)
		require.Contains(t, err.Error(), "neither chocolatey nor winget")
	})

	t.Run("unknown platform is unsupported", func(t *testing.T) {
		t.Parallel()
		inst := New(&fakeRunner{}, nil)

		_, err := inst.Plan(platform.Unknown)
		require.ErrorIs(t, err, guperrors.ErrUnsupportedPlatform)
	})
}

func TestInstall(t *testing.T) {
	t.Parallel()

	t.Run("runs the package manager for the family", func(t *testing.T) {
		t.Parallel()
		runner := &fakeRunner{output: []byte("Setting up git (2.43.0) ...\n")}
		inst := New(runner, nil)

		result, err := inst.Install(context.Background(), platform.Debian)
		require.NoError(t, err)
		require.Equal(t, "apt-get", result.Manager)
		require.Equal(t, "Setting up git (2.43.0) ...", result.Output)
		require.Equal(t, [][]string{{"sudo", "apt-get", "install", "-y", "git"}}, runner.calls)
	})

	t.Run("spawns nothing on an unknown platform", func(t *testing.T) {
		t.Parallel()
		runner := &fakeRunner{}
		inst := New(runner, nil)

		_, err := inst.Install(context.Background(), platform.Unknown)
		require.ErrorIs(t, err, guperrors.ErrUnsupportedPlatform)
		require.Empty(t, runner.calls)
	})

	t.Run("captures the exit code and output of a failed run", func(t *testing.T) {
		t.Parallel()
		runner := &fakeRunner{
			output: []byte("E: Unable to locate package git\n"),
			err:    realExitError(t, 7),
		}
		inst := New(runner, nil)

		_, err := inst.Install(context.Background(), platform.Debian)
		require.ErrorIs(t, err, guperrors.ErrInstallFailed)

		var instErr *guperrors.InstallError
		require.ErrorAs(t, err, &instErr)
		require.Equal(t, "apt-get", instErr.Manager)
		require.Equal(t, 7, instErr.ExitCode)
		require.Equal(t, "E: Unable to locate package git", instErr.Output)

		// One attempt only; retries are the caller's decision.
		require.Len(t, runner.calls, 1)
	})

	t.Run("fails when the manager succeeds but git is still missing", func(t *testing.T) {
		t.Parallel()
		runner := &fakeRunner{output: []byte("done")}
		verify := func(ctx context.Context) (bool, error) { return false, nil }
		inst := New(runner, verify)

		_, err := inst.Install(context.Background(), platform.Arch)
		require.ErrorIs(t, err, guperrors.ErrInstallFailed)
		require.Contains(t, err.Error(), "still not resolvable")
	})

	t.Run("propagates a verification probe failure", func(t *testing.T) {
		t.Parallel()
		runner := &fakeRunner{}
		verify := func(ctx context.Context) (bool, error) {
			return false, context.DeadlineExceeded
		}
		inst := New(runner, verify)

		_, err := inst.Install(context.Background(), platform.Debian)
		require.ErrorContains(t, err, "failed to verify installation")
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("verification success completes the install", func(t *testing.T) {
		t.Parallel()
		runner := &fakeRunner{available: map[string]bool{"dnf": true}}
		verify := func(ctx context.Context) (bool, error) { return true, nil }
		inst := New(runner, verify)

		result, err := inst.Install(context.Background(), platform.RHEL)
		require.NoError(t, err)
		require.Equal(t, "dnf", result.Manager)
	})
}

func TestTail(t *testing.T) {
	t.Parallel()

	t.Run("short output passes through trimmed", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "hello", tail([]byte("hello\n")))
	})

	t.Run("long output keeps only the end", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("a", outputTailLimit+500)
		got := tail([]byte(long))
		require.True(t, strings.HasPrefix(got, "... "))
		require.Len(t, got, outputTailLimit+len("... "))
	})
}
