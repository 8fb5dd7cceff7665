// Package installer installs Git through the host's native package manager.
//
// Dispatch is a closed table over platform families: each family maps to one
// fixed package-manager invocation, and unrecognized hosts are rejected
// before anything is spawned. All subprocess activity goes through the
// Runner interface so tests never touch a real package manager.
package installer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	guperrors "gitup.dev/gitup/internal/errors"
	"gitup.dev/gitup/internal/platform"
)

// DefaultInstallTimeout is the default timeout for a package-manager run.
// Installs pull packages over the network, so this is far looser than the
// git command timeout.
const DefaultInstallTimeout = 15 * time.Minute

// outputTailLimit bounds how much captured package-manager output an
// InstallError carries. Failures usually explain themselves in the last few
// lines.
const outputTailLimit = 2048

// Runner executes package-manager commands. The production implementation
// shells out; tests substitute a recording fake.
type Runner interface {
	// LookPath reports where name resolves on PATH, like exec.LookPath.
	LookPath(name string) (string, error)

	// Run executes a command and returns its combined output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner is the Runner used outside of tests.
type ExecRunner struct{}

func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// VerifyFunc re-checks that git actually became resolvable after the package
// manager reported success. The CLI wires this to the detection probe.
type VerifyFunc func(ctx context.Context) (bool, error)

// Result describes a completed installation.
type Result struct {
	// Manager is the package manager that performed the install.
	Manager string

	// Output is the combined output of the package-manager run.
	Output string
}

// Installer dispatches Git installation to the platform family's package
// manager.
type Installer struct {
	runner Runner
	verify VerifyFunc
}

// New creates an Installer. verify may be nil to skip post-install
// confirmation.
func New(runner Runner, verify VerifyFunc) *Installer {
	return &Installer{runner: runner, verify: verify}
}

// Plan reports which package manager Install would use for family, without
// running anything.
func (i *Installer) Plan(family platform.Family) (string, error) {
	cmd, err := i.planFor(family)
	if err != nil {
		return "", err
	}
	return cmd.manager, nil
}

// Install performs the single installation attempt for family.
//
// Unknown families fail with ErrUnsupportedPlatform before any subprocess is
// spawned. A non-zero package-manager exit becomes an InstallError carrying
// the exit code and the tail of the captured output. There is no automatic
// retry; a retry is a new explicit call.
func (i *Installer) Install(ctx context.Context, family platform.Family) (Result, error) {
	cmd, err := i.planFor(family)
	if err != nil {
		return Result{}, err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultInstallTimeout)
		defer cancel()
	}

	out, err := i.runner.Run(ctx, cmd.name, cmd.args...)
	if err != nil {
		exitCode := 0
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return Result{}, guperrors.NewInstallError(cmd.manager, exitCode, tail(out), err)
	}

	if i.verify != nil {
		installed, verr := i.verify(ctx)
		if verr != nil {
			return Result{}, fmt.Errorf("failed to verify installation: %w", verr)
		}
		if !installed {
			return Result{}, guperrors.NewInstallError(cmd.manager, 0, tail(out),
				fmt.Errorf("%s reported success but git is still not resolvable", cmd.manager))
		}
	}

	return Result{Manager: cmd.manager, Output: tail(out)}, nil
}

// command is a single package-manager invocation.
type command struct {
	manager string
	name    string
	args    []string
}

// planFor picks the fixed invocation for a family. Families whose manager may
// be absent (brew, choco/winget, dnf/yum) are resolved with LookPath first so
// a missing manager fails cleanly instead of spawning a doomed command.
func (i *Installer) planFor(family platform.Family) (command, error) {
	switch family {
	case platform.Debian:
		return command{manager: "apt-get", name: "sudo", args: []string{"apt-get", "install", "-y", "git"}}, nil

	case platform.Arch:
		return command{manager: "pacman", name: "sudo", args: []string{"pacman", "-S", "--noconfirm", "git"}}, nil

	case platform.RHEL:
		if _, err := i.runner.LookPath("dnf"); err == nil {
			return command{manager: "dnf", name: "sudo", args: []string{"dnf", "install", "-y", "git"}}, nil
		}
		return command{manager: "yum", name: "sudo", args: []string{"yum", "install", "-y", "git"}}, nil

	case platform.MacOS:
		if _, err := i.runner.LookPath("brew"); err != nil {
			return command{}, guperrors.NewInstallError("brew", 0, "",
				fmt.Errorf("homebrew is not installed; install it from https://brew.sh first"))
		}
		return command{manager: "brew", name: "brew", args: []string{"install", "git"}}, nil

	case platform.Windows:
		if _, err := i.runner.LookPath("choco"); err == nil {
			return command{manager: "choco", name: "choco", args: []string{"install", "git", "-y"}}, nil
		}
		if _, err := i.runner.LookPath("winget"); err == nil {
			return command{manager: "winget", name: "winget", args: []string{"install", "--id", "Git.Git", "--silent"}}, nil
		}
		return command{}, guperrors.NewInstallError("winget", 0, "",
			fmt.Errorf("neither chocolatey nor winget is available"))

	default:
		return command{}, fmt.Errorf("%w: cannot install git on %s", guperrors.ErrUnsupportedPlatform, family)
	}
}

// tail returns the last outputTailLimit bytes of combined output, trimmed.
func tail(out []byte) string {
	s := strings.TrimSpace(string(out))
	if len(s) <= outputTailLimit {
		return s
	}
	return "... " + s[len(s)-outputTailLimit:]
}
