package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gitup.dev/gitup/internal/backup"
	guperrors "gitup.dev/gitup/internal/errors"
	"gitup.dev/gitup/internal/git"
	"gitup.dev/gitup/internal/installer"
	"gitup.dev/gitup/internal/paths"
	"gitup.dev/gitup/internal/platform"
	"gitup.dev/gitup/internal/profile"
	"gitup.dev/gitup/internal/tui"
)

// run executes the flag pipeline in a fixed order: install, set identity or
// create a profile, use/delete/list profiles, backup, restore, and finally
// the identity display when nothing else was requested.
//
// Flags execute in pipeline order, not argument order, so a combined
// invocation like --install --user --email behaves the same every time.
func run(cmd *cobra.Command, flags *rootFlags) error {
	ctx := cmd.Context()

	splog, err := tui.NewSplogWithConfig(paths.LogFilePath())
	if err != nil {
		// An unwritable state dir should not take the CLI down
		splog = tui.NewSplog()
		splog.Debug("file logging disabled: %v", err)
	}
	defer func() { _ = splog.Close() }()
	if flags.quiet {
		splog.SetQuiet(true)
	}

	family := platform.Resolve()
	splog.Debug("platform family: %s", family)

	status, err := git.Detect(ctx)
	if err != nil {
		return err
	}
	if status.Installed {
		splog.Debug("git %s detected", status.Version)
	} else {
		splog.Debug("git not detected")
	}

	if flags.install {
		status, err = runInstall(ctx, splog, family, status)
		if err != nil {
			return err
		}
	}

	store := profile.NewStore(paths.ProfileStorePath())
	ranAction := flags.install

	switch {
	case flags.createProfile != "":
		if flags.user == "" || flags.email == "" {
			return fmt.Errorf("--create-profile requires both --user and --email")
		}
		id := git.Identity{Name: flags.user, Email: flags.email}
		if err := store.Create(flags.createProfile, id); err != nil {
			return err
		}
		splog.Info("Profile %s created.", tui.Accent(flags.createProfile))
		ranAction = true

	case flags.user != "" || flags.email != "":
		if err := requireGit(status); err != nil {
			return err
		}
		id, err := resolveIdentity(ctx, flags)
		if err != nil {
			return err
		}
		if err := git.SetIdentity(ctx, id); err != nil {
			return err
		}
		splog.Info("Git identity set: %s <%s>", id.Name, id.Email)
		ranAction = true
	}

	if flags.useProfile != "" {
		if err := requireGit(status); err != nil {
			return err
		}
		id, err := store.Get(flags.useProfile)
		if err != nil {
			return err
		}
		if err := git.SetIdentity(ctx, id); err != nil {
			return err
		}
		if err := store.SetActive(flags.useProfile); err != nil {
			return err
		}
		splog.Info("Switched to profile %s: %s <%s>", tui.Accent(flags.useProfile), id.Name, id.Email)
		ranAction = true
	}

	if flags.deleteProfile != "" {
		active, err := store.Active()
		if err != nil {
			return err
		}
		if err := store.Delete(flags.deleteProfile); err != nil {
			return err
		}
		splog.Info("Profile %s deleted.", tui.Accent(flags.deleteProfile))
		if active == flags.deleteProfile {
			splog.Warn("%s was the active profile; no profile is active now.", flags.deleteProfile)
		}
		ranAction = true
	}

	if flags.listProfiles {
		if err := printProfiles(cmd, store); err != nil {
			return err
		}
		ranAction = true
	}

	if flags.backupPath != "" {
		if err := requireGit(status); err != nil {
			return err
		}
		path := paths.ExpandHome(flags.backupPath)
		var profiles map[string]git.Identity
		if flags.withProfiles {
			profiles, err = store.Snapshot()
			if err != nil {
				return err
			}
		}
		if err := backup.Write(ctx, path, profiles); err != nil {
			return err
		}
		splog.Info("Configuration backed up to %s.", tui.Accent(path))
		ranAction = true
	}

	if flags.restorePath != "" {
		if err := requireGit(status); err != nil {
			return err
		}
		path := paths.ExpandHome(flags.restorePath)
		id, err := backup.Restore(ctx, path, store)
		if err != nil {
			return err
		}
		splog.Info("Configuration restored from %s: %s <%s>", tui.Accent(path), id.Name, id.Email)
		ranAction = true
	}

	if ranAction {
		return nil
	}
	return showIdentity(ctx, cmd, splog, status, store, flags.jsonOut)
}

// runInstall drives the --install flow. The dispatcher makes exactly one
// attempt per call; interactive sessions are offered a single retry when the
// attempt fails.
func runInstall(ctx context.Context, splog *tui.Splog, family platform.Family, status git.Status) (git.Status, error) {
	if status.Installed {
		splog.Info("Git is already installed (version %s).", status.Version)
		return status, nil
	}

	inst := installer.New(installer.ExecRunner{}, verifyDetect)

	manager, err := inst.Plan(family)
	if err != nil {
		return status, err
	}
	splog.Info("Git is not installed. Installing via %s...", manager)

	for attempt := 0; ; attempt++ {
		result, err := inst.Install(ctx, family)
		if err == nil {
			splog.Debug("%s output: %s", result.Manager, result.Output)
			break
		}
		if attempt > 0 || !tui.IsInteractive() {
			return status, err
		}
		splog.Error("Installation via %s failed.", manager)
		if !promptInstallRetry() {
			return status, err
		}
		splog.Info("Retrying...")
	}

	refreshed, err := git.Detect(ctx)
	if err != nil {
		return status, err
	}
	splog.Info("%s", tui.Success(fmt.Sprintf("Git %s installed successfully.", refreshed.Version)))
	return refreshed, nil
}

// verifyDetect adapts the detection probe to the installer's verify hook.
func verifyDetect(ctx context.Context) (bool, error) {
	status, err := git.Detect(ctx)
	if err != nil {
		return false, err
	}
	return status.Installed, nil
}

// requireGit guards operations that shell out to the git binary.
func requireGit(status git.Status) error {
	if status.Installed {
		return nil
	}
	return fmt.Errorf("%w; run gitup --install first", guperrors.ErrGitNotInstalled)
}

// printProfiles writes the profile list in lexicographic order, marking the
// active profile.
func printProfiles(cmd *cobra.Command, store *profile.Store) error {
	profiles, err := store.List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(profiles) == 0 {
		fmt.Fprintln(out, "No profiles.")
		return nil
	}

	active, err := store.Active()
	if err != nil {
		return err
	}
	for _, p := range profiles {
		marker := " "
		if p.Name == active {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s  %s\n", marker, p.Name,
			tui.Dim(fmt.Sprintf("%s <%s>", p.Identity.Name, p.Identity.Email)))
	}
	return nil
}

// identityReport is the machine-readable identity shape for --json.
type identityReport struct {
	Installed bool     `json:"installed"`
	Version   string   `json:"version,omitempty"`
	User      string   `json:"user,omitempty"`
	Email     string   `json:"email,omitempty"`
	Missing   []string `json:"missing,omitempty"`
	Active    string   `json:"active_profile,omitempty"`
}

// showIdentity prints the current identity, human-readable by default or as
// JSON with --json. Missing fields are reported, not treated as errors.
func showIdentity(ctx context.Context, cmd *cobra.Command, splog *tui.Splog, status git.Status, store *profile.Store, jsonOut bool) error {
	report := identityReport{Installed: status.Installed, Version: status.Version}

	if status.Installed {
		id, missing, err := git.GetIdentity(ctx)
		if err != nil {
			return err
		}
		report.User = id.Name
		report.Email = id.Email
		report.Missing = missing
	}

	active, err := store.Active()
	if err != nil {
		return err
	}
	report.Active = active

	if jsonOut {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal identity: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	out := cmd.OutOrStdout()
	if !status.Installed {
		fmt.Fprintln(out, tui.Warning("Git is not installed."))
		splog.Tip("Run gitup --install to install it.")
		return nil
	}

	printField(out, git.UserNameKey, report.User)
	printField(out, git.UserEmailKey, report.Email)
	if active != "" {
		fmt.Fprintf(out, "Active profile: %s\n", active)
	}
	if len(report.Missing) > 0 {
		splog.Tip(`Set your identity with: gitup --user "Your Name" --email you@example.com`)
	}
	return nil
}

// printField prints one identity line in git config key style.
func printField(out io.Writer, key, value string) {
	if value == "" {
		fmt.Fprintf(out, "Git %s is not set.\n", key)
		return
	}
	fmt.Fprintf(out, "Git %s: %s\n", key, value)
}
