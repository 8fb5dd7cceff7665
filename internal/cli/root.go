// Package cli wires the gitup command line: flag parsing, the run pipeline,
// prompting, and exit-code mapping.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rootFlags is the flag-driven surface of the gitup command.
type rootFlags struct {
	user          string
	email         string
	jsonOut       bool
	install       bool
	createProfile string
	useProfile    string
	deleteProfile string
	listProfiles  bool
	backupPath    string
	withProfiles  bool
	restorePath   string
	quiet         bool
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "gitup",
		Short: "Gitup installs Git and manages your global Git identity",
		Long: `Gitup checks whether Git is installed, installs it through your platform's
native package manager when it is not, and manages the global user.name and
user.email, with named profiles and backup files.

Running gitup without flags shows the current identity.

Examples:
  gitup --user "Jane Doe" --email jane@example.com
  gitup --install
  gitup --create-profile work --user "Jane Doe" --email jane@corp.example
  gitup --use-profile work
  gitup --backup ~/git-identity.toml --with-profiles
  gitup --restore ~/git-identity.toml`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.user, "user", "", "set the global user.name")
	cmd.Flags().StringVar(&flags.email, "email", "", "set the global user.email")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "print the identity as JSON")
	cmd.Flags().BoolVar(&flags.install, "install", false, "install Git if it is not installed")
	cmd.Flags().StringVar(&flags.createProfile, "create-profile", "", "create a named profile from --user and --email")
	cmd.Flags().StringVar(&flags.useProfile, "use-profile", "", "apply a named profile to the global config")
	cmd.Flags().StringVar(&flags.deleteProfile, "delete-profile", "", "delete a named profile")
	cmd.Flags().BoolVar(&flags.listProfiles, "list-profiles", false, "list all profiles")
	cmd.Flags().StringVar(&flags.backupPath, "backup", "", "write the current identity to a backup file")
	cmd.Flags().BoolVar(&flags.withProfiles, "with-profiles", false, "include all profiles in the backup")
	cmd.Flags().StringVar(&flags.restorePath, "restore", "", "restore identity (and profiles) from a backup file")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "suppress status output")

	return cmd
}
