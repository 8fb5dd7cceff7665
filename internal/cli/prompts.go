package cli

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	guperrors "gitup.dev/gitup/internal/errors"
	"gitup.dev/gitup/internal/git"
	"gitup.dev/gitup/internal/tui"
)

// resolveIdentity fills in whichever of --user/--email was omitted. In an
// interactive terminal the missing field is prompted for, prefilled with the
// current global value when one exists; otherwise the omission is an error.
func resolveIdentity(ctx context.Context, flags *rootFlags) (git.Identity, error) {
	id := git.Identity{Name: flags.user, Email: flags.email}.Normalized()
	if id.Name != "" && id.Email != "" {
		return id, nil
	}

	// Prompt defaults come from the existing config, so pressing enter keeps
	// the current value.
	current, _, err := git.GetIdentity(ctx)
	if err != nil {
		return git.Identity{}, err
	}

	if id.Name == "" {
		if !tui.IsInteractive() {
			return git.Identity{}, guperrors.NewInvalidIdentityError(git.UserNameKey, "is required; pass --user or run interactively")
		}
		name, err := promptField("Your name:", current.Name)
		if err != nil {
			return git.Identity{}, err
		}
		id.Name = name
	}

	if id.Email == "" {
		if !tui.IsInteractive() {
			return git.Identity{}, guperrors.NewInvalidIdentityError(git.UserEmailKey, "is required; pass --email or run interactively")
		}
		email, err := promptField("Your email:", current.Email)
		if err != nil {
			return git.Identity{}, err
		}
		id.Email = email
	}

	return id.Normalized(), nil
}

func promptField(message, defaultValue string) (string, error) {
	var value string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &value); err != nil {
		return "", fmt.Errorf("canceled")
	}
	return value, nil
}

func promptInstallRetry() bool {
	retry := false
	prompt := &survey.Confirm{
		Message: "Try the installation again?",
		Default: false,
	}
	if err := survey.AskOne(prompt, &retry); err != nil {
		return false
	}
	return retry
}
