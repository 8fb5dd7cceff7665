package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	guperrors "gitup.dev/gitup/internal/errors"
)

// Global config keys managed by gitup.
const (
	UserNameKey  = "user.name"
	UserEmailKey = "user.email"
)

// emailShape is the minimal address check: non-empty local part, an @, and a
// domain containing a dot. Full RFC 5322 validation is out of scope; git
// itself accepts anything.
var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Identity is a global Git author identity.
type Identity struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// Normalized returns a copy of the identity with surrounding whitespace
// stripped from both fields.
func (id Identity) Normalized() Identity {
	return Identity{
		Name:  strings.TrimSpace(id.Name),
		Email: strings.TrimSpace(id.Email),
	}
}

// Validate checks that the name is non-empty and the email looks like an
// address. Violations are reported as InvalidIdentityError.
func (id Identity) Validate() error {
	if strings.TrimSpace(id.Name) == "" {
		return guperrors.NewInvalidIdentityError(UserNameKey, "must not be empty")
	}
	if !emailShape.MatchString(strings.TrimSpace(id.Email)) {
		return guperrors.NewInvalidIdentityError(UserEmailKey, "must look like user@example.com")
	}
	return nil
}

// SetIdentity validates id and writes both keys to the global git config.
// Nothing is written when validation fails.
func SetIdentity(ctx context.Context, id Identity) error {
	id = id.Normalized()
	if err := id.Validate(); err != nil {
		return err
	}

	if _, err := RunGitCommand(ctx, "config", "--global", UserNameKey, id.Name); err != nil {
		return fmt.Errorf("failed to set %s: %w", UserNameKey, err)
	}
	if _, err := RunGitCommand(ctx, "config", "--global", UserEmailKey, id.Email); err != nil {
		return fmt.Errorf("failed to set %s: %w", UserEmailKey, err)
	}
	return nil
}

// GetIdentity reads the global identity. Keys that are not set are reported in
// missing rather than as errors, so a partially configured host still yields
// the fields it has.
func GetIdentity(ctx context.Context) (Identity, []string, error) {
	var id Identity
	var missing []string

	name, ok, err := getGlobal(ctx, UserNameKey)
	if err != nil {
		return Identity{}, nil, err
	}
	if ok {
		id.Name = name
	} else {
		missing = append(missing, UserNameKey)
	}

	email, ok, err := getGlobal(ctx, UserEmailKey)
	if err != nil {
		return Identity{}, nil, err
	}
	if ok {
		id.Email = email
	} else {
		missing = append(missing, UserEmailKey)
	}

	return id, missing, nil
}

// getGlobal reads a single global config key. ok is false when the key is not
// set; git signals that with exit status 1, which is not an error here.
func getGlobal(ctx context.Context, key string) (value string, ok bool, err error) {
	out, err := RunGitCommand(ctx, "config", "--global", "--get", key)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	if out == "" {
		return "", false, nil
	}
	return out, true, nil
}
