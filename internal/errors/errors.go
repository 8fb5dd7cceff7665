// Package errors provides sentinel errors and custom error types for the gitup application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrUnsupportedPlatform indicates that no installation path exists for the host platform
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrGitNotInstalled indicates that the git binary is not available on the host
	ErrGitNotInstalled = errors.New("git is not installed")

	// ErrDetection indicates that the installation probe itself could not run
	ErrDetection = errors.New("installation detection failed")

	// ErrInstallFailed indicates that a package-manager installation did not succeed
	ErrInstallFailed = errors.New("git installation failed")

	// ErrInvalidIdentity indicates a user name or email that fails validation
	ErrInvalidIdentity = errors.New("invalid identity")

	// ErrMissingField indicates that a required identity field is not set
	ErrMissingField = errors.New("identity field not set")

	// ErrDuplicateProfile indicates an attempt to create a profile that already exists
	ErrDuplicateProfile = errors.New("profile already exists")

	// ErrUnknownProfile indicates that a named profile does not exist
	ErrUnknownProfile = errors.New("profile not found")

	// ErrMalformedBackup indicates a backup file that cannot be restored
	ErrMalformedBackup = errors.New("malformed backup file")
)

// DuplicateProfileError represents an error when a profile name is already taken
type DuplicateProfileError struct {
	ProfileName string
}

func (e *DuplicateProfileError) Error() string {
	return fmt.Sprintf("profile %q already exists", e.ProfileName)
}

// Is returns true if the target error is ErrDuplicateProfile
func (e *DuplicateProfileError) Is(target error) bool {
	return target == ErrDuplicateProfile
}

// NewDuplicateProfileError creates a new DuplicateProfileError
func NewDuplicateProfileError(profileName string) *DuplicateProfileError {
	return &DuplicateProfileError{ProfileName: profileName}
}

// UnknownProfileError represents an error when a named profile does not exist
type UnknownProfileError struct {
	ProfileName string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("profile %q does not exist", e.ProfileName)
}

// Is returns true if the target error is ErrUnknownProfile
func (e *UnknownProfileError) Is(target error) bool {
	return target == ErrUnknownProfile
}

// NewUnknownProfileError creates a new UnknownProfileError
func NewUnknownProfileError(profileName string) *UnknownProfileError {
	return &UnknownProfileError{ProfileName: profileName}
}

// InvalidIdentityError represents an identity that fails validation
type InvalidIdentityError struct {
	Field  string
	Reason string
}

func (e *InvalidIdentityError) Error() string {
	return fmt.Sprintf("invalid identity: %s %s", e.Field, e.Reason)
}

// Is returns true if the target error is ErrInvalidIdentity
func (e *InvalidIdentityError) Is(target error) bool {
	return target == ErrInvalidIdentity
}

// NewInvalidIdentityError creates a new InvalidIdentityError
func NewInvalidIdentityError(field, reason string) *InvalidIdentityError {
	return &InvalidIdentityError{Field: field, Reason: reason}
}

// MissingFieldError represents identity fields that are not set in the global config
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("%s is not set", e.Fields[0])
	}
	return fmt.Sprintf("identity fields not set: %v", e.Fields)
}

// Is returns true if the target error is ErrMissingField
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// NewMissingFieldError creates a new MissingFieldError
func NewMissingFieldError(fields ...string) *MissingFieldError {
	return &MissingFieldError{Fields: fields}
}

// MalformedBackupError represents a backup file that cannot be parsed or applied
type MalformedBackupError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MalformedBackupError) Error() string {
	msg := fmt.Sprintf("malformed backup %s: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *MalformedBackupError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrMalformedBackup
func (e *MalformedBackupError) Is(target error) bool {
	return target == ErrMalformedBackup
}

// NewMalformedBackupError creates a new MalformedBackupError
func NewMalformedBackupError(path, reason string, err error) *MalformedBackupError {
	return &MalformedBackupError{Path: path, Reason: reason, Err: err}
}

// InstallError represents a failed package-manager installation attempt
type InstallError struct {
	Manager  string
	ExitCode int
	Output   string
	Err      error
}

func (e *InstallError) Error() string {
	msg := fmt.Sprintf("install via %s failed", e.Manager)
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit code %d)", e.ExitCode)
	}
	if e.Output != "" {
		msg += fmt.Sprintf("\noutput: %s", e.Output)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrInstallFailed
func (e *InstallError) Is(target error) bool {
	return target == ErrInstallFailed
}

// NewInstallError creates a new InstallError
func NewInstallError(manager string, exitCode int, output string, err error) *InstallError {
	return &InstallError{
		Manager:  manager,
		ExitCode: exitCode,
		Output:   output,
		Err:      err,
	}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
