// Package git provides low-level access to the Git binary.
//
// It wraps git command execution and provides a Go-friendly interface for:
//   - Installation detection (git --version)
//   - Global identity configuration (user.name, user.email)
//
// This package should be the only place where direct git commands are executed.
package git
