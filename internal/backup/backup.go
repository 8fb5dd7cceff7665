// Package backup saves and restores the global Git identity as a
// human-readable snapshot file.
//
// A snapshot is a small TOML document carrying a schema marker, the identity,
// and optionally the whole profile mapping. Snapshot files are treated as
// untrusted input on the way back in: everything is validated before anything
// is applied.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	guperrors "gitup.dev/gitup/internal/errors"
	"gitup.dev/gitup/internal/fsutil"
	"gitup.dev/gitup/internal/git"
)

// SchemaVersion is the snapshot schema written by this build.
const SchemaVersion = 1

// backupFileMode keeps snapshots private to the user.
const backupFileMode = 0600

// File is the on-disk shape of a snapshot.
type File struct {
	Schema   int                     `toml:"schema"`
	Created  time.Time               `toml:"created"`
	Identity git.Identity            `toml:"identity"`
	Profiles map[string]git.Identity `toml:"profiles,omitempty"`
}

// ProfileMerger merges restored profiles into the profile store.
type ProfileMerger interface {
	Merge(profiles map[string]git.Identity) error
}

// Write captures the current global identity, plus the given profiles if any,
// into a snapshot at path. An existing file at path is overwritten.
//
// An incomplete identity is refused with ErrMissingField: a snapshot that
// cannot pass restore validation is not worth writing.
func Write(ctx context.Context, path string, profiles map[string]git.Identity) error {
	id, missing, err := git.GetIdentity(ctx)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return guperrors.NewMissingFieldError(missing...)
	}

	f := File{
		Schema:   SchemaVersion,
		Created:  time.Now().UTC(),
		Identity: id,
		Profiles: profiles,
	}
	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal backup: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create backup directory: %w", err)
		}
	}
	if err := fsutil.WriteFileAtomic(path, data, backupFileMode); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// Restore applies the snapshot at path: the identity is written to the global
// Git config and embedded profiles are merged into the store, overwriting
// same-named entries. The whole file is validated before anything is applied.
func Restore(ctx context.Context, path string, merger ProfileMerger) (git.Identity, error) {
	f, err := parse(path)
	if err != nil {
		return git.Identity{}, err
	}

	if err := git.SetIdentity(ctx, f.Identity); err != nil {
		return git.Identity{}, err
	}
	if merger != nil && len(f.Profiles) > 0 {
		if err := merger.Merge(f.Profiles); err != nil {
			return git.Identity{}, err
		}
	}
	return f.Identity, nil
}

// parse reads and fully validates a snapshot file.
func parse(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read backup %s: %w", path, err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, guperrors.NewMalformedBackupError(path, "invalid syntax", err)
	}

	if f.Schema < 1 {
		return File{}, guperrors.NewMalformedBackupError(path, "missing schema marker", nil)
	}
	if f.Schema > SchemaVersion {
		return File{}, guperrors.NewMalformedBackupError(path,
			fmt.Sprintf("declares schema %d, but this build understands up to %d", f.Schema, SchemaVersion), nil)
	}

	f.Identity = f.Identity.Normalized()
	if err := f.Identity.Validate(); err != nil {
		return File{}, guperrors.NewMalformedBackupError(path, "identity failed validation", err)
	}

	normalized := make(map[string]git.Identity, len(f.Profiles))
	for name, id := range f.Profiles {
		if name == "" {
			return File{}, guperrors.NewMalformedBackupError(path, "empty profile name", nil)
		}
		id = id.Normalized()
		if err := id.Validate(); err != nil {
			return File{}, guperrors.NewMalformedBackupError(path,
				fmt.Sprintf("profile %q failed validation", name), err)
		}
		normalized[name] = id
	}
	if len(normalized) > 0 {
		f.Profiles = normalized
	}

	return f, nil
}
