// Package profile manages named Git identity profiles.
//
// Profiles live in a single per-user TOML file. Every mutation loads the
// whole file, applies the change in memory, and atomically replaces the file,
// so a crash mid-write leaves either the old store or the new one.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	guperrors "gitup.dev/gitup/internal/errors"
	"gitup.dev/gitup/internal/fsutil"
	"gitup.dev/gitup/internal/git"
)

// SchemaVersion is the store file schema written by this build. Files
// declaring a newer schema are rejected rather than guessed at.
const SchemaVersion = 1

// storeFileMode keeps the store private to the user.
const storeFileMode = 0600

// Profile is a named identity.
type Profile struct {
	Name     string
	Identity git.Identity
}

// storeFile is the on-disk shape of the profile store.
type storeFile struct {
	Schema   int                     `toml:"schema"`
	Active   string                  `toml:"active,omitempty"`
	Profiles map[string]git.Identity `toml:"profiles,omitempty"`
}

// Store reads and writes the profile store file.
type Store struct {
	path string
}

// NewStore creates a Store backed by path. The file does not need to exist
// yet; the first mutation creates it.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the store file.
func (s *Store) Path() string {
	return s.path
}

// Create adds a new named profile. A name that is already taken fails with
// ErrDuplicateProfile; existing profiles are never silently overwritten.
func (s *Store) Create(name string, id git.Identity) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("profile name must not be empty")
	}
	id = id.Normalized()
	if err := id.Validate(); err != nil {
		return err
	}

	sf, err := s.load()
	if err != nil {
		return err
	}
	if _, exists := sf.Profiles[name]; exists {
		return guperrors.NewDuplicateProfileError(name)
	}
	if sf.Profiles == nil {
		sf.Profiles = make(map[string]git.Identity)
	}
	sf.Profiles[name] = id

	return s.save(sf)
}

// Get returns the identity stored under name.
func (s *Store) Get(name string) (git.Identity, error) {
	sf, err := s.load()
	if err != nil {
		return git.Identity{}, err
	}
	id, exists := sf.Profiles[name]
	if !exists {
		return git.Identity{}, guperrors.NewUnknownProfileError(name)
	}
	return id, nil
}

// List returns all profiles sorted by name.
func (s *Store) List() ([]Profile, error) {
	sf, err := s.load()
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(sf.Profiles))
	for name, id := range sf.Profiles {
		profiles = append(profiles, Profile{Name: name, Identity: id})
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})
	return profiles, nil
}

// Delete removes the named profile. Deleting the active profile clears the
// active marker; the live Git configuration is deliberately left alone.
func (s *Store) Delete(name string) error {
	sf, err := s.load()
	if err != nil {
		return err
	}
	if _, exists := sf.Profiles[name]; !exists {
		return guperrors.NewUnknownProfileError(name)
	}

	delete(sf.Profiles, name)
	if sf.Active == name {
		sf.Active = ""
	}

	return s.save(sf)
}

// SetActive records name as the active profile.
func (s *Store) SetActive(name string) error {
	sf, err := s.load()
	if err != nil {
		return err
	}
	if _, exists := sf.Profiles[name]; !exists {
		return guperrors.NewUnknownProfileError(name)
	}

	sf.Active = name
	return s.save(sf)
}

// Active returns the active profile name, or "" when none is recorded.
func (s *Store) Active() (string, error) {
	sf, err := s.load()
	if err != nil {
		return "", err
	}
	return sf.Active, nil
}

// Merge upserts the given profiles, overwriting same-named entries. This is
// the restore path; it is the one operation allowed to overwrite.
func (s *Store) Merge(profiles map[string]git.Identity) error {
	if len(profiles) == 0 {
		return nil
	}

	sf, err := s.load()
	if err != nil {
		return err
	}
	if sf.Profiles == nil {
		sf.Profiles = make(map[string]git.Identity, len(profiles))
	}
	for name, id := range profiles {
		sf.Profiles[name] = id
	}

	return s.save(sf)
}

// Snapshot returns the full profile mapping for inclusion in a backup.
func (s *Store) Snapshot() (map[string]git.Identity, error) {
	sf, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make(map[string]git.Identity, len(sf.Profiles))
	for name, id := range sf.Profiles {
		out[name] = id
	}
	return out, nil
}

// load reads the whole store file. A missing file is an empty store; any
// other read or parse failure is surfaced, never papered over.
func (s *Store) load() (*storeFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &storeFile{Schema: SchemaVersion}, nil
		}
		return nil, fmt.Errorf("failed to read profile store %s: %w", s.path, err)
	}

	var sf storeFile
	if err := toml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse profile store %s: %w", s.path, err)
	}
	if sf.Schema > SchemaVersion {
		return nil, fmt.Errorf("profile store %s declares schema %d, but this build understands up to %d; upgrade gitup",
			s.path, sf.Schema, SchemaVersion)
	}
	// Files from before the schema marker existed are read as version 1 and
	// stamped on the next save.
	return &sf, nil
}

// save writes the whole store back with an atomic replace.
func (s *Store) save(sf *storeFile) error {
	sf.Schema = SchemaVersion

	data, err := toml.Marshal(sf)
	if err != nil {
		return fmt.Errorf("failed to marshal profile store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create profile store directory: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.path, data, storeFileMode); err != nil {
		return fmt.Errorf("failed to write profile store: %w", err)
	}
	return nil
}
