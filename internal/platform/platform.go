// Package platform identifies the host operating system family so the
// installer can pick the native package manager.
package platform

import (
	"os"
	"runtime"
	"strings"
)

// Family is an equivalence class of operating systems that share a package
// manager. Hosts that fit no known family resolve to Unknown rather than
// failing; downstream code decides what Unknown means for it.
type Family string

const (
	Debian  Family = "debian"
	Arch    Family = "arch"
	RHEL    Family = "rhel"
	MacOS   Family = "macos"
	Windows Family = "windows"
	Unknown Family = "unknown"
)

// String returns a human-readable family name.
func (f Family) String() string {
	switch f {
	case Debian:
		return "Debian-like Linux"
	case Arch:
		return "Arch-like Linux"
	case RHEL:
		return "RHEL-like Linux"
	case MacOS:
		return "macOS"
	case Windows:
		return "Windows"
	default:
		return "unknown platform"
	}
}

// osReleasePaths are the standard locations of the os-release file, in
// lookup order per os-release(5).
var osReleasePaths = []string{"/etc/os-release", "/usr/lib/os-release"}

// Resolve identifies the host platform family. It is a pure probe: it never
// fails, and a host it cannot classify comes back as Unknown.
func Resolve() Family {
	return resolve(runtime.GOOS, readOSRelease())
}

// resolve maps a GOOS value and os-release contents to a family. Split out
// from Resolve so the full matrix is testable on any host.
func resolve(goos string, osRelease string) Family {
	switch goos {
	case "darwin":
		return MacOS
	case "windows":
		return Windows
	case "linux":
		return linuxFamily(osRelease)
	default:
		return Unknown
	}
}

func readOSRelease() string {
	for _, path := range osReleasePaths {
		if data, err := os.ReadFile(path); err == nil {
			return string(data)
		}
	}
	return ""
}

// linuxFamily classifies a Linux distribution by the ID field of its
// os-release contents, falling back to the ID_LIKE ancestry list for
// derivatives (Mint reports ubuntu, Rocky and Alma report rhel, and so on).
func linuxFamily(osRelease string) Family {
	for _, id := range parseOSReleaseIDs(osRelease) {
		switch id {
		case "debian", "ubuntu":
			return Debian
		case "arch":
			return Arch
		case "rhel", "rocky", "alma", "almalinux", "centos", "fedora":
			return RHEL
		}
	}
	return Unknown
}

// parseOSReleaseIDs returns the ID value followed by the ID_LIKE tokens.
// Values may be quoted per os-release(5); unparseable lines are skipped.
func parseOSReleaseIDs(contents string) []string {
	var id string
	var idLike []string

	for _, line := range strings.Split(contents, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(value, `"'`)
		switch key {
		case "ID":
			id = strings.ToLower(value)
		case "ID_LIKE":
			idLike = strings.Fields(strings.ToLower(value))
		}
	}

	ids := make([]string, 0, len(idLike)+1)
	if id != "" {
		ids = append(ids, id)
	}
	return append(ids, idLike...)
}
