// Package paths centralizes the file locations dotforge manages or reads.
package paths

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/dotforge/dotforge/internal/platform"
)

// ExpandHome resolves a leading ~ or $HOME against home.
func ExpandHome(path, home string) string {
	switch {
	case path == "~":
		return home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	case strings.HasPrefix(path, "$HOME/"):
		return filepath.Join(home, strings.TrimPrefix(path, "$HOME/"))
	}
	return path
}

// DefaultRCFile returns the shell startup file managed on p.
func DefaultRCFile(p platform.Platform, home string) string {
	if p == platform.MacOS {
		return filepath.Join(home, ".zshrc")
	}
	return filepath.Join(home, ".bashrc")
}

// DefaultOverridesFile returns the unmanaged machine-local shell file the
// managed block sources.
func DefaultOverridesFile(home string) string {
	return filepath.Join(home, ".dotforge.local.sh")
}

// DefaultDotfilesDest returns where the dotfiles repository is cloned.
func DefaultDotfilesDest(home string) string {
	return filepath.Join(home, ".dotfiles")
}

// LocalOverridesTOML returns the machine-local overrides manifest location
// under the XDG config home.
func LocalOverridesTOML() string {
	return filepath.Join(xdg.ConfigHome, "dotforge", "local.toml")
}
