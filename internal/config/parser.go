// Package config loads and validates the dotforge manifest: the YAML
// document declaring the user's profile contributions, dotfiles repository,
// and shell file locations.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	forgeerrors "github.com/dotforge/dotforge/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// DefaultPath returns the manifest location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "dotforge", "dotforge.yaml")
}

// ParseConfig loads a manifest from disk, validates it, and returns the
// resulting model.
func ParseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, forgeerrors.NewParseError(path, 0, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, forgeerrors.NewParseError(path, extractLine(err), err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
