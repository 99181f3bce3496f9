// Package localcfgmod contributes machine-local overrides read from an
// optional TOML file under the XDG config home. It is ordered after the
// profile module so that local aliases override declared ones through the
// resolver's last-writer-wins merge.
package localcfgmod

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dotforge/dotforge/internal/contrib"
	"github.com/dotforge/dotforge/internal/engine"
	"github.com/dotforge/dotforge/internal/model"
	"github.com/dotforge/dotforge/internal/modules/profile"
	pathutil "github.com/dotforge/dotforge/internal/paths"
)

// ModuleID identifies the localcfg module in the graph.
const ModuleID = "localcfg"

type localFile struct {
	Paths []struct {
		Path    string `toml:"path"`
		Prepend bool   `toml:"prepend"`
	} `toml:"paths"`
	Aliases []struct {
		Name  string `toml:"name"`
		Value string `toml:"value"`
	} `toml:"aliases"`
	ShellInit []struct {
		Snippet string `toml:"snippet"`
	} `toml:"shell_init"`
}

type localcfgModule struct {
	engine.Base
	path string
}

// New creates the localcfg module reading from path; an empty path falls
// back to the XDG default location.
func New(path string) engine.Module {
	if path == "" {
		path = pathutil.LocalOverridesTOML()
	}
	return &localcfgModule{
		Base: engine.Base{Meta: engine.Metadata{
			ID:          ModuleID,
			Description: "Contributes machine-local overrides from a TOML file",
			DependsOn:   []string{profilemod.ModuleID},
			Priority:    20,
		}},
		path: path,
	}
}

var _ engine.Module = (*localcfgModule)(nil)

// load reads the overrides file. A missing file simply means no overrides.
func (m *localcfgModule) load() (*localFile, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var parsed localFile
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", m.path, err)
	}
	return &parsed, nil
}

func (m *localcfgModule) contribute(ctx *engine.Context) (int, error) {
	parsed, err := m.load()
	if err != nil {
		return 0, err
	}
	if parsed == nil {
		return 0, nil
	}

	added := 0
	for _, p := range parsed.Paths {
		if contrib.AddPathContribution(ctx.State, ctx.Platform, contrib.PathContribution{
			Path:    pathutil.ExpandHome(p.Path, ctx.HomeDir),
			Prepend: p.Prepend,
		}) {
			added++
		}
	}
	for _, a := range parsed.Aliases {
		if contrib.AddAliasContribution(ctx.State, ctx.Platform, contrib.AliasContribution{
			Name:  a.Name,
			Value: a.Value,
		}) {
			added++
		}
	}
	for _, s := range parsed.ShellInit {
		if contrib.AddShellInitContribution(ctx.State, ctx.Platform, contrib.ShellInitContribution{
			Snippet: s.Snippet,
		}) {
			added++
		}
	}
	return added, nil
}

func (m *localcfgModule) Plan(ctx *engine.Context) (model.PlanResult, error) {
	if _, err := m.contribute(ctx); err != nil {
		return model.PlanResult{}, err
	}
	return model.PlanResult{}, nil
}

func (m *localcfgModule) Apply(ctx *engine.Context) (model.ApplyResult, error) {
	added, err := m.contribute(ctx)
	if err != nil {
		return model.ApplyResult{}, err
	}
	return model.ApplyResult{
		Success: true,
		Changed: false,
		Message: fmt.Sprintf("contributed %d local entries", added),
	}, nil
}

func (m *localcfgModule) Status(ctx *engine.Context) (model.StatusResult, error) {
	if _, err := os.Stat(m.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.StatusResult{Status: model.StatusIdle, Message: "no local overrides file"}, nil
		}
		return model.StatusResult{}, err
	}
	return model.StatusResult{Status: model.StatusIdle, Message: fmt.Sprintf("reading %s", m.path)}, nil
}
