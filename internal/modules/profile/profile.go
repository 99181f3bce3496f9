// Package profilemod contributes the manifest's declared paths, aliases,
// shell-init snippets, and packages into the shared store. It owns no
// on-disk state of its own; collector modules downstream consume what it
// contributes.
package profilemod

import (
	"fmt"

	"github.com/dotforge/dotforge/internal/config"
	"github.com/dotforge/dotforge/internal/contrib"
	"github.com/dotforge/dotforge/internal/engine"
	"github.com/dotforge/dotforge/internal/model"
	"github.com/dotforge/dotforge/internal/paths"
	"github.com/dotforge/dotforge/internal/platform"
)

// ModuleID identifies the profile module in the graph.
const ModuleID = "profile"

type profileModule struct {
	engine.Base
	profile config.Profile
}

// New creates the profile module from the manifest's profile section.
func New(profile config.Profile) engine.Module {
	return &profileModule{
		Base: engine.Base{Meta: engine.Metadata{
			ID:          ModuleID,
			Description: "Contributes declared paths, aliases, init snippets, and packages",
			Priority:    10,
		}},
		profile: profile,
	}
}

var _ engine.Module = (*profileModule)(nil)

// contribute pushes every declared entry into the store. Both Plan and Apply
// call it so that contributions exist in whichever pass is running; the
// add functions absorb duplicates, keeping re-contribution idempotent.
func (m *profileModule) contribute(ctx *engine.Context) int {
	added := 0

	for _, p := range m.profile.Paths {
		if contrib.AddPathContribution(ctx.State, ctx.Platform, contrib.PathContribution{
			Path:      paths.ExpandHome(p.Path, ctx.HomeDir),
			Prepend:   p.Prepend,
			Platforms: parsePlatforms(p.Platforms),
		}) {
			added++
		}
	}

	for _, a := range m.profile.Aliases {
		if contrib.AddAliasContribution(ctx.State, ctx.Platform, contrib.AliasContribution{
			Name:      a.Name,
			Value:     a.Value,
			Platforms: parsePlatforms(a.Platforms),
		}) {
			added++
		}
	}

	for _, s := range m.profile.ShellInit {
		if contrib.AddShellInitContribution(ctx.State, ctx.Platform, contrib.ShellInitContribution{
			Snippet:   s.Snippet,
			Platforms: parsePlatforms(s.Platforms),
		}) {
			added++
		}
	}

	for _, pkg := range m.profile.Packages {
		if contrib.AddPackageContribution(ctx.State, ctx.Platform, contrib.PackageContribution{
			Name:      pkg.Name,
			Manager:   pkg.Manager,
			Platforms: parsePlatforms(pkg.Platforms),
		}) {
			added++
		}
	}

	return added
}

func (m *profileModule) Plan(ctx *engine.Context) (model.PlanResult, error) {
	m.contribute(ctx)
	// Contributions are inputs for collectors, not pending machine changes.
	return model.PlanResult{}, nil
}

func (m *profileModule) Apply(ctx *engine.Context) (model.ApplyResult, error) {
	added := m.contribute(ctx)
	return model.ApplyResult{
		Success: true,
		Changed: false,
		Message: fmt.Sprintf("contributed %d entries", added),
	}, nil
}

func (m *profileModule) Status(ctx *engine.Context) (model.StatusResult, error) {
	return model.StatusResult{Status: model.StatusIdle, Message: "declarative profile source"}, nil
}

// Details lists the declared entries for diagnostics.
func (m *profileModule) Details(ctx *engine.Context) []string {
	return []string{
		fmt.Sprintf("paths: %d", len(m.profile.Paths)),
		fmt.Sprintf("aliases: %d", len(m.profile.Aliases)),
		fmt.Sprintf("shell init snippets: %d", len(m.profile.ShellInit)),
		fmt.Sprintf("packages: %d", len(m.profile.Packages)),
	}
}

func parsePlatforms(names []string) []platform.Platform {
	if len(names) == 0 {
		return nil
	}
	platforms := make([]platform.Platform, 0, len(names))
	for _, name := range names {
		// Manifest validation rejects unknown platform names; Parse falls
		// back to Unknown, which keeps the restriction non-empty and thus
		// never widens it.
		p, _ := platform.Parse(name)
		platforms = append(platforms, p)
	}
	return platforms
}
