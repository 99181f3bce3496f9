// Package shellrcmod is the collector module: it merges every path, alias,
// and shell-init contribution into the managed block of the shell startup
// file. It depends on all contributor modules so the engine orders it after
// them, and it writes the resolved values back into the store for anything
// ordered later.
package shellrcmod

import (
	"fmt"

	"github.com/dotforge/dotforge/internal/config"
	"github.com/dotforge/dotforge/internal/contrib"
	"github.com/dotforge/dotforge/internal/engine"
	"github.com/dotforge/dotforge/internal/model"
	"github.com/dotforge/dotforge/internal/modules/localcfg"
	"github.com/dotforge/dotforge/internal/modules/overrides"
	"github.com/dotforge/dotforge/internal/modules/profile"
	pathutil "github.com/dotforge/dotforge/internal/paths"
	"github.com/dotforge/dotforge/internal/shellblock"
)

// ModuleID identifies the shellrc module in the graph.
const ModuleID = "shellrc"

type shellrcModule struct {
	engine.Base
	shell config.ShellConfig
}

// New creates the shellrc collector module.
func New(shell config.ShellConfig) engine.Module {
	return &shellrcModule{
		Base: engine.Base{Meta: engine.Metadata{
			ID:          ModuleID,
			Description: "Renders the managed block into the shell startup file",
			DependsOn:   []string{profilemod.ModuleID, localcfgmod.ModuleID, overridesmod.ModuleID},
			Priority:    50,
		}},
		shell: shell,
	}
}

var _ engine.Module = (*shellrcModule)(nil)

func (m *shellrcModule) rcFile(ctx *engine.Context) string {
	if m.shell.RCFile != "" {
		return pathutil.ExpandHome(m.shell.RCFile, ctx.HomeDir)
	}
	return pathutil.DefaultRCFile(ctx.Platform, ctx.HomeDir)
}

func (m *shellrcModule) overridesFile(ctx *engine.Context) string {
	if m.shell.OverridesFile != "" {
		return pathutil.ExpandHome(m.shell.OverridesFile, ctx.HomeDir)
	}
	return pathutil.DefaultOverridesFile(ctx.HomeDir)
}

// resolve merges the contribution lists and publishes the resolved values
// under the resolved.* keys so later modules can consume them.
func (m *shellrcModule) resolve(ctx *engine.Context) ([]string, []contrib.Alias, []string) {
	paths := contrib.ResolvePaths(ctx.State)
	aliases := contrib.ResolveAliases(ctx.State)
	initSnippets := contrib.ResolveShellInit(ctx.State)

	ctx.State.Set(contrib.KeyResolvedPaths, paths)
	ctx.State.Set(contrib.KeyResolvedAliases, aliases)
	ctx.State.Set(contrib.KeyResolvedShellInit, initSnippets)

	return paths, aliases, initSnippets
}

func (m *shellrcModule) render(ctx *engine.Context) string {
	paths, aliases, initSnippets := m.resolve(ctx)
	return shellblock.Render(paths, aliases, initSnippets, m.overridesFile(ctx))
}

func (m *shellrcModule) Plan(ctx *engine.Context) (model.PlanResult, error) {
	block := m.render(ctx)

	st, err := shellblock.ReadFileState(m.rcFile(ctx))
	if err != nil {
		return model.PlanResult{}, err
	}

	_, changed := shellblock.Upsert(st, block)
	if !changed {
		return model.PlanResult{}, nil
	}

	summary := fmt.Sprintf("update managed block in %s", st.Path)
	if _, found := shellblock.ExtractBlock(st.Lines); !found {
		summary = fmt.Sprintf("install managed block into %s", st.Path)
	}
	return model.PlanResult{Changes: []model.PlanChange{{Summary: summary}}}, nil
}

func (m *shellrcModule) Apply(ctx *engine.Context) (model.ApplyResult, error) {
	block := m.render(ctx)

	st, err := shellblock.ReadFileState(m.rcFile(ctx))
	if err != nil {
		return model.ApplyResult{}, err
	}

	content, changed := shellblock.Upsert(st, block)
	if !changed {
		return model.ApplyResult{Success: true, Changed: false, Message: "managed block up to date"}, nil
	}

	if err := shellblock.WriteFileState(st, content); err != nil {
		return model.ApplyResult{}, err
	}

	ctx.Logger.WithModule(ModuleID).Info("managed block written")
	return model.ApplyResult{
		Success: true,
		Changed: true,
		Message: fmt.Sprintf("wrote managed block to %s", st.Path),
	}, nil
}

func (m *shellrcModule) Status(ctx *engine.Context) (model.StatusResult, error) {
	block := m.render(ctx)

	st, err := shellblock.ReadFileState(m.rcFile(ctx))
	if err != nil {
		return model.StatusResult{}, err
	}

	current, found := shellblock.ExtractBlock(st.Lines)
	switch {
	case !found:
		return model.StatusResult{Status: model.StatusPending, Message: "managed block not installed"}, nil
	case current != block:
		return model.StatusResult{Status: model.StatusStale, Message: "managed block differs from resolved configuration"}, nil
	}
	return model.StatusResult{Status: model.StatusApplied, Message: st.Path}, nil
}

// Details reports the resolved values the block would be rendered from.
func (m *shellrcModule) Details(ctx *engine.Context) []string {
	paths, aliases, initSnippets := m.resolve(ctx)
	lines := make([]string, 0, 3)
	lines = append(lines, fmt.Sprintf("rc file: %s", m.rcFile(ctx)))
	lines = append(lines, fmt.Sprintf("resolved paths: %d, aliases: %d, init snippets: %d",
		len(paths), len(aliases), len(initSnippets)))
	lines = append(lines, fmt.Sprintf("overrides file: %s", m.overridesFile(ctx)))
	return lines
}
