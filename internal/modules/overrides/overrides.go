// Package overridesmod creates the unmanaged machine-local shell file the
// managed block sources. The file is created once if absent and never
// rewritten afterwards: its content belongs to the user.
package overridesmod

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dotforge/dotforge/internal/engine"
	"github.com/dotforge/dotforge/internal/model"
	pathutil "github.com/dotforge/dotforge/internal/paths"
)

// ModuleID identifies the overrides module in the graph.
const ModuleID = "overrides"

const seedContent = `# Machine-local shell overrides.
# This file is sourced by the dotforge managed block and is never rewritten.
`

type overridesModule struct {
	engine.Base
	path string
}

// New creates the overrides module. An empty path falls back to the default
// location in the user's home directory at apply time.
func New(path string) engine.Module {
	return &overridesModule{
		Base: engine.Base{Meta: engine.Metadata{
			ID:          ModuleID,
			Description: "Creates the unmanaged machine-local overrides file once",
			Priority:    30,
		}},
		path: path,
	}
}

var _ engine.Module = (*overridesModule)(nil)

func (m *overridesModule) target(ctx *engine.Context) string {
	if m.path == "" {
		return pathutil.DefaultOverridesFile(ctx.HomeDir)
	}
	return pathutil.ExpandHome(m.path, ctx.HomeDir)
}

func (m *overridesModule) exists(ctx *engine.Context) (bool, error) {
	_, err := os.Stat(m.target(ctx))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (m *overridesModule) Plan(ctx *engine.Context) (model.PlanResult, error) {
	exists, err := m.exists(ctx)
	if err != nil {
		return model.PlanResult{}, err
	}
	if exists {
		return model.PlanResult{}, nil
	}
	return model.PlanResult{
		Changes: []model.PlanChange{{Summary: fmt.Sprintf("create %s", m.target(ctx))}},
	}, nil
}

func (m *overridesModule) Apply(ctx *engine.Context) (model.ApplyResult, error) {
	target := m.target(ctx)

	exists, err := m.exists(ctx)
	if err != nil {
		return model.ApplyResult{}, err
	}
	if exists {
		return model.ApplyResult{Success: true, Changed: false, Message: "already present"}, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return model.ApplyResult{}, err
	}
	if err := os.WriteFile(target, []byte(seedContent), 0o644); err != nil {
		return model.ApplyResult{}, err
	}

	ctx.Logger.WithModule(ModuleID).Info("created overrides file")
	return model.ApplyResult{Success: true, Changed: true, Message: fmt.Sprintf("created %s", target)}, nil
}

func (m *overridesModule) Status(ctx *engine.Context) (model.StatusResult, error) {
	exists, err := m.exists(ctx)
	if err != nil {
		return model.StatusResult{}, err
	}
	if !exists {
		return model.StatusResult{Status: model.StatusPending, Message: "overrides file not created yet"}, nil
	}
	return model.StatusResult{Status: model.StatusApplied, Message: m.target(ctx)}, nil
}
