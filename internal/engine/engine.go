// Package engine implements the orchestration core: a registry of
// configuration modules, dependency-respecting ordering, and the three
// idempotent operations plan, apply, and statuses.
package engine

import (
	"context"
	"fmt"
	"os"

	"github.com/dotforge/dotforge/internal/logger"
	"github.com/dotforge/dotforge/internal/model"
	"github.com/dotforge/dotforge/internal/platform"
	"github.com/dotforge/dotforge/internal/state"
	forgeerrors "github.com/dotforge/dotforge/pkg/errors"
)

// Options configures an Engine. Zero values fall back to host detection.
type Options struct {
	Platform platform.Platform
	HomeDir  string
	Logger   *logger.Logger
}

// Engine is the sole entry point callers use to drive modules. It invokes
// modules strictly one at a time in resolved order; later modules may read
// contributions written by earlier ones, so concurrent execution would be a
// read-before-write race.
type Engine struct {
	graph    *Graph
	platform platform.Platform
	homeDir  string
	logger   *logger.Logger
}

// New creates an Engine. Platform defaults to host detection and HomeDir to
// the current user's home directory.
func New(opts Options) (*Engine, error) {
	p := opts.Platform
	if p == "" {
		p = platform.Detect()
	}
	if !p.Valid() {
		return nil, fmt.Errorf("invalid platform %q", p)
	}

	home := opts.HomeDir
	if home == "" {
		detected, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		home = detected
	}

	return &Engine{
		graph:    NewGraph(),
		platform: p,
		homeDir:  home,
		logger:   opts.Logger,
	}, nil
}

// Register adds a module to the engine's graph.
func (e *Engine) Register(m Module) error {
	return e.graph.Register(m)
}

// Graph exposes the module graph for read-only inspection.
func (e *Engine) Graph() *Graph {
	return e.graph
}

// Platform returns the engine's platform classification.
func (e *Engine) Platform() platform.Platform {
	return e.platform
}

// newContext builds a fresh per-operation context. Each call gets its own
// store, so contributions are rebuilt from scratch on every run while
// resolved values stay visible to modules later in the same order.
func (e *Engine) newContext(ctx context.Context) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		Context:  ctx,
		Platform: e.platform,
		HomeDir:  e.homeDir,
		Logger:   e.logger,
		State:    state.NewStore(),
	}
}

// Plan previews pending actions for the requested modules (all when ids is
// empty) in dependency order. Inapplicable modules contribute no entry. An
// error inside one module's Plan is recorded in that module's entry and never
// aborts the pass; only graph errors abort the call before any module runs.
func (e *Engine) Plan(ctx context.Context, ids ...string) (map[string]model.PlanResult, error) {
	order, err := e.graph.ResolveOrder(ids...)
	if err != nil {
		return nil, err
	}

	opCtx := e.newContext(ctx)
	results := make(map[string]model.PlanResult, len(order))

	for _, id := range order {
		if err := opCtx.Context.Err(); err != nil {
			return results, err
		}

		mod, _ := e.graph.Get(id)
		if !mod.IsApplicable(opCtx) {
			e.logger.WithModule(id).Debug("not applicable, skipping")
			continue
		}

		result, err := mod.Plan(opCtx)
		result.ModuleID = id
		if err != nil {
			e.logger.WithModule(id).Error(err, "plan failed")
			result.Err = forgeerrors.NewModuleError(id, err)
			result.Changes = nil
		}
		results[id] = result
	}

	return results, nil
}

// Apply reconciles the requested modules in dependency order. One module's
// failure is captured in its own ApplyResult and must not abort the
// remaining modules; the caller always receives one entry per applicable
// module.
func (e *Engine) Apply(ctx context.Context, ids ...string) (map[string]model.ApplyResult, error) {
	order, err := e.graph.ResolveOrder(ids...)
	if err != nil {
		return nil, err
	}

	opCtx := e.newContext(ctx)
	results := make(map[string]model.ApplyResult, len(order))

	for _, id := range order {
		if err := opCtx.Context.Err(); err != nil {
			return results, err
		}

		mod, _ := e.graph.Get(id)
		if !mod.IsApplicable(opCtx) {
			e.logger.WithModule(id).Debug("not applicable, skipping")
			continue
		}

		result, err := mod.Apply(opCtx)
		result.ModuleID = id
		if err != nil {
			e.logger.WithModule(id).Error(err, "apply failed")
			result.Success = false
			result.Err = forgeerrors.NewModuleError(id, err)
			if result.Message == "" {
				result.Message = err.Error()
			}
		}
		results[id] = result
	}

	return results, nil
}

// Statuses inspects the requested modules in dependency order. A module
// reporting an empty status is normalized to idle; an error inside Status is
// recorded as a failed entry, consistent with Apply.
func (e *Engine) Statuses(ctx context.Context, ids ...string) (map[string]model.StatusResult, error) {
	order, err := e.graph.ResolveOrder(ids...)
	if err != nil {
		return nil, err
	}

	opCtx := e.newContext(ctx)
	results := make(map[string]model.StatusResult, len(order))

	for _, id := range order {
		if err := opCtx.Context.Err(); err != nil {
			return results, err
		}

		mod, _ := e.graph.Get(id)
		if !mod.IsApplicable(opCtx) {
			e.logger.WithModule(id).Debug("not applicable, skipping")
			continue
		}

		result, err := mod.Status(opCtx)
		result.ModuleID = id
		if err != nil {
			e.logger.WithModule(id).Error(err, "status failed")
			result.Status = model.StatusFailed
			if result.Message == "" {
				result.Message = err.Error()
			}
		}
		if result.Status == "" {
			result.Status = model.StatusIdle
		}
		results[id] = result
	}

	return results, nil
}

// Details collects diagnostic lines from modules implementing the optional
// Detailer capability, keyed by module id.
func (e *Engine) Details(ctx context.Context, ids ...string) (map[string][]string, error) {
	order, err := e.graph.ResolveOrder(ids...)
	if err != nil {
		return nil, err
	}

	opCtx := e.newContext(ctx)
	details := make(map[string][]string)

	for _, id := range order {
		mod, _ := e.graph.Get(id)
		if !mod.IsApplicable(opCtx) {
			continue
		}
		if d, ok := mod.(Detailer); ok {
			details[id] = d.Details(opCtx)
		}
	}

	return details, nil
}
