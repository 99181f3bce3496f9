package engine

import (
	"github.com/dotforge/dotforge/internal/model"
	"github.com/dotforge/dotforge/internal/platform"
)

// Metadata describes a module's identity and its place in the dependency graph.
type Metadata struct {
	// ID uniquely identifies the module within one engine.
	ID string
	// Description is a short human-readable summary.
	Description string
	// DependsOn lists module ids that must be ordered strictly before this one.
	DependsOn []string
	// Priority breaks ties between modules with no ordering relationship;
	// lower values sort first.
	Priority int
	// Platforms optionally restricts the module to a subset of platforms.
	// Empty means all platforms.
	Platforms []platform.Platform
}

// Module is the contract every configuration unit implements.
//
// Plan and Apply may append contributions to the shared state store; the
// engine's strictly sequential invocation order guarantees that modules
// ordered later (via DependsOn) observe contributions from earlier ones.
type Module interface {
	// Metadata returns the module's identity. It must be stable across calls.
	Metadata() Metadata

	// IsApplicable reports whether the module should run in this context.
	// It must be fast and side-effect free; inapplicable modules contribute
	// no entry to the engine's result maps.
	IsApplicable(ctx *Context) bool

	// Plan previews pending actions without mutating machine state. An empty
	// change list means the module is already reconciled.
	Plan(ctx *Context) (model.PlanResult, error)

	// Apply reconciles machine state toward the desired state. It must be
	// idempotent: a second call with no external change reports Changed=false.
	Apply(ctx *Context) (model.ApplyResult, error)

	// Status inspects the module's current state without mutating it.
	Status(ctx *Context) (model.StatusResult, error)
}

// Detailer is an optional capability for modules that can report extra
// diagnostic lines. The engine detects it via type assertion, so modules
// without details simply do not implement it.
type Detailer interface {
	Details(ctx *Context) []string
}

// PlatformsAllow reports whether meta's platform restriction permits running
// on current. Modules typically call this from IsApplicable.
func PlatformsAllow(meta Metadata, current platform.Platform) bool {
	if len(meta.Platforms) == 0 {
		return true
	}
	for _, p := range meta.Platforms {
		if p == current {
			return true
		}
	}
	return false
}

// Base provides Metadata and a platform-gated IsApplicable for embedding in
// concrete modules.
type Base struct {
	Meta Metadata
}

// Metadata returns the embedded metadata.
func (b Base) Metadata() Metadata {
	return b.Meta
}

// IsApplicable gates on the metadata platform restriction.
func (b Base) IsApplicable(ctx *Context) bool {
	return PlatformsAllow(b.Meta, ctx.Platform)
}
