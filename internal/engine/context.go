package engine

import (
	"context"

	"github.com/dotforge/dotforge/internal/logger"
	"github.com/dotforge/dotforge/internal/platform"
	"github.com/dotforge/dotforge/internal/state"
)

// Context is the per-operation value object passed to every module
// invocation. It is owned by the engine for the duration of one
// plan/apply/statuses call; modules must not retain it beyond their own
// invocation.
type Context struct {
	// Context carries cancellation; the engine checks it between module
	// invocations, never mid-module.
	Context context.Context
	// Platform is the target machine's classification.
	Platform platform.Platform
	// HomeDir is the user's home directory.
	HomeDir string
	// Logger is a write-only structured log sink.
	Logger *logger.Logger
	// State is the store shared by all modules within this call.
	State *state.Store
}
