package model

const (
	// StatusIdle indicates a module has nothing meaningful to report.
	StatusIdle = "idle"
	// StatusStale indicates managed state exists but differs from the desired state.
	StatusStale = "stale"
	// StatusPending indicates the module has not been applied yet.
	StatusPending = "pending"
	// StatusApplied indicates the module's desired state is in place.
	StatusApplied = "applied"
	// StatusFailed marks a failure while inspecting or applying state.
	StatusFailed = "failed"
	// StatusSkipped indicates the module was not run on this platform.
	StatusSkipped = "skipped"
)

// ValidStatus reports whether s is one of the closed status set.
func ValidStatus(s string) bool {
	switch s {
	case StatusIdle, StatusStale, StatusPending, StatusApplied, StatusFailed, StatusSkipped:
		return true
	}
	return false
}

// PlanChange describes one pending action in human-readable form.
type PlanChange struct {
	Summary string
}

// PlanResult captures the outcome of planning a single module.
// An empty Changes slice means the module is already reconciled.
type PlanResult struct {
	ModuleID string
	Changes  []PlanChange
	Err      error
}

// HasChanges reports whether the plan contains at least one pending action.
func (r PlanResult) HasChanges() bool {
	return len(r.Changes) > 0
}

// ApplyResult captures the outcome of applying a single module.
type ApplyResult struct {
	ModuleID string
	Success  bool
	Changed  bool
	Message  string
	Err      error
}

// StatusResult captures the inspection outcome of a single module.
type StatusResult struct {
	ModuleID string
	Status   string
	Message  string
}
