package engine

import (
	"fmt"
	"strings"
)

// ErrDuplicateModule is returned when a module id is registered twice.
type ErrDuplicateModule struct {
	ID string
}

func (e ErrDuplicateModule) Error() string {
	return fmt.Sprintf("module '%s' is already registered\nHint: module ids must be unique within one engine", e.ID)
}

// ErrUnknownModule is returned when a requested or depended-on module id is
// not present in the registry.
type ErrUnknownModule struct {
	ID         string
	RequiredBy string
}

func (e ErrUnknownModule) Error() string {
	if e.RequiredBy != "" {
		return fmt.Sprintf(
			"module '%s' declares dependency '%s' which is not registered\nHint: register the dependency before resolving the order",
			e.RequiredBy,
			e.ID,
		)
	}
	return fmt.Sprintf("module '%s' not found in registry\nHint: ensure the module is registered before usage", e.ID)
}

// ErrCircularDependency is returned when the dependency graph contains a cycle.
type ErrCircularDependency struct {
	Cycle []string
}

func (e ErrCircularDependency) Error() string {
	if len(e.Cycle) == 0 {
		return "circular dependency detected\nHint: review module dependencies to remove cycles"
	}

	sequence := append(append([]string{}, e.Cycle...), e.Cycle[0])
	return fmt.Sprintf(
		"circular dependency detected: %s\nHint: break the cycle by removing or refactoring one of the dependencies",
		strings.Join(sequence, " -> "),
	)
}
