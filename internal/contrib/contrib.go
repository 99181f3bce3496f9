// Package contrib implements the shared contribution mechanism: modules append
// partial configuration fragments (paths, aliases, shell-init snippets,
// packages) into the state store during their plan and apply phases, and
// collector modules later merge them into single resolved values.
//
// Contributions restricted to platforms excluding the current one are rejected
// at the point of addition, so resolution never needs a platform filter.
package contrib

import (
	"github.com/dotforge/dotforge/internal/platform"
	"github.com/dotforge/dotforge/internal/state"
)

// Store keys owned by this package. Raw contribution lists live under
// contrib.*; collector modules write merged outputs under resolved.*.
const (
	KeyPathContribs      = "contrib.paths"
	KeyAliasContribs     = "contrib.aliases"
	KeyShellInitContribs = "contrib.shellinit"
	KeyPackageContribs   = "contrib.packages"

	KeyResolvedPaths     = "resolved.paths"
	KeyResolvedAliases   = "resolved.aliases"
	KeyResolvedShellInit = "resolved.shellinit"
	KeyResolvedPackages  = "resolved.packages"
)

// PathContribution is one PATH entry offered by a module.
type PathContribution struct {
	Path      string
	Prepend   bool
	Platforms []platform.Platform
}

// AliasContribution is one shell alias offered by a module.
type AliasContribution struct {
	Name      string
	Value     string
	Platforms []platform.Platform
}

// ShellInitContribution is one shell initialization snippet offered by a module.
type ShellInitContribution struct {
	Snippet   string
	Platforms []platform.Platform
}

// PackageContribution is one system package requested by a module. Manager
// may be empty, in which case the platform default package manager is used.
type PackageContribution struct {
	Name      string
	Manager   string
	Platforms []platform.Platform
}

// platformAllowed reports whether a contribution restricted to platforms may
// be stored on current. An empty restriction means all platforms.
func platformAllowed(platforms []platform.Platform, current platform.Platform) bool {
	if len(platforms) == 0 {
		return true
	}
	for _, p := range platforms {
		if p == current {
			return true
		}
	}
	return false
}

// AddPathContribution appends c to the path contribution list. It returns
// false when the contribution was absorbed as a no-op: either its platform
// restriction excludes current, or an identical path with the same prepend
// flag is already present.
func AddPathContribution(st *state.Store, current platform.Platform, c PathContribution) bool {
	if !platformAllowed(c.Platforms, current) {
		return false
	}

	existing, _ := state.Get[[]PathContribution](st, KeyPathContribs)
	for _, e := range existing {
		if e.Path == c.Path && e.Prepend == c.Prepend {
			return false
		}
	}

	st.Set(KeyPathContribs, append(existing, c))
	return true
}

// AddAliasContribution appends c to the alias contribution list. It returns
// false when an identical {name, value} pair is already present or the
// platform restriction excludes current. A same-name contribution with a
// different value is stored; resolution is last-writer-wins.
func AddAliasContribution(st *state.Store, current platform.Platform, c AliasContribution) bool {
	if !platformAllowed(c.Platforms, current) {
		return false
	}

	existing, _ := state.Get[[]AliasContribution](st, KeyAliasContribs)
	for _, e := range existing {
		if e.Name == c.Name && e.Value == c.Value {
			return false
		}
	}

	st.Set(KeyAliasContribs, append(existing, c))
	return true
}

// AddShellInitContribution appends c to the shell-init contribution list,
// deduplicating on the exact snippet text.
func AddShellInitContribution(st *state.Store, current platform.Platform, c ShellInitContribution) bool {
	if !platformAllowed(c.Platforms, current) {
		return false
	}

	existing, _ := state.Get[[]ShellInitContribution](st, KeyShellInitContribs)
	for _, e := range existing {
		if e.Snippet == c.Snippet {
			return false
		}
	}

	st.Set(KeyShellInitContribs, append(existing, c))
	return true
}

// AddPackageContribution appends c to the package contribution list,
// deduplicating on {name, manager}.
func AddPackageContribution(st *state.Store, current platform.Platform, c PackageContribution) bool {
	if !platformAllowed(c.Platforms, current) {
		return false
	}

	existing, _ := state.Get[[]PackageContribution](st, KeyPackageContribs)
	for _, e := range existing {
		if e.Name == c.Name && e.Manager == c.Manager {
			return false
		}
	}

	st.Set(KeyPackageContribs, append(existing, c))
	return true
}
