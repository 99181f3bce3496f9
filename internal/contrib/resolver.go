package contrib

import (
	"github.com/dotforge/dotforge/internal/state"
)

// Alias is one resolved alias pair.
type Alias struct {
	Name  string
	Value string
}

// Package is one resolved package request.
type Package struct {
	Name    string
	Manager string
}

// ResolvePaths merges all path contributions into one ordered, deduplicated
// list. Prepend contributions always precede append contributions, each group
// keeping its insertion order; duplicates keep the first occurrence. The
// function is pure over the store's current contribution list, so repeated
// calls with unchanged input yield identical output.
func ResolvePaths(st *state.Store) []string {
	contribs, _ := state.Get[[]PathContribution](st, KeyPathContribs)

	var prepend, appendGroup []string
	for _, c := range contribs {
		if c.Prepend {
			prepend = append(prepend, c.Path)
		} else {
			appendGroup = append(appendGroup, c.Path)
		}
	}

	seen := make(map[string]struct{}, len(contribs))
	merged := make([]string, 0, len(contribs))
	for _, path := range append(prepend, appendGroup...) {
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		merged = append(merged, path)
	}
	return merged
}

// ResolveAliases merges all alias contributions, last writer wins per alias
// name. Output order is the order each name was first contributed, which is
// deterministic for a fixed contribution sequence.
func ResolveAliases(st *state.Store) []Alias {
	contribs, _ := state.Get[[]AliasContribution](st, KeyAliasContribs)

	values := make(map[string]string, len(contribs))
	order := make([]string, 0, len(contribs))
	for _, c := range contribs {
		if _, exists := values[c.Name]; !exists {
			order = append(order, c.Name)
		}
		values[c.Name] = c.Value
	}

	resolved := make([]Alias, 0, len(order))
	for _, name := range order {
		resolved = append(resolved, Alias{Name: name, Value: values[name]})
	}
	return resolved
}

// ResolveShellInit merges all shell-init contributions in insertion order.
func ResolveShellInit(st *state.Store) []string {
	contribs, _ := state.Get[[]ShellInitContribution](st, KeyShellInitContribs)

	snippets := make([]string, 0, len(contribs))
	for _, c := range contribs {
		snippets = append(snippets, c.Snippet)
	}
	return snippets
}

// ResolvePackages merges all package contributions in insertion order.
func ResolvePackages(st *state.Store) []Package {
	contribs, _ := state.Get[[]PackageContribution](st, KeyPackageContribs)

	packages := make([]Package, 0, len(contribs))
	for _, c := range contribs {
		packages = append(packages, Package{Name: c.Name, Manager: c.Manager})
	}
	return packages
}
