package contrib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotforge/dotforge/internal/platform"
	"github.com/dotforge/dotforge/internal/state"
)

func TestResolvePathsPrependPrecedesAppend(t *testing.T) {
	st := state.NewStore()
	require.True(t, AddPathContribution(st, platform.Ubuntu, PathContribution{Path: "/a"}))
	require.True(t, AddPathContribution(st, platform.Ubuntu, PathContribution{Path: "/b", Prepend: true}))

	assert.Equal(t, []string{"/b", "/a"}, ResolvePaths(st),
		"prepend entries precede append entries regardless of contribution order")
}

func TestResolvePathsPreservesGroupInsertionOrder(t *testing.T) {
	st := state.NewStore()
	AddPathContribution(st, platform.Ubuntu, PathContribution{Path: "/append-1"})
	AddPathContribution(st, platform.Ubuntu, PathContribution{Path: "/prepend-1", Prepend: true})
	AddPathContribution(st, platform.Ubuntu, PathContribution{Path: "/append-2"})
	AddPathContribution(st, platform.Ubuntu, PathContribution{Path: "/prepend-2", Prepend: true})

	assert.Equal(t, []string{"/prepend-1", "/prepend-2", "/append-1", "/append-2"}, ResolvePaths(st))
}

func TestResolvePathsDeduplicatesKeepingFirst(t *testing.T) {
	st := state.NewStore()
	AddPathContribution(st, platform.Ubuntu, PathContribution{Path: "/dup", Prepend: true})
	AddPathContribution(st, platform.Ubuntu, PathContribution{Path: "/other"})
	AddPathContribution(st, platform.Ubuntu, PathContribution{Path: "/dup"})

	assert.Equal(t, []string{"/dup", "/other"}, ResolvePaths(st))
}

func TestResolvePathsIdempotent(t *testing.T) {
	st := state.NewStore()
	AddPathContribution(st, platform.Ubuntu, PathContribution{Path: "/x", Prepend: true})
	AddPathContribution(st, platform.Ubuntu, PathContribution{Path: "/y"})

	first := ResolvePaths(st)
	second := ResolvePaths(st)
	assert.Equal(t, first, second, "resolving twice with no new contributions must be identical")
}

func TestResolveAliasesLastWriterWins(t *testing.T) {
	st := state.NewStore()
	AddAliasContribution(st, platform.Ubuntu, AliasContribution{Name: "ll", Value: "ls -a"})
	AddAliasContribution(st, platform.Ubuntu, AliasContribution{Name: "gs", Value: "git status"})
	AddAliasContribution(st, platform.Ubuntu, AliasContribution{Name: "ll", Value: "ls -l"})

	resolved := ResolveAliases(st)
	require.Len(t, resolved, 2)
	assert.Equal(t, Alias{Name: "ll", Value: "ls -l"}, resolved[0])
	assert.Equal(t, Alias{Name: "gs", Value: "git status"}, resolved[1])
}

func TestResolveAliasesDeterministicOrder(t *testing.T) {
	st := state.NewStore()
	AddAliasContribution(st, platform.Ubuntu, AliasContribution{Name: "b", Value: "1"})
	AddAliasContribution(st, platform.Ubuntu, AliasContribution{Name: "a", Value: "2"})

	first := ResolveAliases(st)
	second := ResolveAliases(st)
	assert.Equal(t, first, second)
	assert.Equal(t, "b", first[0].Name, "output order follows first-contribution order")
}

func TestResolveShellInitKeepsInsertionOrder(t *testing.T) {
	st := state.NewStore()
	AddShellInitContribution(st, platform.Ubuntu, ShellInitContribution{Snippet: "first"})
	AddShellInitContribution(st, platform.Ubuntu, ShellInitContribution{Snippet: "second"})

	assert.Equal(t, []string{"first", "second"}, ResolveShellInit(st))
}

func TestResolvePackages(t *testing.T) {
	st := state.NewStore()
	AddPackageContribution(st, platform.MacOS, PackageContribution{Name: "ripgrep"})
	AddPackageContribution(st, platform.MacOS, PackageContribution{Name: "fzf", Manager: "brew"})

	assert.Equal(t, []Package{{Name: "ripgrep"}, {Name: "fzf", Manager: "brew"}}, ResolvePackages(st))
}

func TestResolveEmptyStore(t *testing.T) {
	st := state.NewStore()
	assert.Empty(t, ResolvePaths(st))
	assert.Empty(t, ResolveAliases(st))
	assert.Empty(t, ResolveShellInit(st))
	assert.Empty(t, ResolvePackages(st))
}
