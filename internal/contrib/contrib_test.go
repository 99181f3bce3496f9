package contrib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotforge/dotforge/internal/platform"
	"github.com/dotforge/dotforge/internal/state"
)

func TestAddPathContributionPlatformFilter(t *testing.T) {
	st := state.NewStore()

	added := AddPathContribution(st, platform.Ubuntu, PathContribution{
		Path:      "/opt/homebrew/bin",
		Platforms: []platform.Platform{platform.MacOS},
	})
	assert.False(t, added, "macos-only contribution must be rejected on ubuntu")

	_, ok := st.Get(KeyPathContribs)
	assert.False(t, ok, "rejected contribution must never be stored")

	added = AddPathContribution(st, platform.MacOS, PathContribution{
		Path:      "/opt/homebrew/bin",
		Platforms: []platform.Platform{platform.MacOS},
	})
	assert.True(t, added)
}

func TestAddPathContributionDeduplicates(t *testing.T) {
	st := state.NewStore()

	require.True(t, AddPathContribution(st, platform.Ubuntu, PathContribution{Path: "/usr/local/bin"}))
	assert.False(t, AddPathContribution(st, platform.Ubuntu, PathContribution{Path: "/usr/local/bin"}))
	assert.True(t, AddPathContribution(st, platform.Ubuntu, PathContribution{Path: "/usr/local/bin", Prepend: true}),
		"same path with different prepend flag is a distinct contribution")
}

func TestAddAliasContributionDeduplicates(t *testing.T) {
	st := state.NewStore()

	require.True(t, AddAliasContribution(st, platform.Ubuntu, AliasContribution{Name: "ll", Value: "ls -a"}))
	assert.False(t, AddAliasContribution(st, platform.Ubuntu, AliasContribution{Name: "ll", Value: "ls -a"}),
		"identical {name, value} pair must be a no-op")
	assert.True(t, AddAliasContribution(st, platform.Ubuntu, AliasContribution{Name: "ll", Value: "ls -l"}),
		"same name with different value must be stored for last-writer-wins resolution")
}

func TestAddShellInitContributionDeduplicates(t *testing.T) {
	st := state.NewStore()

	require.True(t, AddShellInitContribution(st, platform.MacOS, ShellInitContribution{Snippet: `eval "$(starship init zsh)"`}))
	assert.False(t, AddShellInitContribution(st, platform.MacOS, ShellInitContribution{Snippet: `eval "$(starship init zsh)"`}))
}

func TestAddPackageContributionDeduplicates(t *testing.T) {
	st := state.NewStore()

	require.True(t, AddPackageContribution(st, platform.AL2, PackageContribution{Name: "ripgrep"}))
	assert.False(t, AddPackageContribution(st, platform.AL2, PackageContribution{Name: "ripgrep"}))
	assert.True(t, AddPackageContribution(st, platform.AL2, PackageContribution{Name: "ripgrep", Manager: "brew"}),
		"same package under a different manager is a distinct contribution")
}
