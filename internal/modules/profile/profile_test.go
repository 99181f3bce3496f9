package profilemod

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotforge/dotforge/internal/config"
	"github.com/dotforge/dotforge/internal/contrib"
	"github.com/dotforge/dotforge/internal/engine"
	"github.com/dotforge/dotforge/internal/platform"
	"github.com/dotforge/dotforge/internal/state"
)

func testContext(p platform.Platform) *engine.Context {
	return &engine.Context{
		Context:  context.Background(),
		Platform: p,
		HomeDir:  "/home/u",
		State:    state.NewStore(),
	}
}

func testProfile() config.Profile {
	return config.Profile{
		Paths: []config.PathEntry{
			{Path: "~/bin", Prepend: true},
			{Path: "/opt/homebrew/bin", Platforms: []string{"macos"}},
		},
		Aliases: []config.AliasEntry{
			{Name: "ll", Value: "ls -l"},
		},
		ShellInit: []config.InitEntry{
			{Snippet: "set -o vi"},
		},
		Packages: []config.PackageEntry{
			{Name: "ripgrep"},
		},
	}
}

func TestPlanContributesDeclaredEntries(t *testing.T) {
	ctx := testContext(platform.MacOS)
	m := New(testProfile())

	result, err := m.Plan(ctx)
	require.NoError(t, err)
	assert.False(t, result.HasChanges(), "profile owns no machine state")

	assert.Equal(t, []string{"/home/u/bin", "/opt/homebrew/bin"}, contrib.ResolvePaths(ctx.State),
		"home expansion and platform match both apply")
	assert.Equal(t, []contrib.Alias{{Name: "ll", Value: "ls -l"}}, contrib.ResolveAliases(ctx.State))
	assert.Equal(t, []string{"set -o vi"}, contrib.ResolveShellInit(ctx.State))
	assert.Equal(t, []contrib.Package{{Name: "ripgrep"}}, contrib.ResolvePackages(ctx.State))
}

func TestPlanFiltersPlatformRestrictedEntries(t *testing.T) {
	ctx := testContext(platform.Ubuntu)
	m := New(testProfile())

	_, err := m.Plan(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"/home/u/bin"}, contrib.ResolvePaths(ctx.State),
		"macos-only path must not be contributed on ubuntu")
}

func TestApplyIsIdempotentOverContributions(t *testing.T) {
	ctx := testContext(platform.Ubuntu)
	m := New(testProfile())

	first, err := m.Apply(ctx)
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.False(t, first.Changed)

	// Same store, second pass: every contribution is absorbed as a no-op.
	second, err := m.Apply(ctx)
	require.NoError(t, err)
	assert.Contains(t, second.Message, "contributed 0 entries")
}

func TestStatusIsIdle(t *testing.T) {
	res, err := New(config.Profile{}).Status(testContext(platform.Ubuntu))
	require.NoError(t, err)
	assert.Equal(t, "idle", res.Status)
}

func TestDetails(t *testing.T) {
	m := New(testProfile())
	d, ok := m.(engine.Detailer)
	require.True(t, ok)
	assert.Len(t, d.Details(testContext(platform.Ubuntu)), 4)
}
