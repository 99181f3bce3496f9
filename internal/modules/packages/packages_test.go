package packagesmod

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotforge/dotforge/internal/contrib"
	"github.com/dotforge/dotforge/internal/engine"
	"github.com/dotforge/dotforge/internal/model"
	"github.com/dotforge/dotforge/internal/platform"
	"github.com/dotforge/dotforge/internal/state"
)

// fakeRunner scripts command outcomes keyed by the joined command line.
type fakeRunner struct {
	installed   map[string]bool // package name -> installed
	calls       []string
	failInstall map[string]error
}

func newFakeRunner(installed ...string) *fakeRunner {
	m := make(map[string]bool, len(installed))
	for _, name := range installed {
		m[name] = true
	}
	return &fakeRunner{installed: m, failInstall: map[string]error{}}
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmdline := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, cmdline)

	pkg := args[len(args)-1]
	switch {
	case strings.Contains(cmdline, "install"):
		if err, ok := f.failInstall[pkg]; ok {
			return []byte("E: unable to locate package"), err
		}
		f.installed[pkg] = true
		return nil, nil
	default: // query
		if f.installed[pkg] {
			return []byte("installed"), nil
		}
		return nil, fmt.Errorf("package %s is not installed", pkg)
	}
}

func (f *fakeRunner) LookPath(name string) bool { return true }

func testContext(pkgs ...contrib.PackageContribution) *engine.Context {
	ctx := &engine.Context{
		Context:  context.Background(),
		Platform: platform.Ubuntu,
		HomeDir:  "/home/u",
		State:    state.NewStore(),
	}
	for _, p := range pkgs {
		contrib.AddPackageContribution(ctx.State, ctx.Platform, p)
	}
	return ctx
}

func TestPlanListsMissingPackages(t *testing.T) {
	ctx := testContext(
		contrib.PackageContribution{Name: "ripgrep"},
		contrib.PackageContribution{Name: "jq"},
	)
	m := newWithRunner(newFakeRunner("jq"), 0)

	result, err := m.Plan(ctx)
	require.NoError(t, err)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, "install ripgrep via apt", result.Changes[0].Summary)
}

func TestPlanSkipsForeignManagerPackages(t *testing.T) {
	ctx := testContext(
		contrib.PackageContribution{Name: "fzf", Manager: "brew"},
		contrib.PackageContribution{Name: "ripgrep"},
	)
	m := newWithRunner(newFakeRunner(), 0)

	result, err := m.Plan(ctx)
	require.NoError(t, err)
	require.Len(t, result.Changes, 1, "brew-managed package is not planned on ubuntu")
	assert.Contains(t, result.Changes[0].Summary, "ripgrep")
}

func TestPlanPublishesResolvedPackages(t *testing.T) {
	ctx := testContext(contrib.PackageContribution{Name: "ripgrep"})
	m := newWithRunner(newFakeRunner(), 0)

	_, err := m.Plan(ctx)
	require.NoError(t, err)

	resolved, ok := state.Get[[]contrib.Package](ctx.State, contrib.KeyResolvedPackages)
	require.True(t, ok)
	assert.Equal(t, []contrib.Package{{Name: "ripgrep"}}, resolved)
}

func TestApplyInstallsMissingThenNoOp(t *testing.T) {
	ctx := testContext(contrib.PackageContribution{Name: "ripgrep"})
	run := newFakeRunner()
	m := newWithRunner(run, 0)

	first, err := m.Apply(ctx)
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.True(t, first.Changed)
	assert.Contains(t, first.Message, "ripgrep")
	assert.Contains(t, strings.Join(run.calls, "\n"), "apt-get install -y ripgrep")

	second, err := m.Apply(ctx)
	require.NoError(t, err)
	assert.True(t, second.Success)
	assert.False(t, second.Changed, "second apply with everything installed is a no-op")
}

func TestApplySurfacesInstallFailure(t *testing.T) {
	ctx := testContext(
		contrib.PackageContribution{Name: "jq"},
		contrib.PackageContribution{Name: "no-such-pkg"},
	)
	run := newFakeRunner()
	run.failInstall["no-such-pkg"] = errors.New("exit status 100")
	m := newWithRunner(run, 0)

	result, err := m.Apply(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-pkg")
	assert.Contains(t, err.Error(), "unable to locate package")
	assert.True(t, result.Changed, "packages installed before the failure are reported")
}

func TestStatusTransitions(t *testing.T) {
	ctx := testContext(contrib.PackageContribution{Name: "ripgrep"})
	run := newFakeRunner()
	m := newWithRunner(run, 0)

	status, err := m.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, status.Status)

	run.installed["ripgrep"] = true

	status, err = m.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApplied, status.Status)
}

func TestStatusIdleWithoutDeclaredPackages(t *testing.T) {
	ctx := testContext()
	m := newWithRunner(newFakeRunner(), 0)

	status, err := m.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StatusIdle, status.Status)
}

func TestDependsOnContributors(t *testing.T) {
	meta := New(0).Metadata()
	assert.ElementsMatch(t, []string{"profile", "localcfg"}, meta.DependsOn)
}

func TestDefaultManagerPerPlatform(t *testing.T) {
	assert.Equal(t, "brew", defaultManager(platform.MacOS))
	assert.Equal(t, "apt", defaultManager(platform.Ubuntu))
	assert.Equal(t, "dnf", defaultManager(platform.AL2))
	assert.Equal(t, "", defaultManager(platform.Unknown))
}
