// Package packagesmod reconciles system packages. It consumes the resolved
// package contributions (so it depends on the contributor modules) and
// drives the platform package manager through subprocess invocations.
package packagesmod

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/dotforge/dotforge/internal/contrib"
	"github.com/dotforge/dotforge/internal/engine"
	"github.com/dotforge/dotforge/internal/model"
	"github.com/dotforge/dotforge/internal/modules/localcfg"
	"github.com/dotforge/dotforge/internal/modules/profile"
	"github.com/dotforge/dotforge/internal/platform"
)

// ModuleID identifies the packages module in the graph.
const ModuleID = "packages"

const defaultCommandTimeout = 120 * time.Second

// runner abstracts subprocess execution so tests can substitute a fake.
type runner interface {
	// Run executes name with args and returns combined output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	// LookPath reports whether name resolves to an executable.
	LookPath(name string) bool
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

func (execRunner) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

type packagesModule struct {
	engine.Base
	run     runner
	timeout time.Duration
}

// New creates the packages module. timeout bounds each package manager
// invocation; zero means the default.
func New(timeout time.Duration) engine.Module {
	return newWithRunner(execRunner{}, timeout)
}

func newWithRunner(run runner, timeout time.Duration) *packagesModule {
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}
	return &packagesModule{
		Base: engine.Base{Meta: engine.Metadata{
			ID:          ModuleID,
			Description: "Installs declared packages via the platform package manager",
			DependsOn:   []string{profilemod.ModuleID, localcfgmod.ModuleID},
			Priority:    40,
		}},
		run:     run,
		timeout: timeout,
	}
}

var _ engine.Module = (*packagesModule)(nil)

// defaultManager maps a platform to its package manager.
func defaultManager(p platform.Platform) string {
	switch p {
	case platform.MacOS:
		return "brew"
	case platform.Ubuntu:
		return "apt"
	case platform.AL2:
		return "dnf"
	}
	return ""
}

func (m *packagesModule) IsApplicable(ctx *engine.Context) bool {
	mgr := defaultManager(ctx.Platform)
	return mgr != "" && m.run.LookPath(managerBinary(mgr))
}

func managerBinary(manager string) string {
	if manager == "apt" {
		return "apt-get"
	}
	return manager
}

// checkArgs returns the query command reporting whether pkg is installed.
func checkArgs(manager, pkg string) (string, []string) {
	switch manager {
	case "brew":
		return "brew", []string{"list", "--formula", pkg}
	case "apt":
		return "dpkg", []string{"-s", pkg}
	case "dnf":
		return "rpm", []string{"-q", pkg}
	}
	return "", nil
}

// installArgs returns the install command for pkg.
func installArgs(manager, pkg string) (string, []string) {
	switch manager {
	case "brew":
		return "brew", []string{"install", pkg}
	case "apt":
		return "apt-get", []string{"install", "-y", pkg}
	case "dnf":
		return "dnf", []string{"install", "-y", pkg}
	}
	return "", nil
}

// selectPackages resolves contributions and publishes the resolved list,
// then keeps only the packages targeting the current platform's manager.
func (m *packagesModule) selectPackages(ctx *engine.Context) []contrib.Package {
	resolved := contrib.ResolvePackages(ctx.State)
	ctx.State.Set(contrib.KeyResolvedPackages, resolved)

	fallback := defaultManager(ctx.Platform)
	selected := make([]contrib.Package, 0, len(resolved))
	for _, pkg := range resolved {
		if pkg.Manager == "" {
			pkg.Manager = fallback
		}
		if pkg.Manager == fallback {
			selected = append(selected, pkg)
		}
	}
	return selected
}

func (m *packagesModule) installed(ctx *engine.Context, pkg contrib.Package) (bool, error) {
	name, args := checkArgs(pkg.Manager, pkg.Name)
	if name == "" {
		return false, fmt.Errorf("no check command for manager %q", pkg.Manager)
	}

	runCtx, cancel := context.WithTimeout(ctx.Context, m.timeout)
	defer cancel()

	// Query commands exit non-zero for missing packages; that is an answer,
	// not a failure.
	_, err := m.run.Run(runCtx, name, args...)
	if err == nil {
		return true, nil
	}
	if runCtx.Err() != nil {
		return false, runCtx.Err()
	}
	return false, nil
}

func (m *packagesModule) missingPackages(ctx *engine.Context) ([]contrib.Package, error) {
	var missing []contrib.Package
	for _, pkg := range m.selectPackages(ctx) {
		ok, err := m.installed(ctx, pkg)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, pkg)
		}
	}
	return missing, nil
}

func (m *packagesModule) Plan(ctx *engine.Context) (model.PlanResult, error) {
	missing, err := m.missingPackages(ctx)
	if err != nil {
		return model.PlanResult{}, err
	}

	changes := make([]model.PlanChange, 0, len(missing))
	for _, pkg := range missing {
		changes = append(changes, model.PlanChange{
			Summary: fmt.Sprintf("install %s via %s", pkg.Name, pkg.Manager),
		})
	}
	return model.PlanResult{Changes: changes}, nil
}

func (m *packagesModule) Apply(ctx *engine.Context) (model.ApplyResult, error) {
	missing, err := m.missingPackages(ctx)
	if err != nil {
		return model.ApplyResult{}, err
	}
	if len(missing) == 0 {
		return model.ApplyResult{Success: true, Changed: false, Message: "all packages installed"}, nil
	}

	var installedNames []string
	for _, pkg := range missing {
		name, args := installArgs(pkg.Manager, pkg.Name)

		runCtx, cancel := context.WithTimeout(ctx.Context, m.timeout)
		out, err := m.run.Run(runCtx, name, args...)
		cancel()

		if err != nil {
			return model.ApplyResult{
				Changed: len(installedNames) > 0,
				Message: fmt.Sprintf("installed %d of %d packages", len(installedNames), len(missing)),
			}, fmt.Errorf("install %s: %w: %s", pkg.Name, err, strings.TrimSpace(string(out)))
		}
		installedNames = append(installedNames, pkg.Name)
		ctx.Logger.WithModule(ModuleID).Info(fmt.Sprintf("installed %s", pkg.Name))
	}

	return model.ApplyResult{
		Success: true,
		Changed: true,
		Message: fmt.Sprintf("installed %s", strings.Join(installedNames, ", ")),
	}, nil
}

func (m *packagesModule) Status(ctx *engine.Context) (model.StatusResult, error) {
	selected := m.selectPackages(ctx)
	if len(selected) == 0 {
		return model.StatusResult{Status: model.StatusIdle, Message: "no packages declared"}, nil
	}

	missing, err := m.missingPackages(ctx)
	if err != nil {
		return model.StatusResult{}, err
	}
	if len(missing) == 0 {
		return model.StatusResult{
			Status:  model.StatusApplied,
			Message: fmt.Sprintf("%d packages installed", len(selected)),
		}, nil
	}
	return model.StatusResult{
		Status:  model.StatusPending,
		Message: fmt.Sprintf("%d of %d packages missing", len(missing), len(selected)),
	}, nil
}
