// Package dotfilesmod clones and tracks the user's dotfiles repository.
package dotfilesmod

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/dotforge/dotforge/internal/config"
	"github.com/dotforge/dotforge/internal/engine"
	"github.com/dotforge/dotforge/internal/model"
	pathutil "github.com/dotforge/dotforge/internal/paths"
)

// ModuleID identifies the dotfiles module in the graph.
const ModuleID = "dotfiles"

type dotfilesModule struct {
	engine.Base
	cfg config.DotfilesConfig
}

// New creates the dotfiles module from the manifest's dotfiles section.
func New(cfg config.DotfilesConfig) engine.Module {
	return &dotfilesModule{
		Base: engine.Base{Meta: engine.Metadata{
			ID:          ModuleID,
			Description: "Clones and tracks the dotfiles repository",
			Priority:    5,
		}},
		cfg: cfg,
	}
}

var _ engine.Module = (*dotfilesModule)(nil)

// repoState is the read-only assessment shared by plan, apply, and status.
type repoState struct {
	Destination string
	DirExists   bool
	IsGitRepo   bool
	ActualURL   string
}

func (m *dotfilesModule) destination(ctx *engine.Context) string {
	if m.cfg.Dest != "" {
		return pathutil.ExpandHome(m.cfg.Dest, ctx.HomeDir)
	}
	return pathutil.DefaultDotfilesDest(ctx.HomeDir)
}

func (m *dotfilesModule) inspect(ctx *engine.Context) (*repoState, error) {
	dest := m.destination(ctx)
	st := &repoState{Destination: dest}

	if _, err := os.Stat(dest); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return st, nil
		}
		return nil, fmt.Errorf("cannot access destination: %w", err)
	}
	st.DirExists = true

	if _, err := os.Stat(filepath.Join(dest, ".git")); err != nil {
		return st, nil
	}

	// Only treat as a git repo when it opens cleanly; otherwise report drift.
	repo, err := git.PlainOpen(dest)
	if err != nil {
		return st, nil
	}
	st.IsGitRepo = true

	if remote, err := repo.Remote("origin"); err == nil && len(remote.Config().URLs) > 0 {
		st.ActualURL = remote.Config().URLs[0]
	}
	return st, nil
}

func (m *dotfilesModule) cloneOptions() *git.CloneOptions {
	opts := &git.CloneOptions{URL: m.cfg.Repo}
	if m.cfg.Depth > 0 {
		opts.Depth = m.cfg.Depth
	}
	if m.cfg.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(m.cfg.Branch)
		opts.SingleBranch = true
	}
	return opts
}

func (m *dotfilesModule) Plan(ctx *engine.Context) (model.PlanResult, error) {
	st, err := m.inspect(ctx)
	if err != nil {
		return model.PlanResult{}, err
	}

	switch {
	case !st.DirExists:
		return model.PlanResult{Changes: []model.PlanChange{
			{Summary: fmt.Sprintf("clone %s into %s", m.cfg.Repo, st.Destination)},
		}}, nil
	case !st.IsGitRepo:
		return model.PlanResult{Changes: []model.PlanChange{
			{Summary: fmt.Sprintf("%s exists but is not a git repository", st.Destination)},
		}}, nil
	case st.ActualURL != m.cfg.Repo:
		return model.PlanResult{Changes: []model.PlanChange{
			{Summary: fmt.Sprintf("origin drifted: %s (want %s)", st.ActualURL, m.cfg.Repo)},
		}}, nil
	}
	return model.PlanResult{}, nil
}

func (m *dotfilesModule) Apply(ctx *engine.Context) (model.ApplyResult, error) {
	st, err := m.inspect(ctx)
	if err != nil {
		return model.ApplyResult{}, err
	}

	switch {
	case st.IsGitRepo && st.ActualURL == m.cfg.Repo:
		return model.ApplyResult{Success: true, Changed: false, Message: "repository up to date"}, nil
	case st.DirExists:
		// Never clobber an existing non-matching directory; the user decides.
		return model.ApplyResult{
			Success: false,
			Changed: false,
			Message: fmt.Sprintf("%s exists but does not match %s; refusing to overwrite", st.Destination, m.cfg.Repo),
		}, nil
	}

	if _, err := git.PlainCloneContext(ctx.Context, st.Destination, false, m.cloneOptions()); err != nil {
		return model.ApplyResult{}, fmt.Errorf("clone failed: %w", err)
	}

	ctx.Logger.WithModule(ModuleID).Info("repository cloned")
	return model.ApplyResult{
		Success: true,
		Changed: true,
		Message: fmt.Sprintf("cloned %s", m.cfg.Repo),
	}, nil
}

func (m *dotfilesModule) Status(ctx *engine.Context) (model.StatusResult, error) {
	st, err := m.inspect(ctx)
	if err != nil {
		return model.StatusResult{}, err
	}

	switch {
	case !st.DirExists:
		return model.StatusResult{Status: model.StatusPending, Message: "repository not cloned"}, nil
	case !st.IsGitRepo:
		return model.StatusResult{Status: model.StatusStale, Message: "destination is not a git repository"}, nil
	case st.ActualURL != m.cfg.Repo:
		return model.StatusResult{Status: model.StatusStale, Message: fmt.Sprintf("origin is %s", st.ActualURL)}, nil
	}
	return model.StatusResult{Status: model.StatusApplied, Message: st.Destination}, nil
}
