package main

import (
	"time"

	"github.com/dotforge/dotforge/internal/config"
	"github.com/dotforge/dotforge/internal/engine"
	"github.com/dotforge/dotforge/internal/logger"
	"github.com/dotforge/dotforge/internal/paths"

	dotfilesmod "github.com/dotforge/dotforge/internal/modules/dotfiles"
	localcfgmod "github.com/dotforge/dotforge/internal/modules/localcfg"
	overridesmod "github.com/dotforge/dotforge/internal/modules/overrides"
	packagesmod "github.com/dotforge/dotforge/internal/modules/packages"
	profilemod "github.com/dotforge/dotforge/internal/modules/profile"
	shellrcmod "github.com/dotforge/dotforge/internal/modules/shellrc"
)

// buildEngine parses the configuration and assembles a fully registered
// engine. The returned config is the parsed file for callers that need
// settings beyond module wiring.
func buildEngine(flags *rootFlags) (*engine.Engine, *config.Config, error) {
	path := flags.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.ParseConfig(path)
	if err != nil {
		return nil, nil, err
	}

	level := "info"
	if flags.verbose || cfg.Settings.Verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: true})
	if err != nil {
		return nil, nil, err
	}

	eng, err := engine.New(engine.Options{Logger: log})
	if err != nil {
		return nil, nil, err
	}

	timeout := time.Duration(cfg.Settings.Timeout) * time.Second

	modules := []engine.Module{
		profilemod.New(cfg.Profile),
		localcfgmod.New(paths.LocalOverridesTOML()),
		overridesmod.New(cfg.Shell.OverridesFile),
		shellrcmod.New(cfg.Shell),
		packagesmod.New(timeout),
	}
	if cfg.Dotfiles != nil {
		modules = append(modules, dotfilesmod.New(*cfg.Dotfiles))
	}

	for _, m := range modules {
		if err := eng.Register(m); err != nil {
			return nil, nil, err
		}
	}

	return eng, cfg, nil
}
