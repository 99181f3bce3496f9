package config

// Config represents the full dotforge manifest document.
type Config struct {
	Version     string          `yaml:"version" validate:"required,semver"`
	Name        string          `yaml:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description string          `yaml:"description,omitempty"`
	Settings    Settings        `yaml:"settings,omitempty"`
	Profile     Profile         `yaml:"profile,omitempty"`
	Dotfiles    *DotfilesConfig `yaml:"dotfiles,omitempty"`
	Shell       ShellConfig     `yaml:"shell,omitempty"`
}

// Settings holds global execution parameters.
type Settings struct {
	Timeout int  `yaml:"timeout,omitempty" validate:"omitempty,min=1,max=3600"`
	Verbose bool `yaml:"verbose,omitempty"`
}

// Profile declares the user's contributions: PATH entries, aliases,
// shell-init snippets, and packages merged into the managed shell block.
type Profile struct {
	Paths     []PathEntry    `yaml:"paths,omitempty" validate:"omitempty,dive"`
	Aliases   []AliasEntry   `yaml:"aliases,omitempty" validate:"omitempty,dive"`
	ShellInit []InitEntry    `yaml:"shell_init,omitempty" validate:"omitempty,dive"`
	Packages  []PackageEntry `yaml:"packages,omitempty" validate:"omitempty,dive"`
}

// PathEntry is one declared PATH contribution.
type PathEntry struct {
	Path      string   `yaml:"path" validate:"required"`
	Prepend   bool     `yaml:"prepend,omitempty"`
	Platforms []string `yaml:"platforms,omitempty" validate:"omitempty,dive,platform"`
}

// AliasEntry is one declared alias contribution.
type AliasEntry struct {
	Name      string   `yaml:"name" validate:"required,alias_name"`
	Value     string   `yaml:"value" validate:"required"`
	Platforms []string `yaml:"platforms,omitempty" validate:"omitempty,dive,platform"`
}

// InitEntry is one declared shell-init snippet contribution.
type InitEntry struct {
	Snippet   string   `yaml:"snippet" validate:"required"`
	Platforms []string `yaml:"platforms,omitempty" validate:"omitempty,dive,platform"`
}

// PackageEntry is one declared package contribution.
type PackageEntry struct {
	Name      string   `yaml:"name" validate:"required"`
	Manager   string   `yaml:"manager,omitempty" validate:"omitempty,oneof=brew apt dnf"`
	Platforms []string `yaml:"platforms,omitempty" validate:"omitempty,dive,platform"`
}

// DotfilesConfig points at the user's dotfiles repository.
type DotfilesConfig struct {
	Repo   string `yaml:"repo" validate:"required,git_url"`
	Dest   string `yaml:"dest,omitempty"`
	Branch string `yaml:"branch,omitempty"`
	Depth  int    `yaml:"depth,omitempty" validate:"omitempty,min=1"`
}

// ShellConfig locates the files the shellrc and overrides modules manage.
// Empty values fall back to platform defaults.
type ShellConfig struct {
	RCFile        string `yaml:"rc_file,omitempty"`
	OverridesFile string `yaml:"overrides_file,omitempty"`
}
