package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dotforge/dotforge/internal/platform"
)

func TestExpandHome(t *testing.T) {
	home := "/home/u"

	assert.Equal(t, "/home/u", ExpandHome("~", home))
	assert.Equal(t, filepath.Join(home, ".zshrc"), ExpandHome("~/.zshrc", home))
	assert.Equal(t, filepath.Join(home, "bin"), ExpandHome("$HOME/bin", home))
	assert.Equal(t, "/etc/profile", ExpandHome("/etc/profile", home))
}

func TestDefaultRCFilePerPlatform(t *testing.T) {
	home := "/home/u"
	assert.Equal(t, filepath.Join(home, ".zshrc"), DefaultRCFile(platform.MacOS, home))
	assert.Equal(t, filepath.Join(home, ".bashrc"), DefaultRCFile(platform.Ubuntu, home))
	assert.Equal(t, filepath.Join(home, ".bashrc"), DefaultRCFile(platform.AL2, home))
}
