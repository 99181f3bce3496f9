package overridesmod

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotforge/dotforge/internal/engine"
	"github.com/dotforge/dotforge/internal/model"
	"github.com/dotforge/dotforge/internal/platform"
	"github.com/dotforge/dotforge/internal/state"
)

func testContext(t *testing.T) *engine.Context {
	t.Helper()
	return &engine.Context{
		Context:  context.Background(),
		Platform: platform.Ubuntu,
		HomeDir:  t.TempDir(),
		State:    state.NewStore(),
	}
}

func TestPlanReportsCreationWhenAbsent(t *testing.T) {
	ctx := testContext(t)
	m := New("")

	result, err := m.Plan(ctx)
	require.NoError(t, err)
	require.True(t, result.HasChanges())
	assert.Contains(t, result.Changes[0].Summary, ".dotforge.local.sh")
}

func TestApplyCreatesFileOnceOnly(t *testing.T) {
	ctx := testContext(t)
	m := New("")

	first, err := m.Apply(ctx)
	require.NoError(t, err)
	assert.True(t, first.Changed)

	target := filepath.Join(ctx.HomeDir, ".dotforge.local.sh")
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "never rewritten")

	// User edits must survive a second apply.
	require.NoError(t, os.WriteFile(target, []byte("export SECRET=1\n"), 0o644))

	second, err := m.Apply(ctx)
	require.NoError(t, err)
	assert.False(t, second.Changed)

	data, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "export SECRET=1\n", string(data))
}

func TestStatusPendingThenApplied(t *testing.T) {
	ctx := testContext(t)
	m := New("")

	status, err := m.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, status.Status)

	_, err = m.Apply(ctx)
	require.NoError(t, err)

	status, err = m.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApplied, status.Status)
}

func TestCustomPathExpandsHome(t *testing.T) {
	ctx := testContext(t)
	m := New("~/custom/local.sh")

	_, err := m.Apply(ctx)
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(ctx.HomeDir, "custom", "local.sh"))
	assert.NoError(t, statErr)
}

func TestPlanEmptyWhenPresent(t *testing.T) {
	ctx := testContext(t)
	m := New("")
	_, err := m.Apply(ctx)
	require.NoError(t, err)

	result, err := m.Plan(ctx)
	require.NoError(t, err)
	assert.False(t, result.HasChanges())
}
