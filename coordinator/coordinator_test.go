package coordinator

import (
	"context"
	"errors"
	"testing"

	"github.com/amplifierhq/kernel/model"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator() *Coordinator {
	return New(Config{SessionID: "sess-1", ParentID: "", RawConfig: map[string]any{}})
}

func TestMountProviderRejectsReservedName(t *testing.T) {
	c := newTestCoordinator()
	err := c.MountProvider(model.Name("hooks"), nil)
	require.Error(t, err)
}

func TestMountAndUnmountTool(t *testing.T) {
	c := newTestCoordinator()
	require.NoError(t, c.MountTool(model.Name("search"), nil))
	_, ok := c.Tool(model.Name("search"))
	require.True(t, ok)

	c.UnmountTool(model.Name("search"))
	_, ok = c.Tool(model.Name("search"))
	require.False(t, ok)

	// Unmounting a non-existent entry is a no-op.
	require.NotPanics(t, func() { c.UnmountTool(model.Name("nonexistent")) })
}

func TestCleanupRunsInReverseRegistrationOrder(t *testing.T) {
	c := newTestCoordinator()
	var order []int
	c.RegisterCleanup(func(context.Context) error { order = append(order, 1); return nil })
	c.RegisterCleanup(func(context.Context) error { order = append(order, 2); return nil })
	c.RegisterCleanup(func(context.Context) error { order = append(order, 3); return nil })

	c.Cleanup(context.Background())

	require.Equal(t, []int{3, 2, 1}, order)
}

func TestCleanupIsolatesFailuresAndPanics(t *testing.T) {
	c := newTestCoordinator()
	var ranAfterFailure, ranAfterPanic bool
	c.RegisterCleanup(func(context.Context) error { return errors.New("boom") })
	c.RegisterCleanup(func(context.Context) error { ranAfterFailure = true; return nil })
	c.RegisterCleanup(func(context.Context) error { panic("boom") })
	c.RegisterCleanup(func(context.Context) error { ranAfterPanic = true; return nil })

	require.NotPanics(t, func() { c.Cleanup(context.Background()) })
	require.True(t, ranAfterFailure)
	require.True(t, ranAfterPanic)
}

func TestRegisterCleanupSilentlyIgnoresNil(t *testing.T) {
	c := newTestCoordinator()
	c.RegisterCleanup(nil)
	require.NotPanics(t, func() { c.Cleanup(context.Background()) })
}

func TestCollectContributionsOrdersByRegistrationAndSkipsFailures(t *testing.T) {
	c := newTestCoordinator()
	c.RegisterContributor("ch", "a", func(context.Context) (any, error) { return "a", nil })
	c.RegisterContributor("ch", "b", func(context.Context) (any, error) { return nil, errors.New("fail") })
	c.RegisterContributor("ch", "c", func(context.Context) (any, error) { return "c", nil })

	results := c.CollectContributions(context.Background(), "ch")
	require.Equal(t, []any{"a", "c"}, results)
}

func TestUnmountingNonExistentMultiSlotEntryIsNoop(t *testing.T) {
	c := newTestCoordinator()
	require.NotPanics(t, func() { c.UnmountProvider(model.Name("nonexistent")) })
}

func TestResetTurnZeroesInjectionsButNotCancellation(t *testing.T) {
	c := newTestCoordinator()
	c.RecordInjection(10)
	c.RecordInjection(10)
	require.Equal(t, 2, c.CurrentTurnInjections())

	c.RequestCancel(false)
	c.ResetTurn()

	require.Equal(t, 0, c.CurrentTurnInjections())
	require.True(t, c.Cancellation().IsGraceful())
}

func TestValidateInjectionBudgetEnforcesSizeAndCount(t *testing.T) {
	c := New(Config{SessionID: "s", InjectionBudgetPerTurn: 1, InjectionSizeLimit: 10})

	require.NoError(t, c.ValidateInjectionBudget(5))
	c.RecordInjection(5)

	require.Error(t, c.ValidateInjectionBudget(5))
	require.Error(t, c.ValidateInjectionBudget(100))
}

func TestCapabilityRegistry(t *testing.T) {
	c := newTestCoordinator()
	_, ok := c.GetCapability("missing")
	require.False(t, ok)

	c.RegisterCapability("feature-flags", map[string]bool{"beta": true})
	v, ok := c.GetCapability("feature-flags")
	require.True(t, ok)
	require.Equal(t, map[string]bool{"beta": true}, v)
}
