package session

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/amplifierhq/kernel/coordinator"
	"github.com/amplifierhq/kernel/errors"
	"github.com/amplifierhq/kernel/model"
	"github.com/amplifierhq/kernel/testkit"
)

// testLoader mounts a fixed set of fakes regardless of the requested module
// names, or returns loadErr when it is set.
type testLoader struct {
	orchestrator *testkit.FakeOrchestrator
	provider     *testkit.FakeProvider
	context      *testkit.FakeContextManager
	loadErr      error
}

func (l *testLoader) Load(_ context.Context, _ map[string]any, coord *coordinator.Coordinator, _, _ string) error {
	if l.loadErr != nil {
		return l.loadErr
	}
	coord.MountOrchestrator(l.orchestrator)
	coord.MountContextManager(l.context)
	_ = coord.MountProvider(model.Name("mock"), l.provider)
	return nil
}

func newTestLoader() *testLoader {
	return &testLoader{
		orchestrator: testkit.NewFakeOrchestrator("orchestrated response"),
		provider:     testkit.NewFakeProvider("mock", "hi"),
		context:      testkit.NewFakeContextManager(),
	}
}

func rawConfig() map[string]any {
	return map[string]any{
		"session": map[string]any{
			"orchestrator": "loop-basic",
			"context":      "ctx-simple",
		},
	}
}

func TestSessionFullLifecycle(t *testing.T) {
	ctx := context.Background()
	loader := newTestLoader()
	sess, err := New("sess-1", "", false, rawConfig(), loader, nil, nil, nil)
	require.NoError(t, err)

	startHandler := testkit.NewFakeHookHandler()
	endHandler := testkit.NewFakeHookHandler()
	sess.Coordinator().Hooks().Register("session:start", "start-observer", 0, startHandler)
	sess.Coordinator().Hooks().Register("session:end", "end-observer", 0, endHandler)

	require.NoError(t, sess.Initialize(ctx))

	response, err := sess.Execute(ctx, "hello")
	require.NoError(t, err)
	require.Equal(t, "orchestrated response", response)
	require.Equal(t, model.SessionStatusCompleted, sess.State().Status)

	sess.Cleanup(ctx)

	require.Len(t, startHandler.RecordedEvents(), 1)
	require.Len(t, endHandler.RecordedEvents(), 1)
	require.False(t, sess.State().Initialized)
}

func TestSessionExecuteFailsFastWhenNotInitialized(t *testing.T) {
	sess, err := New("sess-2", "", false, rawConfig(), newTestLoader(), nil, nil, nil)
	require.NoError(t, err)

	_, err = sess.Execute(context.Background(), "hello")
	require.Error(t, err)

	var sessionErr *errors.SessionError
	require.ErrorAs(t, err, &sessionErr)
	require.Equal(t, errors.SessionErrorNotInitialized, sessionErr.Kind())
}

func TestSessionConstructionFailsOnMissingConfigFields(t *testing.T) {
	_, err := New("sess-3", "", false, map[string]any{}, newTestLoader(), nil, nil, nil)
	require.Error(t, err)
}

func TestSessionGeneratesUUIDWhenIDOmitted(t *testing.T) {
	sess, err := New("", "", false, rawConfig(), newTestLoader(), nil, nil, nil)
	require.NoError(t, err)

	_, parseErr := uuid.Parse(sess.ID())
	require.NoError(t, parseErr)
}

func TestSessionInitializeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	sess, err := New("sess-4", "", false, rawConfig(), newTestLoader(), nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, sess.Initialize(ctx))
	require.NoError(t, sess.Initialize(ctx))
	require.True(t, sess.State().Initialized)
}
