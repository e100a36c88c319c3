package hooks

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amplifierhq/kernel/model"
	"github.com/stretchr/testify/require"
)

func counterHandler(n *int64) Handler {
	return HandlerFunc(func(context.Context, string, map[string]any) (model.HookResult, error) {
		atomic.AddInt64(n, 1)
		return model.HookResult{Action: model.ContinueAction}, nil
	})
}

func TestEmitDenyShortCircuits(t *testing.T) {
	r := New(nil, nil)
	var h1Count, h3Count int64
	r.Register("tool:pre", "h1", 0, counterHandler(&h1Count))
	r.Register("tool:pre", "h2", 5, HandlerFunc(func(context.Context, string, map[string]any) (model.HookResult, error) {
		return model.HookResult{Action: model.DenyAction, Reason: "blocked"}, nil
	}))
	r.Register("tool:pre", "h3", 10, counterHandler(&h3Count))

	result := r.Emit(context.Background(), "tool:pre", map[string]any{})

	require.Equal(t, model.DenyAction, result.Action)
	require.Equal(t, "blocked", result.Reason)
	require.EqualValues(t, 1, h1Count)
	require.EqualValues(t, 0, h3Count)
}

func TestEmitModifyChains(t *testing.T) {
	r := New(nil, nil)
	r.Register("x", "m1", 0, HandlerFunc(func(_ context.Context, _ string, data map[string]any) (model.HookResult, error) {
		next := mergeOverlay(data, map[string]any{"first": "1"})
		return model.HookResult{Action: model.ModifyAction, Data: next}, nil
	}))
	r.Register("x", "m2", 10, HandlerFunc(func(_ context.Context, _ string, data map[string]any) (model.HookResult, error) {
		next := mergeOverlay(data, map[string]any{"second": "2"})
		return model.HookResult{Action: model.ModifyAction, Data: next}, nil
	}))

	result := r.Emit(context.Background(), "x", map[string]any{"original": true})

	require.Equal(t, model.ContinueAction, result.Action)
	require.Equal(t, true, result.Data["original"])
	require.Equal(t, "1", result.Data["first"])
	require.Equal(t, "2", result.Data["second"])
	require.NotEmpty(t, result.Data["timestamp"])
}

func TestEmitInjectContextMerging(t *testing.T) {
	r := New(nil, nil)
	r.Register("x", "i1", 0, HandlerFunc(func(context.Context, string, map[string]any) (model.HookResult, error) {
		return model.HookResult{
			Action:               model.InjectContextAction,
			ContextInjection:     "first",
			ContextInjectionRole: model.RoleUser,
		}, nil
	}))
	r.Register("x", "i2", 10, HandlerFunc(func(context.Context, string, map[string]any) (model.HookResult, error) {
		return model.HookResult{Action: model.InjectContextAction, ContextInjection: "second"}, nil
	}))

	result := r.Emit(context.Background(), "x", map[string]any{})

	require.Equal(t, model.InjectContextAction, result.Action)
	require.Equal(t, "first\n\nsecond", result.ContextInjection)
	require.Equal(t, model.RoleUser, result.ContextInjectionRole)
}

func TestEmitAskUserBeatsInjectContext(t *testing.T) {
	r := New(nil, nil)
	r.Register("x", "i1", 0, HandlerFunc(func(context.Context, string, map[string]any) (model.HookResult, error) {
		return model.HookResult{Action: model.InjectContextAction, ContextInjection: "ctx"}, nil
	}))
	r.Register("x", "a1", 10, HandlerFunc(func(context.Context, string, map[string]any) (model.HookResult, error) {
		return model.HookResult{Action: model.AskUserAction, ApprovalPrompt: "approve?"}, nil
	}))

	result := r.Emit(context.Background(), "x", map[string]any{})

	require.Equal(t, model.AskUserAction, result.Action)
	require.Equal(t, "approve?", result.ApprovalPrompt)
}

func TestEmitWithZeroHandlersReturnsContinue(t *testing.T) {
	r := New(nil, nil)
	result := r.Emit(context.Background(), "unregistered", map[string]any{"a": 1})
	require.Equal(t, model.ContinueAction, result.Action)
	require.Equal(t, 1, result.Data["a"])
}

func TestEmitIsolatesHandlerPanicAndError(t *testing.T) {
	r := New(nil, nil)
	var afterCount int64
	r.Register("x", "panics", 0, HandlerFunc(func(context.Context, string, map[string]any) (model.HookResult, error) {
		panic("boom")
	}))
	r.Register("x", "after", 10, counterHandler(&afterCount))

	require.NotPanics(t, func() {
		r.Emit(context.Background(), "x", map[string]any{})
	})
	require.EqualValues(t, 1, afterCount)
}

func TestUnregisterRemovesOnlyThatEntry(t *testing.T) {
	r := New(nil, nil)
	var aCount, bCount int64
	unregA := r.Register("x", "a", 0, counterHandler(&aCount))
	r.Register("x", "b", 10, counterHandler(&bCount))

	unregA()
	unregA() // idempotent no-op

	r.Emit(context.Background(), "x", map[string]any{})
	require.EqualValues(t, 0, aCount)
	require.EqualValues(t, 1, bCount)
}

func TestListHandlersReturnsDispatchOrder(t *testing.T) {
	r := New(nil, nil)
	r.Register("x", "late", 10, HandlerFunc(noopHandler))
	r.Register("x", "early", 0, HandlerFunc(noopHandler))

	names := r.ListHandlers("x")
	require.Equal(t, []string{"early", "late"}, names["x"])
}

func TestEmitAndCollectSkipsTimeoutsAndNeverStampsTimestamp(t *testing.T) {
	r := New(nil, nil)
	var fastSaw map[string]any
	r.Register("x", "fast", 0, HandlerFunc(func(_ context.Context, _ string, data map[string]any) (model.HookResult, error) {
		fastSaw = data
		return model.HookResult{Data: map[string]any{"from": "fast"}}, nil
	}))
	r.Register("x", "slow", 10, HandlerFunc(func(ctx context.Context, _ string, _ map[string]any) (model.HookResult, error) {
		select {
		case <-time.After(50 * time.Millisecond):
			return model.HookResult{Data: map[string]any{"from": "slow"}}, nil
		case <-ctx.Done():
			return model.HookResult{}, ctx.Err()
		}
	}))

	collected := r.EmitAndCollect(context.Background(), "x", map[string]any{}, 5*time.Millisecond)

	require.Len(t, collected, 1)
	require.Equal(t, "fast", collected[0]["from"])
	require.NotContains(t, fastSaw, "timestamp")
}

func noopHandler(context.Context, string, map[string]any) (model.HookResult, error) {
	return model.HookResult{Action: model.ContinueAction}, nil
}
