package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewHookResultDefaults(t *testing.T) {
	r := NewHookResult()
	require.Equal(t, ContinueAction, r.Action)
	require.Equal(t, RoleSystem, r.ContextInjectionRole)
	require.Equal(t, 300.0, r.ApprovalTimeout)
	require.Equal(t, ApprovalDefaultDeny, r.ApprovalDefault)
	require.Equal(t, UserMessageInfo, r.UserMessageLevel)
}

func TestHookResultRoundTripPreservesUnknownKeys(t *testing.T) {
	raw := []byte(`{
		"action": "modify",
		"data": {"k": "v"},
		"reason": "because",
		"context_injection_role": "user",
		"future_field": "kept",
		"nested_future": {"a": 1}
	}`)

	var r HookResult
	require.NoError(t, json.Unmarshal(raw, &r))
	require.Equal(t, ModifyAction, r.Action)
	require.Equal(t, "because", r.Reason)
	require.Equal(t, "kept", r.Extensions["future_field"])
	require.NotNil(t, r.Extensions["nested_future"])

	encoded, err := json.Marshal(r)
	require.NoError(t, err)

	var roundTripped HookResult
	require.NoError(t, json.Unmarshal(encoded, &roundTripped))
	require.Equal(t, r.Extensions["future_field"], roundTripped.Extensions["future_field"])
	require.Equal(t, ModifyAction, roundTripped.Action)
	require.Equal(t, "because", roundTripped.Reason)
}

func TestHookActionRank(t *testing.T) {
	require.Less(t, ContinueAction.rank(), ModifyAction.rank())
	require.Less(t, ModifyAction.rank(), InjectContextAction.rank())
	require.Less(t, InjectContextAction.rank(), AskUserAction.rank())
	require.Less(t, AskUserAction.rank(), DenyAction.rank())
}
