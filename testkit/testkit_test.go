package testkit

import (
	"context"
	"testing"

	"github.com/amplifierhq/kernel/messages"
	"github.com/amplifierhq/kernel/model"
	"github.com/stretchr/testify/require"
)

func TestFakeToolDefaultsToSuccessAndRecordsCalls(t *testing.T) {
	tool := NewFakeTool("search", "searches things")
	result, err := tool.Execute(context.Background(), map[string]any{"query": "go"})
	require.NoError(t, err)
	require.Equal(t, "ok", result.Content)
	require.Equal(t, []map[string]any{{"query": "go"}}, tool.RecordedCalls())
}

func TestFakeToolConsumesResponsesInFIFOOrderThenFallsBack(t *testing.T) {
	tool := NewFakeTool("search", "searches things").WithResponses(
		model.ToolResult{Content: "first"},
		model.ToolResult{Content: "second"},
	)

	r1, err := tool.Execute(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, "first", r1.Content)

	r2, err := tool.Execute(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, "second", r2.Content)

	r3, err := tool.Execute(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, "ok", r3.Content)

	require.Len(t, tool.RecordedCalls(), 3)
}

func TestFakeProviderReturnsFixedResponseAndRecordsRequests(t *testing.T) {
	provider := NewFakeProvider("mock", "hello there")
	resp, err := provider.Complete(context.Background(), messages.ChatRequest{Model: "mock-1"})
	require.NoError(t, err)
	require.Len(t, resp.Content, 1)
	block := resp.Content[0].Content[0].(messages.TextBlock)
	require.Equal(t, "hello there", block.Text)

	calls := provider.RecordedCalls()
	require.Len(t, calls, 1)
	require.Equal(t, "mock-1", calls[0].Model)
}

func TestFakeContextManagerRoundTrips(t *testing.T) {
	ctx := context.Background()
	cm := NewFakeContextManager()

	require.NoError(t, cm.AddMessage(ctx, messages.Message{Role: messages.RoleUser}))
	msgs, err := cm.GetMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	require.NoError(t, cm.SetMessages(ctx, []messages.Message{{Role: messages.RoleAssistant}, {Role: messages.RoleUser}}))
	msgs, err = cm.GetMessagesForRequest(ctx, nil, "mock")
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	require.NoError(t, cm.Clear(ctx))
	msgs, err = cm.GetMessages(ctx)
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestFakeHookHandlerDefaultsToContinueAndRecordsEvents(t *testing.T) {
	h := NewFakeHookHandler()
	result, err := h.Handle(context.Background(), "session:start", map[string]any{"a": 1})
	require.NoError(t, err)
	require.Equal(t, model.ContinueAction, result.Action)

	events := h.RecordedEvents()
	require.Len(t, events, 1)
	require.Equal(t, "session:start", events[0].Event)
}

func TestFakeHookHandlerWithResultOverridesDefault(t *testing.T) {
	denied := model.HookResult{Action: model.DenyAction, Reason: "no"}
	h := NewFakeHookHandlerWithResult(denied)
	result, err := h.Handle(context.Background(), "tool:pre", nil)
	require.NoError(t, err)
	require.Equal(t, model.DenyAction, result.Action)
}

func TestFakeOrchestratorIgnoresInputsAndReturnsFixedResponse(t *testing.T) {
	o := NewFakeOrchestrator("orchestrated response")
	response, err := o.Execute(context.Background(), "prompt", nil, nil, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "orchestrated response", response)
}

func TestFakeApprovalProviderDispositions(t *testing.T) {
	approving := NewApprovingFakeApprovalProvider()
	resp, err := approving.RequestApproval(context.Background(), model.ApprovalRequest{Prompt: "ok?"})
	require.NoError(t, err)
	require.True(t, resp.Approved)

	denying := NewDenyingFakeApprovalProvider()
	resp, err = denying.RequestApproval(context.Background(), model.ApprovalRequest{Prompt: "ok?"})
	require.NoError(t, err)
	require.False(t, resp.Approved)
}
