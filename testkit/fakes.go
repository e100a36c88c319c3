// Package testkit provides concrete, predictable fakes for the six kernel
// module contracts, for use in hooks/coordinator/session tests and by
// downstream modules testing their own integration. Mirrors the original
// source's testing.rs: concrete structs instead of a mock framework, so a
// reader (human or agent) can see exactly what a fake does, pre-configured
// responses consumed in FIFO order, and a mutex-guarded call log for
// asserting interaction patterns.
package testkit

import (
	"context"
	"sync"

	"github.com/amplifierhq/kernel/contracts"
	"github.com/amplifierhq/kernel/messages"
	"github.com/amplifierhq/kernel/model"
)

// FakeTool returns pre-configured results and records every input passed to
// Execute.
type FakeTool struct {
	toolName        string
	toolDescription string

	mu        sync.Mutex
	responses []model.ToolResult
	calls     []map[string]any
}

// NewFakeTool constructs a fake tool that returns a default success result
// with Content "ok" until responses are configured with WithResponses.
func NewFakeTool(name, description string) *FakeTool {
	return &FakeTool{toolName: name, toolDescription: description}
}

// WithResponses configures responses to be consumed in order by Execute.
// Once exhausted, Execute falls back to its default success behaviour.
func (t *FakeTool) WithResponses(responses ...model.ToolResult) *FakeTool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responses = responses
	return t
}

// Name returns the tool's name.
func (t *FakeTool) Name() string { return t.toolName }

// Description returns the tool's description.
func (t *FakeTool) Description() string { return t.toolDescription }

// Spec returns a minimal ToolSpec derived from name/description.
func (t *FakeTool) Spec() messages.ToolSpec {
	return messages.ToolSpec{Name: t.toolName, Description: t.toolDescription}
}

// Execute records input and returns the next pre-configured response, or a
// default success result when none remain.
func (t *FakeTool) Execute(_ context.Context, input map[string]any) (model.ToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, input)
	if len(t.responses) == 0 {
		return model.ToolResult{Content: "ok"}, nil
	}
	next := t.responses[0]
	t.responses = t.responses[1:]
	return next, nil
}

// RecordedCalls returns a copy of every input passed to Execute, in order.
func (t *FakeTool) RecordedCalls() []map[string]any {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]map[string]any, len(t.calls))
	copy(out, t.calls)
	return out
}

// FakeProvider returns a pre-configured text response and records every
// request passed to Complete.
type FakeProvider struct {
	providerName string
	responseText string

	mu    sync.Mutex
	calls []messages.ChatRequest
}

// NewFakeProvider constructs a fake provider that always responds with a
// single assistant text block containing responseText.
func NewFakeProvider(name, responseText string) *FakeProvider {
	return &FakeProvider{providerName: name, responseText: responseText}
}

// Name returns the provider's name.
func (p *FakeProvider) Name() string { return p.providerName }

// GetInfo returns a minimal ProviderInfo naming the provider.
func (p *FakeProvider) GetInfo(context.Context) (model.ProviderInfo, error) {
	return model.ProviderInfo{Name: p.providerName}, nil
}

// ListModels returns no models.
func (p *FakeProvider) ListModels(context.Context) ([]model.ModelInfo, error) {
	return nil, nil
}

// Complete records the request and returns the pre-configured response.
func (p *FakeProvider) Complete(_ context.Context, request messages.ChatRequest) (messages.ChatResponse, error) {
	p.mu.Lock()
	p.calls = append(p.calls, request)
	p.mu.Unlock()

	return messages.ChatResponse{
		Content:    []messages.Message{{Role: messages.RoleAssistant, Content: []messages.ContentBlock{messages.TextBlock{Text: p.responseText}}}},
		StopReason: "stop",
	}, nil
}

// ParseToolCalls returns response.ToolCalls unchanged.
func (p *FakeProvider) ParseToolCalls(response messages.ChatResponse) ([]messages.ToolCall, error) {
	return response.ToolCalls, nil
}

// RecordedCalls returns a copy of every request passed to Complete, in
// order.
func (p *FakeProvider) RecordedCalls() []messages.ChatRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]messages.ChatRequest, len(p.calls))
	copy(out, p.calls)
	return out
}

// FakeContextManager is an in-memory context manager backed by a
// mutex-guarded slice of messages.
type FakeContextManager struct {
	mu       sync.Mutex
	messages []messages.Message
}

// NewFakeContextManager constructs an empty context manager.
func NewFakeContextManager() *FakeContextManager {
	return &FakeContextManager{}
}

// AddMessage appends msg to the transcript.
func (c *FakeContextManager) AddMessage(_ context.Context, msg messages.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
	return nil
}

// GetMessagesForRequest returns every stored message, ignoring the token
// budget and provider hints (a real context manager would trim by budget).
func (c *FakeContextManager) GetMessagesForRequest(_ context.Context, _ *int, _ string) ([]messages.Message, error) {
	return c.GetMessages(context.Background())
}

// GetMessages returns a copy of the stored transcript.
func (c *FakeContextManager) GetMessages(context.Context) ([]messages.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]messages.Message, len(c.messages))
	copy(out, c.messages)
	return out, nil
}

// SetMessages replaces the stored transcript.
func (c *FakeContextManager) SetMessages(_ context.Context, msgs []messages.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = msgs
	return nil
}

// Clear empties the stored transcript.
func (c *FakeContextManager) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
	return nil
}

// FakeHookHandler records every (event, data) it is invoked with and
// returns a configurable result.
type FakeHookHandler struct {
	result model.HookResult

	mu     sync.Mutex
	events []RecordedEvent
}

// RecordedEvent is one (event, data) pair observed by a FakeHookHandler.
type RecordedEvent struct {
	Event string
	Data  map[string]any
}

// NewFakeHookHandler constructs a handler that always returns
// ContinueAction.
func NewFakeHookHandler() *FakeHookHandler {
	return &FakeHookHandler{result: model.NewHookResult()}
}

// NewFakeHookHandlerWithResult constructs a handler that always returns
// result.
func NewFakeHookHandlerWithResult(result model.HookResult) *FakeHookHandler {
	return &FakeHookHandler{result: result}
}

// Handle records the call and returns the configured result.
func (h *FakeHookHandler) Handle(_ context.Context, event string, data map[string]any) (model.HookResult, error) {
	h.mu.Lock()
	h.events = append(h.events, RecordedEvent{Event: event, Data: data})
	h.mu.Unlock()
	return h.result, nil
}

// RecordedEvents returns a copy of every (event, data) pair observed.
func (h *FakeHookHandler) RecordedEvents() []RecordedEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]RecordedEvent, len(h.events))
	copy(out, h.events)
	return out
}

// FakeOrchestrator returns a pre-configured response string.
type FakeOrchestrator struct {
	response string
}

// NewFakeOrchestrator constructs an orchestrator that always returns
// response.
func NewFakeOrchestrator(response string) *FakeOrchestrator {
	return &FakeOrchestrator{response: response}
}

// Execute ignores its arguments and returns the pre-configured response.
func (o *FakeOrchestrator) Execute(context.Context, string, contracts.ContextManager, map[model.Name]contracts.Provider, map[model.Name]contracts.Tool, contracts.CoordinatorHandle) (string, error) {
	return o.response, nil
}

// FakeApprovalProvider auto-approves or auto-denies every request.
type FakeApprovalProvider struct {
	approved bool
}

// NewApprovingFakeApprovalProvider constructs a provider that always
// approves.
func NewApprovingFakeApprovalProvider() *FakeApprovalProvider {
	return &FakeApprovalProvider{approved: true}
}

// NewDenyingFakeApprovalProvider constructs a provider that always denies.
func NewDenyingFakeApprovalProvider() *FakeApprovalProvider {
	return &FakeApprovalProvider{approved: false}
}

// RequestApproval returns a response reflecting the provider's fixed
// disposition.
func (a *FakeApprovalProvider) RequestApproval(context.Context, model.ApprovalRequest) (model.ApprovalResponse, error) {
	return model.ApprovalResponse{Approved: a.approved, RespondedBy: "fake"}, nil
}

var (
	_ contracts.Tool             = (*FakeTool)(nil)
	_ contracts.Provider         = (*FakeProvider)(nil)
	_ contracts.ContextManager   = (*FakeContextManager)(nil)
	_ contracts.HookHandler      = (*FakeHookHandler)(nil)
	_ contracts.Orchestrator     = (*FakeOrchestrator)(nil)
	_ contracts.ApprovalProvider = (*FakeApprovalProvider)(nil)
)
