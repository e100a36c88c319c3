// Package contracts defines the six module contracts a host implements to
// plug concrete behaviour into the kernel: Tool, Provider, Orchestrator,
// ContextManager, HookHandler, and ApprovalProvider. The kernel only
// depends on these interfaces — it never constructs a concrete tool,
// provider, or orchestrator itself (SPEC_FULL.md §1, §6).
package contracts

import (
	"context"
	"time"

	"github.com/amplifierhq/kernel/cancellation"
	"github.com/amplifierhq/kernel/hooks"
	"github.com/amplifierhq/kernel/messages"
	"github.com/amplifierhq/kernel/model"
)

// Tool is a mounted module exposing a single callable capability to an
// orchestrator.
type Tool interface {
	Name() string
	Description() string
	Spec() messages.ToolSpec
	Execute(ctx context.Context, input map[string]any) (model.ToolResult, error)
}

// Provider is a mounted module adapting a single model-serving backend to
// the kernel's provider-agnostic chat protocol.
type Provider interface {
	Name() string
	GetInfo(ctx context.Context) (model.ProviderInfo, error)
	ListModels(ctx context.Context) ([]model.ModelInfo, error)
	Complete(ctx context.Context, request messages.ChatRequest) (messages.ChatResponse, error)
	ParseToolCalls(response messages.ChatResponse) ([]messages.ToolCall, error)
}

// ContextManager is a mounted module responsible for the conversation
// transcript an orchestrator drives.
type ContextManager interface {
	AddMessage(ctx context.Context, msg messages.Message) error
	GetMessagesForRequest(ctx context.Context, tokenBudget *int, provider string) ([]messages.Message, error)
	GetMessages(ctx context.Context) ([]messages.Message, error)
	SetMessages(ctx context.Context, msgs []messages.Message) error
	Clear(ctx context.Context) error
}

// CoordinatorHandle is the narrow surface of the coordinator an
// Orchestrator receives. It is declared here, rather than imported from a
// concrete coordinator package, so Orchestrator implementations depend only
// on the capabilities they need and the kernel's coordinator/contracts
// packages never form an import cycle.
type CoordinatorHandle interface {
	Hooks() *hooks.Registry
	Cancellation() *cancellation.Token

	RegisterCapability(name string, value any)
	GetCapability(name string) (any, bool)

	RegisterContributor(channel, name string, callback func(ctx context.Context) (any, error))
	CollectContributions(ctx context.Context, channel string) []any

	RegisterCleanup(callable func(ctx context.Context) error)

	RequestCancel(immediate bool)

	SessionID() string
	ParentID() string

	ApprovalProvider() (ApprovalProvider, bool)

	InjectionBudgetPerTurn() int
	InjectionSizeLimit() int
	CurrentTurnInjections() int
	RecordInjection(size int)
}

// Orchestrator is the mounted module that drives a single turn of
// conversation to completion, calling providers, tools, and hooks as
// needed.
type Orchestrator interface {
	Execute(
		ctx context.Context,
		prompt string,
		contextManager ContextManager,
		providers map[model.Name]Provider,
		tools map[model.Name]Tool,
		coordinator CoordinatorHandle,
	) (string, error)
}

// HookHandler is registered with the hooks registry via hooks.Handler; this
// alias names the module-contract concept from SPEC_FULL.md §6 so callers
// mounting a handler as a module (rather than registering a bare function)
// have a named type to implement.
type HookHandler interface {
	Handle(ctx context.Context, event string, data map[string]any) (model.HookResult, error)
}

// ApprovalProvider answers an ask_user HookResult by presenting
// req to a human or automated approver and returning their decision.
type ApprovalProvider interface {
	RequestApproval(ctx context.Context, req model.ApprovalRequest) (model.ApprovalResponse, error)
}

// ApprovalTimeoutOrDefault converts a HookResult's float-seconds
// ApprovalTimeout into a time.Duration, defaulting to 300s for non-positive
// values.
func ApprovalTimeoutOrDefault(seconds float64) time.Duration {
	if seconds <= 0 {
		return 300 * time.Second
	}
	return time.Duration(seconds * float64(time.Second))
}
