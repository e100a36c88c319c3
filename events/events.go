// Package events defines the closed catalogue of canonical event names the
// hook registry dispatches on. Names are opaque namespaced strings of the
// form "<domain>:<action>" or "<domain>:<action>:<tier>" where tier is
// "debug" or "raw"; the kernel never interprets their meaning beyond routing
// handlers registered against them.
package events

// Name is a canonical event identifier. The kernel treats values of this
// type as opaque strings; semantics live entirely in registered handlers.
type Name string

const (
	SessionStart      Name = "session:start"
	SessionStartDebug Name = "session:start:debug"
	SessionStartRaw   Name = "session:start:raw"
	SessionEnd        Name = "session:end"

	SessionFork      Name = "session:fork"
	SessionForkDebug Name = "session:fork:debug"
	SessionForkRaw   Name = "session:fork:raw"

	SessionResume      Name = "session:resume"
	SessionResumeDebug Name = "session:resume:debug"
	SessionResumeRaw   Name = "session:resume:raw"

	PromptSubmit   Name = "prompt:submit"
	PromptComplete Name = "prompt:complete"

	PlanStart Name = "plan:start"
	PlanEnd   Name = "plan:end"

	ProviderRequest Name = "provider:request"
	ProviderRespond Name = "provider:response"
	ProviderRetry   Name = "provider:retry"
	ProviderError   Name = "provider:error"

	LLMRequest      Name = "llm:request"
	LLMRequestDebug Name = "llm:request:debug"
	LLMRequestRaw   Name = "llm:request:raw"

	LLMResponse      Name = "llm:response"
	LLMResponseDebug Name = "llm:response:debug"
	LLMResponseRaw   Name = "llm:response:raw"

	ContentBlockStart Name = "content_block:start"
	ContentBlockDelta Name = "content_block:delta"
	ContentBlockEnd   Name = "content_block:end"

	ThinkingDelta Name = "thinking:delta"
	ThinkingFinal Name = "thinking:final"

	ToolPre   Name = "tool:pre"
	ToolPost  Name = "tool:post"
	ToolError Name = "tool:error"

	ContextPreCompact  Name = "context:pre_compact"
	ContextPostCompact Name = "context:post_compact"
	ContextCompaction  Name = "context:compaction"
	ContextInclude     Name = "context:include"

	OrchestratorComplete Name = "orchestrator:complete"

	ExecutionStart Name = "execution:start"
	ExecutionEnd   Name = "execution:end"

	UserNotification Name = "user:notification"

	ArtifactWrite Name = "artifact:write"
	ArtifactRead  Name = "artifact:read"

	PolicyViolation Name = "policy:violation"

	ApprovalRequired Name = "approval:required"
	ApprovalGranted  Name = "approval:granted"
	ApprovalDenied   Name = "approval:denied"

	CancelRequested Name = "cancel:requested"
	CancelCompleted Name = "cancel:completed"
)

// All is the closed aggregate of every canonical event name, each appearing
// exactly once. Callers may range over All for diagnostics or validation;
// the kernel never adds to this set at runtime.
var All = []Name{
	SessionStart, SessionStartDebug, SessionStartRaw,
	SessionEnd,
	SessionFork, SessionForkDebug, SessionForkRaw,
	SessionResume, SessionResumeDebug, SessionResumeRaw,
	PromptSubmit, PromptComplete,
	PlanStart, PlanEnd,
	ProviderRequest, ProviderRespond, ProviderRetry, ProviderError,
	LLMRequest, LLMRequestDebug, LLMRequestRaw,
	LLMResponse, LLMResponseDebug, LLMResponseRaw,
	ContentBlockStart, ContentBlockDelta, ContentBlockEnd,
	ThinkingDelta, ThinkingFinal,
	ToolPre, ToolPost, ToolError,
	ContextPreCompact, ContextPostCompact, ContextCompaction, ContextInclude,
	OrchestratorComplete,
	ExecutionStart, ExecutionEnd,
	UserNotification,
	ArtifactWrite, ArtifactRead,
	PolicyViolation,
	ApprovalRequired, ApprovalGranted, ApprovalDenied,
	CancelRequested, CancelCompleted,
}
