// Package messages defines the provider-agnostic chat protocol vocabulary
// that Provider.Complete and Orchestrator.Execute exchange. The kernel
// defines only the shape of these types; it never constructs a provider
// call itself (SPEC_FULL.md §3, supplemented data model).
package messages

import "encoding/json"

// Role identifies the speaker for a Message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ContentBlock is a marker interface implemented by every message content
// block. Concrete types are discriminated on the wire by a "kind" field,
// mirroring the teacher's Kind-discriminated model.Part union.
type ContentBlock interface {
	blockKind() string
}

type (
	// TextBlock is plain text content.
	TextBlock struct {
		Text string
	}

	// ThinkingBlock carries provider-issued reasoning content.
	ThinkingBlock struct {
		Text      string
		Signature string
	}

	// ToolUseBlock declares a tool invocation requested by the assistant.
	ToolUseBlock struct {
		ID    string
		Name  string
		Input json.RawMessage
	}

	// ToolResultBlock carries a tool result supplied back to the model.
	ToolResultBlock struct {
		ToolUseID string
		Content   string
		IsError   bool
	}
)

func (TextBlock) blockKind() string       { return "text" }
func (ThinkingBlock) blockKind() string   { return "thinking" }
func (ToolUseBlock) blockKind() string    { return "tool_use" }
func (ToolResultBlock) blockKind() string { return "tool_result" }

// Message is a single chat message: an ordered sequence of typed content
// blocks attributed to one Role.
type Message struct {
	Role    Role
	Content []ContentBlock
	Meta    map[string]any
}

// Usage tracks token counts for a single provider call.
type Usage struct {
	InputTokens      int
	OutputTokens     int
	CacheReadTokens  int
	CacheWriteTokens int
}

// Degradation reports that a provider silently dropped or truncated part of
// a request (for example, a tool definition it does not support).
type Degradation struct {
	Reason string
	Detail string
}

// ToolSpec describes a tool exposed to the model, including its JSON Schema
// input shape.
type ToolSpec struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// ToolChoiceMode controls how the model is permitted to use tools.
type ToolChoiceMode string

const (
	ToolChoiceAuto ToolChoiceMode = "auto"
	ToolChoiceNone ToolChoiceMode = "none"
	ToolChoiceAny  ToolChoiceMode = "any"
	ToolChoiceTool ToolChoiceMode = "tool"
)

// ToolChoice configures optional tool-use behaviour for a ChatRequest.
type ToolChoice struct {
	Mode ToolChoiceMode
	// Name identifies the tool to force when Mode is ToolChoiceTool.
	Name string
}

// ResponseFormat constrains the shape of the model's textual response.
type ResponseFormat struct {
	Type   string
	Schema json.RawMessage
}

// ToolCall is a tool invocation requested by the model in a ChatResponse.
type ToolCall struct {
	ID    string
	Name  string
	Input json.RawMessage
}

// ChatRequest is the provider-agnostic request envelope a Provider.Complete
// call consumes. Extensions preserves unknown top-level keys across a
// decode-then-encode round trip so module-specific request extensions
// survive passing through the kernel.
type ChatRequest struct {
	Model          string
	Messages       []Message
	Tools          []ToolSpec
	ToolChoice     *ToolChoice
	MaxTokens      int
	Temperature    float64
	ResponseFormat *ResponseFormat

	Extensions map[string]any
}

// ChatResponse is the provider-agnostic result of a Provider.Complete call.
type ChatResponse struct {
	Content     []Message
	ToolCalls   []ToolCall
	Usage       Usage
	StopReason  string
	Degradation *Degradation

	Extensions map[string]any
}
