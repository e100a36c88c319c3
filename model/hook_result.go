package model

import "encoding/json"

// HookResult is the record a hook handler returns to direct the registry's
// dispatch decision. It is immutable after the handler returns; the registry
// only ever reads from it or threads Data forward into the next handler's
// input. Unknown fields observed in a serialised HookResult round-trip
// unchanged through Extensions.
type HookResult struct {
	Action HookAction

	// Data replaces the event payload passed to the next handler when Action
	// is ModifyAction.
	Data map[string]any

	// Reason explains a deny or modify decision to the caller.
	Reason string

	ContextInjection     string
	ContextInjectionRole ContextInjectionRole
	Ephemeral            bool

	ApprovalPrompt  string
	ApprovalOptions []string
	// ApprovalTimeout is seconds to wait before falling back to ApprovalDefault.
	ApprovalTimeout float64
	ApprovalDefault ApprovalDefault

	SuppressOutput bool

	UserMessage       string
	UserMessageLevel  UserMessageLevel
	UserMessageSource string

	AppendToLastToolResult bool

	// Extensions carries forward-compatible fields the kernel does not
	// recognise, preserved verbatim across serialisation round-trips.
	Extensions map[string]any
}

// NewHookResult returns a HookResult populated with the spec's defaults:
// action=continue, context_injection_role=system, approval_timeout=300s,
// approval_default=deny, user_message_level=info.
func NewHookResult() HookResult {
	return HookResult{
		Action:               ContinueAction,
		ContextInjectionRole: RoleSystem,
		ApprovalTimeout:      300.0,
		ApprovalDefault:      ApprovalDefaultDeny,
		UserMessageLevel:     UserMessageInfo,
	}
}

// knownHookResultKeys lists every recognised top-level JSON key, used to
// split a decoded mapping between named fields and the Extensions bag.
var knownHookResultKeys = map[string]struct{}{
	"action": {}, "data": {}, "reason": {},
	"context_injection": {}, "context_injection_role": {}, "ephemeral": {},
	"approval_prompt": {}, "approval_options": {}, "approval_timeout": {}, "approval_default": {},
	"suppress_output": {},
	"user_message": {}, "user_message_level": {}, "user_message_source": {},
	"append_to_last_tool_result": {},
}

// MarshalJSON encodes every recognised field plus the Extensions bag, so
// unknown keys observed on decode survive a subsequent encode unchanged.
func (r HookResult) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(knownHookResultKeys)+len(r.Extensions))
	for k, v := range r.Extensions {
		out[k] = v
	}
	out["action"] = r.Action
	out["data"] = r.Data
	out["reason"] = r.Reason
	out["context_injection"] = r.ContextInjection
	out["context_injection_role"] = r.ContextInjectionRole
	out["ephemeral"] = r.Ephemeral
	out["approval_prompt"] = r.ApprovalPrompt
	out["approval_options"] = r.ApprovalOptions
	out["approval_timeout"] = r.ApprovalTimeout
	out["approval_default"] = r.ApprovalDefault
	out["suppress_output"] = r.SuppressOutput
	out["user_message"] = r.UserMessage
	out["user_message_level"] = r.UserMessageLevel
	out["user_message_source"] = r.UserMessageSource
	out["append_to_last_tool_result"] = r.AppendToLastToolResult
	return json.Marshal(out)
}

// UnmarshalJSON decodes a HookResult, routing every key not in
// knownHookResultKeys into Extensions so forward-compatible fields survive
// a decode-then-encode round trip unchanged.
func (r *HookResult) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = NewHookResult()
	r.Extensions = make(map[string]any)

	decode := func(key string, dst any) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		return json.Unmarshal(v, dst)
	}
	if err := decode("action", &r.Action); err != nil {
		return err
	}
	if err := decode("data", &r.Data); err != nil {
		return err
	}
	if err := decode("reason", &r.Reason); err != nil {
		return err
	}
	if err := decode("context_injection", &r.ContextInjection); err != nil {
		return err
	}
	if err := decode("context_injection_role", &r.ContextInjectionRole); err != nil {
		return err
	}
	if err := decode("ephemeral", &r.Ephemeral); err != nil {
		return err
	}
	if err := decode("approval_prompt", &r.ApprovalPrompt); err != nil {
		return err
	}
	if err := decode("approval_options", &r.ApprovalOptions); err != nil {
		return err
	}
	if err := decode("approval_timeout", &r.ApprovalTimeout); err != nil {
		return err
	}
	if err := decode("approval_default", &r.ApprovalDefault); err != nil {
		return err
	}
	if err := decode("suppress_output", &r.SuppressOutput); err != nil {
		return err
	}
	if err := decode("user_message", &r.UserMessage); err != nil {
		return err
	}
	if err := decode("user_message_level", &r.UserMessageLevel); err != nil {
		return err
	}
	if err := decode("user_message_source", &r.UserMessageSource); err != nil {
		return err
	}
	if err := decode("append_to_last_tool_result", &r.AppendToLastToolResult); err != nil {
		return err
	}

	for k, v := range raw {
		if _, known := knownHookResultKeys[k]; known {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		r.Extensions[k] = val
	}
	if len(r.Extensions) == 0 {
		r.Extensions = nil
	}
	return nil
}
