package model

import "time"

// ApprovalRequest is passed to an ApprovalProvider when a hook handler
// returns AskUserAction. It is designed from the HookResult approval
// fields and the ApprovalProvider contract in SPEC_FULL.md §6/§3 — the
// original source's traits.rs references this type without defining it in
// the files retained for this spec.
type ApprovalRequest struct {
	Prompt  string
	Options []string
	Timeout time.Duration
	Default ApprovalDefault

	// Context carries the triggering hook's event data through to the
	// approval UI so it can show relevant information alongside Prompt.
	Context map[string]any
}

// ApprovalResponse is the ApprovalProvider's answer to an ApprovalRequest.
type ApprovalResponse struct {
	Approved bool

	// SelectedOption is set when Options was non-empty.
	SelectedOption string

	// RespondedBy identifies who or what produced this response (a UI user
	// id, or the literal "timeout" when Default was applied).
	RespondedBy string
}
