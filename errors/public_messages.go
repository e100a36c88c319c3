package errors

// UICopy holds the strings a host renders directly in front of an end user
// when a session-ending failure reaches it. These are deliberately distinct
// from Error(), which targets logs and may name internal kinds, handler
// names, or stdout/stderr that should never reach a screen.
//
// A host that wants its own voice overrides the package-level DefaultUICopy
// before any session starts — the kernel itself never mutates it mid-flight,
// so overriding once at startup is safe without additional locking.
type UICopy struct {
	Timeout            string
	Unclassified       string
	ProviderThrottled  string
	ProviderDown       string
	ProviderRejected   string
	ProviderAuthFailed string
	ProviderFiltered   string
	ProviderFallback   string
	HookBlocked        string
	ToolFailed         string
	ContextOverflow    string
}

// DefaultUICopy is the copy used by MessageForProvider, MessageForHook,
// MessageForTool, and MessageForContext when a caller does not supply its
// own UICopy. Each call reads it at call time, so assigning a whole new
// UICopy or changing single fields at process startup both rebrand without
// forking the kernel.
var DefaultUICopy = UICopy{
	Timeout:            "This is taking longer than expected. Give it another try.",
	Unclassified:       "Something went wrong on our end. Give it another try.",
	ProviderThrottled:  "We're sending requests faster than the model provider allows right now. Hang tight and try again shortly.",
	ProviderDown:       "The model provider isn't responding right now. Try again in a bit.",
	ProviderRejected:   "The model provider couldn't process that request as sent.",
	ProviderAuthFailed: "We couldn't authenticate with the model provider. This is usually a configuration issue, not something you can fix by retrying.",
	ProviderFiltered:   "The model provider declined to respond to that request.",
	ProviderFallback:   "The model provider reported a problem we don't recognize.",
	HookBlocked:        "That action was blocked by a safety check.",
	ToolFailed:         "A tool this assistant relies on failed to complete.",
	ContextOverflow:    "The conversation history couldn't be prepared for this request.",
}

// MessageForProvider maps a ProviderError to copy an end user can read,
// using copy's fields (or DefaultUICopy's, if copy is nil).
func MessageForProvider(err *ProviderError, copy *UICopy) string {
	c := resolveUICopy(copy)
	switch err.Kind() {
	case ProviderErrorRateLimit:
		return c.ProviderThrottled
	case ProviderErrorUnavailable:
		return c.ProviderDown
	case ProviderErrorTimeout:
		return c.Timeout
	case ProviderErrorInvalidRequest:
		return c.ProviderRejected
	case ProviderErrorAuthentication:
		return c.ProviderAuthFailed
	case ProviderErrorContentFilter:
		return c.ProviderFiltered
	default:
		return c.ProviderFallback
	}
}

// MessageForHook maps a HookError to copy an end user can read. Handler
// identity and cause chains stay out of the returned string — those belong
// in Error() for logs, not on screen.
func MessageForHook(err *HookError, copy *UICopy) string {
	c := resolveUICopy(copy)
	switch err.Kind() {
	case HookErrorTimeout:
		return c.Timeout
	default:
		return c.HookBlocked
	}
}

// MessageForTool maps a ToolError to copy an end user can read.
func MessageForTool(err *ToolError, copy *UICopy) string {
	c := resolveUICopy(copy)
	switch err.Kind() {
	case ToolErrorNotFound:
		return c.Unclassified
	default:
		return c.ToolFailed
	}
}

// MessageForContext maps a ContextError to copy an end user can read.
func MessageForContext(_ *ContextError, copy *UICopy) string {
	return resolveUICopy(copy).ContextOverflow
}

func resolveUICopy(copy *UICopy) UICopy {
	if copy != nil {
		return *copy
	}
	return DefaultUICopy
}
