package hooks

import (
	"context"

	"github.com/amplifierhq/kernel/model"
)

// Handler reacts to a single emitted event and returns a HookResult that
// directs the registry's dispatch decision. Implementations must be safe
// for concurrent use: the same handler instance may be invoked by
// concurrent emit/emit_and_collect calls on different events.
type Handler interface {
	Handle(ctx context.Context, event string, data map[string]any) (model.HookResult, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, event string, data map[string]any) (model.HookResult, error)

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, event string, data map[string]any) (model.HookResult, error) {
	return f(ctx, event, data)
}

// registration is one registered handler entry, tracked under its owning
// event for priority-ordered dispatch.
type registration struct {
	name     string
	priority int
	seq      int // registration order, used as a stable tie-break
	handler  Handler
}
