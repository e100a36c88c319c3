// Package hooks implements the kernel's priority-ordered hook-dispatch
// pipeline: register/emit/emit_and_collect/list_handlers keyed by string
// event names (any string is accepted; the canonical names live in the
// events package). Dispatch snapshots the handler list under
// a short lock, releases it, then invokes handlers outside any lock so a
// handler can itself call back into the registry without deadlocking —
// the same discipline the teacher's event bus uses for its subscriber
// fan-out.
package hooks

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/amplifierhq/kernel/model"
	"github.com/amplifierhq/kernel/telemetry"
)

// Registry is the kernel's hook-dispatch pipeline. A zero Registry is not
// usable; construct one with New. A Registry is safe for concurrent use.
type Registry struct {
	logger  telemetry.Logger
	metrics telemetry.Metrics

	mu       sync.Mutex
	handlers map[string][]*registration // event -> registrations
	defaults map[string]any
	seq      int
}

// New constructs an empty Registry reporting handler failures to logger and
// metrics.
func New(logger telemetry.Logger, metrics telemetry.Metrics) *Registry {
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	return &Registry{
		logger:   logger,
		metrics:  metrics,
		handlers: make(map[string][]*registration),
	}
}

// Unregister removes exactly the registration it was returned for. Calling
// it more than once is a no-op.
type Unregister func()

// Register stores handler under event at the given priority (lower runs
// earlier). If name is empty, a unique name is synthesised. The returned
// Unregister, when invoked, removes exactly this entry without affecting
// handlers registered later under the same name.
func (r *Registry) Register(event, name string, priority int, handler Handler) Unregister {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	if name == "" {
		name = event + "#" + strconv.Itoa(seq)
	}
	reg := &registration{name: name, priority: priority, seq: seq, handler: handler}
	r.handlers[event] = append(r.handlers[event], reg)
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			entries := r.handlers[event]
			for i, e := range entries {
				if e == reg {
					r.handlers[event] = append(entries[:i], entries[i+1:]...)
					return
				}
			}
		})
	}
}

// SetDefaultFields replaces the set of fields merged into every emit
// payload. Event-supplied keys override defaults.
func (r *Registry) SetDefaultFields(fields map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaults = fields
}

// ListHandlers returns, for each event that has at least one registered
// handler (or for exactly one event, when event is non-empty), the ordered
// list of handler names in dispatch order.
func (r *Registry) ListHandlers(event string) map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string][]string)
	if event != "" {
		if regs := r.handlers[event]; len(regs) > 0 {
			out[event] = orderedNames(regs)
		}
		return out
	}
	for ev, regs := range r.handlers {
		if len(regs) == 0 {
			continue
		}
		out[ev] = orderedNames(regs)
	}
	return out
}

func orderedNames(regs []*registration) []string {
	sorted := sortedByPriority(regs)
	names := make([]string, len(sorted))
	for i, reg := range sorted {
		names[i] = reg.name
	}
	return names
}

// snapshot returns the registrations for event in dispatch order, snapshot
// under a short lock and released before the caller invokes any handler.
func (r *Registry) snapshot(event string) []*registration {
	r.mu.Lock()
	regs := make([]*registration, len(r.handlers[event]))
	copy(regs, r.handlers[event])
	r.mu.Unlock()

	return sortedByPriority(regs)
}

func sortedByPriority(regs []*registration) []*registration {
	sorted := make([]*registration, len(regs))
	copy(sorted, regs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].priority < sorted[j].priority
	})
	return sorted
}

func (r *Registry) defaultFields() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.defaults
}

// Emit dispatches event through every registered handler in priority order,
// implementing the deny > ask_user > inject_context > modify > continue
// precedence described in SPEC_FULL.md §4.2. It never returns an error:
// handler failures are isolated, logged, and treated as "no result" for
// that handler.
func (r *Registry) Emit(ctx context.Context, event string, data map[string]any) model.HookResult {
	regs := r.snapshot(event)

	current := mergeOverlay(r.defaultFields(), data)
	current["timestamp"] = time.Now().UTC().Format(time.RFC3339)

	if len(regs) == 0 {
		return model.HookResult{Action: model.ContinueAction, Data: current}
	}

	var special *model.HookResult
	var injections []model.HookResult

	for _, reg := range regs {
		result, err := r.invoke(ctx, reg, event, current)
		if err != nil {
			continue
		}

		switch result.Action {
		case model.DenyAction:
			return result
		case model.ModifyAction:
			if result.Data != nil {
				current = result.Data
			}
		case model.InjectContextAction:
			if result.ContextInjection != "" {
				injections = append(injections, result)
			}
		case model.AskUserAction:
			if special == nil {
				special = &result
			}
		}
	}

	if len(injections) > 0 {
		merged := mergeInjections(injections)
		if special == nil {
			special = &merged
		}
	}

	if special != nil {
		return *special
	}
	return model.HookResult{Action: model.ContinueAction, Data: current}
}

// invoke runs a single handler with panic isolation, logging and counting
// any failure against event/handler name.
func (r *Registry) invoke(ctx context.Context, reg *registration, event string, data map[string]any) (result model.HookResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("hook handler %q panicked: %v", reg.name, p)
		}
		if err != nil {
			r.logger.Error(ctx, "hook handler failed", "event", event, "handler", reg.name, "err", err)
			r.metrics.IncCounter("hooks.handler_failed", 1, "event", event, "handler", reg.name)
		}
	}()
	return reg.handler.Handle(ctx, event, data)
}

// EmitAndCollect dispatches event through every registered handler under a
// per-handler timeout and returns the data payload of every handler that
// produced one, in priority order. Unlike Emit, it never stamps a
// timestamp, never merges or short-circuits, and never interprets actions.
func (r *Registry) EmitAndCollect(ctx context.Context, event string, data map[string]any, timeout time.Duration) []map[string]any {
	regs := r.snapshot(event)
	current := mergeOverlay(r.defaultFields(), data)

	var collected []map[string]any
	for _, reg := range regs {
		result, ok := r.invokeWithTimeout(ctx, reg, event, current, timeout)
		if !ok {
			continue
		}
		if result.Data != nil {
			collected = append(collected, result.Data)
		}
	}
	return collected
}

func (r *Registry) invokeWithTimeout(ctx context.Context, reg *registration, event string, data map[string]any, timeout time.Duration) (model.HookResult, bool) {
	callCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type outcome struct {
		result model.HookResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := r.invoke(callCtx, reg, event, data)
		done <- outcome{result: result, err: err}
	}()

	select {
	case o := <-done:
		if o.err != nil {
			return model.HookResult{}, false
		}
		return o.result, true
	case <-callCtx.Done():
		r.logger.Warn(ctx, "hook handler timed out", "event", event, "handler", reg.name)
		r.metrics.IncCounter("hooks.handler_timeout", 1, "event", event, "handler", reg.name)
		return model.HookResult{}, false
	}
}

// mergeOverlay returns a fresh map containing defaults overlaid by data:
// data wins on key conflicts.
func mergeOverlay(defaults, data map[string]any) map[string]any {
	out := make(map[string]any, len(defaults)+len(data))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range data {
		out[k] = v
	}
	return out
}

// mergeInjections concatenates context_injection strings with "\n\n" in
// original order, preserving role/ephemeral/suppress_output from the first
// injection.
func mergeInjections(injections []model.HookResult) model.HookResult {
	merged := injections[0]
	merged.Action = model.InjectContextAction
	text := merged.ContextInjection
	for _, next := range injections[1:] {
		text += "\n\n" + next.ContextInjection
	}
	merged.ContextInjection = text
	return merged
}
