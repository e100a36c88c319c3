// Package cancellation implements the kernel's cooperative cancellation
// token: a three-state monotonic machine (None/Graceful/Immediate) with
// running-tool tracking, parent-to-child propagation, and cancel callbacks.
// Grounded on the original source's cancellation.rs state machine.
package cancellation

import "sync"

// State is one of the three monotonic cancellation states. Transitions are
// None→Graceful, None→Immediate, Graceful→Immediate; Immediate never
// regresses.
type State int

const (
	None State = iota
	Graceful
	Immediate
)

func (s State) String() string {
	switch s {
	case Graceful:
		return "graceful"
	case Immediate:
		return "immediate"
	default:
		return "none"
	}
}

// Token is a cooperative cancellation flag. Setting it never aborts an
// in-flight operation; orchestrators, tools, and provider adapters poll
// IsCancelled/IsGraceful/IsImmediate at their own safe points. A Token is
// safe for concurrent use.
type Token struct {
	mu sync.Mutex

	state          State
	runningTools   map[string]string // call id -> display name
	children       []*Token
	cancelCallback []func()
}

// New returns an empty Token in state None.
func New() *Token {
	return &Token{runningTools: make(map[string]string)}
}

// State returns the current cancellation state.
func (t *Token) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// IsCancelled reports whether the token has left state None.
func (t *Token) IsCancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state != None
}

// IsGraceful reports whether the token is in state Graceful.
func (t *Token) IsGraceful() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == Graceful
}

// IsImmediate reports whether the token is in state Immediate. Once true,
// it returns true forever: Immediate never regresses.
func (t *Token) IsImmediate() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == Immediate
}

// RequestGraceful transitions an untouched token (state None) to Graceful
// and propagates the same request to every currently-registered child.
// It is a no-op, returning false, if the token is already Graceful or
// Immediate.
//
// Child propagation happens after the parent's lock is released: a
// snapshot-then-iterate pattern, required so a child holding a reference
// back into its parent's call graph cannot deadlock against the parent's
// own mutex.
func (t *Token) RequestGraceful() bool {
	t.mu.Lock()
	if t.state != None {
		t.mu.Unlock()
		return false
	}
	t.state = Graceful
	children := t.snapshotChildrenLocked()
	t.mu.Unlock()

	for _, c := range children {
		c.RequestGraceful()
	}
	return true
}

// RequestImmediate transitions the token to Immediate (from None or
// Graceful) and propagates the same request to every currently-registered
// child. It is a no-op, returning false, if the token is already Immediate.
func (t *Token) RequestImmediate() bool {
	t.mu.Lock()
	if t.state == Immediate {
		t.mu.Unlock()
		return false
	}
	t.state = Immediate
	children := t.snapshotChildrenLocked()
	t.mu.Unlock()

	for _, c := range children {
		c.RequestImmediate()
	}
	return true
}

// snapshotChildrenLocked returns a copy of the child list. Callers must
// hold t.mu.
func (t *Token) snapshotChildrenLocked() []*Token {
	out := make([]*Token, len(t.children))
	copy(out, t.children)
	return out
}

// Reset sets the state back to None and clears running-tool tracking. It
// does NOT clear child registrations or cancel callbacks.
func (t *Token) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = None
	t.runningTools = make(map[string]string)
}

// RegisterToolStart records a running tool-call id and its display name.
func (t *Token) RegisterToolStart(callID, toolName string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.runningTools[callID] = toolName
}

// RegisterToolComplete removes a tool-call id from the running set.
func (t *Token) RegisterToolComplete(callID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.runningTools, callID)
}

// RunningTools returns a snapshot of the running tool-call ids.
func (t *Token) RunningTools() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.runningTools))
	for id := range t.runningTools {
		out = append(out, id)
	}
	return out
}

// RunningToolNames returns a snapshot of the display names of running tools.
func (t *Token) RunningToolNames() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.runningTools))
	for _, name := range t.runningTools {
		out = append(out, name)
	}
	return out
}

// RegisterChild appends child to the child list. If the parent is not in
// state None, child is synchronously brought to at least the parent's
// state before RegisterChild returns.
func (t *Token) RegisterChild(child *Token) {
	t.mu.Lock()
	t.children = append(t.children, child)
	state := t.state
	t.mu.Unlock()

	switch state {
	case Graceful:
		child.RequestGraceful()
	case Immediate:
		child.RequestImmediate()
	}
}

// UnregisterChild removes child from the child list by pointer identity.
func (t *Token) UnregisterChild(child *Token) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, c := range t.children {
		if c == child {
			t.children = append(t.children[:i], t.children[i+1:]...)
			return
		}
	}
}

// OnCancel appends callback to the list invoked by TriggerCallbacks.
func (t *Token) OnCancel(callback func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelCallback = append(t.cancelCallback, callback)
}

// TriggerCallbacks snapshots the registered cancel callbacks under the lock,
// releases it, then invokes each one. A panicking callback is recovered so
// it cannot prevent the remaining callbacks from running; the recovered
// panic is discarded and nothing is logged.
func (t *Token) TriggerCallbacks() {
	t.mu.Lock()
	callbacks := make([]func(), len(t.cancelCallback))
	copy(callbacks, t.cancelCallback)
	t.mu.Unlock()

	for _, cb := range callbacks {
		runCallback(cb)
	}
}

func runCallback(cb func()) {
	defer func() {
		_ = recover()
	}()
	cb()
}
