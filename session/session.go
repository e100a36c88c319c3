// Package session implements the kernel's top-level session lifecycle:
// Created → Initialized → Running → {Completed|Failed|Cancelled} →
// Terminated. A Session owns exactly one Coordinator for its entire
// process lifetime (SPEC_FULL.md §3, §4.5). The kernel never persists
// session state across process restarts — that is an explicit Non-goal —
// so, unlike the teacher's own session package, there is no Store
// interface here; see DESIGN.md for why that piece of the teacher was
// dropped rather than adapted.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/amplifierhq/kernel/contracts"
	"github.com/amplifierhq/kernel/coordinator"
	"github.com/amplifierhq/kernel/errors"
	"github.com/amplifierhq/kernel/events"
	"github.com/amplifierhq/kernel/model"
	"github.com/amplifierhq/kernel/telemetry"
)

// Loader mounts the modules a session needs before it can execute. It
// receives the raw configuration mapping, an opaque coordinator handle, and
// the session's identity, and must mount at least one orchestrator, one
// context manager, and one or more providers before returning.
type Loader interface {
	Load(ctx context.Context, rawConfig map[string]any, coord *coordinator.Coordinator, sessionID, parentID string) error
}

// DebugRawEmitter optionally mirrors a canonical event into its :debug
// and/or :raw tier siblings with redacted or truncated payloads. The
// kernel invokes it but never defines the redaction policy itself.
type DebugRawEmitter interface {
	Emit(ctx context.Context, event events.Name, data map[string]any)
}

// Lifecycle is one state in a Session's state machine.
type Lifecycle string

const (
	Created     Lifecycle = "created"
	Initialized Lifecycle = "initialized"
	Running     Lifecycle = "running"
	Completed   Lifecycle = "completed"
	Failed      Lifecycle = "failed"
	Cancelled   Lifecycle = "cancelled"
	Terminated  Lifecycle = "terminated"
)

// Session is the kernel's top-level per-conversation object. It is safe for
// concurrent use.
type Session struct {
	logger telemetry.Logger

	id       string
	parentID string
	resumed  bool
	config   *Config

	coordinator *coordinator.Coordinator
	loader      Loader
	debugRaw    DebugRawEmitter

	mu          sync.Mutex
	lifecycle   Lifecycle
	initialized bool
}

// New constructs a Session from a raw configuration mapping, validating
// that session.orchestrator and session.context are present. id is the
// session's UUIDv4 identifier; when empty, New generates one. parentID may
// be empty. resumed selects session:resume* events over session:start*
// during Execute.
func New(id, parentID string, resumed bool, rawConfig map[string]any, loader Loader, debugRaw DebugRawEmitter, logger telemetry.Logger, metrics telemetry.Metrics) (*Session, error) {
	if id == "" {
		id = uuid.NewString()
	}

	cfg, err := DecodeConfig(rawConfig)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}

	coord := coordinator.New(coordinator.Config{
		Logger:                 logger,
		Metrics:                metrics,
		SessionID:              id,
		ParentID:               parentID,
		RawConfig:              cfg.Raw,
		InjectionBudgetPerTurn: cfg.InjectionBudgetPerTurn,
		InjectionSizeLimit:     cfg.InjectionSizeLimit,
	})

	s := &Session{
		logger:      logger,
		id:          id,
		parentID:    parentID,
		resumed:     resumed,
		config:      cfg,
		coordinator: coord,
		loader:      loader,
		debugRaw:    debugRaw,
		lifecycle:   Created,
	}
	coord.SetSession(s)
	return s, nil
}

// ID returns the session's identifier.
func (s *Session) ID() string { return s.id }

// ParentID returns the session's parent identifier, if any.
func (s *Session) ParentID() string { return s.parentID }

// Coordinator returns the session's owned coordinator.
func (s *Session) Coordinator() *coordinator.Coordinator { return s.coordinator }

// State returns a read-only snapshot of the session's lifecycle, for
// host-wrapper layers that need to inspect status without reaching into
// kernel internals.
func (s *Session) State() model.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.SessionState{
		Status:      s.statusLocked(),
		Initialized: s.initialized,
		Resumed:     s.resumed,
	}
}

func (s *Session) statusLocked() model.SessionStatus {
	switch s.lifecycle {
	case Completed:
		return model.SessionStatusCompleted
	case Failed:
		return model.SessionStatusFailed
	case Cancelled:
		return model.SessionStatusCancelled
	default:
		return model.SessionStatusRunning
	}
}

// Initialize mounts the session's modules via the configured Loader.
// Calling Initialize on an already-initialized session is a no-op success.
// On loader failure the session stays un-initialized and the error is
// surfaced unchanged.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	if err := s.loader.Load(ctx, s.config.Raw, s.coordinator, s.id, s.parentID); err != nil {
		return err
	}

	s.mu.Lock()
	s.initialized = true
	s.lifecycle = Initialized
	s.mu.Unlock()
	return nil
}

// Execute drives one turn of conversation to completion via the mounted
// orchestrator. It fails fast with errors.SessionErrorNotInitialized when
// the session has not been successfully initialized.
func (s *Session) Execute(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		return "", errors.NewSessionError(errors.SessionErrorNotInitialized)
	}
	s.lifecycle = Running
	s.mu.Unlock()

	startEvent, startDebugEvent, startRawEvent := events.SessionStart, events.SessionStartDebug, events.SessionStartRaw
	if s.resumed {
		startEvent, startDebugEvent, startRawEvent = events.SessionResume, events.SessionResumeDebug, events.SessionResumeRaw
	}

	payload := map[string]any{"session_id": s.id, "parent_id": s.parentID}
	s.coordinator.Hooks().Emit(ctx, string(startEvent), payload)
	s.emitDebugRaw(ctx, startDebugEvent, startRawEvent, payload)

	orchestrator, ok := s.coordinator.Orchestrator()
	if !ok {
		return "", errors.NewSessionOtherError("no orchestrator mounted")
	}
	contextManager, ok := s.coordinator.ContextManager()
	if !ok {
		return "", errors.NewSessionOtherError("no context manager mounted")
	}

	response, execErr := orchestrator.Execute(ctx, prompt, contextManager, s.coordinator.Providers(), s.coordinator.Tools(), s.coordinator)

	token := s.coordinator.Cancellation()
	if token.IsCancelled() {
		s.emitCancelCompleted(ctx, token.IsImmediate(), execErr)
	}

	s.mu.Lock()
	switch {
	case token.IsCancelled():
		s.lifecycle = Cancelled
	case execErr != nil:
		s.lifecycle = Failed
	default:
		s.lifecycle = Completed
	}
	s.mu.Unlock()

	if execErr != nil {
		return "", execErr
	}
	return response, nil
}

// emitCancelCompleted emits cancel:completed best-effort: a failure here is
// logged and swallowed, never surfaced to Execute's caller.
func (s *Session) emitCancelCompleted(ctx context.Context, wasImmediate bool, execErr error) {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error(ctx, "cancel:completed emission panicked", "panic", p)
		}
	}()
	payload := map[string]any{"was_immediate": wasImmediate}
	if execErr != nil {
		payload["error"] = execErr.Error()
	}
	s.coordinator.Hooks().Emit(ctx, string(events.CancelCompleted), payload)
}

func (s *Session) emitDebugRaw(ctx context.Context, debugEvent, rawEvent events.Name, payload map[string]any) {
	if s.debugRaw == nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error(ctx, "debug/raw emitter panicked", "panic", p)
		}
	}()
	s.debugRaw.Emit(ctx, debugEvent, payload)
	s.debugRaw.Emit(ctx, rawEvent, payload)
}

// Cleanup is always safe to call, from any state. It drains the
// coordinator's cleanup stack in reverse order, emits session:end
// best-effort, then clears the initialized flag.
func (s *Session) Cleanup(ctx context.Context) {
	s.coordinator.Cleanup(ctx)

	s.mu.Lock()
	status := s.statusLocked()
	s.mu.Unlock()

	s.emitSessionEnd(ctx, status)

	s.mu.Lock()
	s.initialized = false
	s.lifecycle = Terminated
	s.mu.Unlock()
}

func (s *Session) emitSessionEnd(ctx context.Context, status model.SessionStatus) {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error(ctx, "session:end emission panicked", "panic", p)
		}
	}()
	s.coordinator.Hooks().Emit(ctx, string(events.SessionEnd), map[string]any{"session_id": s.id, "status": status})
}

var _ contracts.CoordinatorHandle = (*coordinator.Coordinator)(nil)
