// Package coordinator implements the kernel's central per-session registry:
// the six fixed-arity module mount points, an untyped capability namespace,
// contribution channels, a reverse-order cleanup stack, and the
// injection-budget bookkeeping an orchestrator consults before inserting
// hook-driven context. A Coordinator is composed into exactly one Session
// and lives for that session's entire process lifetime (SPEC_FULL.md §3,
// §4.4).
package coordinator

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/amplifierhq/kernel/cancellation"
	"github.com/amplifierhq/kernel/contracts"
	"github.com/amplifierhq/kernel/errors"
	"github.com/amplifierhq/kernel/hooks"
	"github.com/amplifierhq/kernel/model"
	"github.com/amplifierhq/kernel/telemetry"
)

// reservedMultiSlotName is the one multi-slot module name the coordinator
// refuses to accept, since "hooks" names the single reserved hook registry
// mount point.
const reservedMultiSlotName = "hooks"

type contributor struct {
	name     string
	seq      int
	callback func(ctx context.Context) (any, error)
}

type cleanupEntry struct {
	seq      int
	callback func(ctx context.Context) error
}

// Coordinator is the central registry composed into every session. It is
// safe for concurrent use; every mutation is serialised under mu, and no
// collaborator callback (hook handler, contributor, cleanup callable) is
// ever invoked while mu is held.
type Coordinator struct {
	logger  telemetry.Logger
	metrics telemetry.Metrics

	hooks        *hooks.Registry
	cancellation *cancellation.Token

	sessionID string
	parentID  string
	config    map[string]any

	injectionBudgetPerTurn int
	injectionSizeLimit     int

	mu sync.Mutex

	orchestrator         contracts.Orchestrator
	contextManager       contracts.ContextManager
	moduleSourceResolver any
	providers            map[model.Name]contracts.Provider
	tools                map[model.Name]contracts.Tool

	capabilities map[string]any

	contributorSeq int
	channels       map[string][]*contributor

	cleanupSeq   int
	cleanupStack []*cleanupEntry

	approvalProvider contracts.ApprovalProvider

	currentTurnInjections int

	session any
}

// Config holds the coordinator's construction-time dependencies.
type Config struct {
	Logger                 telemetry.Logger
	Metrics                telemetry.Metrics
	SessionID              string
	ParentID               string
	RawConfig              map[string]any
	InjectionBudgetPerTurn int
	InjectionSizeLimit     int
	ApprovalProvider       contracts.ApprovalProvider
}

// New constructs a Coordinator with an empty cancellation token and hook
// registry, ready for modules to be mounted.
func New(cfg Config) *Coordinator {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	return &Coordinator{
		logger:                 logger,
		metrics:                metrics,
		hooks:                  hooks.New(logger, metrics),
		cancellation:           cancellation.New(),
		sessionID:              cfg.SessionID,
		parentID:               cfg.ParentID,
		config:                 cfg.RawConfig,
		injectionBudgetPerTurn: cfg.InjectionBudgetPerTurn,
		injectionSizeLimit:     cfg.InjectionSizeLimit,
		providers:              make(map[model.Name]contracts.Provider),
		tools:                  make(map[model.Name]contracts.Tool),
		capabilities:           make(map[string]any),
		channels:               make(map[string][]*contributor),
		approvalProvider:       cfg.ApprovalProvider,
	}
}

// Hooks returns the coordinator's hook registry.
func (c *Coordinator) Hooks() *hooks.Registry { return c.hooks }

// Cancellation returns the coordinator's cancellation token.
func (c *Coordinator) Cancellation() *cancellation.Token { return c.cancellation }

// SessionID returns the owning session's identifier.
func (c *Coordinator) SessionID() string { return c.sessionID }

// ParentID returns the owning session's parent identifier, if any.
func (c *Coordinator) ParentID() string { return c.parentID }

// Config returns the raw session configuration mapping.
func (c *Coordinator) Config() map[string]any { return c.config }

// InjectionBudgetPerTurn returns the configured per-turn injection budget.
func (c *Coordinator) InjectionBudgetPerTurn() int { return c.injectionBudgetPerTurn }

// InjectionSizeLimit returns the configured per-injection size limit.
func (c *Coordinator) InjectionSizeLimit() int { return c.injectionSizeLimit }

// ApprovalProvider returns the mounted approval provider, if any.
func (c *Coordinator) ApprovalProvider() (contracts.ApprovalProvider, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.approvalProvider, c.approvalProvider != nil
}

// SetApprovalProvider mounts an approval provider.
func (c *Coordinator) SetApprovalProvider(p contracts.ApprovalProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.approvalProvider = p
}

// SetSession attaches an opaque backreference to the owning session, so
// collaborators holding only a Coordinator can reach it. The type is left
// as any to avoid a coordinator<->session import cycle.
func (c *Coordinator) SetSession(s any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
}

// Session returns the opaque session backreference set by SetSession.
func (c *Coordinator) Session() any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// MountOrchestrator replaces the single orchestrator slot.
func (c *Coordinator) MountOrchestrator(o contracts.Orchestrator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orchestrator = o
}

// Orchestrator returns the mounted orchestrator, if any.
func (c *Coordinator) Orchestrator() (contracts.Orchestrator, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orchestrator, c.orchestrator != nil
}

// UnmountOrchestrator clears the orchestrator slot.
func (c *Coordinator) UnmountOrchestrator() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orchestrator = nil
}

// MountContextManager replaces the single context-manager slot.
func (c *Coordinator) MountContextManager(m contracts.ContextManager) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contextManager = m
}

// ContextManager returns the mounted context manager, if any.
func (c *Coordinator) ContextManager() (contracts.ContextManager, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.contextManager, c.contextManager != nil
}

// UnmountContextManager clears the context-manager slot.
func (c *Coordinator) UnmountContextManager() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contextManager = nil
}

// MountModuleSourceResolver replaces the single module-source-resolver
// slot. Its shape is host-defined, so the kernel stores it opaquely.
func (c *Coordinator) MountModuleSourceResolver(resolver any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moduleSourceResolver = resolver
}

// ModuleSourceResolver returns the mounted module-source-resolver, if any.
func (c *Coordinator) ModuleSourceResolver() (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.moduleSourceResolver, c.moduleSourceResolver != nil
}

// UnmountModuleSourceResolver clears the module-source-resolver slot.
func (c *Coordinator) UnmountModuleSourceResolver() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moduleSourceResolver = nil
}

// MountProvider adds or replaces a named entry in the multi-slot providers
// mount point. name must not be "hooks", the one name reserved for the
// single-slot hook registry.
func (c *Coordinator) MountProvider(name model.Name, p contracts.Provider) error {
	if string(name) == reservedMultiSlotName {
		return fmt.Errorf("coordinator: module name %q is reserved", reservedMultiSlotName)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers[name] = p
	return nil
}

// UnmountProvider removes a named provider. Unmounting a non-existent entry
// is a no-op.
func (c *Coordinator) UnmountProvider(name model.Name) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.providers, name)
}

// Provider returns a single mounted provider by name.
func (c *Coordinator) Provider(name model.Name) (contracts.Provider, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.providers[name]
	return p, ok
}

// Providers returns every mounted provider, keyed by mount name.
func (c *Coordinator) Providers() map[model.Name]contracts.Provider {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[model.Name]contracts.Provider, len(c.providers))
	for k, v := range c.providers {
		out[k] = v
	}
	return out
}

// MountTool adds or replaces a named entry in the multi-slot tools mount
// point. name must not be "hooks".
func (c *Coordinator) MountTool(name model.Name, t contracts.Tool) error {
	if string(name) == reservedMultiSlotName {
		return fmt.Errorf("coordinator: module name %q is reserved", reservedMultiSlotName)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tools[name] = t
	return nil
}

// UnmountTool removes a named tool. Unmounting a non-existent entry is a
// no-op.
func (c *Coordinator) UnmountTool(name model.Name) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tools, name)
}

// Tool returns a single mounted tool by name.
func (c *Coordinator) Tool(name model.Name) (contracts.Tool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tools[name]
	return t, ok
}

// Tools returns every mounted tool, keyed by mount name.
func (c *Coordinator) Tools() map[model.Name]contracts.Tool {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[model.Name]contracts.Tool, len(c.tools))
	for k, v := range c.tools {
		out[k] = v
	}
	return out
}

// RegisterCapability publishes value under name in the coordinator's
// untyped capability namespace, for cross-module discovery.
func (c *Coordinator) RegisterCapability(name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.capabilities[name] = value
}

// GetCapability retrieves a previously published capability.
func (c *Coordinator) GetCapability(name string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.capabilities[name]
	return v, ok
}

// RegisterContributor appends callback under channel/name, to be invoked by
// a later CollectContributions call in registration order.
func (c *Coordinator) RegisterContributor(channel, name string, callback func(ctx context.Context) (any, error)) {
	c.mu.Lock()
	c.contributorSeq++
	c.channels[channel] = append(c.channels[channel], &contributor{name: name, seq: c.contributorSeq, callback: callback})
	c.mu.Unlock()
}

// CollectContributions invokes every contributor registered under channel,
// in registration order, and returns the successful results. A failing
// contributor is skipped silently and logged.
func (c *Coordinator) CollectContributions(ctx context.Context, channel string) []any {
	c.mu.Lock()
	contributors := make([]*contributor, len(c.channels[channel]))
	copy(contributors, c.channels[channel])
	c.mu.Unlock()

	sort.SliceStable(contributors, func(i, j int) bool { return contributors[i].seq < contributors[j].seq })

	results := make([]any, 0, len(contributors))
	for _, contrib := range contributors {
		value, err := c.invokeContributor(ctx, contrib)
		if err != nil {
			continue
		}
		results = append(results, value)
	}
	return results
}

func (c *Coordinator) invokeContributor(ctx context.Context, contrib *contributor) (value any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("contributor %q panicked: %v", contrib.name, p)
		}
		if err != nil {
			c.logger.Error(ctx, "contributor failed", "channel", "contributor", "name", contrib.name, "err", err)
		}
	}()
	return contrib.callback(ctx)
}

// RegisterCleanup appends callable to the cleanup stack. Cleanup runs every
// registered callable in reverse registration order when Cleanup is
// invoked.
func (c *Coordinator) RegisterCleanup(callable func(ctx context.Context) error) {
	if callable == nil {
		return
	}
	c.mu.Lock()
	c.cleanupSeq++
	c.cleanupStack = append(c.cleanupStack, &cleanupEntry{seq: c.cleanupSeq, callback: callable})
	c.mu.Unlock()
}

// Cleanup invokes every registered cleanup callable in reverse registration
// order, isolating failures so one failing callable cannot prevent the
// others from running.
func (c *Coordinator) Cleanup(ctx context.Context) {
	c.mu.Lock()
	entries := make([]*cleanupEntry, len(c.cleanupStack))
	copy(entries, c.cleanupStack)
	c.mu.Unlock()

	for i := len(entries) - 1; i >= 0; i-- {
		c.invokeCleanup(ctx, entries[i])
	}
}

func (c *Coordinator) invokeCleanup(ctx context.Context, entry *cleanupEntry) {
	defer func() {
		if p := recover(); p != nil {
			c.logger.Error(ctx, "cleanup callable panicked", "panic", p)
		}
	}()
	if err := entry.callback(ctx); err != nil {
		c.logger.Error(ctx, "cleanup callable failed", "err", err)
	}
}

// RequestCancel proxies to the embedded cancellation token, requesting
// Immediate when immediate is true and Graceful otherwise.
func (c *Coordinator) RequestCancel(immediate bool) {
	if immediate {
		c.cancellation.RequestImmediate()
		return
	}
	c.cancellation.RequestGraceful()
}

// ResetTurn zeroes the per-turn injection counter. It does not touch
// cancellation state.
func (c *Coordinator) ResetTurn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTurnInjections = 0
}

// CurrentTurnInjections returns the number of injections recorded since the
// last ResetTurn.
func (c *Coordinator) CurrentTurnInjections() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTurnInjections
}

// RecordInjection increments the current-turn injection counter by one,
// regardless of size; size is accepted so callers can reject an injection
// against InjectionSizeLimit before recording it.
func (c *Coordinator) RecordInjection(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTurnInjections++
}

// ValidateInjectionBudget returns a *errors.ContextError when
// accepting an injection of the given size would exceed either the
// per-turn count budget or the per-injection size limit. A limit of zero or
// less means "unbounded" for that dimension.
func (c *Coordinator) ValidateInjectionBudget(size int) error {
	if c.injectionSizeLimit > 0 && size > c.injectionSizeLimit {
		return errors.NewContextError(errors.ContextErrorOther,
			fmt.Sprintf("injection of %d bytes exceeds size limit %d", size, c.injectionSizeLimit))
	}
	if c.injectionBudgetPerTurn > 0 && c.CurrentTurnInjections() >= c.injectionBudgetPerTurn {
		return errors.NewContextError(errors.ContextErrorOther,
			fmt.Sprintf("turn injection budget %d exhausted", c.injectionBudgetPerTurn))
	}
	return nil
}
