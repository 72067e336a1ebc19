// Package manager is the explicit driver context for one IPA
// instance.
//
// # Attach
//
// Attach probes the hardware type once, resolves the active revision
// and freezes the endpoint table for the lifetime of the Manager. It
// then programs the resource groups and pulse generators under a
// clock vote and records the attach in the store. Endpoint operations
// fail with ErrNotAttached until Attach has succeeded.
//
// # Compute, then execute
//
// Every mutating operation first computes the full list of register
// writes from the endpoint table, the revision and the caller's
// configuration. Timer values are quantized during this step, so an
// unrepresentable value fails before any register is touched. Only
// then are the actions executed against the hardware.
//
// # Locking
//
// The Manager mutex guards the endpoint set. Each endpoint has its
// own mutex for read-modify-write of its configuration snapshot. Every
// mutating entry point holds a power.Tracker reference for its
// duration; the reference is released with defer on every path.
package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/action"
	"github.com/frobware/go-ipa/epmap"
	"github.com/frobware/go-ipa/interpreter"
	"github.com/frobware/go-ipa/interpreter/store"
	"github.com/frobware/go-ipa/lock"
	"github.com/frobware/go-ipa/power"
	"github.com/frobware/go-ipa/retry"
	"github.com/frobware/go-ipa/rsrc"
	"github.com/frobware/go-ipa/timer"
)

// ErrNotAttached is returned by endpoint operations before Attach.
var ErrNotAttached = errors.New("manager is not attached")

// ErrAlreadyAttached is returned by a second Attach.
var ErrAlreadyAttached = errors.New("manager is already attached")

// DefaultStopPolicy bounds consumer channel stop retries.
var DefaultStopPolicy = retry.Policy{
	Attempts: 5,
	Min:      time.Millisecond,
	Max:      10 * time.Millisecond,
	Factor:   2,
}

// DefaultSuspendSettle is the delay after a pre-4.0 pipe suspend
// before the channel is polled.
const DefaultSuspendSettle = time.Millisecond

// Options configures a Manager.
type Options struct {
	Hardware interpreter.Hardware
	Store    interpreter.Store
	Platform ipa.Platform
	Mode     ipa.HWMode

	// StopPolicy bounds consumer channel stop retries. The zero
	// value selects DefaultStopPolicy.
	StopPolicy retry.Policy

	// SuspendSettle is the delay after a pre-4.0 pipe suspend. Zero
	// selects DefaultSuspendSettle.
	SuspendSettle time.Duration

	// Clock sleeps between retries. Nil selects retry.RealClock.
	Clock retry.Clock

	Logger *slog.Logger
}

// Manager owns the active revision and the endpoint runtime state.
type Manager struct {
	hw         interpreter.Hardware
	store      interpreter.Store
	executor   interpreter.ActionExecutor
	power      *power.Tracker
	clock      retry.Clock
	stopPolicy retry.Policy
	settle     time.Duration
	platform   ipa.Platform
	mode       ipa.HWMode
	logger     *slog.Logger

	mu        sync.Mutex
	table     *epmap.Table
	attach    interpreter.AttachRecord
	endpoints map[int]*endpoint
}

// New creates a Manager. It does not touch the hardware.
func New(opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = WithOpIDHandler(logger)

	policy := opts.StopPolicy
	if policy.Attempts == 0 {
		policy = DefaultStopPolicy
	}
	settle := opts.SuspendSettle
	if settle == 0 {
		settle = DefaultSuspendSettle
	}
	clock := opts.Clock
	if clock == nil {
		clock = retry.RealClock()
	}

	return &Manager{
		hw:         opts.Hardware,
		store:      opts.Store,
		executor:   interpreter.NewExecutor(opts.Store, opts.Hardware),
		power:      power.NewTracker(opts.Hardware, logger),
		clock:      clock,
		stopPolicy: policy,
		settle:     settle,
		platform:   opts.Platform,
		mode:       opts.Mode,
		logger:     logger.With("component", "manager"),
		endpoints:  make(map[int]*endpoint),
	}
}

// Attach resolves the active revision and programs the global
// hardware state. The scope proves the caller holds the attach lock,
// so only one process programs the hardware.
func (m *Manager) Attach(ctx context.Context, scope lock.WriterScope) (interpreter.AttachRecord, error) {
	ctx = ensureOpID(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.table != nil {
		return interpreter.AttachRecord{}, ErrAlreadyAttached
	}

	raw, err := m.hw.HWType(ctx)
	if err != nil {
		return interpreter.AttachRecord{}, fmt.Errorf("probe hardware type: %w", err)
	}
	rev := ipa.ResolveRevision(raw, m.platform, m.logger)

	table, err := epmap.New(rev)
	if err != nil {
		return interpreter.AttachRecord{}, fmt.Errorf("endpoint table for %s: %w", rev, err)
	}
	rsrcActions, err := rsrc.Program(rev, m.mode)
	if err != nil {
		return interpreter.AttachRecord{}, fmt.Errorf("resource groups for %s: %w", rev, err)
	}
	actions := append(rsrcActions, timer.Program(rev)...)

	release, err := m.power.Acquire(ctx, "attach")
	if err != nil {
		return interpreter.AttachRecord{}, err
	}
	defer release()

	if err := m.executor.ExecuteAll(ctx, actions); err != nil {
		return interpreter.AttachRecord{}, fmt.Errorf("program %s: %w", rev, err)
	}

	rec := interpreter.AttachRecord{
		Revision:   rev,
		HWType:     raw,
		Mode:       m.mode,
		Session:    uuid.NewString(),
		AttachedAt: time.Now(),
	}
	if err := m.discardStaleEndpoints(ctx, rec); err != nil {
		return interpreter.AttachRecord{}, err
	}

	m.table = table
	m.attach = rec
	m.logger.InfoContext(ctx, "attached",
		"hw_type", raw,
		"revision", rev,
		"mode", m.mode,
		"session", rec.Session,
		"writes", len(actions),
		"lock_fd", scope.FD())
	return rec, nil
}

// discardStaleEndpoints removes journal entries left by an earlier
// attach and records the new one. The hardware was reprogrammed, so
// those endpoints no longer exist.
func (m *Manager) discardStaleEndpoints(ctx context.Context, rec interpreter.AttachRecord) error {
	return m.store.RunInTransaction(ctx, func(tx interpreter.Store) error {
		stale, err := tx.ListEndpoints(ctx)
		if err != nil {
			return fmt.Errorf("list journalled endpoints: %w", err)
		}
		for _, st := range stale {
			m.logger.WarnContext(ctx, "discarding stale endpoint",
				"pipe", st.Pipe, "client", st.Client, "session", st.Session)
			if err := tx.DeleteEndpoint(ctx, st.Pipe); err != nil && !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}
		return tx.SaveAttach(ctx, rec)
	})
}

// Revision returns the active revision, or false before Attach.
func (m *Manager) Revision() (ipa.Revision, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.table == nil {
		return ipa.RevisionMax, false
	}
	return m.table.Revision(), true
}

// Table returns the frozen endpoint table.
func (m *Manager) Table() (*epmap.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.table == nil {
		return nil, ErrNotAttached
	}
	return m.table, nil
}

// AttachRecord returns the record of the current attach.
func (m *Manager) AttachRecord() (interpreter.AttachRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.table == nil {
		return interpreter.AttachRecord{}, ErrNotAttached
	}
	return m.attach, nil
}

// ActiveClients returns the number of power references held.
func (m *Manager) ActiveClients() int {
	return m.power.Count()
}

// Endpoint returns a snapshot of the endpoint behind handle.
func (m *Manager) Endpoint(handle int) (ipa.EndpointStatus, error) {
	ep, err := m.lookup(handle)
	if err != nil {
		return ipa.EndpointStatus{}, err
	}
	ep.mu.Lock()
	defer ep.mu.Unlock()
	return ep.status(), nil
}

// Endpoints returns snapshots of every allocated endpoint ordered by
// handle.
func (m *Manager) Endpoints() []ipa.EndpointStatus {
	m.mu.Lock()
	eps := make([]*endpoint, 0, len(m.endpoints))
	for _, ep := range m.endpoints {
		eps = append(eps, ep)
	}
	m.mu.Unlock()

	sort.Slice(eps, func(i, j int) bool { return eps[i].handle < eps[j].handle })
	out := make([]ipa.EndpointStatus, 0, len(eps))
	for _, ep := range eps {
		ep.mu.Lock()
		out = append(out, ep.status())
		ep.mu.Unlock()
	}
	return out
}

func (m *Manager) lookup(handle int) (*endpoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.table == nil {
		return nil, ErrNotAttached
	}
	ep, ok := m.endpoints[handle]
	if !ok {
		return nil, ipa.ErrInvalidHandle{Handle: handle}
	}
	return ep, nil
}

// connected returns the endpoint allocated to c, if any.
func (m *Manager) connected(c ipa.Client) (*endpoint, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ep := range m.endpoints {
		if ep.client == c {
			return ep, true
		}
	}
	return nil, false
}

func (m *Manager) revision() ipa.Revision {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.table.Revision()
}

// journal saves the endpoint snapshot. The caller holds ep.mu.
func (m *Manager) journal(ctx context.Context, ep *endpoint) error {
	ep.updated = time.Now()
	if err := m.executor.Execute(ctx, action.SaveEndpoint{Status: ep.status()}); err != nil {
		return fmt.Errorf("journal endpoint %d: %w", ep.handle, err)
	}
	return nil
}
