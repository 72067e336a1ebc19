package manager

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/action"
	"github.com/frobware/go-ipa/epmap"
	"github.com/frobware/go-ipa/retry"
)

// endpoint is the runtime record of an allocated pipe. The handle is
// the pipe index.
type endpoint struct {
	mu sync.Mutex

	handle    int
	client    ipa.Client
	entry     epmap.Entry
	state     ipa.EndpointState
	cfg       ipa.EndpointConfig
	suspended bool
	keepAwake bool
	session   string
	updated   time.Time

	// releaseAwake drops the keep-awake power reference.
	releaseAwake func()
}

func (ep *endpoint) channel() int {
	return ep.entry.GSI.Channel
}

func (ep *endpoint) status() ipa.EndpointStatus {
	return ipa.EndpointStatus{
		Handle:    ep.handle,
		Client:    ep.client,
		Pipe:      ep.handle,
		Channel:   ep.channel(),
		State:     ep.state,
		Suspended: ep.suspended,
		KeepAwake: ep.keepAwake,
		Session:   ep.session,
		Config:    ep.cfg,
		UpdatedAt: ep.updated,
	}
}

// require fails with ErrInvalidState unless ep is in one of states.
func (ep *endpoint) require(op string, states ...ipa.EndpointState) error {
	if slices.Contains(states, ep.state) {
		return nil
	}
	return ipa.ErrInvalidState{Handle: ep.handle, State: ep.state, Op: op}
}

// ConnectOption adjusts Connect.
type ConnectOption func(*connectOptions)

type connectOptions struct {
	keepAwake bool
}

// WithKeepAwake holds a power reference for the lifetime of the
// endpoint, keeping the clock on until Disconnect.
func WithKeepAwake() ConnectOption {
	return func(o *connectOptions) { o.keepAwake = true }
}

// Connect allocates the pipe of client, applies cfg, starts the GSI
// channel and journals the endpoint. The returned handle is the pipe
// index. On failure every completed step is undone.
func (m *Manager) Connect(ctx context.Context, client ipa.Client, cfg ipa.EndpointConfig, opts ...ConnectOption) (int, error) {
	ctx = ensureOpID(ctx)
	var o connectOptions
	for _, opt := range opts {
		opt(&o)
	}

	table, err := m.Table()
	if err != nil {
		return -1, err
	}
	entry, err := table.Entry(client)
	if err != nil {
		return -1, err
	}
	pipe, err := table.PipeIndexFor(client)
	if err != nil {
		return -1, err
	}

	ep := &endpoint{
		handle:  pipe,
		client:  client,
		entry:   entry,
		state:   ipa.StateUnconfigured,
		session: uuid.NewString(),
	}

	// Planning is pure; an invalid configuration fails before the
	// pipe is reserved.
	actions, next, err := m.planConfigure(ctx, table, ep, cfg)
	if err != nil {
		return -1, err
	}

	release, err := m.power.Acquire(ctx, "connect")
	if err != nil {
		return -1, err
	}
	defer release()

	ep.mu.Lock()
	defer ep.mu.Unlock()

	m.mu.Lock()
	if other, ok := m.endpoints[pipe]; ok {
		m.mu.Unlock()
		return -1, ipa.ErrAlreadyAllocated{Client: client, Pipe: other.handle}
	}
	m.endpoints[pipe] = ep
	m.mu.Unlock()

	var undo undoStack
	undo.push(func() error {
		m.mu.Lock()
		delete(m.endpoints, pipe)
		m.mu.Unlock()
		return nil
	})
	fail := func(err error) (int, error) {
		m.logger.ErrorContext(ctx, "connect failed, rolling back", "client", client, "pipe", pipe, "error", err)
		if rbErr := undo.rollback(m.logger); rbErr != nil {
			return -1, errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
		}
		return -1, err
	}

	ep.state = ipa.StateConfiguring
	if err := m.executor.ExecuteAll(ctx, actions); err != nil {
		return fail(fmt.Errorf("configure endpoint %d: %w", pipe, err))
	}
	ep.cfg = next

	ch := ep.channel()
	if err := m.executor.Execute(ctx, action.StartChannel{Channel: ch}); err != nil {
		return fail(fmt.Errorf("start channel %d: %w", ch, err))
	}
	undo.push(func() error {
		if err := m.executor.Execute(ctx, action.StopChannel{Channel: ch}); err != nil {
			return err
		}
		return m.executor.Execute(ctx, action.ResetChannel{Channel: ch})
	})

	if o.keepAwake {
		awake, err := m.power.Acquire(ctx, "keep-awake")
		if err != nil {
			return fail(err)
		}
		ep.keepAwake = true
		ep.releaseAwake = awake
		undo.push(func() error {
			awake()
			return nil
		})
	}

	ep.state = ipa.StateActive
	if err := m.journal(ctx, ep); err != nil {
		return fail(err)
	}

	m.logger.InfoContext(ctx, "connected endpoint",
		"client", client,
		"pipe", pipe,
		"channel", ch,
		"group", entry.Group,
		"keep_awake", o.keepAwake)
	return pipe, nil
}

// Disconnect stops and resets the channel, clears the runtime record
// and removes the journal entry. If the channel cannot be stopped
// the endpoint stays allocated in its previous state.
func (m *Manager) Disconnect(ctx context.Context, handle int) error {
	ctx = ensureOpID(ctx)
	ep, err := m.lookup(handle)
	if err != nil {
		return err
	}

	release, err := m.power.Acquire(ctx, "disconnect")
	if err != nil {
		return err
	}
	defer release()

	ep.mu.Lock()
	defer ep.mu.Unlock()

	prev := ep.state
	if err := ep.require("disconnect", ipa.StateActive, ipa.StateSuspended, ipa.StateStopped); err != nil {
		return err
	}

	ep.state = ipa.StateStopping
	if prev != ipa.StateStopped {
		if err := m.stopChannel(ctx, ep); err != nil {
			ep.state = prev
			m.logger.ErrorContext(ctx, "disconnect aborted, channel still running",
				"client", ep.client, "pipe", ep.handle, "error", err)
			return err
		}
	}
	if err := m.executor.Execute(ctx, action.ResetChannel{Channel: ep.channel()}); err != nil {
		ep.state = ipa.StateStopped
		return fmt.Errorf("reset channel %d: %w", ep.channel(), err)
	}
	if err := m.executor.Execute(ctx, action.DeleteEndpoint{Pipe: ep.handle}); err != nil {
		ep.state = ipa.StateStopped
		return fmt.Errorf("remove journal entry for pipe %d: %w", ep.handle, err)
	}

	if ep.releaseAwake != nil {
		ep.releaseAwake()
		ep.releaseAwake = nil
	}
	ep.state = ipa.StateUnconfigured

	m.mu.Lock()
	delete(m.endpoints, ep.handle)
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "disconnected endpoint", "client", ep.client, "pipe", ep.handle)
	return nil
}

// StartChannel starts the GSI channel of a stopped endpoint.
func (m *Manager) StartChannel(ctx context.Context, handle int) error {
	ctx = ensureOpID(ctx)
	ep, err := m.lookup(handle)
	if err != nil {
		return err
	}

	release, err := m.power.Acquire(ctx, "start-channel")
	if err != nil {
		return err
	}
	defer release()

	ep.mu.Lock()
	defer ep.mu.Unlock()

	if err := ep.require("start channel", ipa.StateStopped); err != nil {
		return err
	}
	if err := m.executor.Execute(ctx, action.StartChannel{Channel: ep.channel()}); err != nil {
		return fmt.Errorf("start channel %d: %w", ep.channel(), err)
	}
	ep.state = ipa.StateActive
	ep.suspended = false
	return m.journal(ctx, ep)
}

// StopChannel stops the GSI channel of an active endpoint. Consumer
// channels are retried while the hardware reports it is busy; on
// pre-4.0 hardware a 1-byte DMA task is injected before each retry to
// flush the pipe. Exhausting the budget returns
// ipa.ErrStopRetriesExhausted.
func (m *Manager) StopChannel(ctx context.Context, handle int) error {
	ctx = ensureOpID(ctx)
	ep, err := m.lookup(handle)
	if err != nil {
		return err
	}

	release, err := m.power.Acquire(ctx, "stop-channel")
	if err != nil {
		return err
	}
	defer release()

	ep.mu.Lock()
	defer ep.mu.Unlock()

	if err := ep.require("stop channel", ipa.StateActive); err != nil {
		return err
	}
	if err := m.stopChannel(ctx, ep); err != nil {
		return err
	}
	ep.state = ipa.StateStopped
	return m.journal(ctx, ep)
}

func transient(err error) bool {
	return errors.Is(err, ipa.ErrTryAgain) || errors.Is(err, ipa.ErrTimedOut)
}

// stopChannel runs the stop policy for ep. The caller holds ep.mu.
func (m *Manager) stopChannel(ctx context.Context, ep *endpoint) error {
	stop := action.StopChannel{Channel: ep.channel()}
	if ep.client.IsProd() {
		if err := m.executor.Execute(ctx, stop); err != nil {
			return fmt.Errorf("stop channel %d: %w", ep.channel(), err)
		}
		return nil
	}

	inject := m.revision().HW() < ipa.HWv4_0
	attempts, err := m.stopPolicy.Do(ctx, m.clock, transient, func(attempt int) error {
		if attempt > 0 {
			m.logger.DebugContext(ctx, "retrying channel stop", "pipe", ep.handle, "attempt", attempt)
			if inject {
				if err := m.executor.Execute(ctx, action.InjectDMATask{Bytes: 1}); err != nil {
					return fmt.Errorf("inject dma task: %w", err)
				}
			}
		}
		return m.executor.Execute(ctx, stop)
	})

	var exhausted *retry.ExhaustedError
	if errors.As(err, &exhausted) {
		return ipa.ErrStopRetriesExhausted{Handle: ep.handle, Attempts: exhausted.Attempts, Last: exhausted.Last}
	}
	if err != nil {
		return fmt.Errorf("stop channel %d: %w", ep.channel(), err)
	}
	if attempts > 1 {
		m.logger.InfoContext(ctx, "channel stopped after retries", "pipe", ep.handle, "attempts", attempts)
	}
	return nil
}

// SetSuspend suspends or resumes a consumer pipe through its control
// register. Pipe suspend exists only before 4.0; later hardware stops
// the channel instead and returns ipa.ErrNotSupported here.
func (m *Manager) SetSuspend(ctx context.Context, handle int, suspend bool) error {
	ctx = ensureOpID(ctx)
	ep, err := m.lookup(handle)
	if err != nil {
		return err
	}
	if m.revision().HW() >= ipa.HWv4_0 {
		return fmt.Errorf("pipe suspend: %w", ipa.ErrNotSupported)
	}
	if !ep.client.IsCons() {
		return ipa.ErrWrongDirection{Handle: handle, Client: ep.client, Facet: "suspend"}
	}

	release, err := m.power.Acquire(ctx, "suspend")
	if err != nil {
		return err
	}
	defer release()

	ep.mu.Lock()
	defer ep.mu.Unlock()

	if suspend {
		if err := ep.require("suspend", ipa.StateActive); err != nil {
			return err
		}
	} else if err := ep.require("resume", ipa.StateSuspended); err != nil {
		return err
	}
	if err := m.setPipeSuspend(ctx, ep, suspend); err != nil {
		return err
	}
	return m.journal(ctx, ep)
}

// setPipeSuspend writes the control register and moves ep between
// Active and Suspended. The caller holds ep.mu.
func (m *Manager) setPipeSuspend(ctx context.Context, ep *endpoint, suspend bool) error {
	prev := ep.state
	if suspend {
		ep.state = ipa.StateSuspending
	} else {
		ep.state = ipa.StateResuming
	}
	write := action.Write(ipa.RegEndpInitCtrl, ep.handle, ipa.CtrlFields{Suspend: suspend})
	if err := m.executor.Execute(ctx, write); err != nil {
		ep.state = prev
		return fmt.Errorf("write %s[%d]: %w", ipa.RegEndpInitCtrl, ep.handle, err)
	}
	ep.suspended = suspend
	if suspend {
		ep.state = ipa.StateSuspended
	} else {
		ep.state = ipa.StateActive
	}
	return nil
}
