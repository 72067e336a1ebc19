package manager

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/action"
	"github.com/frobware/go-ipa/epmap"
)

// Resource is a peripheral-facing group of endpoints that is
// suspended and resumed as a unit.
type Resource int

const (
	ResUSBProd Resource = iota
	ResUSBCons
	ResUSBDPLCons
	ResHSICProd
	ResHSICCons
	ResWLANCons
	ResMHIProd
	ResMHICons
	ResODUAdaptProd
	ResODUAdaptCons
	ResEthernetProd
	ResEthernetCons
	ResAppsCons
	resourceMax
)

var resourceNames = [resourceMax]string{
	ResUSBProd:      "usb_prod",
	ResUSBCons:      "usb_cons",
	ResUSBDPLCons:   "usb_dpl_cons",
	ResHSICProd:     "hsic_prod",
	ResHSICCons:     "hsic_cons",
	ResWLANCons:     "wlan_cons",
	ResMHIProd:      "mhi_prod",
	ResMHICons:      "mhi_cons",
	ResODUAdaptProd: "odu_adapt_prod",
	ResODUAdaptCons: "odu_adapt_cons",
	ResEthernetProd: "ethernet_prod",
	ResEthernetCons: "ethernet_cons",
	ResAppsCons:     "apps_cons",
}

func (r Resource) String() string {
	if r < 0 || r >= resourceMax {
		return fmt.Sprintf("Resource(%d)", int(r))
	}
	return resourceNames[r]
}

// ParseResource parses a resource name as produced by String.
func ParseResource(s string) (Resource, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for r := Resource(0); r < resourceMax; r++ {
		if resourceNames[r] == s {
			return r, nil
		}
	}
	return resourceMax, fmt.Errorf("unknown resource %q", s)
}

// Resources returns every resource in order.
func Resources() []Resource {
	out := make([]Resource, resourceMax)
	for i := range out {
		out[i] = Resource(i)
	}
	return out
}

// resourceClients lists the constituent clients of each resource in
// the order they are suspended. Coalescing pipes come before their
// default pipes because the coalescing engine needs the default pipe
// running while it closes. Consumers come before producers.
var resourceClients = [resourceMax][]ipa.Client{
	ResUSBProd:      {ipa.USBProd},
	ResUSBCons:      {ipa.USBCons},
	ResUSBDPLCons:   {ipa.USBDPLCons},
	ResHSICProd:     {ipa.HSIC1Prod},
	ResHSICCons:     {ipa.HSIC1Cons},
	ResWLANCons:     {ipa.WLAN1Cons, ipa.WLAN2Cons, ipa.WLAN3Cons, ipa.WLAN4Cons},
	ResMHIProd:      {ipa.MHIProd},
	ResMHICons:      {ipa.MHICons},
	ResODUAdaptProd: {ipa.ODUProd},
	ResODUAdaptCons: {ipa.ODUEmbCons, ipa.ODUTethCons},
	ResEthernetProd: {ipa.EthernetProd},
	ResEthernetCons: {ipa.EthernetCons},
	ResAppsCons: {
		ipa.AppsWANCoalCons,
		ipa.AppsWANCons,
		ipa.AppsLANCoalCons,
		ipa.AppsLANCons,
		ipa.ODLDPLCons,
		ipa.AppsWANLowLatCons,
	},
}

// ResourceClients returns the clients of res that are mapped on the
// table's revision, in suspend order.
func ResourceClients(table *epmap.Table, res Resource) []ipa.Client {
	if res < 0 || res >= resourceMax {
		return nil
	}
	var cons, prods []ipa.Client
	for _, c := range resourceClients[res] {
		if !table.Mapped(c) {
			continue
		}
		if c.IsCons() {
			cons = append(cons, c)
		} else {
			prods = append(prods, c)
		}
	}
	return append(cons, prods...)
}

// members returns the connected endpoints of res in suspend order.
func (m *Manager) members(res Resource) ([]*endpoint, error) {
	table, err := m.Table()
	if err != nil {
		return nil, err
	}
	if res < 0 || res >= resourceMax {
		return nil, fmt.Errorf("invalid resource %d", int(res))
	}
	var out []*endpoint
	for _, c := range ResourceClients(table, res) {
		if ep, ok := m.connected(c); ok {
			out = append(out, ep)
		}
	}
	return out, nil
}

// SuspendResource suspends every connected endpoint of res in order.
// Before 4.0 consumer pipes are suspended through their control
// register; producers, and every endpoint on later hardware, have
// their channel stopped with a single attempt. Each
// channel is then switched to poll mode and must be empty. A busy
// stop or a non-empty channel returns ipa.ErrTryAgain after every
// endpoint already suspended, including the failing one, has been
// restored in reverse order.
func (m *Manager) SuspendResource(ctx context.Context, res Resource) error {
	ctx = ensureOpID(ctx)
	eps, err := m.members(res)
	if err != nil {
		return err
	}
	pipeSuspend := m.revision().HW() < ipa.HWv4_0

	release, err := m.power.Acquire(ctx, "suspend-"+res.String())
	if err != nil {
		return err
	}
	defer release()

	var undo undoStack
	fail := func(err error) error {
		m.logger.WarnContext(ctx, "suspend failed, rolling back", "resource", res, "error", err)
		if rbErr := undo.rollback(m.logger); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
		}
		return err
	}

	for _, ep := range eps {
		if err := m.suspendOne(ctx, ep, pipeSuspend, &undo); err != nil {
			return fail(err)
		}
	}
	m.logger.InfoContext(ctx, "suspended resource", "resource", res, "endpoints", len(eps))
	return nil
}

func (m *Manager) suspendOne(ctx context.Context, ep *endpoint, pipeSuspend bool, undo *undoStack) error {
	ep.mu.Lock()
	defer ep.mu.Unlock()

	if ep.state != ipa.StateActive {
		m.logger.DebugContext(ctx, "endpoint not active, skipping suspend", "pipe", ep.handle, "state", ep.state)
		return nil
	}
	ch := ep.channel()

	if pipeSuspend && ep.client.IsCons() {
		if err := m.setPipeSuspend(ctx, ep, true); err != nil {
			return err
		}
		undo.push(func() error {
			ep.mu.Lock()
			defer ep.mu.Unlock()
			if err := m.setPipeSuspend(ctx, ep, false); err != nil {
				return err
			}
			return m.journal(ctx, ep)
		})
		if err := m.clock.Sleep(ctx, m.settle); err != nil {
			return err
		}
	} else {
		ep.state = ipa.StateSuspending
		if err := m.executor.Execute(ctx, action.StopChannel{Channel: ch}); err != nil {
			ep.state = ipa.StateActive
			if transient(err) {
				return fmt.Errorf("stop channel %d: %w", ch, ipa.ErrTryAgain)
			}
			return fmt.Errorf("stop channel %d: %w", ch, err)
		}
		ep.state = ipa.StateStopped
		ep.suspended = true
		undo.push(func() error {
			ep.mu.Lock()
			defer ep.mu.Unlock()
			if err := m.executor.Execute(ctx, action.StartChannel{Channel: ch}); err != nil {
				return err
			}
			ep.state = ipa.StateActive
			ep.suspended = false
			return m.journal(ctx, ep)
		})
	}

	if err := m.executor.Execute(ctx, action.SetChannelMode{Channel: ch, Mode: ipa.ChannelPoll}); err != nil {
		return fmt.Errorf("poll mode on channel %d: %w", ch, err)
	}
	undo.push(func() error {
		return m.executor.Execute(ctx, action.SetChannelMode{Channel: ch, Mode: ipa.ChannelCallback})
	})

	empty, err := m.hw.ChannelEmpty(ctx, ch)
	if err != nil {
		return fmt.Errorf("check channel %d: %w", ch, err)
	}
	if !empty {
		m.logger.DebugContext(ctx, "channel not empty", "pipe", ep.handle, "channel", ch)
		return fmt.Errorf("channel %d has pending completions: %w", ch, ipa.ErrTryAgain)
	}
	return m.journal(ctx, ep)
}

// ResumeResource resumes every suspended endpoint of res in the same
// order: callback mode first, then the pipe is unsuspended or the
// channel restarted. A failure re-suspends what was resumed.
func (m *Manager) ResumeResource(ctx context.Context, res Resource) error {
	ctx = ensureOpID(ctx)
	eps, err := m.members(res)
	if err != nil {
		return err
	}
	pipeSuspend := m.revision().HW() < ipa.HWv4_0

	release, err := m.power.Acquire(ctx, "resume-"+res.String())
	if err != nil {
		return err
	}
	defer release()

	var undo undoStack
	for _, ep := range eps {
		if err := m.resumeOne(ctx, ep, pipeSuspend, &undo); err != nil {
			m.logger.WarnContext(ctx, "resume failed, rolling back", "resource", res, "error", err)
			if rbErr := undo.rollback(m.logger); rbErr != nil {
				return errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
			}
			return err
		}
	}
	m.logger.InfoContext(ctx, "resumed resource", "resource", res, "endpoints", len(eps))
	return nil
}

func (m *Manager) resumeOne(ctx context.Context, ep *endpoint, pipeSuspend bool, undo *undoStack) error {
	ep.mu.Lock()
	defer ep.mu.Unlock()

	if !ep.suspended {
		return nil
	}
	ch := ep.channel()

	if err := m.executor.Execute(ctx, action.SetChannelMode{Channel: ch, Mode: ipa.ChannelCallback}); err != nil {
		return fmt.Errorf("callback mode on channel %d: %w", ch, err)
	}
	undo.push(func() error {
		return m.executor.Execute(ctx, action.SetChannelMode{Channel: ch, Mode: ipa.ChannelPoll})
	})

	if pipeSuspend && ep.client.IsCons() {
		if err := m.setPipeSuspend(ctx, ep, false); err != nil {
			return err
		}
		undo.push(func() error {
			ep.mu.Lock()
			defer ep.mu.Unlock()
			if err := m.setPipeSuspend(ctx, ep, true); err != nil {
				return err
			}
			return m.journal(ctx, ep)
		})
	} else {
		ep.state = ipa.StateResuming
		if err := m.executor.Execute(ctx, action.StartChannel{Channel: ch}); err != nil {
			ep.state = ipa.StateStopped
			return fmt.Errorf("start channel %d: %w", ch, err)
		}
		ep.state = ipa.StateActive
		ep.suspended = false
		undo.push(func() error {
			ep.mu.Lock()
			defer ep.mu.Unlock()
			if err := m.executor.Execute(ctx, action.StopChannel{Channel: ch}); err != nil {
				return err
			}
			ep.state = ipa.StateStopped
			ep.suspended = true
			return m.journal(ctx, ep)
		})
	}
	return m.journal(ctx, ep)
}

// StopResource stops the channel of every active endpoint of res,
// using the consumer retry policy. A failure restarts what was
// stopped.
func (m *Manager) StopResource(ctx context.Context, res Resource) error {
	ctx = ensureOpID(ctx)
	eps, err := m.members(res)
	if err != nil {
		return err
	}

	release, err := m.power.Acquire(ctx, "stop-"+res.String())
	if err != nil {
		return err
	}
	defer release()

	var undo undoStack
	for _, ep := range eps {
		if err := m.stopOne(ctx, ep, &undo); err != nil {
			m.logger.WarnContext(ctx, "stop failed, rolling back", "resource", res, "error", err)
			if rbErr := undo.rollback(m.logger); rbErr != nil {
				return errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
			}
			return err
		}
	}
	return nil
}

func (m *Manager) stopOne(ctx context.Context, ep *endpoint, undo *undoStack) error {
	ep.mu.Lock()
	defer ep.mu.Unlock()

	if ep.state != ipa.StateActive {
		return nil
	}
	if err := m.stopChannel(ctx, ep); err != nil {
		return err
	}
	ep.state = ipa.StateStopped
	undo.push(func() error {
		ep.mu.Lock()
		defer ep.mu.Unlock()
		if err := m.executor.Execute(ctx, action.StartChannel{Channel: ep.channel()}); err != nil {
			return err
		}
		ep.state = ipa.StateActive
		return m.journal(ctx, ep)
	})
	return m.journal(ctx, ep)
}

// StartResource starts the channel of every stopped endpoint of res.
// A failure stops what was started.
func (m *Manager) StartResource(ctx context.Context, res Resource) error {
	ctx = ensureOpID(ctx)
	eps, err := m.members(res)
	if err != nil {
		return err
	}

	release, err := m.power.Acquire(ctx, "start-"+res.String())
	if err != nil {
		return err
	}
	defer release()

	var undo undoStack
	for _, ep := range eps {
		if err := m.startOne(ctx, ep, &undo); err != nil {
			m.logger.WarnContext(ctx, "start failed, rolling back", "resource", res, "error", err)
			if rbErr := undo.rollback(m.logger); rbErr != nil {
				return errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
			}
			return err
		}
	}
	return nil
}

func (m *Manager) startOne(ctx context.Context, ep *endpoint, undo *undoStack) error {
	ep.mu.Lock()
	defer ep.mu.Unlock()

	if ep.state != ipa.StateStopped {
		return nil
	}
	ch := ep.channel()
	if err := m.executor.Execute(ctx, action.StartChannel{Channel: ch}); err != nil {
		return fmt.Errorf("start channel %d: %w", ch, err)
	}
	ep.state = ipa.StateActive
	ep.suspended = false
	undo.push(func() error {
		ep.mu.Lock()
		defer ep.mu.Unlock()
		if err := m.executor.Execute(ctx, action.StopChannel{Channel: ch}); err != nil {
			return err
		}
		ep.state = ipa.StateStopped
		return m.journal(ctx, ep)
	})
	return m.journal(ctx, ep)
}
