// Package sim provides an emulation backend for every hardware port.
// It records operations, keeps the last value written to each
// register and supports scripted faults. The ipactl daemon attaches
// to it in emulation mode and the manager tests drive it directly.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/logging"
)

// Op records one hardware operation.
type Op struct {
	Kind    string
	Reg     ipa.Register
	Index   int
	Fields  any
	Channel int
	Mode    ipa.ChannelMode
	Err     error
}

func (o Op) String() string {
	var s string
	switch o.Kind {
	case "write":
		if o.Index == ipa.NoIndex {
			s = fmt.Sprintf("write %s", o.Reg)
		} else {
			s = fmt.Sprintf("write %s[%d]", o.Reg, o.Index)
		}
	case "mode":
		s = fmt.Sprintf("mode %d %s", o.Channel, o.Mode)
	case "dma", "vote", "unvote":
		s = o.Kind
	default:
		s = fmt.Sprintf("%s %d", o.Kind, o.Channel)
	}
	if o.Err != nil {
		s += ": error"
	}
	return s
}

type regKey struct {
	reg   ipa.Register
	index int
}

type channel struct {
	running bool
	mode    ipa.ChannelMode
	// pending is the number of completions still queued.
	pending int
}

// Backend implements interpreter.Hardware in memory.
type Backend struct {
	mu     sync.Mutex
	hw     ipa.HWType
	logger *slog.Logger

	ops      []Op
	regs     map[regKey]any
	channels map[int]*channel
	votes    int

	stopScript map[int][]error
	startErrs  map[int]error
	writeErrs  map[ipa.Register]error
}

// New returns a backend reporting hw as its hardware type.
func New(hw ipa.HWType, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		hw:         hw,
		logger:     logger.With("component", "sim"),
		regs:       make(map[regKey]any),
		channels:   make(map[int]*channel),
		stopScript: make(map[int][]error),
		startErrs:  make(map[int]error),
		writeErrs:  make(map[ipa.Register]error),
	}
}

func (b *Backend) channel(ch int) *channel {
	c, ok := b.channels[ch]
	if !ok {
		c = &channel{}
		b.channels[ch] = c
	}
	return c
}

func (b *Backend) record(op Op) {
	b.ops = append(b.ops, op)
	logging.Trace(context.Background(), b.logger, "hw op", "op", op.String())
}

// HWType returns the configured hardware type.
func (b *Backend) HWType(context.Context) (ipa.HWType, error) {
	return b.hw, nil
}

// Write stores fields as the value of reg at index.
func (b *Backend) Write(_ context.Context, reg ipa.Register, index int, fields any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	err := b.writeErrs[reg]
	b.record(Op{Kind: "write", Reg: reg, Index: index, Fields: fields, Err: err})
	if err != nil {
		return err
	}
	b.regs[regKey{reg, index}] = fields
	return nil
}

// StartChannel starts ch.
func (b *Backend) StartChannel(_ context.Context, ch int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	err := b.startErrs[ch]
	b.record(Op{Kind: "start", Channel: ch, Err: err})
	if err != nil {
		return err
	}
	b.channel(ch).running = true
	return nil
}

// StopChannel consumes the next scripted result for ch. With no
// script the stop succeeds.
func (b *Backend) StopChannel(_ context.Context, ch int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var err error
	if script := b.stopScript[ch]; len(script) > 0 {
		err, b.stopScript[ch] = script[0], script[1:]
	}
	b.record(Op{Kind: "stop", Channel: ch, Err: err})
	if err != nil {
		return err
	}
	b.channel(ch).running = false
	return nil
}

// ResetChannel resets ch. Resetting a running channel fails.
func (b *Backend) ResetChannel(_ context.Context, ch int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := b.channel(ch)
	var err error
	if c.running {
		err = fmt.Errorf("reset channel %d: channel is running", ch)
	}
	b.record(Op{Kind: "reset", Channel: ch, Err: err})
	if err != nil {
		return err
	}
	c.pending = 0
	c.mode = ipa.ChannelCallback
	return nil
}

// SetChannelMode switches the completion mode of ch.
func (b *Backend) SetChannelMode(_ context.Context, ch int, mode ipa.ChannelMode) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Op{Kind: "mode", Channel: ch, Mode: mode})
	b.channel(ch).mode = mode
	return nil
}

// ChannelEmpty reports whether ch has no pending completions.
func (b *Backend) ChannelEmpty(_ context.Context, ch int) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.channel(ch).pending == 0, nil
}

// InjectDMATask records a DMA task.
func (b *Backend) InjectDMATask(_ context.Context, bytes int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if bytes <= 0 {
		return errors.New("inject dma task: empty task")
	}
	b.record(Op{Kind: "dma", Index: bytes})
	return nil
}

// Vote takes a clock vote.
func (b *Backend) Vote(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.votes++
	b.record(Op{Kind: "vote"})
	return nil
}

// Unvote drops a clock vote.
func (b *Backend) Unvote(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.votes == 0 {
		err := errors.New("unvote without vote")
		b.record(Op{Kind: "unvote", Err: err})
		return err
	}
	b.votes--
	b.record(Op{Kind: "unvote"})
	return nil
}

// Fault injection

// ScriptStop queues results for the next stop attempts on ch. A nil
// entry is a successful stop.
func (b *Backend) ScriptStop(ch int, results ...error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopScript[ch] = append(b.stopScript[ch], results...)
}

// FailStart makes every start of ch fail with err. A nil err clears
// the fault.
func (b *Backend) FailStart(ch int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		delete(b.startErrs, ch)
		return
	}
	b.startErrs[ch] = err
}

// FailWrite makes every write to reg fail with err. A nil err clears
// the fault.
func (b *Backend) FailWrite(reg ipa.Register, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		delete(b.writeErrs, reg)
		return
	}
	b.writeErrs[reg] = err
}

// SetPending sets the number of completions queued on ch.
func (b *Backend) SetPending(ch, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.channel(ch).pending = n
}

// Inspection

// Ops returns a copy of every recorded operation.
func (b *Backend) Ops() []Op {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Op(nil), b.ops...)
}

// OpStrings returns the recorded operations in their String form.
func (b *Backend) OpStrings() []string {
	ops := b.Ops()
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.String()
	}
	return out
}

// Writes returns the successful writes to per-index registers for
// index, in order.
func (b *Backend) Writes(index int) []Op {
	var out []Op
	for _, op := range b.Ops() {
		if op.Kind == "write" && op.Index == index && op.Err == nil {
			out = append(out, op)
		}
	}
	return out
}

// ResetOps clears the operation log.
func (b *Backend) ResetOps() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops = nil
}

// Register returns the last value written to reg at index.
func (b *Backend) Register(reg ipa.Register, index int) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.regs[regKey{reg, index}]
	return v, ok
}

// Votes returns the number of outstanding clock votes.
func (b *Backend) Votes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.votes
}

// ChannelRunning reports whether ch is started.
func (b *Backend) ChannelRunning(ch int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.channel(ch).running
}

// ChannelMode returns the completion mode of ch.
func (b *Backend) ChannelMode(ch int) ipa.ChannelMode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.channel(ch).mode
}
