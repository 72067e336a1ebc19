// Package action contains reified hardware effects: descriptions of
// register writes and channel operations that the interpreter
// executes. Computing actions never touches hardware.
package action

import (
	"fmt"

	"github.com/frobware/go-ipa"
)

// Action represents an effect to be executed.
// Actions are data - they describe what to do, not how.
type Action interface {
	isAction()
}

// Register actions

// WriteRegister writes Fields to Reg. Index is the pipe or resource
// type n, or ipa.NoIndex for global registers.
type WriteRegister struct {
	Reg    ipa.Register
	Index  int
	Fields any
}

func (WriteRegister) isAction() {}

func (a WriteRegister) String() string {
	if a.Index == ipa.NoIndex {
		return fmt.Sprintf("write %s %+v", a.Reg, a.Fields)
	}
	return fmt.Sprintf("write %s[%d] %+v", a.Reg, a.Index, a.Fields)
}

// Write returns a WriteRegister for a per-index register.
func Write(reg ipa.Register, index int, fields any) WriteRegister {
	return WriteRegister{Reg: reg, Index: index, Fields: fields}
}

// WriteGlobal returns a WriteRegister for a global register.
func WriteGlobal(reg ipa.Register, fields any) WriteRegister {
	return WriteRegister{Reg: reg, Index: ipa.NoIndex, Fields: fields}
}

// Channel actions - operations on GSI channels

// StartChannel starts a GSI channel.
type StartChannel struct {
	Channel int
}

func (StartChannel) isAction() {}

// StopChannel makes a single attempt to stop a GSI channel. Retrying
// is the caller's policy.
type StopChannel struct {
	Channel int
}

func (StopChannel) isAction() {}

// ResetChannel resets a stopped GSI channel.
type ResetChannel struct {
	Channel int
}

func (ResetChannel) isAction() {}

// SetChannelMode switches a GSI channel between callback and poll
// completion.
type SetChannelMode struct {
	Channel int
	Mode    ipa.ChannelMode
}

func (SetChannelMode) isAction() {}

// InjectDMATask issues a small DMA task to flush a stalled pipe.
type InjectDMATask struct {
	Bytes int
}

func (InjectDMATask) isAction() {}

// Store actions - operations on the endpoint journal

// SaveEndpoint records an endpoint snapshot.
type SaveEndpoint struct {
	Status ipa.EndpointStatus
}

func (SaveEndpoint) isAction() {}

// DeleteEndpoint removes an endpoint snapshot by pipe.
type DeleteEndpoint struct {
	Pipe int
}

func (DeleteEndpoint) isAction() {}

// Sequence executes actions in order, stopping on first error.
type Sequence struct {
	Actions []Action
}

func (Sequence) isAction() {}
