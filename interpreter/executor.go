package interpreter

import (
	"context"
	"fmt"

	"github.com/frobware/go-ipa/action"
)

// ActionExecutor executes reified actions.
type ActionExecutor interface {
	Execute(ctx context.Context, a action.Action) error
	ExecuteAll(ctx context.Context, actions []action.Action) error
}

// executor interprets and executes actions.
type executor struct {
	store Store
	hw    Hardware
}

// NewExecutor creates a new action executor.
func NewExecutor(store Store, hw Hardware) ActionExecutor {
	return &executor{
		store: store,
		hw:    hw,
	}
}

// Execute runs a single action.
func (e *executor) Execute(ctx context.Context, a action.Action) error {
	switch a := a.(type) {
	case action.WriteRegister:
		return e.hw.Write(ctx, a.Reg, a.Index, a.Fields)

	case action.StartChannel:
		return e.hw.StartChannel(ctx, a.Channel)

	case action.StopChannel:
		return e.hw.StopChannel(ctx, a.Channel)

	case action.ResetChannel:
		return e.hw.ResetChannel(ctx, a.Channel)

	case action.SetChannelMode:
		return e.hw.SetChannelMode(ctx, a.Channel, a.Mode)

	case action.InjectDMATask:
		return e.hw.InjectDMATask(ctx, a.Bytes)

	case action.SaveEndpoint:
		return e.store.SaveEndpoint(ctx, a.Status)

	case action.DeleteEndpoint:
		return e.store.DeleteEndpoint(ctx, a.Pipe)

	case action.Sequence:
		return e.ExecuteAll(ctx, a.Actions)

	default:
		return fmt.Errorf("unknown action type: %T", a)
	}
}

// ExecuteAll runs multiple actions, stopping on first error.
func (e *executor) ExecuteAll(ctx context.Context, actions []action.Action) error {
	for _, a := range actions {
		if err := e.Execute(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
