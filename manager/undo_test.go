package manager

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUndoStack_ReverseOrder(t *testing.T) {
	var order []string
	var undo undoStack
	for _, step := range []string{"suspend", "poll", "stop"} {
		undo.push(func() error {
			order = append(order, step)
			return nil
		})
	}
	require.NoError(t, undo.rollback(testLogger()))
	assert.Equal(t, []string{"stop", "poll", "suspend"}, order)
}

func TestUndoStack_CollectsErrorsAndContinues(t *testing.T) {
	errA := errors.New("restart channel 3")
	errB := errors.New("clear suspend on pipe 16")
	ran := 0
	var undo undoStack
	undo.push(func() error { ran++; return errA })
	undo.push(func() error { ran++; return nil })
	undo.push(func() error { ran++; return errB })

	err := undo.rollback(testLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, 3, ran, "every step runs even after a failure")
}

func TestUndoStack_EmptyIsNoop(t *testing.T) {
	var undo undoStack
	assert.NoError(t, undo.rollback(testLogger()))
}
