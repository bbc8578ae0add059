package fsm

import (
	"context"
	"errors"
	"testing"

	"github.com/looplab/fsm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoor(guard func(ctx context.Context, e *fsm.Event) error) *fsm.FSM {
	return fsm.NewFSM("closed",
		fsm.Events{
			{Name: "open", Src: []string{"closed", "open"}, Dst: "open"},
			{Name: "close", Src: []string{"open"}, Dst: "closed"},
		},
		fsm.Callbacks{"before_open": WrapEvent(guard)},
	)
}

func TestWrapEventCancel(t *testing.T) {
	locked := errors.New("locked")
	f := newDoor(func(_ context.Context, e *fsm.Event) error {
		e.Cancel(locked)
		return nil
	})

	err := f.Event(context.Background(), "open")
	require.Error(t, err)
	assert.True(t, IsCanceled(err))
	assert.False(t, IsRealError(err))
	assert.Equal(t, "closed", f.Current())
}

func TestIsRealError(t *testing.T) {
	f := newDoor(func(context.Context, *fsm.Event) error { return nil })
	ctx := context.Background()

	require.NoError(t, f.Event(ctx, "open"))

	err := f.Event(ctx, "open")
	assert.False(t, IsRealError(err), "open while open is a no-op")

	require.NoError(t, f.Event(ctx, "close"))
	err = f.Event(ctx, "close")
	assert.True(t, IsRealError(err), "close while closed is invalid")
	assert.False(t, IsRealError(nil))
}
