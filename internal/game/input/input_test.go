package input_test

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/quackbattle/internal/game/input"
)

func TestSwitch_ZeroValueEnabled(t *testing.T) {
	var s input.Switch
	assert.True(t, s.Enabled())
	s.Disable()
	assert.False(t, s.Enabled())
	s.Enable()
	assert.True(t, s.Enabled())
}

func TestQueue_FIFO(t *testing.T) {
	q := input.NewQueue(input.Up, input.Act)
	q.Push(input.Esc)

	var got []input.Event
	for {
		e, ok := q.Poll()
		if !ok {
			break
		}
		got = append(got, e)
	}
	assert.Equal(t, []input.Event{input.Up, input.Act, input.Esc}, got)
	assert.Zero(t, q.Len())
}

func TestKeyToEvent(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want input.Event
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), input.Up},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), input.Down},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), input.Left},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), input.Right},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), input.Act},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), input.Esc},
		{tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), input.Up},
		{tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), input.Act},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), input.None},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, input.KeyToEvent(tc.ev), "key %v", tc.ev.Name())
	}
}

func TestTcellSource_DeliversKeys(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Skipf("simulation screen unavailable: %v", err)
	}
	defer screen.Fini()
	src := input.NewTcellSource(screen)

	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	var got input.Event
	require.Eventually(t, func() bool {
		e, ok := src.Poll()
		got = e
		return ok
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, input.Act, got)
}

func TestTcellSource_QuitKeyClosesDone(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Skipf("simulation screen unavailable: %v", err)
	}
	defer screen.Fini()
	src := input.NewTcellSource(screen)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-src.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Done not closed after quit key")
	}
	_, ok := src.Poll()
	assert.False(t, ok)
}

func TestIsQuitKey(t *testing.T) {
	assert.True(t, input.IsQuitKey(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.True(t, input.IsQuitKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, input.IsQuitKey(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)))
	assert.False(t, input.IsQuitKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "act", input.Act.String())
	assert.Equal(t, "none", input.Event(99).String())
}
