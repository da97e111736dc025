package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want Action
	}{
		{"right", ActionRight},
		{"Right + Jump", ActionRight | ActionJump},
		{"", 0},
		{"none", 0},
		{"left+up+down+grab+toggle", ActionLeft | ActionUp | ActionDown | ActionGrab | ActionToggle},
	}
	for _, tt := range tests {
		got, err := ParseAction(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseAction("right+dash")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "none", Action(0).String())
	assert.Equal(t, "right+jump", (ActionJump | ActionRight).String())

	a, err := ParseAction((ActionGrab | ActionLeft).String())
	require.NoError(t, err)
	assert.Equal(t, ActionGrab|ActionLeft, a)
}

func TestScriptAt(t *testing.T) {
	s, err := ParseScript("right", []string{"jump@10", "toggle@20+3"})
	require.NoError(t, err)

	assert.Equal(t, ActionRight, s.At(0).Held)
	assert.Equal(t, ActionRight|ActionJump, s.At(10).Held)
	assert.Equal(t, ActionRight, s.At(11).Held)
	for f := uint64(20); f < 23; f++ {
		assert.True(t, s.At(f).Has(ActionToggle), "frame %d", f)
	}
	assert.False(t, s.At(23).Has(ActionToggle))
}

func TestParseScriptErrors(t *testing.T) {
	for _, press := range []string{"jump", "jump@x", "jump@5+0", "jump@5+y"} {
		_, err := ParseScript("", []string{press})
		assert.ErrorIs(t, err, ErrBadScript, press)
	}
	_, err := ParseScript("fly", nil)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestScriptedSessionWalksRight(t *testing.T) {
	s := newTestSession(t, "platform,0,580,2000,20\nstart,50,530,40,50\n")
	script, err := ParseScript("right", nil)
	require.NoError(t, err)

	for f := range uint64(60) {
		s.Step(script.At(f))
	}
	assert.Greater(t, s.Player().Rect.X, 50.0)
}
