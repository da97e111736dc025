package core

import (
	"github.com/automoto/flipside/config"
	"github.com/automoto/flipside/shared/gamemath"
	"github.com/automoto/flipside/shared/leveldata"
	"github.com/stretchr/testify/require"
)

// tb is satisfied by both *testing.T and *rapid.T.
type tb interface {
	require.TestingT
	Helper()
}

func testSettings() config.Settings {
	return config.Defaults()
}

func parseLevel(t tb, text string) *leveldata.Description {
	t.Helper()
	desc, err := leveldata.ParseString(text)
	require.NoError(t, err)
	return desc
}

func newTestSession(t tb, text string, opts ...Option) *Session {
	t.Helper()
	s, err := NewSession(parseLevel(t, text), testSettings(), opts...)
	require.NoError(t, err)
	return s
}

func newTestLevel(t tb, text string) *Level {
	t.Helper()
	l, err := LoadLevel(parseLevel(t, text), testSettings())
	require.NoError(t, err)
	return l
}

func stepN(s *Session, n int, in InputSnapshot) FrameResult {
	var res FrameResult
	for range n {
		res = s.Step(in)
	}
	return res
}

func placePlayer(p *Player, x, y float64) {
	p.Rect.X, p.Rect.Y = x, y
}

func rect(x, y, w, h float64) gamemath.Rect {
	return gamemath.Rect{X: x, Y: y, W: w, H: h}
}
