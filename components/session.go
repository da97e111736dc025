package components

import (
	"github.com/automoto/flipside/core"
	"github.com/automoto/flipside/shared/gamemath"
	"github.com/yohamta/donburi"
)

// SessionData holds the running simulation. Snapshot is refreshed after
// every step and is what renderers read.
type SessionData struct {
	Session  *core.Session
	Snapshot core.Snapshot
	Last     core.FrameResult

	Level   string // name shown in the HUD and stored with the run
	Endless bool
	Seed    uint64

	// Resumable is set for levels loaded from a file, the only kind a
	// saved checkpoint can point back to.
	Resumable bool

	// Bounds limits camera scrolling. The right edge is ignored for
	// endless levels.
	Bounds gamemath.Rect

	FurthestX float64
	Recorded  bool // the run has been written to history
}

var Session = donburi.NewComponentType[SessionData]()
