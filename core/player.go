package core

import (
	"github.com/automoto/flipside/config"
	"github.com/automoto/flipside/shared/gamemath"
	"github.com/automoto/flipside/shared/leveldata"
)

// Mode is the active movement model.
type Mode uint8

const (
	Mode2D Mode = iota // side-on platforming
	Mode3D             // top-down free roam
)

func (m Mode) String() string {
	if m == Mode3D {
		return "3D"
	}
	return "2D"
}

// Side is the side of the player a wall is on.
type Side int8

const (
	SideNone  Side = 0
	SideLeft  Side = -1
	SideRight Side = 1
)

// Player is the simulated character. Z is elevation in free-roam mode; it is
// never positive and 0 means standing on the ground.
type Player struct {
	Rect gamemath.Rect
	Mode Mode

	VY     float64
	Z, VZ  float64
	PushX  float64 // wall-jump horizontal push, decays each frame
	Coyote int

	Grounded    bool
	WallSliding bool
	WallSide    Side
	Grabbing    bool

	// Box and mode from before the last toggle. Cleared by any frame, so
	// two toggles with no frame in between restore the box exactly.
	untoggle *toggleRecord
}

type toggleRecord struct {
	rect gamemath.Rect
	mode Mode
}

func newPlayer(at leveldata.Point, pc config.PlayerConfig) *Player {
	return &Player{
		Rect: gamemath.Rect{X: at.X, Y: at.Y, W: pc.TallWidth, H: pc.TallHeight},
		Mode: Mode2D,
	}
}

// Elevated reports whether the player is off the ground in free-roam mode.
func (p *Player) Elevated() bool { return p.Mode == Mode3D && p.Z < 0 }

// mask returns the capability bit for the player's current movement state.
func (p *Player) mask() Capability {
	switch {
	case p.Mode == Mode2D:
		return Collides2D
	case p.Z < 0:
		return Collides3DElevated
	}
	return Collides3DGround
}

// toggle swaps the movement model and everything that belongs to the
// player. Pushable flags are flipped by the level in the same call.
func (p *Player) toggle(pc config.PlayerConfig) {
	prev := toggleRecord{rect: p.Rect, mode: p.Mode}

	next := Mode3D
	w, h := pc.SquareWidth, pc.SquareHeight
	if p.Mode == Mode3D {
		next = Mode2D
		w, h = pc.TallWidth, pc.TallHeight
	}

	if p.untoggle != nil && p.untoggle.mode == next {
		p.Rect = p.untoggle.rect
		p.untoggle = nil
	} else {
		p.Rect = p.Rect.Resized(w, h)
		p.untoggle = &prev
	}
	p.Mode = next

	p.VY = 0
	p.Z, p.VZ = 0, 0
	p.PushX = 0
	p.Coyote = 0 // the jump grace window never survives a mode change
	p.Grounded = false
	p.Grabbing = false
	p.WallSliding = false
	p.WallSide = SideNone
}

// reset puts the player back in platform mode at a respawn anchor.
func (p *Player) reset(at leveldata.Point, pc config.PlayerConfig) {
	*p = *newPlayer(at, pc)
}

// setX and setY are the only writers of the box position during resolution.
func (p *Player) setX(x float64) { p.Rect.X = x }
func (p *Player) setY(y float64) { p.Rect.Y = y }

// ModeLabel is the HUD text for the player's movement state.
func (p Player) ModeLabel() string {
	switch {
	case p.Mode == Mode3D && p.Grabbing:
		return "3D (Grab)"
	case p.Mode == Mode3D:
		return "3D"
	}
	return "2D"
}
