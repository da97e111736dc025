package core

import (
	"math"

	"github.com/automoto/flipside/shared/gamemath"
)

// Axis selects the resolver pass.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// Event is the trigger raised by a resolver pass.
type Event uint8

const (
	EventNone Event = iota
	EventHazard
	EventCheckpoint
)

// resolve moves the player along one axis by d and corrects the result
// against the obstacle set for its movement state. The horizontal pass must
// run before the vertical pass. A hazard aborts the pass.
func (l *Level) resolve(p *Player, axis Axis, d float64) Event {
	wasGrounded := p.Grounded
	if axis == AxisX {
		p.setX(p.Rect.X + d)
		p.WallSliding, p.WallSide = false, SideNone
	} else {
		p.setY(p.Rect.Y + d)
		p.Grounded = false
	}

	if axis == AxisY && p.Mode == Mode2D {
		l.slopePass(p, d, wasGrounded)
	}

	if l.overlapsRole(p, RoleHazard) {
		return EventHazard
	}

	ev := EventNone
	if l.checkpointPass(p) {
		ev = EventCheckpoint
	}

	blocker := l.staticPass(p, axis, d)

	if axis == AxisX && p.Mode == Mode2D && blocker == KindVWall && !p.Grounded {
		p.WallSliding = true
		p.WallSide = Side(math.Copysign(1, d))
	}

	if axis == AxisY && p.Mode == Mode2D && d > 0 {
		l.trampolinePass(p)
	}

	if p.Mode == Mode3D && !p.Elevated() {
		l.pushablePass(p, axis, d)
	}
	return ev
}

// slopePass snaps a falling or resting player onto any ramp under its
// center. A player that stood on the ground last frame stays glued to a ramp
// that drops away by up to one move step.
func (l *Level) slopePass(p *Player, d float64, wasGrounded bool) {
	if d < 0 {
		return
	}
	cx := p.Rect.CenterX()
	column := gamemath.Rect{X: cx - 0.5, Y: p.Rect.Y, W: 1, H: p.Rect.H + l.cfg.Player.MoveSpeed + 1}

	stick := 0.0
	if wasGrounded {
		stick = l.cfg.Player.MoveSpeed
	}

	for _, o := range l.bp.obstaclesIn(column, collidesAll, isSlope) {
		if !o.Rect.SpanContainsX(cx) {
			continue
		}
		h := o.Slope.HeightAt(cx)
		bottom := p.Rect.Bottom()
		// The bottom must have started inside the ramp's box, which lets a
		// player on the ground at the low end step onto it.
		if bottom-d > o.Rect.Bottom() || bottom < h-stick {
			continue
		}
		p.setY(gamemath.SnapToSurfaceY(p.Rect.H, h))
		p.Grounded = true
		p.VY = 0
		return
	}
}

func isSlope(o *Obstacle) bool { return o.Kind == KindSlope }

func (l *Level) overlapsRole(p *Player, role Role) bool {
	hits := l.bp.obstaclesIn(p.Rect, p.mask(), func(o *Obstacle) bool { return o.Kind.Role() == role })
	return len(hits) > 0
}

// checkpointPass moves the respawn anchor to a touched checkpoint. Standing
// in the current anchor's checkpoint never switches away from it.
func (l *Level) checkpointPass(p *Player) bool {
	hits := l.bp.obstaclesIn(p.Rect, p.mask(), func(o *Obstacle) bool { return o.Kind == KindCheckpoint })
	for _, o := range hits {
		if o.Anchor() == l.lastCheckpoint {
			return false
		}
	}
	if len(hits) == 0 {
		return false
	}
	l.activateCheckpoint(hits[0])
	return true
}

// staticPass clamps the player's moving edge against every overlapping
// collider at once. Using the nearest edge over the whole set makes the
// result independent of iteration order. It returns the kind that set the
// edge, or kindCount when nothing blocked.
func (l *Level) staticPass(p *Player, axis Axis, d float64) Kind {
	if d == 0 {
		return kindCount
	}
	mask := p.mask()
	solid := func(o *Obstacle) bool {
		r := o.Kind.Role()
		return r == RoleSolid || (r == RoleSurface && mask == Collides3DGround)
	}

	edge := math.Inf(1)
	if d < 0 {
		edge = math.Inf(-1)
	}
	blocker := kindCount
	consider := func(r gamemath.Rect, k Kind) {
		var e float64
		switch {
		case axis == AxisX && d > 0:
			e = r.Left()
		case axis == AxisX:
			e = r.Right()
		case d > 0:
			e = r.Top()
		default:
			e = r.Bottom()
		}
		if (d > 0 && e < edge) || (d < 0 && e > edge) {
			edge, blocker = e, k
		}
	}

	for _, o := range l.bp.obstaclesIn(p.Rect, mask, solid) {
		consider(o.Rect, o.Kind)
	}
	if p.Mode == Mode2D {
		for _, b := range l.bp.pushablesIn(p.Rect, isStatic) {
			consider(b.Rect, KindPlatform)
		}
	}
	if blocker == kindCount {
		return blocker
	}

	l.clampTo(p, axis, d, edge)
	return blocker
}

func isStatic(b *Pushable) bool { return b.Static }

// clampTo sets the player's moving edge flush with edge. Landing in platform
// mode grounds the player unless the slope pass already did.
func (l *Level) clampTo(p *Player, axis Axis, d, edge float64) {
	switch {
	case axis == AxisX && d > 0:
		p.setX(edge - p.Rect.W)
	case axis == AxisX:
		p.setX(edge)
	case d > 0:
		p.setY(edge - p.Rect.H)
		if p.Mode == Mode2D && !p.Grounded {
			p.Grounded = true
			p.VY = 0
		}
	default:
		p.setY(edge)
		if p.Mode == Mode2D {
			p.VY = 0
		}
	}
}

func (l *Level) trampolinePass(p *Player) {
	hits := l.bp.obstaclesIn(p.Rect, Collides2D, func(o *Obstacle) bool { return o.Kind.Role() == RoleBounce })
	if len(hits) == 0 {
		return
	}
	p.setY(hits[0].Rect.Top() - p.Rect.H)
	p.VY = -l.cfg.Physics.TrampolineBounce
	p.Grounded = false
}

// pushablePass handles free-roam contact with pushables. A grabbing player
// carries every touched object by a damped share of its own displacement,
// unless the object would end up inside static geometry. Otherwise
// pushables block like walls.
func (l *Level) pushablePass(p *Player, axis Axis, d float64) {
	for _, b := range l.bp.pushablesIn(p.Rect, nil) {
		if !p.Rect.Intersects(b.Rect) {
			// An earlier clamp in this loop moved the player clear.
			continue
		}
		if p.Grabbing {
			l.carry(b, axis, d*l.cfg.Player.GrabDamping)
			continue
		}
		if d == 0 {
			continue
		}
		var e float64
		switch {
		case axis == AxisX && d > 0:
			e = b.Rect.Left()
		case axis == AxisX:
			e = b.Rect.Right()
		case d > 0:
			e = b.Rect.Top()
		default:
			e = b.Rect.Bottom()
		}
		l.clampTo(p, axis, d, e)
	}
}

func (l *Level) carry(b *Pushable, axis Axis, d float64) bool {
	if d == 0 {
		return false
	}
	dest := b.Rect
	if axis == AxisX {
		dest = dest.Translate(d, 0)
	} else {
		dest = dest.Translate(0, d)
	}
	blocked := l.bp.obstaclesIn(dest, collidesAll, func(o *Obstacle) bool { return o.Kind.blocksGrab() })
	if len(blocked) > 0 {
		return false
	}
	l.bp.movePushable(b, dest)
	return true
}
