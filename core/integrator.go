package core

import (
	"github.com/automoto/flipside/config"
	"github.com/automoto/flipside/shared/gamemath"
)

// motion is the displacement the integrator asks the resolver to apply.
type motion struct {
	dx, dy float64
}

// integrator turns input into per-axis displacement and updates the
// player's kinetic state. Constants are fixed at construction.
type integrator struct {
	physics config.PhysicsConfig
	player  config.PlayerConfig

	elevationGravity float64
	elevationImpulse float64
}

func newIntegrator(s config.Settings) integrator {
	g, v := s.Elevation.Arc()
	return integrator{
		physics:          s.Physics,
		player:           s.Player,
		elevationGravity: g,
		elevationImpulse: v,
	}
}

func (in integrator) step(p *Player, fi frameInput) motion {
	dx := fi.axis(ActionLeft, ActionRight) * in.player.MoveSpeed
	if p.Mode == Mode3D {
		return in.stepFreeRoam(p, fi, dx)
	}
	return in.stepPlatform(p, fi, dx)
}

func (in integrator) stepPlatform(p *Player, fi frameInput, dx float64) motion {
	jump := jumpActions(Mode2D)
	ph := in.physics

	switch {
	case p.WallSliding && fi.justReleased(jump):
		// Launch away from the wall. Holding away pushes harder.
		away := -float64(p.WallSide)
		push := ph.WallJumpPushToward
		if fi.axis(ActionLeft, ActionRight) == away {
			push = ph.WallJumpPushAway
		}
		p.PushX = away * push
		p.VY = -ph.JumpStrength
		p.WallSliding = false
		p.WallSide = SideNone
	case fi.justPressed(jump) && (p.Grounded || p.Coyote > 0):
		p.VY = -ph.JumpStrength
		p.Coyote = 0
	}

	p.VY += ph.Gravity
	if p.WallSliding && p.VY > ph.WallSlideSpeed {
		p.VY = ph.WallSlideSpeed
	}
	if p.VY > ph.MaxFallSpeed {
		p.VY = ph.MaxFallSpeed
	}

	dx += p.PushX
	p.PushX = gamemath.ApplyFriction(p.PushX, ph.WallJumpPushFriction)

	return motion{dx: dx, dy: p.VY}
}

func (in integrator) stepFreeRoam(p *Player, fi frameInput, dx float64) motion {
	dy := fi.axis(ActionUp, ActionDown) * in.player.MoveSpeed

	if fi.justPressed(jumpActions(Mode3D)) && p.Z == 0 {
		p.VZ = -in.elevationImpulse
	}
	p.VZ += in.elevationGravity
	p.Z += p.VZ
	if p.Z >= 0 {
		p.Z, p.VZ = 0, 0
	}

	p.Grabbing = fi.held(ActionGrab) && p.Z == 0
	return motion{dx: dx, dy: dy}
}

// settle updates the coyote timer once both axes are resolved.
func (in integrator) settle(p *Player) {
	if p.Mode != Mode2D {
		return
	}
	if p.Grounded {
		p.Coyote = in.physics.CoyoteFrames
	} else {
		p.Coyote--
	}
}
