package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLandsOnPlatform(t *testing.T) {
	s := newTestSession(t, "platform,0,580,400,20\nstart,50,500,40,50\n")

	stepN(s, 60, InputSnapshot{})

	p := s.Player()
	assert.Equal(t, 580.0, p.Rect.Bottom())
	assert.True(t, p.Grounded)
	assert.Zero(t, p.VY)
	assert.Equal(t, testSettings().Physics.CoyoteFrames, p.Coyote)
}

func TestLandsOnSlope(t *testing.T) {
	s := newTestSession(t, "platform,0,580,400,20\nslope,100,480,100,100,100,0\nstart,110,300,40,50\n")

	stepN(s, 60, InputSnapshot{})

	p := s.Player()
	// Center x is 130, where the ramp sits at 580 - 30.
	assert.InDelta(t, 550.0, p.Rect.Bottom(), 1e-9)
	assert.True(t, p.Grounded)
	assert.Zero(t, p.VY)
}

func TestWalksUpSlope(t *testing.T) {
	s := newTestSession(t, "platform,0,580,400,20\nslope,100,480,100,100,100,0\nstart,40,530,40,50\n")

	for range 40 {
		s.Step(NewInput(ActionRight))
		if s.Player().Rect.CenterX() >= 190 {
			break
		}
	}
	p := s.Player()
	require.True(t, p.Grounded)
	assert.InDelta(t, 480+100-100*(p.Rect.CenterX()-100)/100, p.Rect.Bottom(), 1e-9)
}

func TestCapabilityGating(t *testing.T) {
	tests := []struct {
		kind    string
		mode    Mode
		z       float64
		blocked bool
	}{
		{"platform", Mode2D, 0, true},
		{"platform", Mode3D, 0, true},
		{"platform", Mode3D, -10, true},
		{"v_wall", Mode2D, 0, true},
		{"v_wall", Mode3D, 0, true},
		{"v_wall", Mode3D, -10, false},
		{"wall_3d", Mode2D, 0, false},
		{"wall_3d", Mode3D, 0, true},
		{"wall_3d", Mode3D, -10, false},
		{"slope", Mode3D, 0, true},
		{"slope", Mode3D, -10, false},
		{"trampoline", Mode3D, 0, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s_z%g", tt.kind, tt.mode, tt.z), func(t *testing.T) {
			extra := ""
			if tt.kind == "slope" {
				extra = ",0,0"
			}
			l := newTestLevel(t, fmt.Sprintf("start,0,0,40,50\n%s,100,0,20,200%s\n", tt.kind, extra))
			p := newPlayer(l.Start(), testSettings().Player)
			p.Mode = tt.mode
			p.Z = tt.z
			placePlayer(p, 58, 50)

			l.resolve(p, AxisX, 5)

			if tt.blocked {
				assert.Equal(t, 60.0, p.Rect.X)
			} else {
				assert.Equal(t, 63.0, p.Rect.X)
			}
		})
	}
}

func TestStaticPassIsOrderIndependent(t *testing.T) {
	a := "platform,0,580,100,20\n"
	b := "platform,60,575,100,20\n"
	final := func(text string) Player {
		s := newTestSession(t, "start,40,400,40,50\n"+text)
		stepN(s, 80, InputSnapshot{})
		return s.Player()
	}

	ab, ba := final(a+b), final(b+a)
	assert.Equal(t, ab.Rect, ba.Rect)
	assert.Equal(t, 575.0, ab.Rect.Bottom(), "nearest top wins")
	assert.True(t, ab.Grounded)
}

func TestCeilingZeroesVelocity(t *testing.T) {
	l := newTestLevel(t, "start,0,0,40,50\nplatform,0,100,400,20\n")
	p := newPlayer(l.Start(), testSettings().Player)
	placePlayer(p, 50, 125)
	p.VY = -10

	l.resolve(p, AxisY, -10)

	assert.Equal(t, 120.0, p.Rect.Top())
	assert.Zero(t, p.VY)
	assert.False(t, p.Grounded)
}

func TestTrampolineBounce(t *testing.T) {
	s := newTestSession(t, "start,50,520,40,50\ntrampoline,0,580,200,20\n")

	var p Player
	for range 20 {
		s.Step(InputSnapshot{})
		p = s.Player()
		if p.VY < 0 {
			break
		}
	}
	assert.Equal(t, -testSettings().Physics.TrampolineBounce, p.VY)
	assert.Equal(t, 580.0, p.Rect.Bottom())
	assert.False(t, p.Grounded)
}

func TestWallSlideAndWallJump(t *testing.T) {
	s := newTestSession(t, "start,258,100,40,50\nv_wall,300,0,20,600\n")
	cfg := testSettings().Physics

	s.Step(NewInput(ActionRight, ActionJump))
	p := s.Player()
	require.True(t, p.WallSliding)
	assert.Equal(t, SideRight, p.WallSide)
	assert.Equal(t, 260.0, p.Rect.X)

	for range 10 {
		s.Step(NewInput(ActionRight, ActionJump))
	}
	p = s.Player()
	require.True(t, p.WallSliding)
	assert.LessOrEqual(t, p.VY, cfg.WallSlideSpeed)

	// Release jump while holding away from the wall.
	s.Step(NewInput(ActionLeft))
	p = s.Player()
	assert.Equal(t, -cfg.JumpStrength+cfg.Gravity, p.VY)
	assert.Equal(t, 260.0-5-cfg.WallJumpPushAway, p.Rect.X)
	assert.Equal(t, -cfg.WallJumpPushAway+cfg.WallJumpPushFriction, p.PushX)
	assert.False(t, p.WallSliding)
}

func TestWallJumpTowardWallPushesLess(t *testing.T) {
	s := newTestSession(t, "start,258,100,40,50\nv_wall,300,0,20,600\n")
	cfg := testSettings().Physics

	stepN(s, 3, NewInput(ActionRight, ActionJump))
	s.Step(NewInput(ActionRight))

	p := s.Player()
	assert.Equal(t, -cfg.JumpStrength+cfg.Gravity, p.VY)
	assert.Equal(t, -cfg.WallJumpPushToward+cfg.WallJumpPushFriction, p.PushX)
	// Net motion is still into the wall, so the player is clamped again.
	assert.Equal(t, 260.0, p.Rect.X)
	assert.True(t, p.WallSliding)
}

func TestNoWallSlideAgainstPlatformSide(t *testing.T) {
	s := newTestSession(t, "start,258,100,40,50\nplatform,300,0,20,600\n")
	s.Step(NewInput(ActionRight))
	p := s.Player()
	assert.Equal(t, 260.0, p.Rect.X)
	assert.False(t, p.WallSliding)
}

func TestStaticPushableIsSolidIn2D(t *testing.T) {
	s := newTestSession(t, "start,210,300,40,50\npushable,200,400,40,40\n")
	stepN(s, 60, InputSnapshot{})
	p := s.Player()
	assert.Equal(t, 400.0, p.Rect.Bottom())
	assert.True(t, p.Grounded)
}

func TestGrabAndPush(t *testing.T) {
	tests := []struct {
		name  string
		extra string
		wantX float64
	}{
		{"free", "", 204.5},
		{"blocked by wall", "wall_3d,240,400,20,40\n", 200},
		{"blocked by platform", "platform,244,380,20,80\n", 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, "start,0,0,40,50\npushable,200,400,40,40\n"+tt.extra)
			s.Toggle()
			placePlayer(s.player, 170, 400)

			s.Step(NewInput(ActionRight, ActionGrab))

			var got []Pushable
			for b := range s.Level().Pushables() {
				got = append(got, b)
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantX, got[0].Rect.X)
			assert.Equal(t, 400.0, got[0].Rect.Y)
			assert.True(t, s.Player().Grabbing)
			assert.Equal(t, "3D (Grab)", s.Player().ModeLabel())
		})
	}
}

func TestPushableBlocksWhenNotGrabbing(t *testing.T) {
	s := newTestSession(t, "start,0,0,40,50\npushable,200,400,40,40\n")
	s.Toggle()
	placePlayer(s.player, 158, 400)

	s.Step(NewInput(ActionRight))

	assert.Equal(t, 160.0, s.Player().Rect.X)
	for b := range s.Level().Pushables() {
		assert.Equal(t, 200.0, b.Rect.X)
	}
}

func TestElevatedPlayerIgnoresPushables(t *testing.T) {
	s := newTestSession(t, "start,0,0,40,50\npushable,200,400,40,40\n")
	s.Toggle()
	placePlayer(s.player, 158, 400)
	s.player.Z, s.player.VZ = -30, -1

	s.Step(NewInput(ActionRight, ActionGrab))

	p := s.Player()
	assert.Equal(t, 163.0, p.Rect.X)
	assert.False(t, p.Grabbing)
	for b := range s.Level().Pushables() {
		assert.Equal(t, 200.0, b.Rect.X)
	}
}

func TestZeroDisplacementDoesNotCorrect(t *testing.T) {
	l := newTestLevel(t, "start,0,0,40,40\nwall_3d,100,0,20,200\n")
	p := newPlayer(l.Start(), testSettings().Player)
	l.ToggleMode(p)
	placePlayer(p, 60, 50)

	l.resolve(p, AxisX, 5)
	require.Equal(t, 60.0, p.Rect.X)
	before := p.Rect

	// A second pass with nothing to apply must not move the player again.
	l.resolve(p, AxisX, 0)
	l.resolve(p, AxisY, 0)
	assert.Equal(t, before, p.Rect)
}
