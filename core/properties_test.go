package core

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

// Integer coordinates keep the clamp arithmetic exact.
func drawInt(t *rapid.T, lo, hi int, label string) float64 {
	return float64(rapid.IntRange(lo, hi).Draw(t, label))
}

func TestNoTunnelingProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ow := drawInt(t, 20, 200, "ow")
		oh := drawInt(t, 20, 200, "oh")
		ox := drawInt(t, 100, 400, "ox")
		oy := drawInt(t, 100, 400, "oy")
		mode := Mode(rapid.IntRange(0, 1).Draw(t, "mode"))

		kind := "platform"
		if mode == Mode3D && rapid.Bool().Draw(t, "wall") {
			kind = "wall_3d"
		}
		l, err := LoadLevel(parseLevel(t, fmt.Sprintf("start,0,0,40,50\n%s,%g,%g,%g,%g\n", kind, ox, oy, ow, oh)), testSettings())
		if err != nil {
			t.Fatal(err)
		}
		p := newPlayer(l.Start(), testSettings().Player)
		if mode == Mode3D {
			l.ToggleMode(p)
		}
		obstacle := rect(ox, oy, ow, oh)

		placePlayer(p, drawInt(t, 0, 600, "px"), drawInt(t, 0, 600, "py"))
		if p.Rect.Intersects(obstacle) {
			t.Skip("player starts inside the obstacle")
		}

		limit := int(min(ow, oh))
		dx := drawInt(t, -limit, limit, "dx")
		dy := drawInt(t, -limit, limit, "dy")

		l.resolve(p, AxisX, dx)
		l.resolve(p, AxisY, dy)

		if p.Rect.Intersects(obstacle) {
			t.Fatalf("player %+v ended inside obstacle %+v", p.Rect, obstacle)
		}
	})
}

func TestGroundedInvariantProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := newTestLevel(t, "start,0,0,40,50\nplatform,0,580,400,20\n")
		p := newPlayer(l.Start(), testSettings().Player)

		d := drawInt(t, 1, 15, "d")
		gap := drawInt(t, 0, 14, "gap")
		placePlayer(p, drawInt(t, 0, 360, "x"), 580-p.Rect.H-gap)
		p.VY = d

		l.resolve(p, AxisY, d)

		overlapped := gap < d
		if overlapped && (!p.Grounded || p.VY != 0 || p.Rect.Bottom() != 580) {
			t.Fatalf("landing left grounded=%v vy=%v bottom=%v", p.Grounded, p.VY, p.Rect.Bottom())
		}
		if !overlapped && p.Grounded {
			t.Fatalf("grounded without contact (gap %v, d %v)", gap, d)
		}
	})
}

func TestToggleTwiceRestoresGeometryProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := newTestLevel(t, "start,0,0,40,50\npushable,200,400,40,40\n")
		p := newPlayer(l.Start(), testSettings().Player)
		p.Rect.X = rapid.Float64Range(-1e4, 1e4).Draw(t, "x")
		p.Rect.Y = rapid.Float64Range(-1e4, 1e4).Draw(t, "y")
		if rapid.Bool().Draw(t, "start3d") {
			l.ToggleMode(p)
			p.untoggle = nil
		}
		before, mode := p.Rect, p.Mode

		l.ToggleMode(p)
		l.ToggleMode(p)

		if p.Rect != before || p.Mode != mode {
			t.Fatalf("toggle twice: %+v/%v -> %+v/%v", before, mode, p.Rect, p.Mode)
		}
		for b := range l.Pushables() {
			if b.Static != (mode == Mode2D) {
				t.Fatalf("pushable static=%v in mode %v", b.Static, mode)
			}
		}
	})
}

func TestPushableNeverEntersStaticGeometryProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		wx := drawInt(t, 240, 320, "wx")
		s := newTestSession(t, fmt.Sprintf("start,0,0,40,50\npushable,200,400,40,40\nwall_3d,%g,380,20,80\n", wx))
		s.Toggle()
		placePlayer(s.player, 165, 400)

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for range steps {
			s.Step(NewInput(ActionRight, ActionGrab))
		}

		wall := rect(wx, 380, 20, 80)
		for b := range s.Level().Pushables() {
			if b.Rect.Intersects(wall) {
				t.Fatalf("pushable %+v inside wall %+v", b.Rect, wall)
			}
		}
	})
}
