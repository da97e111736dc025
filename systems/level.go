package systems

import (
	"image/color"

	"github.com/automoto/flipside/components"
	"github.com/automoto/flipside/config"
	"github.com/automoto/flipside/core"
	"github.com/automoto/flipside/shared/gamemath"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// cullPadding keeps shapes from popping in at the screen edges.
const cullPadding = 64.0

var kindColors = map[core.Kind]color.RGBA{
	core.KindPlatform:   config.Grey,
	core.KindWall3D:     config.Blue,
	core.KindVWall:      config.DarkGrey,
	core.KindSlope:      config.Brown,
	core.KindTrampoline: config.Orange,
	core.KindSpike:      config.Red,
	core.KindCheckpoint: config.Yellow,
	core.KindGoal:       config.Green,
}

// DrawLevel renders every obstacle and pushable inside the viewport.
// Geometry that cannot collide in the current mode is drawn faded.
func DrawLevel(e *ecs.ECS, screen *ebiten.Image) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return // No camera yet
	}
	camera := components.Camera.Get(cameraEntry)
	sd, ok := CurrentSession(e)
	if !ok {
		return
	}
	snap := sd.Snapshot
	screen.Fill(config.Sky)

	view := viewport(camera, screen)
	mask := modeMask(snap.Player)

	for _, o := range snap.Obstacles {
		if !overlapsView(o.Rect, view) {
			continue
		}
		clr := kindColors[o.Kind]
		if !o.Kind.Caps().Has(mask) {
			clr = faded(clr)
		}
		if o.Kind == core.KindCheckpoint && o.Active {
			clr = config.LightBlue
		}
		if o.Kind == core.KindSlope {
			drawSlope(screen, camera, o.Slope, clr)
			continue
		}
		fillWorldRect(screen, camera, o.Rect, clr)
	}

	for _, b := range snap.Pushables {
		if !overlapsView(b.Rect, view) {
			continue
		}
		clr := config.Purple
		if b.Static {
			clr = config.DarkBlue
		}
		fillWorldRect(screen, camera, b.Rect, clr)
	}
}

// modeMask is the capability an obstacle needs to affect the player, used
// only to decide what to fade.
func modeMask(p core.Player) core.Capability {
	switch {
	case p.Mode == core.Mode2D:
		return core.Collides2D
	case p.Elevated():
		return core.Collides3DElevated
	}
	return core.Collides3DGround
}

func viewport(camera *components.CameraData, screen *ebiten.Image) gamemath.Rect {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	return gamemath.Rect{
		X: camera.Position.X - w/2 - cullPadding,
		Y: camera.Position.Y - h/2 - cullPadding,
		W: w + 2*cullPadding,
		H: h + 2*cullPadding,
	}
}

func overlapsView(r, view gamemath.Rect) bool {
	return r.Right() >= view.Left() && r.Left() <= view.Right() &&
		r.Bottom() >= view.Top() && r.Top() <= view.Bottom()
}

func faded(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 3, G: c.G / 3, B: c.B / 3, A: c.A / 3}
}

func fillWorldRect(screen *ebiten.Image, camera *components.CameraData, r gamemath.Rect, clr color.Color) {
	x, y := WorldToScreen(camera, r.X, r.Y)
	vector.FillRect(screen, float32(x), float32(y), float32(r.W), float32(r.H), clr, false)
}

// drawSlope fills the area under the walking surface with thin columns and
// outlines the surface itself.
func drawSlope(screen *ebiten.Image, camera *components.CameraData, s gamemath.Slope, clr color.Color) {
	const step = 2.0
	for x := s.Left(); x < s.Right(); x += step {
		top := s.HeightAt(x + step/2)
		sx, sy := WorldToScreen(camera, x, top)
		vector.FillRect(screen, float32(sx), float32(sy), step, float32(s.Bottom()-top), clr, false)
	}
	x0, y0 := WorldToScreen(camera, s.Left(), s.HeightAt(s.Left()))
	x1, y1 := WorldToScreen(camera, s.Right(), s.HeightAt(s.Right()))
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 2, config.Black, true)
}
