package systems

import (
	"image/color"

	"github.com/automoto/flipside/components"
	"github.com/automoto/flipside/config"
	"github.com/automoto/flipside/core"
	"github.com/automoto/flipside/shared/gamemath"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var shadowColor = color.RGBA{A: 90}

// DrawPlayer renders the player box. In free-roam mode elevation shows as
// a shadow left on the ground and a box scaled up about its centre.
func DrawPlayer(e *ecs.ECS, screen *ebiten.Image) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)
	sd, ok := CurrentSession(e)
	if !ok {
		return
	}
	p := sd.Snapshot.Player

	clr := config.Red
	if p.Mode == core.Mode3D {
		clr = config.Blue
	}

	if p.Mode == core.Mode3D && p.Z < 0 {
		fillWorldRect(screen, camera, p.Rect, shadowColor)
		scale := 1 - p.Z*config.Elevation.ScalePerPixel
		w, h := p.Rect.W*scale, p.Rect.H*scale
		lifted := gamemath.Rect{X: p.Rect.CenterX() - w/2, Y: p.Rect.CenterY() - h/2 + p.Z, W: w, H: h}
		fillWorldRect(screen, camera, lifted, clr)
		return
	}
	fillWorldRect(screen, camera, p.Rect, clr)
	if p.Grabbing {
		x, y := WorldToScreen(camera, p.Rect.X, p.Rect.Y)
		vector.StrokeRect(screen, float32(x), float32(y), float32(p.Rect.W), float32(p.Rect.H), 2, config.Yellow, false)
	}
}

// DrawEffects renders the tweened effects on top of the scene.
func DrawEffects(e *ecs.ECS, screen *ebiten.Image) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	components.Effect.Each(e.World, func(entry *donburi.Entry) {
		fx := components.Effect.Get(entry)
		a := uint8(255 * min(max(fx.Alpha, 0), 1))
		switch fx.Kind {
		case components.EffectCheckpointFlash:
			grow := float64(1-fx.Alpha) * 24
			r := gamemath.Rect{X: fx.Area.X - grow, Y: fx.Area.Y - grow, W: fx.Area.W + 2*grow, H: fx.Area.H + 2*grow}
			x, y := WorldToScreen(camera, r.X, r.Y)
			vector.StrokeRect(screen, float32(x), float32(y), float32(r.W), float32(r.H), 3, color.NRGBA{R: 255, G: 255, B: 255, A: a}, false)
		case components.EffectToggleFade:
			w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
			vector.FillRect(screen, 0, 0, float32(w), float32(h), color.NRGBA{R: 255, G: 255, B: 255, A: a}, false)
		}
	})
}
