package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/flipside/config"
	"github.com/automoto/flipside/core"
	"github.com/automoto/flipside/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font"
)

const hudMargin = 10

var hudPanel = color.RGBA{R: 20, G: 20, B: 30, A: 160}

// DrawHUD renders the mode label, level name, deaths and elapsed time in
// the top-left corner and the completion banner once the goal is reached.
func DrawHUD(e *ecs.ECS, screen *ebiten.Image) {
	sd, ok := CurrentSession(e)
	if !ok {
		return
	}
	snap := sd.Snapshot
	face := fonts.HUD.Get()
	small := fonts.Small.Get()

	vector.FillRect(screen, hudMargin/2, hudMargin/2, 190, 70, hudPanel, false)
	text.Draw(screen, "Mode: "+snap.Player.ModeLabel(), face, hudMargin, hudMargin+16, config.White)

	name := sd.Level
	if name == "" {
		name = "untitled"
	}
	if sd.Endless {
		name = fmt.Sprintf("endless (seed %d)", sd.Seed)
	}
	text.Draw(screen, name, small, hudMargin, hudMargin+36, config.White)
	text.Draw(screen, fmt.Sprintf("deaths %d   %s", snap.Deaths, clock(snap.Frame)), small, hudMargin, hudMargin+54, config.White)

	if snap.State == core.StateComplete {
		drawBanner(screen, "LEVEL COMPLETE", "R to play again, Esc for menu")
	}
}

func drawBanner(screen *ebiten.Image, title, hint string) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.FillRect(screen, 0, float32(h)/2-60, float32(w), 110, config.BlackOverlay, false)
	drawCentered(screen, title, fonts.Title.Get(), h/2, config.Yellow)
	drawCentered(screen, hint, fonts.Small.Get(), h/2+30, config.White)
}

func drawCentered(screen *ebiten.Image, s string, face font.Face, y int, clr color.Color) {
	x := (screen.Bounds().Dx() - font.MeasureString(face, s).Ceil()) / 2
	text.Draw(screen, s, face, x, y, clr)
}

// clock formats a frame count as m:ss.cc at the configured tick rate.
func clock(frames uint64) string {
	rate := uint64(max(config.C.TickRate, 1))
	cs := frames * 100 / rate
	return fmt.Sprintf("%d:%02d.%02d", cs/6000, cs/100%60, cs%100)
}
