package systems

import (
	"image/color"

	"github.com/automoto/flipside/archetypes"
	"github.com/automoto/flipside/components"
	"github.com/automoto/flipside/config"
	"github.com/automoto/flipside/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const (
	pauseItemHeight = 32
	pauseItemGap    = 12
)

var pauseMenuLabels = [components.PauseMenuOptions]string{
	components.MenuResume:      "Resume",
	components.MenuRestart:     "Restart",
	components.MenuLevelSelect: "Level Select",
}

// UpdatePause handles pause toggle and menu navigation.
// This system should run AFTER UpdateInput but BEFORE other game systems.
func UpdatePause(e *ecs.ECS) {
	pause := GetOrCreatePause(e)
	input := getOrCreateInput(e)
	pause.Chosen = nil

	if input.JustPressed(components.KeyPause) {
		pause.IsPaused = !pause.IsPaused
		pause.SelectedOption = components.MenuResume
		return
	}

	// Only process menu input while paused
	if !pause.IsPaused {
		return
	}
	if input.JustPressed(components.KeyMenuBack) {
		pause.IsPaused = false
		return
	}

	// Navigate menu with wrap-around
	n := components.PauseMenuOptions
	if input.JustPressed(components.KeyMenuUp) {
		pause.SelectedOption = components.PauseMenuOption((int(pause.SelectedOption) - 1 + n) % n)
	}
	if input.JustPressed(components.KeyMenuDown) {
		pause.SelectedOption = components.PauseMenuOption((int(pause.SelectedOption) + 1) % n)
	}

	if input.JustPressed(components.KeyMenuSelect) {
		pause.IsPaused = false
		if pause.SelectedOption != components.MenuResume {
			chosen := pause.SelectedOption
			pause.Chosen = &chosen
		}
	}
}

// DrawPause renders the pause overlay and menu.
func DrawPause(e *ecs.ECS, screen *ebiten.Image) {
	pause := GetOrCreatePause(e)
	if !pause.IsPaused {
		return
	}

	width := screen.Bounds().Dx()
	height := screen.Bounds().Dy()
	vector.FillRect(screen, 0, 0, float32(width), float32(height), config.BlackOverlay, false)

	face := fonts.HUD.Get()
	total := len(pauseMenuLabels) * (pauseItemHeight + pauseItemGap)
	startY := (height - total) / 2
	for i, label := range pauseMenuLabels {
		var clr color.Color = config.White
		if components.PauseMenuOption(i) == pause.SelectedOption {
			clr = config.Yellow
		}
		drawCentered(screen, label, face, startY+i*(pauseItemHeight+pauseItemGap)+pauseItemHeight, clr)
	}

	input := getOrCreateInput(e)
	drawCentered(screen, pauseHint(input.LastInputMethod), fonts.Small.Get(), height-12, config.White)
}

func pauseHint(method components.InputMethod) string {
	if method == components.InputGamepad {
		return "D-Pad: Navigate   A: Select   Start: Resume"
	}
	return "Arrows: Navigate   Enter: Select   Esc: Resume"
}

// WithPauseCheck wraps a system to skip execution when paused.
func WithPauseCheck(system ecs.System) ecs.System {
	return func(e *ecs.ECS) {
		if pause := GetOrCreatePause(e); pause.IsPaused {
			return
		}
		system(e)
	}
}

// GetOrCreatePause returns the singleton Pause component, creating if needed.
func GetOrCreatePause(e *ecs.ECS) *components.PauseData {
	if entry, ok := components.Pause.First(e.World); ok {
		return components.Pause.Get(entry)
	}
	entry := archetypes.Pause.Spawn(e)
	return components.Pause.Get(entry)
}

// PauseChoice returns the menu entry picked this tick, if any.
func PauseChoice(e *ecs.ECS) (components.PauseMenuOption, bool) {
	pause := GetOrCreatePause(e)
	if pause.Chosen == nil {
		return 0, false
	}
	return *pause.Chosen, true
}
