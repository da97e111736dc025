package scenes

import (
	"errors"
	"image"
	"image/color"

	"github.com/automoto/flipside/config"
	"github.com/automoto/flipside/fonts"
	"github.com/automoto/flipside/shared/leveldata"
	"github.com/automoto/flipside/systems"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is one screen of the client.
type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene Scene)
	Quit()
}

// Env is what every scene needs from the process.
type Env struct {
	Settings  config.Settings
	Logger    *log.Logger
	Persist   *systems.Persistence
	LevelsDir string
}

// Launch describes the level a play scene starts with.
type Launch struct {
	Desc    *leveldata.Description
	Name    string
	Endless bool
	Seed    uint64
	Resume  *leveldata.Point

	FromFile bool
}

type Game struct {
	env    Env
	bounds image.Rectangle
	scene  Scene
	quit   bool
}

// NewGame starts on the level select screen, or straight in a level when
// launch is not nil.
func NewGame(env Env, launch *Launch) *Game {
	g := &Game{env: env}
	if launch != nil {
		g.scene = NewPlayScene(g, env, *launch)
	} else {
		g.scene = NewLevelSelectScene(g, env)
	}
	return g
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene Scene) {
	g.scene = scene
}

// Quit ends the game loop after the current tick.
func (g *Game) Quit() { g.quit = true }

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	w, h := g.env.Settings.Window.Width, g.env.Settings.Window.Height
	g.bounds = image.Rect(0, 0, w, h)
	return w, h
}

// Run opens the window and blocks until the player quits.
func Run(env Env, launch *Launch) error {
	config.Apply(env.Settings)
	if err := fonts.LoadDefaults(); err != nil {
		return err
	}

	win := env.Settings.Window
	ebiten.SetWindowSize(win.Width, win.Height)
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetTPS(win.TickRate)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	err := ebiten.RunGame(NewGame(env, launch))
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
