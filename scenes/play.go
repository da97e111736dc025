package scenes

import (
	"sync"

	"github.com/automoto/flipside/archetypes"
	"github.com/automoto/flipside/components"
	"github.com/automoto/flipside/core"
	"github.com/automoto/flipside/generator"
	"github.com/automoto/flipside/storage"
	"github.com/automoto/flipside/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// PlayScene runs one level. Esc pauses, R restarts.
type PlayScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	env          Env
	launch       Launch
	once         sync.Once
	failed       bool
}

func NewPlayScene(sc SceneChanger, env Env, launch Launch) *PlayScene {
	return &PlayScene{sceneChanger: sc, env: env, launch: launch}
}

func (ps *PlayScene) Update() {
	ps.once.Do(ps.configure)
	if ps.failed {
		ps.sceneChanger.ChangeScene(NewLevelSelectScene(ps.sceneChanger, ps.env))
		return
	}
	ps.ecs.Update()

	if choice, ok := systems.PauseChoice(ps.ecs); ok {
		switch choice {
		case components.MenuRestart:
			systems.RestartSession(ps.ecs, ps.env.Persist)
		case components.MenuLevelSelect:
			ps.leave()
		}
		return
	}

	input := systems.CurrentInput(ps.ecs)
	if input == nil || systems.GetOrCreatePause(ps.ecs).IsPaused {
		return
	}
	if input.JustPressed(components.KeyRestart) {
		systems.RestartSession(ps.ecs, ps.env.Persist)
	}
}

// leave records an unfinished run and returns to level select.
func (ps *PlayScene) leave() {
	if sd, ok := systems.CurrentSession(ps.ecs); ok && sd.Session.State() != core.StateComplete {
		ps.env.Persist.RecordRun(sd, storage.OutcomeQuit)
	}
	ps.sceneChanger.ChangeScene(NewLevelSelectScene(ps.sceneChanger, ps.env))
}

func (ps *PlayScene) Draw(screen *ebiten.Image) {
	if ps.ecs == nil {
		return
	}
	ps.ecs.Draw(screen)
}

func (ps *PlayScene) configure() {
	opts := []core.Option{core.WithLogger(ps.env.Logger)}
	if ps.launch.Endless {
		opts = append(opts, core.WithChunkSource(generator.New(ps.launch.Seed)))
	}
	if ps.launch.Resume != nil {
		opts = append(opts, core.WithResume(*ps.launch.Resume))
	}
	session, err := core.NewSession(ps.launch.Desc, ps.env.Settings, opts...)
	if err != nil {
		ps.env.Logger.Error("could not start level", "level", ps.launch.Name, "err", err)
		ps.failed = true
		return
	}

	e := ecs.NewECS(donburi.NewWorld())

	e.AddSystem(systems.UpdateInput)
	e.AddSystem(systems.UpdatePause)
	e.AddSystem(systems.WithPauseCheck(systems.NewUpdateSession(ps.env.Persist)))
	e.AddSystem(systems.WithPauseCheck(systems.UpdateEffects))
	e.AddSystem(systems.WithPauseCheck(systems.UpdateCamera))

	e.AddRenderer(archetypes.Default, systems.DrawLevel)
	e.AddRenderer(archetypes.Default, systems.DrawPlayer)
	e.AddRenderer(archetypes.Default, systems.DrawEffects)
	e.AddRenderer(archetypes.Default, systems.DrawHUD)
	e.AddRenderer(archetypes.Default, systems.DrawPause)

	entry := archetypes.Session.Spawn(e)
	components.Session.SetValue(entry, components.SessionData{
		Session:   session,
		Snapshot:  session.Snapshot(),
		Level:     ps.launch.Name,
		Endless:   ps.launch.Endless,
		Seed:      ps.launch.Seed,
		Resumable: ps.launch.FromFile,
		Bounds:    ps.launch.Desc.Bounds(),
	})
	archetypes.Camera.Spawn(e)

	ps.ecs = e
	ps.env.Logger.Info("playing", "level", ps.launch.Name, "endless", ps.launch.Endless)
}
