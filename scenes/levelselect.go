package scenes

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/automoto/flipside/generator"
	"github.com/automoto/flipside/shared/leveldata"
	"github.com/automoto/flipside/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

// LevelSelectScene lists the level files and the generated modes.
type LevelSelectScene struct {
	sceneChanger SceneChanger
	env          Env
	selectUI     *ui.LevelSelectUI
	once         sync.Once
}

func NewLevelSelectScene(sc SceneChanger, env Env) *LevelSelectScene {
	return &LevelSelectScene{sceneChanger: sc, env: env}
}

func (s *LevelSelectScene) Update() {
	s.once.Do(s.configure)
	if s.selectUI != nil {
		s.selectUI.Update()
	}
}

func (s *LevelSelectScene) Draw(screen *ebiten.Image) {
	if s.selectUI == nil {
		return
	}
	s.selectUI.UI.Draw(screen)
}

func (s *LevelSelectScene) configure() {
	fsys := os.DirFS(s.env.LevelsDir)
	names, err := leveldata.ListLevels(fsys, ".")
	if err != nil {
		s.env.Logger.Warn("could not list levels", "dir", s.env.LevelsDir, "err", err)
	}

	var resume *Launch
	continueLabel := ""
	if s.env.Persist != nil && s.env.Persist.Progress != nil {
		if p, err := s.env.Persist.Progress.Load(); err != nil {
			s.env.Logger.Warn("could not read progress", "err", err)
		} else if p != nil {
			if l, err := s.loadFile(fsys, names, p.Level); err == nil {
				cp := p.Checkpoint()
				l.Resume = &cp
				resume = l
				continueLabel = p.Level
			}
		}
	}

	selectUI, err := ui.NewLevelSelectUI(stems(names), continueLabel)
	if err != nil {
		s.env.Logger.Error("could not build level select", "err", err)
		s.sceneChanger.Quit()
		return
	}
	win := s.env.Settings.Window

	selectUI.OnLevel = func(stem string) {
		l, err := s.loadFile(fsys, names, stem)
		if err != nil {
			selectUI.SetStatus(err.Error())
			return
		}
		s.play(*l)
	}
	selectUI.OnContinue = func() {
		if resume != nil {
			s.play(*resume)
		}
	}
	selectUI.OnDefault = func() {
		s.play(Launch{Desc: generator.Default(win.Width, win.Height), Name: "default"})
	}
	selectUI.OnRandom = func() {
		seed := s.seed()
		s.play(Launch{Desc: generator.New(seed).Quick(win.Width, win.Height), Name: fmt.Sprintf("quick-%d", seed), Seed: seed})
	}
	selectUI.OnEndless = func() {
		s.play(Launch{Desc: generator.Default(win.Width, win.Height), Name: "endless", Endless: true, Seed: s.seed()})
	}
	selectUI.OnQuit = s.sceneChanger.Quit

	s.selectUI = selectUI
}

func (s *LevelSelectScene) play(l Launch) {
	s.sceneChanger.ChangeScene(NewPlayScene(s.sceneChanger, s.env, l))
}

func (s *LevelSelectScene) seed() uint64 {
	if seed := s.env.Settings.Stream.Seed; seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}

// loadFile finds the listed file whose stem is stem and parses it.
func (s *LevelSelectScene) loadFile(fsys fs.FS, names []string, stem string) (*Launch, error) {
	for _, name := range names {
		if strings.TrimSuffix(name, path.Ext(name)) != stem {
			continue
		}
		desc, err := leveldata.Load(fsys, name)
		if err != nil {
			return nil, err
		}
		return &Launch{Desc: desc, Name: desc.Name, FromFile: true}, nil
	}
	return nil, fmt.Errorf("level %q not found in %s", stem, s.env.LevelsDir)
}

func stems(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, strings.TrimSuffix(n, path.Ext(n)))
	}
	return out
}
