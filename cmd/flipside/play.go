package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/automoto/flipside/config"
	"github.com/automoto/flipside/generator"
	"github.com/automoto/flipside/scenes"
	"github.com/automoto/flipside/shared/leveldata"
	"github.com/automoto/flipside/storage"
	"github.com/automoto/flipside/systems"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagEndless bool
	flagSeed    uint64
	flagResume  bool
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start a level directly, skipping the level select screen.

Controls:
  Arrows/WASD  - Move
  X/C          - Jump
  Z/Shift      - Grab (free roam)
  Space/Tab    - Flip view
  R            - Restart
  Esc          - Pause menu

Examples:
  flipside play levels/level1.txt
  flipside play --resume
  flipside play --endless --seed 7`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Play an endless generated run")
	playCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "Generator seed (0 = from settings or time)")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue from the saved checkpoint")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	logger := newLogger()

	persist, closeStores := openStores(cfg, logger)
	defer closeStores()

	env := scenes.Env{
		Settings:  cfg,
		Logger:    logger,
		Persist:   persist,
		LevelsDir: cfg.Storage.LevelsDir,
	}

	launch, err := launchFor(cfg, persist, args)
	if err != nil {
		return err
	}
	return scenes.Run(env, launch)
}

// launchFor picks the level the client opens with. nil means the level
// select screen.
func launchFor(cfg config.Settings, persist *systems.Persistence, args []string) (*scenes.Launch, error) {
	switch {
	case flagEndless:
		seed := seedOr(cfg.Stream.Seed)
		return &scenes.Launch{
			Desc:    generator.Default(cfg.Window.Width, cfg.Window.Height),
			Name:    "endless",
			Endless: true,
			Seed:    seed,
		}, nil

	case flagResume:
		if persist.Progress == nil {
			return nil, errors.New("no save data available")
		}
		p, err := persist.Progress.Load()
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, errors.New("nothing to resume")
		}
		desc, err := findLevel(cfg.Storage.LevelsDir, p.Level)
		if err != nil {
			return nil, err
		}
		cp := p.Checkpoint()
		return &scenes.Launch{Desc: desc, Name: desc.Name, Resume: &cp, FromFile: true}, nil

	case len(args) == 1:
		desc, err := loadLevelPath(args[0])
		if err != nil {
			return nil, err
		}
		return &scenes.Launch{Desc: desc, Name: desc.Name, FromFile: true}, nil
	}
	return nil, nil
}

// openStores opens save data and run history. A store that fails to open is
// logged and left out; the game still runs without it.
func openStores(cfg config.Settings, logger *log.Logger) (*systems.Persistence, func()) {
	persist := &systems.Persistence{Logger: logger}

	progress, err := storage.OpenProgress(cfg.Storage.AppName)
	if err != nil {
		logger.Warn("progress will not be saved", "err", err)
	} else {
		persist.Progress = progress
	}

	runs, err := storage.OpenRuns(cfg.Storage.HistoryPath)
	if err != nil {
		logger.Warn("runs will not be recorded", "err", err)
		return persist, func() {}
	}
	persist.Runs = runs
	return persist, func() {
		if err := runs.Close(); err != nil {
			logger.Warn("closing run history", "err", err)
		}
	}
}

// findLevel loads the level in dir whose file stem is name.
func findLevel(dir, name string) (*leveldata.Description, error) {
	fsys := os.DirFS(dir)
	names, err := leveldata.ListLevels(fsys, ".")
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		if n == name+filepath.Ext(n) {
			return leveldata.Load(fsys, n)
		}
	}
	return nil, fmt.Errorf("level %q not found in %s", name, dir)
}

func seedOr(configured uint64) uint64 {
	if flagSeed != 0 {
		return flagSeed
	}
	if configured != 0 {
		return configured
	}
	return uint64(time.Now().UnixNano())
}
