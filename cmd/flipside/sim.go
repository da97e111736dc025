package main

import (
	"errors"
	"fmt"

	"github.com/automoto/flipside/core"
	"github.com/automoto/flipside/generator"
	"github.com/automoto/flipside/shared/leveldata"
	"github.com/automoto/flipside/storage"
	"github.com/spf13/cobra"
)

var (
	flagSimFrames uint64
	flagSimHold   string
	flagSimPress  []string
	flagSimTrace  uint64
	flagSimRecord bool
)

var simCmd = &cobra.Command{
	Use:   "sim [level]",
	Short: "Run a level headless with scripted input",
	Long: `Step a level without opening a window and report where the player ended up.

--hold names actions held on every frame, joined by "+".
--press adds actions for a window: action@frame or action@frame+length.
Actions: left, right, up, down, jump, grab, toggle.

Examples:
  flipside sim levels/level1.txt --hold right --press jump@40 --press jump@120
  flipside sim --endless --seed 3 --hold right --frames 3000 --trace 300
  flipside sim levels/level1.txt --hold right --press toggle@10 --record`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().Uint64Var(&flagSimFrames, "frames", 600, "Frames to simulate")
	simCmd.Flags().StringVar(&flagSimHold, "hold", "", "Actions held every frame, e.g. right+grab")
	simCmd.Flags().StringSliceVar(&flagSimPress, "press", nil, "Timed presses, e.g. jump@30 or toggle@90+2")
	simCmd.Flags().Uint64Var(&flagSimTrace, "trace", 0, "Print the player every N frames (0 = off)")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save the run to history")
	simCmd.Flags().BoolVar(&flagEndless, "endless", false, "Simulate an endless generated run")
	simCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "Generator seed (0 = from settings or time)")
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	logger := newLogger()

	script, err := core.ParseScript(flagSimHold, flagSimPress)
	if err != nil {
		return err
	}

	var desc *leveldata.Description
	opts := []core.Option{core.WithLogger(logger)}
	switch {
	case flagEndless:
		seed := seedOr(cfg.Stream.Seed)
		desc = generator.Default(cfg.Window.Width, cfg.Window.Height)
		desc.Name = "endless"
		opts = append(opts, core.WithChunkSource(generator.New(seed)))
		logger.Debug("endless run", "seed", seed)
	case len(args) == 1:
		if desc, err = loadLevelPath(args[0]); err != nil {
			return err
		}
	default:
		return errors.New("sim needs a level file or --endless")
	}

	s, err := core.NewSession(desc, cfg, opts...)
	if err != nil {
		return err
	}

	furthest := 0.0
	for f := range flagSimFrames {
		res := s.Step(script.At(f))
		p := s.Player()
		furthest = max(furthest, p.Rect.Right())
		if res.Respawned {
			logger.Debug("respawn", "frame", res.Frame, "reason", res.Reason)
		}
		if flagSimTrace > 0 && f%flagSimTrace == 0 {
			fmt.Println(labelStyle.Render(fmt.Sprintf("%6d", res.Frame)) + "  " + describePlayer(p))
		}
		if res.State == core.StateComplete {
			break
		}
	}

	snap := s.Snapshot()
	outcome := storage.OutcomeQuit
	if snap.State == core.StateComplete {
		outcome = storage.OutcomeComplete
	}
	summary := field("level", desc.Name) + "\n" +
		field("frames", snap.Frame) + "\n" +
		field("outcome", outcome) + "\n" +
		field("deaths", snap.Deaths) + "\n" +
		field("player", describePlayer(snap.Player)) + "\n" +
		field("checkpoint", fmt.Sprintf("%g,%g", snap.LastCheckpoint.X, snap.LastCheckpoint.Y)) + "\n" +
		field("furthest", fmt.Sprintf("%.0f", furthest))
	fmt.Println(boxStyle.Render(summary))

	if !flagSimRecord {
		return nil
	}
	runs, err := storage.OpenRuns(cfg.Storage.HistoryPath)
	if err != nil {
		return err
	}
	defer runs.Close()
	id, err := runs.SaveRun(storage.Run{
		Level:     desc.Name,
		Outcome:   outcome,
		Frames:    int64(snap.Frame),
		Deaths:    snap.Deaths,
		Endless:   flagEndless,
		FurthestX: furthest,
	})
	if err != nil {
		return err
	}
	fmt.Println(okStyle.Render(fmt.Sprintf("recorded run #%d", id)))
	return nil
}

func describePlayer(p core.Player) string {
	s := fmt.Sprintf("%s at %.1f,%.1f", p.ModeLabel(), p.Rect.X, p.Rect.Y)
	if p.Z > 0 {
		s += fmt.Sprintf(" z=%.1f", p.Z)
	}
	if p.Grounded {
		s += " grounded"
	}
	if p.WallSliding {
		s += " wall-sliding"
	}
	return s
}
