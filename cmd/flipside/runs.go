package main

import (
	"fmt"
	"strconv"

	"github.com/automoto/flipside/storage"
	"github.com/spf13/cobra"
)

var (
	flagRunsLimit int
	flagRunsBest  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [level]",
	Short: "Show run history",
	Long: `Show recent runs and per-level totals from the history database.

Examples:
  flipside runs
  flipside runs level1 --best
  flipside runs --limit 25`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsBest, "best", false, "Fastest completions instead of most recent")
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	level := ""
	if len(args) == 1 {
		level = args[0]
	}

	store, err := storage.OpenRuns(cfg.Storage.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	title := "Recent runs"
	list := store.RecentRuns
	if flagRunsBest {
		title = "Best runs"
		list = store.BestRuns
	}
	runs, err := list(level, flagRunsLimit)
	if err != nil {
		return err
	}
	if level != "" {
		title += " - " + level
	}

	fmt.Println(titleStyle.Render(title))
	if len(runs) == 0 {
		fmt.Println(labelStyle.Render("No runs yet."))
	} else {
		rows := [][]string{{"#", "level", "outcome", "time", "deaths", "furthest", "when"}}
		for _, r := range runs {
			outcome := r.Outcome
			if outcome == storage.OutcomeComplete {
				outcome = okStyle.Render(outcome)
			}
			rows = append(rows, []string{
				strconv.FormatInt(r.ID, 10),
				r.Level,
				outcome,
				clock(r.Frames, cfg.Window.TickRate),
				strconv.Itoa(r.Deaths),
				fmt.Sprintf("%.0f", r.FurthestX),
				r.CreatedAt.Local().Format("2006-01-02 15:04"),
			})
		}
		fmt.Println(table(rows))
	}

	if level != "" {
		return nil
	}
	stats, err := store.Stats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return nil
	}
	rows := [][]string{{"level", "runs", "completed", "best", "deaths"}}
	for _, st := range stats {
		best := "-"
		if st.BestFrames > 0 {
			best = clock(st.BestFrames, cfg.Window.TickRate)
		}
		rows = append(rows, []string{
			st.Level,
			strconv.Itoa(st.Runs),
			strconv.Itoa(st.Completed),
			best,
			strconv.Itoa(st.Deaths),
		})
	}
	fmt.Println()
	fmt.Println(titleStyle.Render("Totals"))
	fmt.Println(table(rows))
	return nil
}

// clock formats a frame count as m:ss.cc.
func clock(frames int64, tickRate int) string {
	if tickRate <= 0 {
		tickRate = 60
	}
	cs := frames * 100 / int64(tickRate)
	return fmt.Sprintf("%d:%02d.%02d", cs/6000, cs/100%60, cs%100)
}
