package main

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/automoto/flipside/config"
	"github.com/automoto/flipside/core"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <level>...",
	Short: "Validate level files",
	Long: `Parse and build each level, then print what it contains.

Exits non-zero when any level fails to load.

Examples:
  flipside check levels/*.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	failed := 0
	for _, p := range args {
		level, err := checkLevel(p, cfg)
		if err != nil {
			failed++
			fmt.Println(errStyle.Render("✗ "+p) + "  " + err.Error())
			continue
		}
		fmt.Println(okStyle.Render("✓ " + p))
		fmt.Println(boxStyle.Render(describeLevel(level)))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d levels failed to load", failed, len(args))
	}
	return nil
}

func checkLevel(p string, cfg config.Settings) (*core.Level, error) {
	desc, err := loadLevelPath(p)
	if err != nil {
		return nil, err
	}
	return core.LoadLevel(desc, cfg)
}

func describeLevel(l *core.Level) string {
	counts := map[core.Kind]int{}
	for o := range l.Obstacles() {
		counts[o.Kind]++
	}
	pushables := 0
	for range l.Pushables() {
		pushables++
	}

	rows := [][]string{{"kind", "count"}}
	for _, k := range slices.Sorted(maps.Keys(counts)) {
		rows = append(rows, []string{k.String(), strconv.Itoa(counts[k])})
	}
	if pushables > 0 {
		rows = append(rows, []string{"pushable", strconv.Itoa(pushables)})
	}

	start := l.Start()
	goal := "none"
	if g, ok := l.Goal(); ok {
		goal = fmt.Sprintf("%g,%g %gx%g", g.X, g.Y, g.W, g.H)
	}
	return field("name", l.Name()) + "\n" +
		field("start", fmt.Sprintf("%g,%g", start.X, start.Y)) + "\n" +
		field("goal", goal) + "\n\n" +
		table(rows)
}
