// flipside is a platformer that flips between a side-on platform view and a
// top-down free-roam view of the same level.
//
// Usage:
//
//	flipside                     - Open the level select screen
//	flipside play [level]        - Play a level file, or an endless run
//	flipside gen                 - Write a batch of generated levels
//	flipside check <level>...    - Validate level files
//	flipside sim <level>         - Run a level headless with scripted input
//	flipside runs [level]        - Show run history
//
// Global flags:
//
//	--config <path>  - Settings YAML (default: ~/.flipside/configs/flipside.yaml)
//	--db <path>      - Run history database (default from settings)
//	--levels <dir>   - Level directory (default from settings)
//	--verbose        - Debug logging
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/automoto/flipside/config"
	"github.com/automoto/flipside/shared/leveldata"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagLevelsDir string
	flagVerbose   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flipside",
	Short: "Flipside - a platformer with a second dimension",
	Long: `Flipside is a platformer where every level can be played side-on
or from above. Press Space to flip between the two views.

Available commands:
  play     - Play a level file or an endless run
  gen      - Generate random level files
  check    - Validate level files
  sim      - Run a level headless with scripted input
  runs     - View run history

Examples:
  flipside
  flipside play levels/level1.txt
  flipside play --endless --seed 42
  flipside gen --count 5
  flipside sim levels/level1.txt --hold right --press jump@40`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, nil)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory holding level files")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(runsCmd)
}

// loadSettings reads the settings file and applies the global flag overrides.
func loadSettings() (config.Settings, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.HistoryPath = flagDBPath
	}
	if flagLevelsDir != "" {
		cfg.Storage.LevelsDir = flagLevelsDir
	}
	return cfg, nil
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flipside",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadLevelPath loads a level file by its path on disk.
func loadLevelPath(p string) (*leveldata.Description, error) {
	return leveldata.Load(os.DirFS(filepath.Dir(p)), filepath.Base(p))
}
