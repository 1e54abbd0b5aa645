// racetrack is a grid vector-racing game for the terminal.
//
// Usage:
//
//	racetrack tracks                 - List built-in tracks
//	racetrack play [track|file]      - Race on a track, or pick one from the menu
//	racetrack edit [track|file]      - Open the track editor
//	racetrack validate <file>...     - Check track and session files
//	racetrack simulate [track]       - Run a race between computer drivers
//	racetrack results [track]        - Show recorded race results
//	racetrack serve                  - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Game config YAML (default: search ~/.racetrack, ./configs)
//	--db <path>         - Results database (default from config: ~/.racetrack/results.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import tracks to register them
	_ "github.com/vovakirdan/tui-racetrack/internal/tracks"
)

var (
	// Global flags
	flagConfigPath string
	flagDBPath     string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "racetrack",
	Short: "Racetrack - vector racing on a grid in your terminal",
	Long: `Racetrack is the pencil-and-paper vector racing game played in the
terminal. Every car keeps its velocity between turns and may change it by one
cell in each direction. Leave the road and you crash.

Available commands:
  tracks    - Show all built-in tracks
  play      - Race on a track, or pick one from the menu
  edit      - Draw or change a track
  validate  - Check track and session files
  simulate  - Watch computer drivers race
  results   - View recorded races
  serve     - Start SSH server for remote play

Examples:
  racetrack tracks
  racetrack play oval
  racetrack play ./my-track.yaml
  racetrack edit --new 20x15 --out ./my-track.yaml
  racetrack simulate stadium --drivers 3 --watch
  racetrack serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(tracksCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(serveCmd)
}
