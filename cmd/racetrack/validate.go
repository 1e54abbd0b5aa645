package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racetrack/internal/race"
	"github.com/vovakirdan/tui-racetrack/internal/track"
	"github.com/vovakirdan/tui-racetrack/internal/trackfile"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check track and session files",
	Long: `Load each file the way a race would and report the first problem found.
Tracks must have a complete starting line and a round course back to it.
Sessions are also checked for seat positions, laps and the seat to move.

The exit status is 1 when any file fails.

Examples:
  racetrack validate ./my-track.yaml
  racetrack validate tracks/*.json`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

func runValidate(_ *cobra.Command, args []string) {
	failed := 0
	for _, path := range args {
		if err := validateFile(path); err != nil {
			failed++
			fmt.Printf("  %-6s  %s  %s\n", "FAIL", path, err)
			continue
		}
		fmt.Printf("  %-6s  %s\n", "ok", path)
	}

	if failed > 0 {
		fmt.Println()
		fmt.Printf("%d of %d files failed.\n", failed, len(args))
		os.Exit(1)
	}
}

func validateFile(path string) error {
	rec, err := trackfile.ReadFile(path)
	if err != nil {
		return err
	}
	g := race.New()
	if err := g.Load(rec); err != nil {
		return err
	}
	return track.ValidateRace(g.Grid())
}
