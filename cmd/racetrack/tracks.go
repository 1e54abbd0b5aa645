package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racetrack/internal/registry"
)

var tracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "List built-in tracks",
	Long:  `Display all built-in tracks with their IDs and sizes.`,
	Run:   runTracks,
}

func runTracks(_ *cobra.Command, _ []string) {
	tracks := registry.List()

	if len(tracks) == 0 {
		fmt.Println("No tracks available.")
		return
	}

	// Find max ID length for alignment
	maxIDLen := 0
	for _, t := range tracks {
		if len(t.ID) > maxIDLen {
			maxIDLen = len(t.ID)
		}
	}

	fmt.Println("Available tracks:")
	fmt.Println()
	for _, t := range tracks {
		size := fmt.Sprintf("%dx%d", t.Width, t.Height)
		fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, t.ID, size, t.Title)
	}
	fmt.Println()
	fmt.Println("Run 'racetrack play <track>' to race.")
}
