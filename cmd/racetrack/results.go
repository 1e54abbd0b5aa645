package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racetrack/internal/storage"
)

var (
	flagResultsLimit int
	flagResultsID    string
)

var resultsCmd = &cobra.Command{
	Use:   "results [track]",
	Short: "Show recorded race results",
	Long: `Without a track, list the most recent races on any track.
With a track, list its fastest races (fewest moves) and its statistics.

Examples:
  racetrack results
  racetrack results oval --limit 5
  racetrack results --id 0b6c1f7e-...`,
	Args: cobra.MaximumNArgs(1),
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagResultsLimit, "limit", 10, "Number of races to show")
	resultsCmd.Flags().StringVar(&flagResultsID, "id", "", "Show the seats of one race")
}

func runResults(_ *cobra.Command, args []string) {
	cfg := mustLoadConfig()

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagResultsID != "":
		showResult(store, flagResultsID)
	case len(args) == 0:
		showRecent(store)
	default:
		showBest(store, args[0])
	}
}

func showResult(store *storage.Store, id string) {
	r, err := store.ResultByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving result: %v\n", err)
		os.Exit(1)
	}
	if r == nil {
		fmt.Fprintf(os.Stderr, "Error: no race %q\n", id)
		os.Exit(1)
	}

	fmt.Printf("Race %s on %s, %d moves, %s\n", r.ID, r.Track, r.Moves, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Println()
	fmt.Printf("  %-4s  %-16s  %-8s  %-3s  %s\n", "Seat", "Name", "Driver", "Lap", "")
	fmt.Printf("  %-4s  %-16s  %-8s  %-3s  %s\n", "----", "----", "------", "---", "")
	for _, s := range r.Seats {
		driver := "human"
		if s.Automated {
			driver = "computer"
		}
		mark := ""
		if s.Winner {
			mark = "winner"
		}
		fmt.Printf("  %-4d  %-16s  %-8s  %-3d  %s\n", s.Seat+1, s.Name, driver, s.Lap, mark)
	}
}

func showRecent(store *storage.Store) {
	results, err := store.RecentResults(flagResultsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent races")
	fmt.Println()
	if len(results) == 0 {
		fmt.Println("No races recorded yet.")
		fmt.Println()
		fmt.Println("Play 'racetrack play' to record the first race!")
		return
	}

	fmt.Printf("  %-16s  %-10s  %-5s  %-24s  %s\n", "Date", "Track", "Moves", "Winners", "ID")
	fmt.Printf("  %-16s  %-10s  %-5s  %-24s  %s\n", "----", "-----", "-----", "-------", "--")
	for _, r := range results {
		fmt.Printf("  %-16s  %-10s  %-5d  %-24s  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Track, r.Moves, strings.Join(r.Winners(), ", "), r.ID)
	}
}

func showBest(store *storage.Store, trackID string) {
	results, err := store.BestResults(trackID, flagResultsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Fastest races - %s\n", trackID)
	fmt.Println()
	if len(results) == 0 {
		fmt.Println("No races recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'racetrack play %s' to set the first time!\n", trackID)
		return
	}

	fmt.Printf("  %-4s  %-5s  %-24s  %s\n", "Rank", "Moves", "Winners", "Date")
	fmt.Printf("  %-4s  %-5s  %-24s  %s\n", "----", "-----", "-------", "----")
	for i, r := range results {
		fmt.Printf("  %-4d  %-5d  %-24s  %s\n",
			i+1, r.Moves, strings.Join(r.Winners(), ", "), r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.TrackStats(trackID); err == nil {
		fmt.Printf("Races: %d  Best: %d  Average: %.1f  Last: %s\n",
			stats.Races, stats.BestMoves, stats.AvgMoves, stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
}
