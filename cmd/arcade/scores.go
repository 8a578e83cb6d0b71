package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/canvas-arcade/internal/registry"
	"github.com/vovakirdan/canvas-arcade/internal/storage"
)

var (
	flagClear bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top high scores for the specified game.

Without a game argument, prints a summary of every game that has
recorded runs.

Examples:
  arcade scores
  arcade scores snake
  arcade scores tetris --limit 20
  arcade scores flappy --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores for the game")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
}

func runScores(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	dbPath := flagDBPath
	if dbPath == "" {
		dbPath = cfg.Host.DBPath
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClear {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a game")
			return
		}
		printSummary(store)
		return
	}

	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		return
	}

	if flagClear {
		n, err := store.ClearScores(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Removed %d scores for %s.\n", n, registry.Title(gameID))
		return
	}

	printGame(store, gameID)
}

func printGame(store *storage.Store, gameID string) {
	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", registry.Title(gameID))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-12s  %-6s  %s\n", "Rank", "Score", "Player", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-12s  %-6s  %s\n", "----", "-----", "------", "----", "----")

	// Print scores
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-12s  %-6s  %s\n", i+1, entry.Score, playerName(entry.Player), clock(entry.Duration), dateStr)
	}

	stats, err := store.Stats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d   Runs: %d   Average: %.1f   Played: %s\n",
			stats.HighScore, stats.Runs, stats.AvgScore, clock(stats.TotalTime))
	}
}

func printSummary(store *storage.Store) {
	all, err := store.AllStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-14s  %-6s  %-6s  %-8s  %s\n", "Game", "Runs", "Best", "Played", "Last")
	fmt.Printf("  %-14s  %-6s  %-6s  %-8s  %s\n", "----", "----", "----", "------", "----")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-14s  %-6d  %-6d  %-8s  %s\n",
			registry.Title(id), st.Runs, st.HighScore, clock(st.TotalTime), st.LastPlayed.Format("2006-01-02"))
	}
}

func playerName(p string) string {
	if p == "" {
		return "-"
	}
	return p
}

// clock formats d as m:ss.
func clock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
