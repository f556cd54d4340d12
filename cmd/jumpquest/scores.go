package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/jump-quest/internal/games/jumpquest"
	"github.com/vovakirdan/jump-quest/internal/platform/tui"
	"github.com/vovakirdan/jump-quest/internal/storage"
)

var (
	flagScoresMode   string
	flagScoresVersus bool
	flagScoresLimit  int
	flagScoresTUI    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top scores, or recent versus results with --versus.

Examples:
  jumpquest scores
  jumpquest scores --mode coop
  jumpquest scores --versus
  jumpquest scores --tui`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "", "Only this mode: solo or coop")
	scoresCmd.Flags().BoolVar(&flagScoresVersus, "versus", false, "Show versus match results")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rows")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores interactively")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	if flagScoresVersus {
		printVersus(store)
		return
	}

	mode := ""
	if flagScoresMode != "" {
		m, err := jumpquest.ParseMode(flagScoresMode)
		if err != nil {
			fail("%v", err)
		}
		mode = string(m)
	}

	scores, err := store.TopScores(mode, flagScoresLimit)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	title := "all modes"
	if mode != "" {
		title = mode
	}
	fmt.Printf("High Scores - Jump Quest (%s)\n\n", title)

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'jumpquest play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-20s  %-6s  %-5s  %-8s  %s\n", "Rank", "Player", "Mode", "Level", "Score", "Date")
	fmt.Printf("  %-4s  %-20s  %-6s  %-5s  %-8s  %s\n", "----", "------", "----", "-----", "-----", "----")
	for i, e := range scores {
		player := e.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-20s  %-6s  %-5d  %-8d  %s\n",
			i+1, player, e.Mode, e.Level, e.Score, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.HighScore(mode); err == nil {
		fmt.Printf("\nBest: %d\n", best)
	}
}

func printVersus(store *storage.Store) {
	p1, p2, draws, err := store.VersusRecord()
	if err != nil {
		fail("retrieving versus record: %v", err)
	}
	matches, err := store.RecentVersusMatches(flagScoresLimit)
	if err != nil {
		fail("retrieving versus matches: %v", err)
	}

	fmt.Println("Versus - Jump Quest")
	fmt.Println()
	fmt.Printf("P1 wins: %d   P2 wins: %d   Draws: %d\n\n", p1, p2, draws)

	if len(matches) == 0 {
		fmt.Println("No versus matches yet. Try 'jumpquest play --mode versus'.")
		return
	}

	fmt.Printf("  %-6s  %-8s  %-8s  %-7s  %-8s  %s\n", "Winner", "P1", "P2", "Kills", "Length", "Date")
	fmt.Printf("  %-6s  %-8s  %-8s  %-7s  %-8s  %s\n", "------", "--", "--", "-----", "------", "----")
	for _, m := range matches {
		winner := "draw"
		if m.Winner != 0 {
			winner = m.Winner.String()
		}
		fmt.Printf("  %-6s  %-8d  %-8d  %-7s  %-8s  %s\n",
			winner, m.Result.P1Points, m.Result.P2Points,
			fmt.Sprintf("%d-%d", m.Result.P1Kills, m.Result.P2Kills),
			fmt.Sprintf("%.0fs", m.Result.Duration),
			m.CreatedAt.Format("2006-01-02 15:04"))
	}
}
