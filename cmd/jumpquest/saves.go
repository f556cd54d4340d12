package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var flagSavesYes bool

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List save slots",
	Long: `List the encrypted save slots. Saves need the key in JUMPQUEST_SAVE_KEY
(or a .env file); run 'jumpquest keygen' to create one.

Examples:
  jumpquest saves
  jumpquest saves delete 2`,
	Args: cobra.NoArgs,
	Run:  runSaves,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	Run:   runSavesDelete,
}

func init() {
	savesDeleteCmd.Flags().BoolVarP(&flagSavesYes, "yes", "y", false, "Do not ask for confirmation")
	savesCmd.AddCommand(savesDeleteCmd)
}

func runSaves(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr, "jumpquest")
	if err != nil {
		fail("%v", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	profiles, err := openProfiles(expandHome(flagSaves), cfg.Rules.SaveSlots, logger)
	if err != nil {
		fail("cannot open save slots: %v", err)
	}
	if profiles == nil {
		os.Exit(1)
	}

	fmt.Println("Save slots - Jump Quest")
	fmt.Println()
	for _, info := range profiles.List() {
		switch {
		case !info.Exists:
			fmt.Printf("  %d  (empty)\n", info.Slot+1)
		case info.Err != nil:
			fmt.Printf("  %d  unreadable: %v\n", info.Slot+1, info.Err)
		default:
			p := info.Profile
			fmt.Printf("  %d  %-20s  level %d  lives %d  score %d  %s\n",
				info.Slot+1, p.PlayerName, p.CurrentLevel, p.Lives, p.Score,
				p.Timestamp.Local().Format("2006-01-02 15:04"))
		}
	}
	fmt.Println()
	fmt.Println("Run 'jumpquest play --slot <#>' to continue.")
}

func runSavesDelete(cmd *cobra.Command, args []string) {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fail("slot must be a number")
	}

	logger, err := newLogger(os.Stderr, "jumpquest")
	if err != nil {
		fail("%v", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	profiles, err := openProfiles(expandHome(flagSaves), cfg.Rules.SaveSlots, logger)
	if err != nil {
		fail("cannot open save slots: %v", err)
	}
	if profiles == nil {
		os.Exit(1)
	}
	if n < 1 || n > profiles.Slots() {
		fail("slot must be between 1 and %d", profiles.Slots())
	}
	if !profiles.Exists(n - 1) {
		fmt.Printf("Slot %d is already empty.\n", n)
		return
	}

	if !flagSavesYes {
		fmt.Printf("Delete save slot %d? [y/N] ", n)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("Cancelled.")
			return
		}
	}

	if err := profiles.Delete(n - 1); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Deleted slot %d.\n", n)
}
