package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/levels"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/levels/formats"
	"github.com/vovakirdan/jump-quest/internal/platform/preview"
)

var (
	flagPreviewOut   string
	flagPreviewScale float64
	flagColorblind   bool
	flagExportFormat string
	flagExportOut    string
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List levels",
	Long: `List the levels of the active pack (built-in unless --levels is set).

Examples:
  jumpquest levels
  jumpquest levels --levels ./my-pack.toml
  jumpquest levels preview 2 --out level2.png
  jumpquest levels export --format toml --out pack.toml`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

var levelsPreviewCmd = &cobra.Command{
	Use:   "preview <level|arena>",
	Short: "Render a level to a PNG image",
	Args:  cobra.ExactArgs(1),
	Run:   runLevelsPreview,
}

var levelsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active pack as YAML or TOML",
	Args:  cobra.NoArgs,
	Run:   runLevelsExport,
}

func init() {
	levelsPreviewCmd.Flags().StringVar(&flagPreviewOut, "out", "", "Output file (default: <id>.png)")
	levelsPreviewCmd.Flags().Float64Var(&flagPreviewScale, "scale", preview.DefaultOptions.Scale, "Pixels per world unit")
	levelsPreviewCmd.Flags().BoolVar(&flagColorblind, "colorblind", false, "Use the colorblind palette")
	levelsExportCmd.Flags().StringVar(&flagExportFormat, "format", "yaml", "Output format: yaml or toml")
	levelsExportCmd.Flags().StringVar(&flagExportOut, "out", "", "Output file (default: stdout)")

	levelsCmd.AddCommand(levelsPreviewCmd)
	levelsCmd.AddCommand(levelsExportCmd)
}

func mustLevels() *levels.Pack {
	pack, err := loadLevels()
	if err != nil {
		fail("%v", err)
	}
	return pack
}

func runLevels(_ *cobra.Command, _ []string) {
	pack := mustLevels()
	if pack.Count() == 0 {
		fmt.Println("No levels in pack.")
		return
	}

	fmt.Printf("Levels - %s\n\n", pack.Name)
	fmt.Printf("  %-3s  %-24s  %-10s  %6s  %5s  %11s\n", "#", "Name", "Difficulty", "Width", "Coins", "Checkpoints")
	fmt.Printf("  %-3s  %-24s  %-10s  %6s  %5s  %11s\n", "-", "----", "----------", "-----", "-----", "-----------")
	for i, l := range pack.Levels {
		fmt.Printf("  %-3d  %-24s  %-10s  %6.0f  %5d  %11d\n",
			i+1, l.Name, l.Difficulty, l.Width, l.TotalCoins(), len(l.Checkpoints))
	}
	if arena, err := pack.Arena(); err == nil {
		fmt.Printf("\nVersus arena: %s (%d spawns)\n", arena.Name, len(arena.Spawns))
	}
	fmt.Println()
	fmt.Println("Run 'jumpquest play --level <#>' to play a level.")
}

func runLevelsPreview(_ *cobra.Command, args []string) {
	pack := mustLevels()
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	var l levels.Layout
	if args[0] == levels.ArenaID {
		l, err = pack.Arena()
	} else {
		n, convErr := strconv.Atoi(args[0])
		if convErr != nil {
			fail("level must be a number or %q", levels.ArenaID)
		}
		l, err = pack.Layout(n)
	}
	if err != nil {
		fail("%v", err)
	}

	out := flagPreviewOut
	if out == "" {
		name := l.ID
		if name == "" {
			name = "level-" + args[0]
		}
		out = name + ".png"
	}

	opts := preview.Options{Scale: flagPreviewScale, Colorblind: flagColorblind}
	if err := preview.SavePNG(out, l, cfg.World, opts); err != nil {
		fail("cannot write preview: %v", err)
	}
	fmt.Printf("Wrote %s\n", out)
}

func runLevelsExport(_ *cobra.Command, _ []string) {
	format, err := formats.ParseFormat(flagExportFormat)
	if err != nil {
		fail("%v", err)
	}
	pack := mustLevels()

	w := os.Stdout
	if flagExportOut != "" {
		f, err := os.Create(flagExportOut)
		if err != nil {
			fail("%v", err)
		}
		defer f.Close()
		w = f
	}
	if err := levels.Export(w, pack, format); err != nil {
		fail("cannot export levels: %v", err)
	}
}
