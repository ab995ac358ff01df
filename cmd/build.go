package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/proxyprint/internal/deck"
	"github.com/arcanaland/proxyprint/internal/fault"
	"github.com/arcanaland/proxyprint/internal/imagecache"
	"github.com/arcanaland/proxyprint/internal/sheet"
)

var buildCmd = &cobra.Command{
	Use:   "build [decklist] [mode]",
	Short: "Build a printable PDF proxy sheet from a decklist",
	Long: `Build refreshes the card catalog if it is out of date, resolves every line of
the decklist to card faces, downloads any card images not yet cached, and writes
a PDF next to the decklist with nine cards per Letter page.

Decklist lines look like "4 Lightning Bolt" or "Lightning Bolt"; section headers
such as "Sideboard:" are ignored. Double-faced cards print front and back.

Examples:
  proxyprint build ~/decks/delver.txt
  proxyprint build ~/decks/delver.txt --mode default`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		decklistPath := args[0]
		mode, _ := cmd.Flags().GetString("mode")
		if len(args) == 2 {
			mode = args[1]
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.loadCatalog(); err != nil {
			return err
		}
		if _, err := a.syncer.EnsureFresh(cmd.Context()); err != nil {
			return fmt.Errorf("error updating card catalog: %w", err)
		}

		text, err := os.ReadFile(decklistPath)
		if err != nil {
			return fault.Wrap(fault.CodeIO, "read decklist "+decklistPath, err)
		}

		res := deck.NewResolver(a.logger).Resolve(a.store.Current(), string(text))
		if len(res.Units) == 0 {
			return fmt.Errorf("decklist %s contains no printable cards", decklistPath)
		}

		paths := make([]string, len(res.Units))
		for i, u := range res.Units {
			p, err := a.images.Resolve(cmd.Context(), u, mode)
			if err != nil {
				return fmt.Errorf("error resolving image for %q: %w", u.DisplayName, err)
			}
			paths[i] = p
		}

		doc := sheet.NewPDF()
		if _, err := sheet.Layout(res.Units, paths, doc); err != nil {
			return fault.Wrap(fault.CodeIO, "lay out sheet", err)
		}
		out := outputPath(decklistPath)
		if err := doc.WriteFile(out); err != nil {
			return err
		}

		a.logger.Info("sheet written",
			zap.String("path", out),
			zap.Int("faces", len(res.Units)),
			zap.Int("pages", doc.PageCount()))

		fmt.Printf("✅ Wrote %s (%d card faces on %d pages)\n",
			colorize.HiWhiteString("%s", out), len(res.Units), doc.PageCount())
		if n := len(res.Unresolved) + len(res.Malformed); n > 0 {
			colorize.Yellow("⚠ %d decklist line(s) skipped; run 'proxyprint validate %s' for details",
				n, decklistPath)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP("mode", "m", imagecache.DefaultMode, "Artwork mode")
}

// outputPath names the PDF after the decklist, in the same directory.
func outputPath(decklistPath string) string {
	base := strings.TrimSuffix(decklistPath, filepath.Ext(decklistPath))
	return base + ".pdf"
}
