package cmd

import (
	"fmt"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/proxyprint/internal/card"
	"github.com/arcanaland/proxyprint/internal/deck"
	"github.com/arcanaland/proxyprint/internal/imagecache"
	"github.com/arcanaland/proxyprint/internal/preview"
)

var showCmd = &cobra.Command{
	Use:   "show [card name]",
	Short: "Display a card's image as ANSI art",
	Long: `Show looks up a card by name, downloads its image into the cache if needed,
and prints it as ANSI terminal art with the card's details. Double-faced cards
show both faces. The front face name alone is enough.

Examples:
  proxyprint show Lightning Bolt
  proxyprint show "Delver of Secrets"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		width, _ := cmd.Flags().GetInt("width")

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

		c, err := a.store.Current().Find(name)
		if err != nil {
			return fmt.Errorf("error getting card: %v", err)
		}

		for _, u := range deck.Expand(c) {
			path, err := a.images.Resolve(cmd.Context(), u, imagecache.DefaultMode)
			if err != nil {
				return fmt.Errorf("error fetching image: %w", err)
			}
			art, err := preview.File(path, width, width*7/10)
			if err != nil {
				return fmt.Errorf("error rendering image: %v", err)
			}
			displayCard(c, u, art, path)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().IntP("width", "w", preview.DefaultWidth, "Width of the ANSI art in terminal columns")
}

// displayCard prints the ANSI art on the left and the face details on the right.
func displayCard(c *card.Card, u deck.PrintUnit, ansiArt, path string) {
	ansiLines := strings.Split(strings.TrimSuffix(ansiArt, "\n"), "\n")
	maxAnsiWidth := 0
	for _, line := range ansiLines {
		if w := len([]rune(preview.StripANSI(line))); w > maxAnsiWidth {
			maxAnsiWidth = w
		}
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	spacing := 4
	infoStartCol := maxAnsiWidth + spacing
	infoWidth := width - infoStartCol - 2
	if infoWidth < 20 {
		infoWidth = 20
	}

	var infoLines []string
	infoLines = append(infoLines, colorize.CyanString("Card:   ")+colorize.HiWhiteString("%s", u.DisplayName))
	if c.Name != u.DisplayName {
		infoLines = append(infoLines, colorize.CyanString("Of:     ")+colorize.HiWhiteString("%s", c.Name))
	}
	infoLines = append(infoLines, colorize.CyanString("Layout: ")+colorize.HiWhiteString("%s", string(c.Layout)))
	infoLines = append(infoLines, colorize.CyanString("Face:   ")+colorize.HiWhiteString("%s", u.Role.String()))
	infoLines = append(infoLines, "")
	infoLines = append(infoLines, colorize.CyanString("Cached:"))
	infoLines = append(infoLines, preview.WrapText(path, infoWidth)...)

	fmt.Println()
	rows := len(ansiLines)
	if len(infoLines) > rows {
		rows = len(infoLines)
	}
	for i := 0; i < rows; i++ {
		fmt.Print("  ")
		if i < len(ansiLines) {
			fmt.Print(ansiLines[i])
			visible := len([]rune(preview.StripANSI(ansiLines[i])))
			fmt.Print(strings.Repeat(" ", infoStartCol-visible))
		} else {
			fmt.Print(strings.Repeat(" ", infoStartCol))
		}
		if i < len(infoLines) {
			fmt.Print(infoLines[i])
		}
		fmt.Println()
	}
	fmt.Println()
}
