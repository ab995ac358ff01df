package cmd

import (
	"fmt"
	"time"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the local card catalog and image cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.loadCatalog(); err != nil {
			return err
		}

		current := a.store.Current()
		fmt.Println(colorize.CyanString("Catalog"))
		fmt.Printf("  Location: %s\n", a.store.Dir())
		fmt.Printf("  Dataset:  %s\n", a.cfg.Dataset)
		fmt.Printf("  Cards:    %d\n", current.Len())
		if last, ok := current.LastUpdated(); ok {
			fmt.Printf("  Updated:  %s (%s ago)\n", last.Format(time.RFC3339), time.Since(last).Round(time.Minute))
		} else {
			fmt.Println("  Updated:  never")
		}
		if a.syncer.Stale(current) {
			fmt.Printf("  State:    %s (older than %d day(s); run 'proxyprint sync')\n",
				colorize.YellowString("stale"), a.cfg.FreshnessDays)
		} else {
			fmt.Printf("  State:    %s\n", colorize.GreenString("fresh"))
		}

		fmt.Println(colorize.CyanString("Image cache"))
		fmt.Printf("  Location: %s\n", a.images.Root())
		modes, err := a.images.Modes()
		if err != nil {
			return err
		}
		if len(modes) == 0 {
			fmt.Println("  No cached images.")
		}
		for _, mode := range modes {
			n, err := a.images.Count(mode)
			if err != nil {
				return err
			}
			fmt.Printf("  %-8s  %d image(s)\n", mode+":", n)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(statusCmd)
}
