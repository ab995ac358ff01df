package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/proxyprint/internal/catalog"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the local card catalog if it is out of date",
	Long: `Sync checks the age of the local card catalog and downloads the latest
Oracle Cards dataset when it is older than the configured freshness window.
Use --force to download regardless of age.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.loadCatalog(); err != nil {
			return err
		}

		outcome := catalog.Refreshed
		if force {
			err = a.syncer.Refresh(cmd.Context())
		} else {
			outcome, err = a.syncer.EnsureFresh(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		current := a.store.Current()
		last, _ := current.LastUpdated()
		fmt.Printf("Catalog %s: %s cards, updated %s\n",
			colorize.CyanString(outcome.String()),
			colorize.HiWhiteString("%d", current.Len()),
			colorize.HiWhiteString("%s", last.Format("2006-01-02 15:04 MST")))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolP("force", "f", false, "Refresh even if the catalog is fresh")
}
