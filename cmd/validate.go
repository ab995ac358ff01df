package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/proxyprint/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [decklist]",
	Short: "Check a decklist against the local card catalog",
	Long: `Validate resolves every line of a decklist against the local card catalog
without touching the network. Malformed lines are errors; card names that are
not in the catalog are warnings, since exports often list a double-faced card's
back face on its own line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		decklistPath := args[0]

		// Check if path exists
		if _, err := os.Stat(decklistPath); os.IsNotExist(err) {
			return fmt.Errorf("decklist not found: %s", decklistPath)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.loadCatalog(); err != nil {
			return err
		}

		v := validator.NewValidator(decklistPath, a.store.Current(), a.logger)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %v", err)
		}

		// Display validation results
		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if len(results.Errors) == 0 {
			fmt.Printf("✅ Decklist '%s' resolves to %d card faces on %d pages.\n",
				decklistPath, results.Units, results.Pages)
		} else {
			fmt.Printf("❌ Decklist '%s' has %d validation errors:\n", decklistPath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}
