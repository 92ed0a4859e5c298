package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath  string
	variantName string
	seed        int64
	verbose     bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sc-commander",
		Short: "Supply Chain Commander - a turn-based inventory game",
		Long: `Supply Chain Commander puts you in charge of a single product's supply chain.
Each week you decide how many units to order and how to ship them, then the
simulation settles demand, arrivals, costs and events.

Examples:
  sc-commander play
  sc-commander play --variant shipping --seed 42
  sc-commander simulate --policy base-stock --variant congestion
  sc-commander simulate --policy fixed --quantity 25 --pace 4
  sc-commander scores --variant classic --limit 5
  sc-commander scores show <session-id>
  sc-commander variants
  sc-commander config show`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&variantName, "variant", "",
		"Game variant (classic, shipping, reputation, calendar, congestion)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0,
		"Random seed (0 uses the config seed or the clock)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewPlayCommand())
	rootCmd.AddCommand(NewSimulateCommand())
	rootCmd.AddCommand(NewScoresCommand())
	rootCmd.AddCommand(NewVariantsCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
