// Package commands holds the cobra commands of flightctl.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flightctl",
	Short: "flightctl runs flight searches against the configured sources from the terminal.",
	Long: "flightctl wires the same sources as the server from environment variables " +
		"(PRIMARY_BASE_URL, CARDSITE_BASE_URL, TABLESITE_BASE_URL, ...) and runs searches and fare lookups in-process.",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(newSearchCmd(defaultSearcher))
	rootCmd.AddCommand(newPricesCmd(defaultInsights))
	rootCmd.AddCommand(newDestinationsCmd(defaultInsights))
}

// ExecuteContext runs the root command and exits non-zero on error.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
