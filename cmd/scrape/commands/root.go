package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/travel-deals-service/internal/report"
	"github.com/user/travel-deals-service/pkg/config"
	"github.com/user/travel-deals-service/pkg/logger"
)

var (
	outputFormat string
	envFile      string
	cfg          *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "scrape",
	Short:         "scrape runs the flight-deal and price-grid scrapers once and prints the result.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadFrom(envFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		// Logs go to stderr so json and yaml output stay parseable.
		logger.Init(os.Stderr, logger.ParseLevel(cfg.LogLevel))
		_, err = report.ParseFormat(outputFormat)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "table", "Output format: table, json or yaml.")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Optional env file with configuration overrides.")
}

func format() report.Format {
	f, _ := report.ParseFormat(outputFormat)
	return f
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
