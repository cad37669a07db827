package commands

import (
	"github.com/spf13/cobra"
	"github.com/user/travel-deals-service/internal/adapter/httpfetch"
	"github.com/user/travel-deals-service/internal/report"
	"github.com/user/travel-deals-service/internal/usecase"
)

var dealsURL string

func init() {
	dealsCmd.Flags().StringVar(&dealsURL, "url", "", "Listings page to scrape (defaults to DEALS_URL).")
	rootCmd.AddCommand(dealsCmd)
}

var dealsCmd = &cobra.Command{
	Use:   "deals [--url <listings page>]",
	Short: "Scrapes a flight-deal listings page and every linked detail page.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		target := dealsURL
		if target == "" {
			target = cfg.DealsURL
		}

		fetcher := httpfetch.NewFetcher(httpfetch.Options{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.HTTPTimeout(),
			AntiBot:   cfg.AntiBotTransport,
		})
		scraper := usecase.NewDealScraper(fetcher, cfg.DealDetailDelay())

		result, err := scraper.Scrape(cmd.Context(), target)
		if result != nil {
			if werr := report.WriteDeals(cmd.OutOrStdout(), format(), result); werr != nil {
				return werr
			}
		}
		return err
	},
}
