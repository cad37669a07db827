package commands

import (
	"github.com/spf13/cobra"
	"github.com/user/travel-deals-service/internal/adapter/chromedp_browser"
	"github.com/user/travel-deals-service/internal/report"
	"github.com/user/travel-deals-service/internal/usecase"
)

var gridQuery usecase.PriceGridQuery

func init() {
	f := gridCmd.Flags()
	f.StringVar(&gridQuery.Source, "source", "", "Departure city or airport.")
	f.StringVar(&gridQuery.Destination, "destination", "", "Arrival city or airport.")
	f.StringVar(&gridQuery.Start, "start", "", "Start of the travel window, YYYY-MM-DD.")
	f.StringVar(&gridQuery.End, "end", "", "End of the travel window, YYYY-MM-DD.")
	for _, name := range []string{"source", "destination", "start", "end"} {
		_ = gridCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(gridCmd)
}

var gridCmd = &cobra.Command{
	Use:   "grid --source <city> --destination <city> --start <date> --end <date>",
	Short: "Opens the flight search in Chrome and reads prices from its date grid.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		browser := chromedp_browser.NewChromedpBrowser(chromedp_browser.Options{
			Headless:        cfg.BrowserHeadless,
			UserAgent:       cfg.UserAgent,
			PageLoadTimeout: cfg.PageLoadTimeout(),
		})
		defer browser.Close()

		scraper := usecase.NewPriceGridScraper(browser, usecase.PriceGridOptions{
			UserAgent:     cfg.UserAgent,
			ToggleWait:    cfg.ToggleWait(),
			MaxRetries:    cfg.PriceMaxRetries,
			DebugHTMLPath: cfg.DebugHTMLPath,
			Pauses:        usecase.DefaultGridPauses,
		})

		result, err := scraper.Scrape(cmd.Context(), gridQuery)
		if result != nil {
			if werr := report.WritePriceGrid(cmd.OutOrStdout(), format(), result); werr != nil {
				return werr
			}
		}
		return err
	},
}
