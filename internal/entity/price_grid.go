package entity

import "time"

// UnknownDateRange labels entries whose label carries no recognizable date range.
const UnknownDateRange = "Unknown Date"

type PriceCategory string

const (
	CategoryCheapest PriceCategory = "Cheapest Price"
	CategoryLow      PriceCategory = "Low Price"
	CategoryNone     PriceCategory = ""
)

// PriceGridEntry is a single cell read from the rendered price grid.
type PriceGridEntry struct {
	DateRange string        `json:"date_range" yaml:"date_range"`
	Price     string        `json:"price" yaml:"price"`
	Category  PriceCategory `json:"category,omitempty" yaml:"category,omitempty"`
}

// PriceGroup holds the entries sharing a date range, cheapest first.
type PriceGroup struct {
	DateRange string           `json:"date_range" yaml:"date_range"`
	Entries   []PriceGridEntry `json:"entries" yaml:"entries"`
}

// LocatorState tracks how far a price-grid run progressed.
type LocatorState string

const (
	StateIdle            LocatorState = "idle"
	StateGridToggled     LocatorState = "grid_toggled"
	StatePricesSearching LocatorState = "prices_searching"
	StatePricesFound     LocatorState = "prices_found"
	StatePricesExhausted LocatorState = "prices_exhausted"
)

type DateRangeQuery struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// ScrapeResult is owned by the price-grid scraper while a run is in progress.
type ScrapeResult struct {
	Source           string                      `json:"source" yaml:"source"`
	Destination      string                      `json:"destination" yaml:"destination"`
	DateRangeQueried DateRangeQuery              `json:"date_range_queried" yaml:"date_range_queried"`
	Entries          map[string][]PriceGridEntry `json:"entries" yaml:"entries"`
	Discovered       []PriceGridEntry            `json:"discovered" yaml:"discovered"`
	Groups           []PriceGroup                `json:"groups" yaml:"groups"`
	State            LocatorState                `json:"state" yaml:"state"`
	ScrapedAt        time.Time                   `json:"scraped_at" yaml:"scraped_at"`
	Error            string                      `json:"error,omitempty" yaml:"error,omitempty"`
}
