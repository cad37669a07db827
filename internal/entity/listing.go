package entity

import "time"

// ListingRecord is one flight-deal article and the fields pulled from its detail page.
type ListingRecord struct {
	Title            string  `json:"title" yaml:"title"`
	SummaryText      string  `json:"summary" yaml:"summary"`
	DetailURL        string  `json:"link" yaml:"link"`
	AvailabilityText string  `json:"fare_availability" yaml:"fare_availability"`
	PostedDate       *string `json:"posted_date" yaml:"posted_date"`
}

// DealsReport is the result of one listings-page run.
type DealsReport struct {
	SourceURL string          `json:"source_url" yaml:"source_url"`
	Listings  []ListingRecord `json:"deals" yaml:"deals"`
	ScrapedAt time.Time       `json:"scraped_at" yaml:"scraped_at"`
	Error     string          `json:"error,omitempty" yaml:"error,omitempty"`
}
