package repository

import "context"

// PageFetcher retrieves raw markup for static pages.
type PageFetcher interface {
	// Fetch performs a single GET. Non-2xx responses and transport failures wrap ErrFetch.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
