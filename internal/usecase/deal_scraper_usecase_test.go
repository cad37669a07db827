package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/travel-deals-service/internal/extractor"
	"github.com/user/travel-deals-service/internal/repository"
)

const (
	testListingsURL = "https://deals.example/category/dallas/"
	testDetailA     = "https://deals.example/deal-a/"
	testDetailB     = "https://deals.example/deal-b/"
	testDetailC     = "https://deals.example/deal-c/"
)

var testListingsPage = `<html><body>
<article><h2 class="entry-title"><a href="/deal-a/">Dallas to Lisbon $420</a></h2><div class="entry-content"><p>Great fare</p></div></article>
<article><h2 class="entry-title">Missing link</h2></article>
<article><h2 class="entry-title"><a href="/deal-b/">DFW to Tokyo $650</a></h2><div class="entry-content"><p>Nonstop</p></div></article>
<article><h2 class="entry-title"><a href="/deal-c/">Dallas to Paris $500</a></h2></article>
</body></html>`

const detailPage = `<html><body>
<header class="entry-header"><time class="entry-date published">October 1, 2026</time></header>
<div class="entry-content"><h2>Fare Availability</h2><p>November 2026</p><p>December 2026</p><h2>Booking</h2><p>x</p></div>
</body></html>`

func TestDealScraperScrape(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string]string{
			testListingsURL: testListingsPage,
			testDetailA:     detailPage,
			testDetailC:     `<html><body><div class="entry-content"><p>no heading</p></div></body></html>`,
		},
		errs: map[string]error{
			testDetailB: fmt.Errorf("%w: get %s: unexpected status 503", repository.ErrFetch, testDetailB),
		},
	}
	uc := NewDealScraper(fetcher, 0)

	report, err := uc.Scrape(context.Background(), testListingsURL)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Empty(t, report.Error)
	assert.Equal(t, []string{testListingsURL, testDetailA, testDetailB, testDetailC}, fetcher.calls)

	require.Len(t, report.Listings, 3)

	a := report.Listings[0]
	assert.Equal(t, "Dallas to Lisbon $420", a.Title)
	assert.Equal(t, "Great fare...", a.SummaryText)
	assert.Equal(t, "November 2026\nDecember 2026", a.AvailabilityText)
	require.NotNil(t, a.PostedDate)
	assert.Equal(t, "October 1, 2026", *a.PostedDate)

	b := report.Listings[1]
	assert.Equal(t, testDetailB, b.DetailURL)
	assert.Equal(t, DetailErrorPrefix+"page fetch failed: get "+testDetailB+": unexpected status 503", b.AvailabilityText)
	assert.Nil(t, b.PostedDate)

	c := report.Listings[2]
	assert.Equal(t, extractor.AvailabilityNotFound, c.AvailabilityText)
	assert.Nil(t, c.PostedDate)
}

func TestDealScraperSpacesDetailFetches(t *testing.T) {
	const delay = 50 * time.Millisecond
	fetcher := &fakeFetcher{
		pages: map[string]string{
			testListingsURL: testListingsPage,
			testDetailA:     detailPage,
			testDetailB:     detailPage,
			testDetailC:     detailPage,
		},
	}
	uc := NewDealScraper(fetcher, delay)

	start := time.Now()
	report, err := uc.Scrape(context.Background(), testListingsURL)
	elapsed := time.Since(start)
	require.NoError(t, err)
	require.Len(t, report.Listings, 3)
	require.Len(t, fetcher.times, 4)

	assert.GreaterOrEqual(t, elapsed, 2*delay)
	assert.Less(t, fetcher.times[1].Sub(fetcher.times[0]), delay, "first detail fetch waits")
	assert.GreaterOrEqual(t, fetcher.times[3].Sub(fetcher.times[1]), 2*delay-5*time.Millisecond)
}

func TestDealScraperListingsUnreachable(t *testing.T) {
	fetcher := &fakeFetcher{errs: map[string]error{testListingsURL: fmt.Errorf("%w: connection refused", repository.ErrFetch)}}

	report, err := NewDealScraper(fetcher, 0).Scrape(context.Background(), testListingsURL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrFetch))
	require.NotNil(t, report)
	assert.Empty(t, report.Listings)
	assert.Contains(t, report.Error, "connection refused")
}

func TestDealScraperRejectsRelativeURL(t *testing.T) {
	report, err := NewDealScraper(&fakeFetcher{}, 0).Scrape(context.Background(), "/category/dallas/")
	assert.ErrorIs(t, err, repository.ErrFetch)
	assert.NotEmpty(t, report.Error)
}

func TestDealScraperStopsOnCancel(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{testListingsURL: testListingsPage}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewDealScraper(fetcher, 0).Scrape(ctx, testListingsURL)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Listings)
	assert.Equal(t, []string{testListingsURL}, fetcher.calls)
}
