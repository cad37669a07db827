package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/travel-deals-service/internal/entity"
	"github.com/user/travel-deals-service/internal/extractor"
	"github.com/user/travel-deals-service/internal/repository"
	"github.com/user/travel-deals-service/pkg/metrics"
	"golang.org/x/time/rate"
)

// DetailErrorPrefix starts the availability text of a listing whose detail page could not be read.
const DetailErrorPrefix = "Error fetching fare availability: "

// DealScraper reads a flight-deal listings page and the detail page of every listing on it.
type DealScraper interface {
	Scrape(ctx context.Context, listingsURL string) (*entity.DealsReport, error)
}

type dealScraperUseCase struct {
	fetcher repository.PageFetcher
	limiter *rate.Limiter
}

// NewDealScraper creates a DealScraper that spaces detail-page requests by detailDelay.
// The limiter is shared by all runs so concurrent callers stay polite too.
func NewDealScraper(fetcher repository.PageFetcher, detailDelay time.Duration) DealScraper {
	limit := rate.Inf
	if detailDelay > 0 {
		limit = rate.Every(detailDelay)
	}
	return &dealScraperUseCase{
		fetcher: fetcher,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (uc *dealScraperUseCase) Scrape(ctx context.Context, listingsURL string) (*entity.DealsReport, error) {
	start := time.Now()
	report := &entity.DealsReport{
		SourceURL: listingsURL,
		Listings:  []entity.ListingRecord{},
		ScrapedAt: start.UTC(),
	}
	defer func() {
		metrics.ScrapeDuration.WithLabelValues(metrics.PipelineDeals).Observe(time.Since(start).Seconds())
	}()

	base, err := url.Parse(listingsURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return uc.fail(report, fmt.Errorf("%w: invalid listings url %q", repository.ErrFetch, listingsURL))
	}

	body, err := uc.fetcher.Fetch(ctx, listingsURL)
	if err != nil {
		return uc.fail(report, fmt.Errorf("failed to fetch listings page: %w", err))
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return uc.fail(report, fmt.Errorf("%w: listings page: %v", repository.ErrParse, err))
	}

	stubs := extractor.ParseListings(doc, base)
	slog.Info("Parsed listings page", "url", listingsURL, "listings", len(stubs))

	for _, stub := range stubs {
		if err := uc.limiter.Wait(ctx); err != nil {
			report.Error = err.Error()
			metrics.ScrapeRunsTotal.WithLabelValues(metrics.PipelineDeals, "failure").Inc()
			return report, fmt.Errorf("scrape interrupted after %d listings: %w", len(report.Listings), err)
		}
		report.Listings = append(report.Listings, uc.readDetail(ctx, stub))
	}

	metrics.ScrapeItemsTotal.WithLabelValues(metrics.PipelineDeals).Add(float64(len(report.Listings)))
	outcome := "success"
	if len(report.Listings) == 0 {
		outcome = "empty"
	}
	metrics.ScrapeRunsTotal.WithLabelValues(metrics.PipelineDeals, outcome).Inc()
	return report, nil
}

// readDetail never fails; problems end up in the availability text.
func (uc *dealScraperUseCase) readDetail(ctx context.Context, stub extractor.ListingStub) entity.ListingRecord {
	record := entity.ListingRecord{
		Title:       stub.Title,
		SummaryText: stub.Summary,
		DetailURL:   stub.URL,
	}

	body, err := uc.fetcher.Fetch(ctx, stub.URL)
	if err != nil {
		slog.Warn("Failed to fetch deal detail", "url", stub.URL, "error", err)
		record.AvailabilityText = DetailErrorPrefix + err.Error()
		return record
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		slog.Warn("Failed to parse deal detail", "url", stub.URL, "error", err)
		record.AvailabilityText = DetailErrorPrefix + err.Error()
		return record
	}

	record.AvailabilityText = extractor.ExtractAvailability(doc)
	record.PostedDate = extractor.ExtractPostedDate(doc)
	return record
}

func (uc *dealScraperUseCase) fail(report *entity.DealsReport, err error) (*entity.DealsReport, error) {
	slog.Error("Deal scrape failed", "url", report.SourceURL, "error", err)
	report.Error = err.Error()
	metrics.ScrapeRunsTotal.WithLabelValues(metrics.PipelineDeals, "failure").Inc()
	return report, err
}
