package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/user/travel-deals-service/internal/entity"
	"github.com/user/travel-deals-service/internal/extractor"
	"github.com/user/travel-deals-service/internal/repository"
	"github.com/user/travel-deals-service/pkg/metrics"
	"github.com/user/travel-deals-service/pkg/utils"
)

const DefaultFlightSearchURL = "https://www.google.com/travel/flights"

const defaultPollInterval = 500 * time.Millisecond

// PriceGridQuery names the route and travel window to look up.
type PriceGridQuery struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Start       string `json:"start_date"`
	End         string `json:"end_date"`
}

// Pause is a randomized wait in [Min, Max).
type Pause struct {
	Min, Max time.Duration
}

// GridPauses are the settle times between browser interactions.
type GridPauses struct {
	AfterLoad   Pause
	AfterToggle Pause
	AfterScroll Pause
	BeforeRetry Pause
}

// DefaultGridPauses are the production settle times.
var DefaultGridPauses = GridPauses{
	AfterLoad:   Pause{10 * time.Second, 12 * time.Second},
	AfterToggle: Pause{5 * time.Second, 7 * time.Second},
	AfterScroll: Pause{2 * time.Second, 3 * time.Second},
	BeforeRetry: Pause{3 * time.Second, 5 * time.Second},
}

type PriceGridOptions struct {
	SearchURL     string
	UserAgent     string
	ToggleWait    time.Duration
	PollInterval  time.Duration
	MaxRetries    int
	DebugHTMLPath string
	Pauses        GridPauses
}

// PriceGridScraper drives a rendered flight-search page to its date grid and reads the prices.
type PriceGridScraper interface {
	Scrape(ctx context.Context, q PriceGridQuery) (*entity.ScrapeResult, error)
}

// priceGridUseCase runs one browser session at a time; slot holds the active run.
type priceGridUseCase struct {
	browser repository.Browser
	opts    PriceGridOptions
	slot    chan struct{}
}

func NewPriceGridScraper(browser repository.Browser, opts PriceGridOptions) PriceGridScraper {
	if opts.SearchURL == "" {
		opts.SearchURL = DefaultFlightSearchURL
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	return &priceGridUseCase{browser: browser, opts: opts, slot: make(chan struct{}, 1)}
}

// SearchURL builds the free-text flight search for q.
func SearchURL(base string, q PriceGridQuery) string {
	terms := strings.Join([]string{"flights", q.Source, "to", q.Destination, q.Start, q.End}, " ")
	return base + "?q=" + url.PathEscape(terms)
}

// Scrape walks Idle → GridToggled → PricesSearching → PricesFound or PricesExhausted.
// A missing toggle or an empty grid is a normal outcome with no entries. Only a
// session that cannot be opened, identified or loaded yields an error; the
// partial result is returned alongside it. Concurrent calls queue behind the
// active run, which also keeps DebugHTMLPath to one writer.
func (uc *priceGridUseCase) Scrape(ctx context.Context, q PriceGridQuery) (result *entity.ScrapeResult, err error) {
	start := time.Now()
	result = &entity.ScrapeResult{
		Source:           q.Source,
		Destination:      q.Destination,
		DateRangeQueried: entity.DateRangeQuery{Start: q.Start, End: q.End},
		Entries:          map[string][]entity.PriceGridEntry{},
		Discovered:       []entity.PriceGridEntry{},
		Groups:           []entity.PriceGroup{},
		State:            entity.StateIdle,
		ScrapedAt:        start.UTC(),
	}
	defer func() {
		metrics.ScrapeDuration.WithLabelValues(metrics.PipelinePriceGrid).Observe(time.Since(start).Seconds())
		outcome := "success"
		switch {
		case err != nil:
			outcome = "failure"
			result.Error = err.Error()
		case len(result.Discovered) == 0:
			outcome = "empty"
		}
		metrics.ScrapeRunsTotal.WithLabelValues(metrics.PipelinePriceGrid, outcome).Inc()
	}()

	select {
	case uc.slot <- struct{}{}:
		defer func() { <-uc.slot }()
	case <-ctx.Done():
		return result, fmt.Errorf("waiting for browser: %w", ctx.Err())
	}

	target := SearchURL(uc.opts.SearchURL, q)
	session, err := uc.browser.Open(ctx, target)
	if err != nil {
		slog.Error("Failed to open browser session", "url", target, "error", err)
		return result, fmt.Errorf("open session: %w", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			slog.Warn("Failed to close browser session", "error", cerr)
		}
	}()

	if err := session.SetIdentity(ctx, uc.opts.UserAgent); err != nil {
		return result, fmt.Errorf("set identity: %w", err)
	}
	if err := session.Load(ctx); err != nil {
		return result, fmt.Errorf("load search page: %w", err)
	}
	defer uc.writeDebugHTML(ctx, session)

	if err := uc.pause(ctx, uc.opts.Pauses.AfterLoad); err != nil {
		return result, err
	}

	toggle, err := uc.locateToggle(ctx, session)
	if errors.Is(err, repository.ErrLocatorExhausted) {
		slog.Warn("Date grid toggle not found", "url", target)
		return result, nil
	}
	if err != nil {
		return result, err
	}

	if err := session.Click(ctx, toggle); err != nil {
		slog.Warn("Direct click on date grid toggle failed, trying script click", "error", err)
		if err := session.ClickScript(ctx, toggle); err != nil {
			slog.Warn("Script click on date grid toggle failed", "error", err)
		}
	}
	result.State = entity.StateGridToggled

	if err := uc.pause(ctx, uc.opts.Pauses.AfterToggle); err != nil {
		return result, err
	}

	result.State = entity.StatePricesSearching
	entries, err := uc.searchPrices(ctx, session)
	if errors.Is(err, repository.ErrLocatorExhausted) {
		result.State = entity.StatePricesExhausted
		slog.Info("No price elements found", "url", target, "attempts", uc.opts.MaxRetries)
		return result, nil
	}
	if err != nil {
		return result, err
	}

	groups := extractor.Aggregate(entries)
	result.Discovered = entries
	result.Groups = groups
	result.Entries = extractor.GroupMap(groups)
	result.State = entity.StatePricesFound
	metrics.ScrapeItemsTotal.WithLabelValues(metrics.PipelinePriceGrid).Add(float64(len(entries)))
	slog.Info("Price grid scraped", "url", target, "entries", len(entries), "date_ranges", len(groups))
	return result, nil
}

// locateToggle waits up to ToggleWait per strategy for elements to appear and
// returns the first one whose text carries the grid label.
func (uc *priceGridUseCase) locateToggle(ctx context.Context, session repository.BrowserSession) (repository.ElementRef, error) {
	for _, selector := range extractor.ToggleSelectors {
		elements, err := uc.waitForElements(ctx, session, selector)
		if err != nil {
			if ctx.Err() != nil {
				return repository.ElementRef{}, ctx.Err()
			}
			slog.Debug("Toggle selector failed", "selector", selector, "error", err)
			continue
		}
		for _, el := range elements {
			if strings.Contains(el.Text, extractor.DateGridLabel) {
				slog.Info("Found date grid toggle", "selector", selector)
				return el, nil
			}
		}
	}
	return repository.ElementRef{}, repository.ErrLocatorExhausted
}

func (uc *priceGridUseCase) waitForElements(ctx context.Context, session repository.BrowserSession, selector string) ([]repository.ElementRef, error) {
	deadline := time.Now().Add(uc.opts.ToggleWait)
	for {
		elements, err := session.FindElements(ctx, selector)
		if err != nil {
			return nil, err
		}
		if len(elements) > 0 || !time.Now().Before(deadline) {
			return elements, nil
		}
		if err := utils.Sleep(ctx, uc.opts.PollInterval); err != nil {
			return nil, err
		}
	}
}

// searchPrices retries the scroll-and-probe pass up to MaxRetries times.
func (uc *priceGridUseCase) searchPrices(ctx context.Context, session repository.BrowserSession) ([]entity.PriceGridEntry, error) {
	for attempt := 1; attempt <= uc.opts.MaxRetries; attempt++ {
		metrics.PriceLocatorAttempts.Inc()

		if err := session.Evaluate(ctx, extractor.ScrollScript); err != nil {
			slog.Warn("Failed to trigger price loading", "attempt", attempt, "error", err)
		} else {
			if err := uc.pause(ctx, uc.opts.Pauses.AfterScroll); err != nil {
				return nil, err
			}
			if entries := uc.probePrices(ctx, session); len(entries) > 0 {
				return entries, nil
			}
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt < uc.opts.MaxRetries {
			slog.Info("No prices found, waiting before retry", "attempt", attempt)
			if err := uc.pause(ctx, uc.opts.Pauses.BeforeRetry); err != nil {
				return nil, err
			}
		}
	}
	return nil, repository.ErrLocatorExhausted
}

// probePrices evaluates the price strategies in order and stops at the first
// one that yields a valid entry.
func (uc *priceGridUseCase) probePrices(ctx context.Context, session repository.BrowserSession) []entity.PriceGridEntry {
	for _, selector := range extractor.PriceSelectors {
		elements, err := session.FindElements(ctx, selector)
		if err != nil {
			slog.Debug("Price selector failed", "selector", selector, "error", err)
			continue
		}
		var entries []entity.PriceGridEntry
		for _, el := range elements {
			if entry, ok := extractor.EntryFromElement(el); ok {
				entries = append(entries, entry)
			}
		}
		if len(entries) > 0 {
			slog.Info("Found price elements", "selector", selector, "count", len(entries))
			return entries
		}
	}
	return nil
}

func (uc *priceGridUseCase) pause(ctx context.Context, p Pause) error {
	return utils.RandomDelay(ctx, p.Min, p.Max)
}

// writeDebugHTML saves the final markup for inspection. Failures are only logged.
func (uc *priceGridUseCase) writeDebugHTML(ctx context.Context, session repository.BrowserSession) {
	if uc.opts.DebugHTMLPath == "" {
		return
	}
	html, err := session.HTML(context.WithoutCancel(ctx))
	if err != nil {
		slog.Warn("Failed to read page markup", "error", err)
		return
	}
	if err := os.WriteFile(uc.opts.DebugHTMLPath, []byte(html), 0o644); err != nil {
		slog.Warn("Failed to write debug markup", "path", uc.opts.DebugHTMLPath, "error", err)
		return
	}
	slog.Debug("Saved page markup", "path", uc.opts.DebugHTMLPath)
}
