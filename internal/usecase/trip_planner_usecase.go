package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/user/travel-deals-service/internal/entity"
	"github.com/user/travel-deals-service/internal/repository"
	"github.com/user/travel-deals-service/pkg/metrics"
	"github.com/user/travel-deals-service/pkg/utils"
)

var ErrInvalidTripQuery = errors.New("invalid trip query")

const travelDateLayout = "2006-01-02"

// TripPlanner recommends destinations, attaches offers to them and writes itineraries.
type TripPlanner interface {
	Destinations(ctx context.Context, q entity.TripQuery) ([]entity.Destination, error)
	DestinationOffers(ctx context.Context, city string) (*entity.Destination, error)
	Itinerary(ctx context.Context, q entity.ItineraryQuery) string
}

type TripPlannerOptions struct {
	DealsURL       string
	OriginAirport  string
	OriginKeywords []string
}

type tripPlannerUseCase struct {
	deals     DealScraper
	generator repository.TextGenerator
	offers    repository.OfferSearcher
	cache     repository.TripCache
	opts      TripPlannerOptions
}

func NewTripPlanner(
	deals DealScraper,
	generator repository.TextGenerator,
	offers repository.OfferSearcher,
	cache repository.TripCache,
	opts TripPlannerOptions,
) TripPlanner {
	return &tripPlannerUseCase{
		deals:     deals,
		generator: generator,
		offers:    offers,
		cache:     cache,
		opts:      opts,
	}
}

// TripCacheKey identifies a query; any differing field is a different trip.
func TripCacheKey(q entity.TripQuery) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return utils.HashKey(
		strings.ToLower(strings.TrimSpace(q.VacationType)),
		q.TravelDate,
		f(q.Budget),
		strconv.Itoa(q.VacationLength),
		f(q.MaxFlightPrice),
		f(q.MaxHotelPrice),
	)
}

func (uc *tripPlannerUseCase) Destinations(ctx context.Context, q entity.TripQuery) ([]entity.Destination, error) {
	if strings.TrimSpace(q.VacationType) == "" {
		return nil, fmt.Errorf("%w: vacation type is required", ErrInvalidTripQuery)
	}
	travelDate, err := time.Parse(travelDateLayout, q.TravelDate)
	if err != nil {
		return nil, fmt.Errorf("%w: travel date must be YYYY-MM-DD", ErrInvalidTripQuery)
	}
	if q.VacationLength < 1 {
		return nil, fmt.Errorf("%w: vacation length must be at least one day", ErrInvalidTripQuery)
	}

	key := TripCacheKey(q)
	plan, err := uc.cache.Get(ctx, key)
	switch {
	case err == nil:
		metrics.TripCacheLookups.WithLabelValues("hit").Inc()
		slog.Info("Using cached trip plan", "vacation_type", q.VacationType, "travel_date", q.TravelDate)
		return plan.Destinations, nil
	case errors.Is(err, repository.ErrCacheMiss):
		metrics.TripCacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.TripCacheLookups.WithLabelValues("error").Inc()
		slog.Warn("Trip cache lookup failed", "error", err)
	}

	destinations := uc.recommend(ctx, q)

	checkIn := travelDate.Format(travelDateLayout)
	checkOut := travelDate.AddDate(0, 0, q.VacationLength).Format(travelDateLayout)
	for i := range destinations {
		d := &destinations[i]
		d.Flights = uc.searchFlights(ctx, entity.FlightQuery{
			Origin:      uc.opts.OriginAirport,
			Destination: d.AirportCode,
			Date:        checkIn,
			MaxPrice:    q.MaxFlightPrice,
		})
		d.Hotels = uc.searchHotels(ctx, entity.HotelQuery{
			City:     d.City,
			CheckIn:  checkIn,
			CheckOut: checkOut,
			MaxPrice: q.MaxHotelPrice,
		})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, key, &entity.TripPlan{Query: q, Destinations: destinations}); err != nil {
		slog.Warn("Failed to cache trip plan", "error", err)
	}
	return destinations, nil
}

// recommend asks the text generator for destinations, grounding the prompt in
// current deals from the configured origin. It always returns at least one destination.
func (uc *tripPlannerUseCase) recommend(ctx context.Context, q entity.TripQuery) []entity.Destination {
	var matching []entity.ListingRecord
	report, err := uc.deals.Scrape(ctx, uc.opts.DealsURL)
	if err != nil {
		slog.Warn("Continuing without flight deals", "error", err)
	}
	if report != nil {
		matching = FilterDeals(report.Listings, uc.opts.OriginKeywords)
	}
	slog.Info("Matched flight deals", "total", lenListings(report), "matching", len(matching))

	output, err := uc.generator.Generate(ctx, DestinationPrompt(q.VacationType, q.TravelDate, matching))
	if err != nil {
		slog.Error("Destination generation failed", "error", err)
		return []entity.Destination{DefaultDestination}
	}
	return ParseDestinations(output)
}

func lenListings(r *entity.DealsReport) int {
	if r == nil {
		return 0
	}
	return len(r.Listings)
}

// FilterDeals keeps deals whose title names one of the origin keywords and whose
// availability mentions a full month name.
func FilterDeals(deals []entity.ListingRecord, keywords []string) []entity.ListingRecord {
	var out []entity.ListingRecord
	for _, d := range deals {
		if containsAny(d.Title, keywords) && mentionsMonth(d.AvailabilityText) {
			out = append(out, d)
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func mentionsMonth(s string) bool {
	for m := time.January; m <= time.December; m++ {
		if strings.Contains(s, m.String()) {
			return true
		}
	}
	return false
}

func (uc *tripPlannerUseCase) searchFlights(ctx context.Context, q entity.FlightQuery) []entity.FlightOffer {
	flights, err := uc.offers.SearchFlights(ctx, q)
	if err != nil {
		slog.Warn("Flight search failed", "destination", q.Destination, "error", err)
	}
	if flights == nil {
		flights = []entity.FlightOffer{}
	}
	return flights
}

func (uc *tripPlannerUseCase) searchHotels(ctx context.Context, q entity.HotelQuery) []entity.HotelOffer {
	hotels, err := uc.offers.SearchHotels(ctx, q)
	if err != nil {
		slog.Warn("Hotel search failed", "city", q.City, "error", err)
	}
	if hotels == nil {
		hotels = []entity.HotelOffer{}
	}
	return hotels
}

// DestinationOffers returns the offers of city from the latest plan. An unknown
// city yields an empty destination rather than an error.
func (uc *tripPlannerUseCase) DestinationOffers(ctx context.Context, city string) (*entity.Destination, error) {
	empty := &entity.Destination{City: city, Flights: []entity.FlightOffer{}, Hotels: []entity.HotelOffer{}}

	plan, err := uc.cache.Latest(ctx)
	if errors.Is(err, repository.ErrCacheMiss) {
		return empty, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read trip cache: %w", err)
	}
	for _, d := range plan.Destinations {
		if strings.EqualFold(d.City, city) {
			found := d
			return &found, nil
		}
	}
	return empty, nil
}

func (uc *tripPlannerUseCase) Itinerary(ctx context.Context, q entity.ItineraryQuery) string {
	text, err := uc.generator.Generate(ctx, ItineraryPrompt(q))
	if err != nil {
		slog.Error("Itinerary generation failed", "city", q.City, "error", err)
		return ItineraryApology
	}
	return text
}
