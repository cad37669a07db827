package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/user/travel-deals-service/internal/delivery/http/request"
	"github.com/user/travel-deals-service/internal/delivery/http/response"
	"github.com/user/travel-deals-service/internal/entity"
	"github.com/user/travel-deals-service/internal/usecase"
)

const (
	defaultBudget         = 300
	defaultVacationLength = 7
	maxBodyBytes          = 1 << 20
)

type Handler struct {
	deals           usecase.DealScraper
	priceGrid       usecase.PriceGridScraper
	trips           usecase.TripPlanner
	defaultDealsURL string
}

func NewHandler(deals usecase.DealScraper, priceGrid usecase.PriceGridScraper, trips usecase.TripPlanner, defaultDealsURL string) *Handler {
	return &Handler{
		deals:           deals,
		priceGrid:       priceGrid,
		trips:           trips,
		defaultDealsURL: defaultDealsURL,
	}
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}

func (h *Handler) HandleScrapeDeals(w http.ResponseWriter, r *http.Request) {
	var req request.ScrapeDealsRequest
	if err := decodeOptional(r, &req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	target := strings.TrimSpace(req.URL)
	if target == "" {
		target = h.defaultDealsURL
	}
	u, err := url.ParseRequestURI(target)
	if err != nil || u.Host == "" {
		h.writeJSONError(w, "Invalid URL format", http.StatusBadRequest)
		return
	}
	if !h.allowedDealsURL(u) {
		h.writeJSONError(w, "URL must be on the configured deals site", http.StatusBadRequest)
		return
	}

	report, err := h.deals.Scrape(r.Context(), target)
	if err != nil {
		slog.Error("Deal scrape failed", "url", target, "error", err)
		h.writeJSON(w, http.StatusBadGateway, report)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) HandleScrapePriceGrid(w http.ResponseWriter, r *http.Request) {
	var req request.ScrapePriceGridRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Source == "" || req.Destination == "" || req.StartDate == "" || req.EndDate == "" {
		h.writeJSONError(w, "source, destination, start_date and end_date are required", http.StatusBadRequest)
		return
	}

	result, err := h.priceGrid.Scrape(r.Context(), usecase.PriceGridQuery{
		Source:      req.Source,
		Destination: req.Destination,
		Start:       req.StartDate,
		End:         req.EndDate,
	})
	if err != nil {
		slog.Error("Price grid scrape failed", "source", req.Source, "destination", req.Destination, "error", err)
		h.writeJSON(w, http.StatusBadGateway, result)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) HandleTripDestinations(w http.ResponseWriter, r *http.Request) {
	var req request.TripDestinationsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Budget <= 0 {
		req.Budget = defaultBudget
	}
	if req.VacationLength == 0 {
		req.VacationLength = defaultVacationLength
	}

	destinations, err := h.trips.Destinations(r.Context(), entity.TripQuery{
		VacationType:   req.VacationType,
		TravelDate:     req.TravelDate,
		Budget:         req.Budget,
		VacationLength: req.VacationLength,
		MaxFlightPrice: req.MaxFlightPrice,
		MaxHotelPrice:  req.MaxHotelPrice,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidTripQuery) {
			h.writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("Failed to plan trip", "vacation_type", req.VacationType, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, response.DestinationsResponse{Destinations: destinations})
}

func (h *Handler) HandleDestinationOffers(w http.ResponseWriter, r *http.Request) {
	var req request.DestinationOffersRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.City) == "" {
		h.writeJSONError(w, "city is required", http.StatusBadRequest)
		return
	}

	dest, err := h.trips.DestinationOffers(r.Context(), req.City)
	if err != nil {
		slog.Error("Failed to load destination offers", "city", req.City, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, response.OffersResponse{City: dest.City, Flights: dest.Flights, Hotels: dest.Hotels})
}

func (h *Handler) HandleItinerary(w http.ResponseWriter, r *http.Request) {
	var req request.ItineraryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	q := entity.ItineraryQuery{
		City:           req.City,
		AirportCode:    req.AirportCode,
		Activities:     req.Activities,
		TravelDate:     req.TravelDate,
		VacationLength: req.VacationLength,
		VacationType:   req.VacationType,
		Budget:         req.Budget,
	}
	if f := req.SelectedFlight; f != nil {
		q.Flight = &entity.FlightOffer{
			Airline:       f.Airline,
			FlightNumber:  f.FlightNumber,
			DepartureTime: f.DepartureTime,
			ArrivalTime:   f.ArrivalTime,
			Aircraft:      f.Aircraft,
			Layover:       f.Layover,
			Price:         f.Price,
		}
	}
	if hotel := req.SelectedHotel; hotel != nil {
		q.Hotel = &entity.HotelOffer{Name: hotel.Name, PricePerNight: hotel.PricePerNight, TotalPrice: hotel.TotalPrice}
	}

	h.writeJSON(w, http.StatusOK, response.ItineraryResponse{Itinerary: h.trips.Itinerary(r.Context(), q)})
}

// allowedDealsURL limits overrides to the configured listings host.
func (h *Handler) allowedDealsURL(u *url.URL) bool {
	def, err := url.Parse(h.defaultDealsURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return strings.EqualFold(u.Host, def.Host)
}

// decodeOptional accepts an empty body.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, response.ErrorResponse{Error: message})
}
