package response

import "github.com/user/travel-deals-service/internal/entity"

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type DestinationsResponse struct {
	Destinations []entity.Destination `json:"destinations"`
}

// OffersResponse mirrors the flights and hotels of one cached destination.
type OffersResponse struct {
	City    string               `json:"city"`
	Flights []entity.FlightOffer `json:"flights"`
	Hotels  []entity.HotelOffer  `json:"hotels"`
}

type ItineraryResponse struct {
	Itinerary string `json:"itinerary"`
}
