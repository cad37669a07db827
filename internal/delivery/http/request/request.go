package request

// ScrapeDealsRequest is optional; an empty body scrapes the configured listings page.
type ScrapeDealsRequest struct {
	URL string `json:"url"`
}

type ScrapePriceGridRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type TripDestinationsRequest struct {
	VacationType   string  `json:"vacation_type"`
	TravelDate     string  `json:"travel_date"`
	Budget         float64 `json:"budget"`          // defaults to 300
	VacationLength int     `json:"vacation_length"` // defaults to 7
	MaxFlightPrice float64 `json:"max_flight_price"`
	MaxHotelPrice  float64 `json:"max_hotel_price"`
}

type DestinationOffersRequest struct {
	City string `json:"city"`
}

type ItineraryRequest struct {
	City           string          `json:"city"`
	AirportCode    string          `json:"airport_code"`
	Activities     string          `json:"activities"`
	VacationType   string          `json:"vacation_type"`
	TravelDate     string          `json:"travel_date"`
	VacationLength int             `json:"vacation_length"`
	Budget         float64         `json:"budget"`
	SelectedFlight *SelectedFlight `json:"selected_flight"`
	SelectedHotel  *SelectedHotel  `json:"selected_hotel"`
}

type SelectedFlight struct {
	Airline       string  `json:"airline"`
	FlightNumber  string  `json:"flight_number"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Aircraft      string  `json:"aircraft"`
	Layover       string  `json:"layover"`
	Price         float64 `json:"price"`
}

type SelectedHotel struct {
	Name          string  `json:"name"`
	PricePerNight float64 `json:"price_per_night"`
	TotalPrice    float64 `json:"total_price"`
}
