package entity

// TripQuery is the input for a destination recommendation run.
type TripQuery struct {
	VacationType   string  `json:"vacation_type"`
	TravelDate     string  `json:"travel_date"` // YYYY-MM-DD
	Budget         float64 `json:"budget"`
	VacationLength int     `json:"vacation_length"`
	MaxFlightPrice float64 `json:"max_flight_price"`
	MaxHotelPrice  float64 `json:"max_hotel_price"`
}

type Destination struct {
	City        string        `json:"city"`
	AirportCode string        `json:"airport_code"`
	Activities  string        `json:"activities"`
	Flights     []FlightOffer `json:"flights"`
	Hotels      []HotelOffer  `json:"hotels"`
}

type FlightOffer struct {
	Airline       string  `json:"airline"`
	FlightNumber  string  `json:"flight_number"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	DurationMin   int     `json:"duration_minutes"`
	Aircraft      string  `json:"aircraft"`
	Layover       string  `json:"layover,omitempty"`
	Price         float64 `json:"price"`
	DepartureDate string  `json:"departure_date"`
	DepartureCode string  `json:"departure_airport"`
	ArrivalCode   string  `json:"arrival_airport"`
	BookingToken  string  `json:"booking_token,omitempty"`
}

type HotelOffer struct {
	Name          string  `json:"name"`
	PricePerNight float64 `json:"price_per_night"`
	TotalPrice    float64 `json:"total_price"`
	Rating        float64 `json:"rating"`
	Address       string  `json:"address"`
	Link          string  `json:"link,omitempty"`
}

type FlightQuery struct {
	Origin      string
	Destination string
	Date        string // YYYY-MM-DD
	MaxPrice    float64
}

type HotelQuery struct {
	City     string
	CheckIn  string // YYYY-MM-DD
	CheckOut string // YYYY-MM-DD
	MaxPrice float64
}

// ItineraryQuery describes the trip an itinerary is written for.
type ItineraryQuery struct {
	City           string       `json:"city"`
	AirportCode    string       `json:"airport_code"`
	Activities     string       `json:"activities"`
	TravelDate     string       `json:"travel_date"`
	VacationLength int          `json:"vacation_length"`
	VacationType   string       `json:"vacation_type"`
	Budget         float64      `json:"budget"`
	Flight         *FlightOffer `json:"flight,omitempty"`
	Hotel          *HotelOffer  `json:"hotel,omitempty"`
}

// TripPlan is what the trip cache stores for one query.
type TripPlan struct {
	Query        TripQuery     `json:"query"`
	Destinations []Destination `json:"destinations"`
}
