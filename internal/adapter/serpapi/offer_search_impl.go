package serpapi

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/user/travel-deals-service/internal/entity"
)

const (
	DefaultBaseURL = "https://serpapi.com"
	dateLayout     = "2006-01-02"
)

// Client searches Google Flights and Google Hotels through SerpApi.
type Client struct {
	http   *resty.Client
	apiKey string
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	return &Client{http: client, apiKey: apiKey}
}

type airportTime struct {
	ID   string `json:"id"`
	Time string `json:"time"`
}

type flightLeg struct {
	DepartureAirport airportTime `json:"departure_airport"`
	ArrivalAirport   airportTime `json:"arrival_airport"`
	Airline          string      `json:"airline"`
	FlightNumber     string      `json:"flight_number"`
	Airplane         string      `json:"airplane"`
}

type layover struct {
	Name string `json:"name"`
}

type flightOption struct {
	Flights       []flightLeg `json:"flights"`
	Layovers      []layover   `json:"layovers"`
	TotalDuration int         `json:"total_duration"`
	Price         float64     `json:"price"`
	BookingToken  string      `json:"booking_token"`
}

type flightsResponse struct {
	BestFlights  []flightOption `json:"best_flights"`
	OtherFlights []flightOption `json:"other_flights"`
	Error        string         `json:"error"`
}

// SearchFlights queries one-way fares for the day before, the day of and the day after q.Date.
// A failed day is logged and skipped.
func (c *Client) SearchFlights(ctx context.Context, q entity.FlightQuery) ([]entity.FlightOffer, error) {
	base, err := time.Parse(dateLayout, q.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid travel date %q: %w", q.Date, err)
	}

	var offers []entity.FlightOffer
	for _, offset := range []int{-1, 0, 1} {
		date := base.AddDate(0, 0, offset).Format(dateLayout)
		params := map[string]string{
			"engine":        "google_flights",
			"departure_id":  q.Origin,
			"arrival_id":    q.Destination,
			"outbound_date": date,
			"type":          "2",
			"currency":      "USD",
			"hl":            "en",
			"gl":            "us",
			"api_key":       c.apiKey,
		}
		if q.MaxPrice > 0 {
			params["max_price"] = strconv.Itoa(int(q.MaxPrice))
		}

		var body flightsResponse
		res, err := c.http.R().SetContext(ctx).SetQueryParams(params).SetResult(&body).Get("/search.json")
		if err != nil {
			slog.Warn("Flight search failed", "origin", q.Origin, "destination", q.Destination, "date", date, "error", err)
			continue
		}
		if res.IsError() || body.Error != "" {
			slog.Warn("Flight search rejected", "destination", q.Destination, "date", date, "status", res.StatusCode(), "reason", body.Error)
			continue
		}

		for _, opt := range append(body.BestFlights, body.OtherFlights...) {
			if offer, ok := toFlightOffer(opt, date); ok {
				offers = append(offers, offer)
			}
		}
	}
	return offers, nil
}

func toFlightOffer(opt flightOption, date string) (entity.FlightOffer, bool) {
	if len(opt.Flights) == 0 {
		return entity.FlightOffer{}, false
	}
	first, last := opt.Flights[0], opt.Flights[len(opt.Flights)-1]
	offer := entity.FlightOffer{
		Airline:       first.Airline,
		FlightNumber:  first.FlightNumber,
		DepartureTime: first.DepartureAirport.Time,
		ArrivalTime:   last.ArrivalAirport.Time,
		DurationMin:   opt.TotalDuration,
		Aircraft:      first.Airplane,
		Price:         opt.Price,
		DepartureDate: date,
		DepartureCode: first.DepartureAirport.ID,
		ArrivalCode:   last.ArrivalAirport.ID,
		BookingToken:  opt.BookingToken,
	}
	if len(opt.Flights) > 1 && len(opt.Layovers) > 0 {
		offer.Layover = opt.Layovers[0].Name
	}
	return offer, true
}

type hotelProperty struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Link         string `json:"link"`
	RatePerNight struct {
		ExtractedLowest float64 `json:"extracted_lowest"`
	} `json:"rate_per_night"`
	OverallRating float64 `json:"overall_rating"`
}

type hotelsResponse struct {
	Properties []hotelProperty `json:"properties"`
	Error      string          `json:"error"`
}

// SearchHotels lists properties in q.City for the stay. Properties without a nightly rate are dropped.
func (c *Client) SearchHotels(ctx context.Context, q entity.HotelQuery) ([]entity.HotelOffer, error) {
	checkIn, err := time.Parse(dateLayout, q.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("invalid check-in date %q: %w", q.CheckIn, err)
	}
	checkOut, err := time.Parse(dateLayout, q.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("invalid check-out date %q: %w", q.CheckOut, err)
	}
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}

	params := map[string]string{
		"engine":         "google_hotels",
		"q":              "hotels in " + q.City,
		"check_in_date":  q.CheckIn,
		"check_out_date": q.CheckOut,
		"currency":       "USD",
		"gl":             "us",
		"hl":             "en",
		"api_key":        c.apiKey,
	}
	if q.MaxPrice > 0 {
		params["max_price"] = strconv.Itoa(int(q.MaxPrice))
	}

	var body hotelsResponse
	res, err := c.http.R().SetContext(ctx).SetQueryParams(params).SetResult(&body).Get("/search.json")
	if err != nil {
		return nil, fmt.Errorf("hotel search for %s: %w", q.City, err)
	}
	if res.IsError() || body.Error != "" {
		slog.Warn("Hotel search rejected", "city", q.City, "status", res.StatusCode(), "reason", body.Error)
		return nil, nil
	}

	var offers []entity.HotelOffer
	for _, p := range body.Properties {
		nightly := p.RatePerNight.ExtractedLowest
		if nightly <= 0 {
			continue
		}
		offers = append(offers, entity.HotelOffer{
			Name:          p.Name,
			PricePerNight: nightly,
			TotalPrice:    nightly * float64(nights),
			Rating:        p.OverallRating,
			Address:       p.Description,
			Link:          p.Link,
		})
	}
	return offers, nil
}
