package serpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/travel-deals-service/internal/entity"
)

const flightsJSON = `{
  "best_flights": [{
    "flights": [
      {"departure_airport": {"id": "DFW", "time": "2026-11-01 08:00"}, "arrival_airport": {"id": "ORD", "time": "2026-11-01 10:30"}, "airline": "American", "flight_number": "AA 100", "airplane": "Boeing 737"},
      {"departure_airport": {"id": "ORD", "time": "2026-11-01 12:00"}, "arrival_airport": {"id": "LIS", "time": "2026-11-02 06:00"}, "airline": "TAP", "flight_number": "TP 222", "airplane": "A330"}
    ],
    "layovers": [{"name": "O'Hare International Airport"}],
    "total_duration": 900,
    "price": 640,
    "booking_token": "tok"
  }],
  "other_flights": [{"flights": [], "price": 10}]
}`

func TestSearchFlightsQueriesThreeDays(t *testing.T) {
	var dates []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "google_flights", q.Get("engine"))
		assert.Equal(t, "key", q.Get("api_key"))
		assert.Equal(t, "500", q.Get("max_price"))
		dates = append(dates, q.Get("outbound_date"))
		if q.Get("outbound_date") == "2026-11-02" {
			http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(flightsJSON))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", 5*time.Second)
	offers, err := c.SearchFlights(context.Background(), entity.FlightQuery{
		Origin: "DFW", Destination: "LIS", Date: "2026-11-01", MaxPrice: 500.9,
	})
	require.NoError(t, err)

	sort.Strings(dates)
	assert.Equal(t, []string{"2026-10-31", "2026-11-01", "2026-11-02"}, dates)
	require.Len(t, offers, 2)

	got := offers[0]
	assert.Equal(t, "American", got.Airline)
	assert.Equal(t, "AA 100", got.FlightNumber)
	assert.Equal(t, "DFW", got.DepartureCode)
	assert.Equal(t, "LIS", got.ArrivalCode)
	assert.Equal(t, "2026-11-02 06:00", got.ArrivalTime)
	assert.Equal(t, "O'Hare International Airport", got.Layover)
	assert.Equal(t, 900, got.DurationMin)
	assert.Equal(t, 640.0, got.Price)
	assert.Equal(t, "2026-10-31", got.DepartureDate)
}

func TestSearchFlightsRejectsBadDate(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", "key", time.Second)
	_, err := c.SearchFlights(context.Background(), entity.FlightQuery{Date: "11/01/2026"})
	assert.Error(t, err)
}

func TestSearchHotels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "google_hotels", q.Get("engine"))
		assert.Equal(t, "hotels in Lisbon", q.Get("q"))
		assert.Equal(t, "2026-11-08", q.Get("check_out_date"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"properties": [
			{"name": "Casa", "description": "Alfama", "rate_per_night": {"extracted_lowest": 120}, "overall_rating": 4.6},
			{"name": "No Rate"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", 5*time.Second)
	offers, err := c.SearchHotels(context.Background(), entity.HotelQuery{
		City: "Lisbon", CheckIn: "2026-11-01", CheckOut: "2026-11-08",
	})
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, entity.HotelOffer{Name: "Casa", PricePerNight: 120, TotalPrice: 840, Rating: 4.6, Address: "Alfama"}, offers[0])
}
