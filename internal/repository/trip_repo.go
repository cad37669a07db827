package repository

import (
	"context"

	"github.com/user/travel-deals-service/internal/entity"
)

// OfferSearcher looks up flight and hotel offers. Results are best effort and may be empty.
type OfferSearcher interface {
	SearchFlights(ctx context.Context, q entity.FlightQuery) ([]entity.FlightOffer, error)
	SearchHotels(ctx context.Context, q entity.HotelQuery) ([]entity.HotelOffer, error)
}

// TextGenerator produces free text from a prompt. Failures wrap ErrGeneration.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TripCache keeps the most recent trip plan. A lookup with a different key is a miss.
type TripCache interface {
	Get(ctx context.Context, key string) (*entity.TripPlan, error)
	Set(ctx context.Context, key string, plan *entity.TripPlan) error
	// Latest returns the last stored plan regardless of key.
	Latest(ctx context.Context) (*entity.TripPlan, error)
}
