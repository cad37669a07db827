package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/travel-deals-service/internal/entity"
)

func TestParseDestinations(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []entity.Destination
	}{
		{
			name:   "json array inside prose",
			output: `Here: [{"city": "Cancun", "airport_code": "CUN", "activities": "Snorkeling"}] enjoy!`,
			want:   []entity.Destination{{City: "Cancun", AirportCode: "CUN", Activities: "Snorkeling"}},
		},
		{
			name: "line format",
			output: "DESTINATION 1\nCITY: Denver\nAIRPORT: DEN\nACTIVITIES: Skiing\n" +
				"DESTINATION 2\nCITY: Nowhere\n" +
				"DESTINATION 3\nCITY: Aspen\nAIRPORT: ASE\n",
			want: []entity.Destination{
				{City: "Denver", AirportCode: "DEN", Activities: "Skiing"},
				{City: "Aspen", AirportCode: "ASE"},
			},
		},
		{
			name:   "malformed json falls through to default",
			output: `[{"city": "Cancun", "airport_code": }]`,
			want:   []entity.Destination{DefaultDestination},
		},
		{
			name:   "empty output",
			output: "",
			want:   []entity.Destination{DefaultDestination},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDestinations(tt.output))
		})
	}
}

func TestDestinationPromptListsDeals(t *testing.T) {
	prompt := DestinationPrompt("ski", "2026-12-20", []entity.ListingRecord{
		{Title: "Dallas to Denver $99", AvailabilityText: "December 2026"},
	})
	assert.Contains(t, prompt, "20 most popular destination cities for a ski trip")
	assert.Contains(t, prompt, "- Dallas to Denver $99\n  Fare Availability: December 2026")
	assert.Contains(t, prompt, "related to ski")
}

func TestItineraryPromptWithoutFlight(t *testing.T) {
	prompt := ItineraryPrompt(entity.ItineraryQuery{
		City: "Denver", AirportCode: "DEN", VacationType: "ski", TravelDate: "2026-12-20", Budget: 900,
		Hotel: &entity.HotelOffer{Name: "Lodge", PricePerNight: 150, TotalPrice: 750},
	})
	assert.Contains(t, prompt, "- Destination: Denver (DEN)")
	assert.Contains(t, prompt, "- No flight selected")
	assert.Contains(t, prompt, "Maximum Budget: $900")
	assert.Contains(t, prompt, "Hotel cost: $750")
}
