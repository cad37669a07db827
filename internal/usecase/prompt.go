package usecase

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/user/travel-deals-service/internal/entity"
)

const destinationCount = 20

// ItineraryApology is returned in place of an itinerary when generation fails.
const ItineraryApology = "Sorry, there was an error generating your itinerary. Please try again."

const defaultItineraryBudget = 300

// DefaultDestination is recommended when the model's answer cannot be parsed.
var DefaultDestination = entity.Destination{City: "Dallas", AirportCode: "DFW", Activities: "Default activities"}

func DestinationPrompt(vacationType, travelDate string, deals []entity.ListingRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a helpful travel assistant. I need you to suggest %d most popular destination cities for a %s trip.\n", destinationCount, vacationType)
	fmt.Fprintf(&b, "The user plans to travel on %s.\n\n", travelDate)

	b.WriteString("Available Flight Deals:\n")
	if len(deals) == 0 {
		b.WriteString("- none currently listed\n")
	}
	for _, d := range deals {
		fmt.Fprintf(&b, "- %s\n  Fare Availability: %s\n", d.Title, d.AvailabilityText)
	}

	fmt.Fprintf(&b, `
Please consider the available flight deals that match the travel date when suggesting destinations, but also include other relevant destinations that match the trip type.

For each city, provide:
1. The city name
2. The main airport code (3-letter IATA code)
3. A brief list of activities or highlights related to %s that visitors can enjoy there

Format your response as a JSON array with objects containing 'city', 'airport_code', and 'activities' fields.
Do not include any explanations or text outside the JSON array.
Do not include multiple JSON arrays - just one array with all destinations.

Example format:
[
    {"city": "Paris", "airport_code": "CDG", "activities": "Visit the Eiffel Tower, explore the Louvre Museum, enjoy French cuisine"},
    {"city": "Tokyo", "airport_code": "NRT", "activities": "Visit temples, enjoy sushi, explore technology districts"}
]
`, vacationType)
	return b.String()
}

func ItineraryPrompt(q entity.ItineraryQuery) string {
	budget := q.Budget
	if budget <= 0 {
		budget = defaultItineraryBudget
	}

	flightDetails := "- No flight selected"
	budgetAnalysis := "Flight cost: unknown"
	if f := q.Flight; f != nil {
		flightDetails = fmt.Sprintf("- %s %s: Departs %s, Arrives %s (%s) - $%.0f",
			orNA(f.Airline), orNA(f.FlightNumber), orNA(f.DepartureTime), orNA(f.ArrivalTime), orNA(f.Aircraft), f.Price)
		if f.Layover != "" {
			flightDetails += " via " + f.Layover
		}
		budgetAnalysis = fmt.Sprintf("Flight cost: $%.0f", f.Price)
	}

	var b strings.Builder
	b.WriteString("You are a helpful travel assistant. Create a detailed travel itinerary based on the following information:\n\n")
	b.WriteString("LOCATION AND TYPE:\n")
	if q.City != "" {
		fmt.Fprintf(&b, "- Destination: %s (%s)\n", q.City, orNA(q.AirportCode))
	}
	fmt.Fprintf(&b, "- Trip Type: %s\n", q.VacationType)
	fmt.Fprintf(&b, "- Start Date: %s\n", q.TravelDate)
	if q.VacationLength > 0 {
		fmt.Fprintf(&b, "- Length: %d days\n", q.VacationLength)
	}
	fmt.Fprintf(&b, "- Maximum Budget: $%.0f\n", budget)
	if q.Activities != "" {
		fmt.Fprintf(&b, "- Highlights: %s\n", q.Activities)
	}

	fmt.Fprintf(&b, "\nAVAILABLE FLIGHTS:\n%s\n", flightDetails)
	if h := q.Hotel; h != nil {
		fmt.Fprintf(&b, "\nSELECTED HOTEL:\n- %s: $%.0f per night, $%.0f total\n", h.Name, h.PricePerNight, h.TotalPrice)
		budgetAnalysis += fmt.Sprintf("\nHotel cost: $%.0f", h.TotalPrice)
	}
	fmt.Fprintf(&b, "\nBUDGET ANALYSIS:\n%s\n", budgetAnalysis)

	b.WriteString(`
Please create a detailed itinerary that includes:
1. Recommended flight with exact times
2. Total cost estimate
3. Packing list

Format your response as a clear, well-structured itinerary with these sections clearly marked.`)
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

var destinationArray = regexp.MustCompile(`(?s)\[\s*\{.*?\}\s*\]`)

type rawDestination struct {
	City        string          `json:"city"`
	AirportCode string          `json:"airport_code"`
	Activities  json.RawMessage `json:"activities"`
}

// ParseDestinations reads the model's answer. It accepts the first JSON array of
// objects, then a DESTINATION/CITY:/AIRPORT:/ACTIVITIES: line format, and falls
// back to DefaultDestination.
func ParseDestinations(output string) []entity.Destination {
	if match := destinationArray.FindString(output); match != "" {
		var raw []rawDestination
		if err := json.Unmarshal([]byte(match), &raw); err == nil {
			var dests []entity.Destination
			for _, r := range raw {
				if r.City == "" || r.AirportCode == "" {
					continue
				}
				dests = append(dests, entity.Destination{
					City:        strings.TrimSpace(r.City),
					AirportCode: strings.ToUpper(strings.TrimSpace(r.AirportCode)),
					Activities:  activitiesText(r.Activities),
				})
			}
			if len(dests) > 0 {
				return dests
			}
		}
	}

	if dests := parseDestinationLines(output); len(dests) > 0 {
		return dests
	}
	return []entity.Destination{DefaultDestination}
}

// activitiesText accepts either a string or a list of strings.
func activitiesText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ", ")
	}
	return ""
}

func parseDestinationLines(output string) []entity.Destination {
	var (
		dests   []entity.Destination
		current entity.Destination
	)
	flush := func() {
		if current.City != "" && current.AirportCode != "" {
			dests = append(dests, current)
		}
		current = entity.Destination{}
	}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "DESTINATION"):
			flush()
		case strings.HasPrefix(line, "CITY:"):
			current.City = strings.TrimSpace(strings.TrimPrefix(line, "CITY:"))
		case strings.HasPrefix(line, "AIRPORT:"):
			current.AirportCode = strings.TrimSpace(strings.TrimPrefix(line, "AIRPORT:"))
		case strings.HasPrefix(line, "ACTIVITIES:"):
			current.Activities = strings.TrimSpace(strings.TrimPrefix(line, "ACTIVITIES:"))
		}
	}
	flush()
	return dests
}
