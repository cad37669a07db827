package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/user/travel-deals-service/internal/entity"
	"github.com/user/travel-deals-service/internal/repository"
)

// Labels are read in a single English locale with dollar prices.
const CurrencyMarker = "$"

var MonthAbbreviations = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// A comma belongs to the amount only as a thousands separator.
var priceToken = regexp.MustCompile(`\$\s?\d{1,3}(?:,\d{3})+(?:\.\d+)?|\$\s?\d+(?:\.\d+)?`)

// ParseDateRange returns the first comma-separated segment of label that reads like
// "12 Oct to 15 Oct", or entity.UnknownDateRange.
func ParseDateRange(label string) string {
	for _, segment := range strings.Split(label, ",") {
		segment = strings.TrimSpace(segment)
		if hasToken(segment, "to") && hasMonth(segment) {
			return segment
		}
	}
	return entity.UnknownDateRange
}

func hasToken(s, token string) bool {
	for _, f := range strings.Fields(s) {
		if f == token {
			return true
		}
	}
	return false
}

func hasMonth(s string) bool {
	for _, m := range MonthAbbreviations {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func ParseCategory(label string) entity.PriceCategory {
	lower := strings.ToLower(label)
	switch {
	case strings.Contains(lower, "cheapest price"):
		return entity.CategoryCheapest
	case strings.Contains(lower, "low price"):
		return entity.CategoryLow
	default:
		return entity.CategoryNone
	}
}

// PriceSource picks the first of the element's text, aria-label and title that
// carries the currency marker.
func PriceSource(el repository.ElementRef) (string, bool) {
	for _, candidate := range []string{el.Text, el.AriaLabel, el.Title} {
		if strings.Contains(candidate, CurrencyMarker) {
			return candidate, true
		}
	}
	return "", false
}

// ExtractPrice returns the "$<amount>" token from s. When the marker is present
// without digits next to it, the first comma-separated segment holding the marker is used.
func ExtractPrice(s string) (string, bool) {
	if tok := priceToken.FindString(s); tok != "" {
		return strings.ReplaceAll(tok, " ", ""), true
	}
	for _, segment := range strings.Split(s, ",") {
		if segment = strings.TrimSpace(segment); strings.Contains(segment, CurrencyMarker) {
			return segment, true
		}
	}
	return "", false
}

// ParsePrice converts "$1,203.50" to 1203.5.
func ParsePrice(price string) (float64, bool) {
	cleaned := strings.NewReplacer(CurrencyMarker, "", ",", "", " ", "").Replace(price)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// EntryFromElement builds a grid entry from a located element. Elements without
// the currency marker are rejected.
func EntryFromElement(el repository.ElementRef) (entity.PriceGridEntry, bool) {
	source, ok := PriceSource(el)
	if !ok {
		return entity.PriceGridEntry{}, false
	}
	price, ok := ExtractPrice(source)
	if !ok {
		return entity.PriceGridEntry{}, false
	}
	label := el.AriaLabel
	if label == "" {
		label = el.Text
	}
	return entity.PriceGridEntry{
		DateRange: ParseDateRange(label),
		Price:     price,
		Category:  ParseCategory(label),
	}, true
}
