package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/travel-deals-service/pkg/utils"
)

const summaryLimit = 200

// ListingStub is what the listings page says about a deal before its detail page is read.
type ListingStub struct {
	Title   string
	URL     string
	Summary string
}

// ParseListings walks the article elements of a listings page in document order.
// Articles without a title link are skipped, as are repeated detail URLs.
func ParseListings(doc *goquery.Document, base *url.URL) []ListingStub {
	var stubs []ListingStub
	seen := make(map[string]bool)

	doc.Find(ArticleSelector).Each(func(_ int, article *goquery.Selection) {
		link := article.Find(TitleLinkSelector).First()
		if link.Length() == 0 {
			return
		}
		href, ok := link.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		absURL, err := utils.ToAbsoluteURL(base, href)
		if err != nil || seen[absURL] {
			return
		}
		seen[absURL] = true

		stubs = append(stubs, ListingStub{
			Title:   strings.TrimSpace(link.Text()),
			URL:     absURL,
			Summary: Summarize(article.Find(EntryContentSelector).First()),
		})
	})
	return stubs
}

// Summarize joins the text nodes of sel with single spaces and truncates the
// result to a fixed number of characters followed by an ellipsis.
func Summarize(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	var parts []string
	collectText(sel, &parts)
	text := strings.Join(parts, " ")
	if text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) > summaryLimit {
		runes = runes[:summaryLimit]
	}
	return string(runes) + "..."
}

func collectText(sel *goquery.Selection, parts *[]string) {
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		if goquery.NodeName(node) != "#text" {
			collectText(node, parts)
			return
		}
		if t := strings.TrimSpace(node.Text()); t != "" {
			*parts = append(*parts, t)
		}
	})
}

// ExtractAvailability returns the lines following the first heading that mentions
// the availability marker, up to the next heading of the same level.
func ExtractAvailability(doc *goquery.Document) string {
	scope := doc.Find(EntryContentSelector).First()
	if scope.Length() == 0 {
		scope = doc.Selection
	}

	heading := scope.Find(HeadingSelector).FilterFunction(func(_ int, h *goquery.Selection) bool {
		return strings.Contains(h.Text(), AvailabilityMarker)
	}).First()
	if heading.Length() == 0 {
		return AvailabilityNotFound
	}

	level := goquery.NodeName(heading)
	var lines []string
	for sib := heading.Next(); sib.Length() > 0; sib = sib.Next() {
		if goquery.NodeName(sib) == level {
			break
		}
		if t := strings.TrimSpace(sib.Text()); t != "" {
			lines = append(lines, t)
		}
	}
	return strings.Join(lines, "\n")
}

// ExtractPostedDate probes PostedDateSelectors in the entry header. Nil means no date was found.
func ExtractPostedDate(doc *goquery.Document) *string {
	scope := doc.Find(EntryHeaderSelector).First()
	if scope.Length() == 0 {
		scope = doc.Selection
	}
	for _, selector := range PostedDateSelectors {
		if t := strings.TrimSpace(scope.Find(selector).First().Text()); t != "" {
			return &t
		}
	}
	return nil
}
