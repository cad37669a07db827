package extractor

// Listings page.
const (
	ArticleSelector      = `article`
	TitleLinkSelector    = `h2.entry-title a`
	EntryContentSelector = `div.entry-content`
	EntryHeaderSelector  = `header.entry-header`
	HeadingSelector      = `h1, h2, h3, h4, h5, h6`
)

// AvailabilityMarker is the heading text that opens the fare window section.
const AvailabilityMarker = "Fare Availability"

const AvailabilityNotFound = "Fare Availability information not found"

// PostedDateSelectors are probed in order inside the entry header.
var PostedDateSelectors = []string{
	`time.entry-date.published`,
	`time.entry-date`,
	`span.date`,
	`div.posted-on`,
}

// DateGridLabel is the visible text of the grid view toggle.
const DateGridLabel = "Date grid"

// ToggleSelectors locate the date-grid toggle, most specific first.
// The last entry uses non-standard pseudo-classes; engines that reject it
// report no match and the strategy is skipped.
var ToggleSelectors = []string{
	`button[jsname="KqtnKd"]`,
	`button.VfPpkd-LgbsSe[jsname="KqtnKd"]`,
	`button[jscontroller="soHxf"]`,
	`button.ksBjEc.lKxP2d`,
	`button[data-idom-class*="ksBjEc"]`,
	`button span[jsname="V67aGc"]`,
	`button:has(span:contains("Date grid"))`,
}

// PriceSelectors locate price cells once the grid is visible.
var PriceSelectors = []string{
	`div[aria-label*="$"]`,
	`div[jsname] span`,
	`div[role="button"] span`,
	`div[role="gridcell"] span`,
	`div[role="gridcell"] div`,
	`div[jsaction]`,
	`div[data-price]`,
	`div[class*="price"]`,
	`div[class*="cost"]`,
}

// ScrollScript nudges the page so lazily rendered cells are attached.
const ScrollScript = `window.scrollTo(0, 0);
setTimeout(() => window.scrollTo(0, 100), 500);
setTimeout(() => window.scrollTo(0, 0), 1000);`
