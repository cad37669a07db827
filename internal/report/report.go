// Package report renders scrape results for the command line.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/user/travel-deals-service/internal/entity"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

const summaryWidth = 60

// ParseFormat is case-insensitive and defaults to table.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// WriteDeals renders a listings report.
func WriteDeals(w io.Writer, f Format, r *entity.DealsReport) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	}

	fmt.Fprintln(w, r.SourceURL)
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Title", "Posted", "Summary", "Link"})
	for i, l := range r.Listings {
		posted := "-"
		if l.PostedDate != nil {
			posted = *l.PostedDate
		}
		t.AppendRow(table.Row{i + 1, l.Title, posted, truncate(l.SummaryText, summaryWidth), l.DetailURL})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d deals", len(r.Listings))})
	t.Render()

	for _, l := range r.Listings {
		fmt.Fprintf(w, "\n%s\n%s\n", l.Title, l.AvailabilityText)
	}
	if r.Error != "" {
		fmt.Fprintf(w, "\nerror: %s\n", r.Error)
	}
	return nil
}

// WritePriceGrid renders price groups in aggregation order.
func WritePriceGrid(w io.Writer, f Format, r *entity.ScrapeResult) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	}

	fmt.Fprintf(w, "%s -> %s (%s to %s)\n", r.Source, r.Destination, r.DateRangeQueried.Start, r.DateRangeQueried.End)
	t := newTable(w)
	t.AppendHeader(table.Row{"Date Range", "Price", "Category"})
	for _, g := range r.Groups {
		for _, e := range g.Entries {
			t.AppendRow(table.Row{g.DateRange, e.Price, string(e.Category)})
		}
		t.AppendSeparator()
	}
	t.AppendFooter(table.Row{"state", string(r.State), fmt.Sprintf("%d prices", len(r.Discovered))})
	t.Render()

	if r.Error != "" {
		fmt.Fprintf(w, "\nerror: %s\n", r.Error)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
