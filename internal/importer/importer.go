// Package importer parses HTML event listings into submission field sets.
//
// It understands two common shapes of exported listing: elements carrying
// an "event" class with field sub-elements, and plain tables whose rows
// are title/date/time/location. Parsed rows are returned as field sets
// ready for the create operation; feeding them to the backend is the
// caller's job.
package importer

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"eventdesk/internal/event"
)

const (
	UserAgent = "eventdesk-importer/1.0"
	Timeout   = 30 * time.Second
)

// Importer fetches and parses HTML event listings.
type Importer struct {
	client *http.Client
}

// New creates an Importer with a default HTTP client.
func New() *Importer {
	return &Importer{
		client: &http.Client{
			Timeout: Timeout,
		},
	}
}

// FetchListing downloads an HTML listing and parses it.
func (im *Importer) FetchListing(url string) ([]event.Fields, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := im.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return Parse(resp.Body)
}

// Parse extracts event field sets from an HTML document.
func Parse(r io.Reader) ([]event.Fields, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	rows := make([]event.Fields, 0)

	// Strategy 1: structured listings with an "event" class
	doc.Find(".event").Each(func(i int, sel *goquery.Selection) {
		fields := event.Fields{
			"title":       text(sel, ".title"),
			"date":        normalizeDate(text(sel, ".date")),
			"time":        text(sel, ".time"),
			"location":    text(sel, ".location"),
			"description": text(sel, ".description"),
		}
		if src, ok := sel.Find("img").First().Attr("src"); ok {
			fields["image"] = src
		}
		if fields["title"] != "" {
			rows = append(rows, fields)
		}
	})

	// Strategy 2: table rows of title / date / time / location
	if len(rows) == 0 {
		doc.Find("table tr").Each(func(i int, sel *goquery.Selection) {
			cells := sel.Find("td")
			if cells.Length() < 4 {
				return
			}
			fields := event.Fields{
				"title":    strings.TrimSpace(cells.Eq(0).Text()),
				"date":     normalizeDate(strings.TrimSpace(cells.Eq(1).Text())),
				"time":     strings.TrimSpace(cells.Eq(2).Text()),
				"location": strings.TrimSpace(cells.Eq(3).Text()),
			}
			if cells.Length() > 4 {
				fields["description"] = strings.TrimSpace(cells.Eq(4).Text())
			}
			if fields["title"] != "" {
				rows = append(rows, fields)
			}
		})
	}

	// Deduplicate by title and date
	seen := make(map[string]bool)
	unique := make([]event.Fields, 0, len(rows))
	for _, fields := range rows {
		key := strings.ToLower(fields["title"]) + "|" + fields["date"]
		if !seen[key] {
			seen[key] = true
			unique = append(unique, fields)
		}
	}

	return unique, nil
}

func text(sel *goquery.Selection, selector string) string {
	return strings.TrimSpace(sel.Find(selector).First().Text())
}

// normalizeDate rewrites any date the event package can parse into the
// wire format; anything else is kept as-is and left to validation.
func normalizeDate(s string) string {
	t := event.ParseDate(s)
	if t.IsZero() {
		return s
	}
	return t.Format(event.WireDate)
}
