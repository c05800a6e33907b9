package schoolmenu

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"family-meal-planner/internal/schedule"

	"github.com/PuerkitoBio/goquery"
)

// Scraper reads the weekly menu published by the school as an HTML table:
//
//	<table class="menu">
//	  <tr data-date="2024-09-02" data-meal="LUNCH">
//	    <td class="title">Chicken schnitzel</td><td class="category">poultry</td>
//	  </tr>
//	</table>
type Scraper struct {
	baseURL string
	client  *http.Client
}

// NewScraper creates a Scraper for the given menu page.
func NewScraper(baseURL string) *Scraper {
	return &Scraper{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Lookup fetches the menu page for the week and parses its rows.
func (s *Scraper) Lookup(ctx context.Context, weekStart time.Time) (Menu, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return Menu{}, fmt.Errorf("invalid school menu URL: %w", err)
	}
	q := u.Query()
	q.Set("week", weekStart.Format(dateLayout))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Menu{}, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return Menu{}, fmt.Errorf("failed to fetch school menu: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Menu{}, fmt.Errorf("failed to fetch school menu: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Menu{}, fmt.Errorf("failed to parse school menu: %w", err)
	}

	return NewMenu(parseRows(doc)), nil
}

func parseRows(doc *goquery.Document) []Entry {
	var entries []Entry
	doc.Find("table.menu tr[data-date]").Each(func(_ int, row *goquery.Selection) {
		rawDate, _ := row.Attr("data-date")
		date, err := time.Parse(dateLayout, strings.TrimSpace(rawDate))
		if err != nil {
			log.Printf("Warning: skipping school menu row with bad date %q", rawDate)
			return
		}

		mealType := schedule.Lunch
		if rawMeal, ok := row.Attr("data-meal"); ok {
			mealType = schedule.MealType(strings.ToUpper(strings.TrimSpace(rawMeal)))
		}
		if !mealType.Valid() {
			log.Printf("Warning: skipping school menu row with unknown meal %q", mealType)
			return
		}

		title := strings.TrimSpace(row.Find(".title").Text())
		if title == "" {
			return
		}
		entries = append(entries, Entry{
			Date:     date,
			MealType: mealType,
			Title:    title,
			Category: strings.ToLower(strings.TrimSpace(row.Find(".category").Text())),
		})
	})
	return entries
}
