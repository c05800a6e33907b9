package schoolmenu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"family-meal-planner/internal/schedule"
)

const menuPage = `<html><body>
<h1>Weekly menu</h1>
<table class="menu">
  <tr><th>Date</th><th>Dish</th><th>Type</th></tr>
  <tr data-date="2024-09-02" data-meal="lunch">
    <td class="title">Chicken schnitzel</td><td class="category">Poultry</td>
  </tr>
  <tr data-date="2024-09-03" data-meal="LUNCH">
    <td class="title">Fish fingers</td><td class="category">fish</td>
  </tr>
  <tr data-date="not-a-date" data-meal="LUNCH">
    <td class="title">Broken row</td>
  </tr>
  <tr data-date="2024-09-04" data-meal="SNACK">
    <td class="title">Apple</td><td class="category">fruit</td>
  </tr>
</table>
</body></html>`

func TestScraperLookup(t *testing.T) {
	var gotWeek string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotWeek = r.URL.Query().Get("week")
		w.Write([]byte(menuPage))
	}))
	defer server.Close()

	weekStart := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	menu, err := NewScraper(server.URL).Lookup(context.Background(), weekStart)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	if gotWeek != "2024-09-02" {
		t.Errorf("Expected week query param 2024-09-02, got %q", gotWeek)
	}
	if menu.Len() != 3 {
		t.Fatalf("Expected 3 valid rows, got %d", menu.Len())
	}

	e, ok := menu.Entry(weekStart, schedule.Lunch)
	if !ok {
		t.Fatal("Expected Monday lunch entry")
	}
	if e.Title != "Chicken schnitzel" || e.Category != "poultry" {
		t.Errorf("Unexpected entry: %+v", e)
	}

	if _, ok := menu.Entry(weekStart, schedule.Dinner); ok {
		t.Error("Did not expect a dinner entry")
	}
}

func TestScraperLookupFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	if _, err := NewScraper(server.URL).Lookup(context.Background(), time.Now()); err == nil {
		t.Fatal("Expected an error for a non-200 response")
	}
}

func TestStaticLookup(t *testing.T) {
	weekStart := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	src := Static{Entries: []Entry{
		{Date: weekStart, MealType: schedule.Lunch, Title: "Pasta", Category: "pasta"},
		{Date: weekStart.AddDate(0, 0, 7), MealType: schedule.Lunch, Title: "Next week"},
	}}

	menu, err := src.Lookup(context.Background(), weekStart)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if menu.Len() != 1 {
		t.Errorf("Expected only the entry inside the week, got %d", menu.Len())
	}
}
