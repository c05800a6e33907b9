package schoolmenu

import (
	"context"
	"time"

	"family-meal-planner/internal/schedule"
)

const dateLayout = "2006-01-02"

// Entry is one meal served at school.
type Entry struct {
	Date     time.Time
	MealType schedule.MealType
	Title    string
	Category string
}

// Menu holds the school entries of a week, keyed by (date, meal type).
type Menu struct {
	entries map[string]Entry
}

// NewMenu indexes entries. Later entries for the same slot win.
func NewMenu(entries []Entry) Menu {
	m := Menu{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		m.entries[key(e.Date, e.MealType)] = e
	}
	return m
}

// Entry returns the school meal served on date for mealType, if any.
func (m Menu) Entry(date time.Time, mealType schedule.MealType) (Entry, bool) {
	e, ok := m.entries[key(date, mealType)]
	return e, ok
}

// Len reports the number of entries in the menu.
func (m Menu) Len() int {
	return len(m.entries)
}

func key(date time.Time, mealType schedule.MealType) string {
	return date.Format(dateLayout) + "|" + string(mealType)
}

// Source provides the school menu of the week starting on weekStart.
type Source interface {
	Lookup(ctx context.Context, weekStart time.Time) (Menu, error)
}

// Static serves a fixed set of entries.
type Static struct {
	Entries []Entry
}

// Lookup returns the entries falling inside the requested week.
func (s Static) Lookup(_ context.Context, weekStart time.Time) (Menu, error) {
	end := weekStart.AddDate(0, 0, 7)
	var inWeek []Entry
	for _, e := range s.Entries {
		if !e.Date.Before(weekStart) && e.Date.Before(end) {
			inWeek = append(inWeek, e)
		}
	}
	return NewMenu(inWeek), nil
}
