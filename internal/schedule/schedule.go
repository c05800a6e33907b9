package schedule

import (
	"fmt"
	"time"

	"family-meal-planner/internal/shared"
)

// MealType identifies a meal within a day.
type MealType string

const (
	Breakfast MealType = "BREAKFAST"
	Lunch     MealType = "LUNCH"
	Dinner    MealType = "DINNER"
	Snack     MealType = "SNACK"
)

// Valid reports whether m is a known meal type.
func (m MealType) Valid() bool {
	switch m {
	case Breakfast, Lunch, Dinner, Snack:
		return true
	}
	return false
}

// Rank orders meal types within a day.
func (m MealType) Rank() int {
	switch m {
	case Breakfast:
		return 0
	case Lunch:
		return 1
	case Snack:
		return 2
	case Dinner:
		return 3
	}
	return 4
}

// Entry lists the meals served on one weekday (1 = Monday ... 7 = Sunday).
type Entry struct {
	DayOfWeek int        `json:"dayOfWeek" yaml:"day"`
	MealTypes []MealType `json:"mealTypes" yaml:"meals"`
}

// Template is an ordered weekly meal-slot layout.
type Template struct {
	ID       string  `json:"id" yaml:"id"`
	FamilyID string  `json:"familyId,omitempty" yaml:"-"`
	Name     string  `json:"name" yaml:"name"`
	Entries  []Entry `json:"entries" yaml:"entries"`
	System   bool    `json:"system" yaml:"-"`
}

// Slot is a single (day, meal type) position in a week.
type Slot struct {
	DayOfWeek int
	MealType  MealType
}

// Validate checks the template shape: 1 to 7 distinct days, each with at
// least one distinct, known meal type.
func (t Template) Validate() error {
	if t.ID == "" {
		return shared.Validationf("template id is required")
	}
	if t.Name == "" {
		return shared.Validationf("template name is required")
	}
	if len(t.Entries) == 0 || len(t.Entries) > 7 {
		return shared.Validationf("template must have between 1 and 7 days, got %d", len(t.Entries))
	}

	seenDays := make(map[int]bool)
	for _, e := range t.Entries {
		if e.DayOfWeek < 1 || e.DayOfWeek > 7 {
			return shared.Validationf("day of week must be between 1 and 7, got %d", e.DayOfWeek)
		}
		if seenDays[e.DayOfWeek] {
			return shared.Validationf("day %d appears more than once", e.DayOfWeek)
		}
		seenDays[e.DayOfWeek] = true

		if len(e.MealTypes) == 0 {
			return shared.Validationf("day %d has no meal types", e.DayOfWeek)
		}
		seenMeals := make(map[MealType]bool)
		for _, m := range e.MealTypes {
			if !m.Valid() {
				return shared.Validationf("unknown meal type %q on day %d", m, e.DayOfWeek)
			}
			if seenMeals[m] {
				return shared.Validationf("meal type %s appears twice on day %d", m, e.DayOfWeek)
			}
			seenMeals[m] = true
		}
	}
	return nil
}

// Slots flattens the template into slots, preserving entry order.
func (t Template) Slots() []Slot {
	var slots []Slot
	for _, e := range t.Entries {
		for _, m := range e.MealTypes {
			slots = append(slots, Slot{DayOfWeek: e.DayOfWeek, MealType: m})
		}
	}
	return slots
}

// HasSlot reports whether the template serves mealType on day.
func (t Template) HasSlot(day int, mealType MealType) bool {
	for _, e := range t.Entries {
		if e.DayOfWeek != day {
			continue
		}
		for _, m := range e.MealTypes {
			if m == mealType {
				return true
			}
		}
	}
	return false
}

// Date returns the calendar date of a weekday in the week starting on weekStart.
func Date(weekStart time.Time, dayOfWeek int) time.Time {
	return weekStart.AddDate(0, 0, dayOfWeek-1)
}

// DayName returns the English weekday name for an ISO day number.
func DayName(dayOfWeek int) string {
	if dayOfWeek < 1 || dayOfWeek > 7 {
		return fmt.Sprintf("Day %d", dayOfWeek)
	}
	return time.Weekday(dayOfWeek % 7).String()
}
