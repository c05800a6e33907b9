package planner

import (
	"log"
	"time"

	"family-meal-planner/internal/catalog"
	"family-meal-planner/internal/diet"
	"family-meal-planner/internal/schedule"
	"family-meal-planner/internal/schoolmenu"
)

// DefaultComponentProbability is the chance that an eligible slot becomes a
// component meal.
const DefaultComponentProbability = 0.3

// ComposeInput is everything needed to fill a week. Recipes and Components
// are the family-visible catalog; Compose applies the diet filter itself.
type ComposeInput struct {
	WeekStart            time.Time
	Template             schedule.Template
	Recipes              []catalog.Recipe
	Components           []catalog.FoodComponent
	Profile              catalog.DietProfile
	SchoolMenu           schoolmenu.Menu
	ComponentProbability float64
	Random               Random
}

// PlannedMeal is a composer decision for one slot, before persistence.
type PlannedMeal struct {
	DayOfWeek       int
	MealType        schedule.MealType
	Recipe          *catalog.Recipe
	Components      []ComponentPick
	Source          MealSource
	SchoolMealTitle string
}

// Compose fills every slot of the template in order.
func Compose(in ComposeInput) ([]PlannedMeal, error) {
	rng := in.Random
	if rng == nil {
		rng = NewRandom()
	}

	recipes := Partition(diet.FilterRecipes(in.Profile, in.Recipes))
	components := PartitionComponents(diet.FilterComponents(in.Profile, in.Components))
	state := NewSelectionState(in.Profile)
	var recentProteins []string

	var planned []PlannedMeal
	for _, slot := range in.Template.Slots() {
		date := schedule.Date(in.WeekStart, slot.DayOfWeek)

		if slot.MealType == schedule.Lunch {
			if entry, ok := in.SchoolMenu.Entry(date, schedule.Lunch); ok {
				planned = append(planned, PlannedMeal{
					DayOfWeek:       slot.DayOfWeek,
					MealType:        slot.MealType,
					Source:          SourceSchool,
					SchoolMealTitle: entry.Title,
				})
				continue
			}
		}

		if componentSlot(slot.MealType) && components.Ready() && rng.Float64() < in.ComponentProbability {
			picks, err := ComposeComponents(components, recentProteins, rng)
			if err == nil {
				recentProteins = PushRecentProtein(recentProteins, picks[0].Component.ID)
				planned = append(planned, PlannedMeal{
					DayOfWeek:  slot.DayOfWeek,
					MealType:   slot.MealType,
					Components: picks,
					Source:     SourceComponents,
				})
				continue
			}
			log.Printf("Warning: component meal for day %d %s failed, using a recipe: %v", slot.DayOfWeek, slot.MealType, err)
		}

		var avoidCategory string
		if slot.MealType == schedule.Dinner {
			if entry, ok := in.SchoolMenu.Entry(date, schedule.Lunch); ok {
				avoidCategory = entry.Category
			}
		}

		pick, next, err := Select(recipes, state, avoidCategory, in.Profile.FavoriteRatio, rng)
		if err != nil {
			return nil, err
		}
		state = next
		recipe := pick.Recipe
		planned = append(planned, PlannedMeal{
			DayOfWeek: slot.DayOfWeek,
			MealType:  slot.MealType,
			Recipe:    &recipe,
			Source:    pick.Source,
		})
	}
	return planned, nil
}

func componentSlot(mt schedule.MealType) bool {
	return mt == schedule.Lunch || mt == schedule.Dinner
}
