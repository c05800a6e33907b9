package planner

import (
	"fmt"

	"family-meal-planner/internal/diet"
	"family-meal-planner/internal/shared"
)

// ErrNoFavoritesAvailable is returned by express generation without favorites.
var ErrNoFavoritesAvailable = fmt.Errorf("%w: no favorite recipes, mark some recipes as favorites first", shared.ErrInsufficientCatalog)

// ComposeExpress fills the lunch and dinner slots from favorites in turn, then
// swaps one random meal for a random novelty when the family allows novelties.
func ComposeExpress(in ComposeInput) ([]PlannedMeal, error) {
	rng := in.Random
	if rng == nil {
		rng = NewRandom()
	}

	buckets := Partition(diet.FilterRecipes(in.Profile, in.Recipes))
	if len(buckets.Favorites) == 0 {
		return nil, ErrNoFavoritesAvailable
	}

	var planned []PlannedMeal
	for _, slot := range in.Template.Slots() {
		if !componentSlot(slot.MealType) {
			continue
		}
		recipe := buckets.Favorites[len(planned)%len(buckets.Favorites)]
		planned = append(planned, PlannedMeal{
			DayOfWeek: slot.DayOfWeek,
			MealType:  slot.MealType,
			Recipe:    &recipe,
			Source:    SourceFavorite,
		})
	}
	if len(planned) == 0 {
		return nil, shared.Validationf("template %s has no lunch or dinner slots", in.Template.ID)
	}

	if len(buckets.Novelties) > 0 && NewSelectionState(in.Profile).NoveltyCap > 0 {
		k := rng.IntN(len(planned))
		novelty := buckets.Novelties[rng.IntN(len(buckets.Novelties))]
		planned[k].Recipe = &novelty
		planned[k].Source = SourceNovelty
	}
	return planned, nil
}
