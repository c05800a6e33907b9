package planner

import (
	"fmt"
	"strings"

	"family-meal-planner/internal/catalog"
	"family-meal-planner/internal/shared"
)

// ErrNoCompliantCatalog is returned when no recipe survives the diet filter.
var ErrNoCompliantCatalog = fmt.Errorf("%w: no recipe matches the family's diet, add compliant recipes first", shared.ErrInsufficientCatalog)

// ErrNoveltyCapReached is returned when only novelties remain after the
// plan's novelty cap is spent.
var ErrNoveltyCapReached = fmt.Errorf("%w: only novelty recipes are left and the novelty limit is reached, add favorites or other recipes", shared.ErrInsufficientCatalog)

// MaxNoveltiesPerPlan caps novelties regardless of the family preference.
const MaxNoveltiesPerPlan = 2

// Buckets splits a compliant catalog for selection.
type Buckets struct {
	Favorites []catalog.Recipe
	Novelties []catalog.Recipe
	Others    []catalog.Recipe
}

// Partition sorts recipes into buckets, keeping catalog order. A recipe marked
// both favorite and novelty counts as a favorite.
func Partition(recipes []catalog.Recipe) Buckets {
	var b Buckets
	for _, r := range recipes {
		switch {
		case r.IsFavorite:
			b.Favorites = append(b.Favorites, r)
		case r.IsNovelty:
			b.Novelties = append(b.Novelties, r)
		default:
			b.Others = append(b.Others, r)
		}
	}
	return b
}

// Empty reports whether no bucket has a recipe.
func (b Buckets) Empty() bool {
	return len(b.Favorites) == 0 && len(b.Novelties) == 0 && len(b.Others) == 0
}

// SelectionState is threaded through consecutive Select calls.
type SelectionState struct {
	FavoriteIndex int
	NoveltyIndex  int
	OtherIndex    int
	NoveltyCount  int
	NoveltyCap    int
}

// NewSelectionState starts a plan with the novelty cap derived from profile.
func NewSelectionState(profile catalog.DietProfile) SelectionState {
	return SelectionState{NoveltyCap: max(0, min(profile.MaxNovelties, MaxNoveltiesPerPlan))}
}

// Pick is the outcome of one selection.
type Pick struct {
	Recipe catalog.Recipe
	Source MealSource
}

// Select chooses the recipe for one slot and returns the advanced state.
// Items whose category equals avoidCategory are excluded bucket by bucket,
// unless that would empty the bucket.
func Select(b Buckets, st SelectionState, avoidCategory string, favoriteRatio float64, rng Random) (Pick, SelectionState, error) {
	if b.Empty() {
		return Pick{}, st, ErrNoCompliantCatalog
	}

	favorites := avoid(b.Favorites, avoidCategory)
	novelties := avoid(b.Novelties, avoidCategory)
	others := avoid(b.Others, avoidCategory)

	if st.NoveltyCount < st.NoveltyCap && len(novelties) > 0 {
		r := novelties[st.NoveltyIndex%len(novelties)]
		st.NoveltyIndex++
		st.NoveltyCount++
		return Pick{Recipe: r, Source: SourceNovelty}, st, nil
	}

	if len(favorites) > 0 && rng.Float64() < favoriteRatio {
		r := favorites[st.FavoriteIndex%len(favorites)]
		st.FavoriteIndex++
		return Pick{Recipe: r, Source: SourceFavorite}, st, nil
	}

	if len(others) > 0 {
		r := others[st.OtherIndex%len(others)]
		st.OtherIndex++
		return Pick{Recipe: r, Source: SourceOther}, st, nil
	}

	for _, bucket := range [][]catalog.Recipe{favorites, others} {
		if len(bucket) > 0 {
			return Pick{Recipe: bucket[0], Source: SourceFallback}, st, nil
		}
	}
	// Only novelties are left and the cap is spent.
	return Pick{}, st, ErrNoveltyCapReached
}

func avoid(recipes []catalog.Recipe, category string) []catalog.Recipe {
	if category == "" || len(recipes) == 0 {
		return recipes
	}
	var kept []catalog.Recipe
	for _, r := range recipes {
		if !strings.EqualFold(r.Category, category) {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return recipes
	}
	return kept
}
