package shopping

import (
	"sort"
	"strings"

	"family-meal-planner/internal/catalog"
)

const (
	childGuestWeight = 0.7

	GlutenFreeHint  = "gluten-free version"
	LactoseFreeHint = "lactose-free version"
)

var displayCategories = map[string]string{
	"meat":       "Butcher",
	"poultry":    "Butcher",
	"fish":       "Fishmonger",
	"seafood":    "Fishmonger",
	"produce":    "Produce",
	"vegetables": "Produce",
	"vegetable":  "Produce",
	"fruit":      "Produce",
	"herbs":      "Produce",
	"dairy":      "Dairy",
	"eggs":       "Dairy",
	"pantry":     "Pantry",
	"grains":     "Pantry",
	"spices":     "Pantry",
	"canned":     "Pantry",
	"bakery":     "Bakery",
	"bread":      "Bakery",
	"frozen":     "Frozen",
	"beverages":  "Drinks",
}

// DisplayCategory maps an ingredient category to its store aisle. Unknown
// categories pass through unchanged.
func DisplayCategory(category string) string {
	if c, ok := displayCategories[strings.ToLower(strings.TrimSpace(category))]; ok {
		return c
	}
	return category
}

// Item is one line of a shopping list.
type Item struct {
	Name           string   `json:"name"`
	TranslatedName string   `json:"translatedName,omitempty"`
	Quantity       float64  `json:"quantity"`
	Unit           string   `json:"unit"`
	Category       string   `json:"category"`
	Alternatives   []string `json:"alternatives"`
	RecipeNames    []string `json:"recipeNames"`
	InStock        bool     `json:"inStock"`
	Order          int      `json:"order"`

	containsGluten  bool
	containsLactose bool
}

type GuestInput struct {
	Adults   int
	Children int
}

// ComponentInput is a component of a meal with its per-person quantity.
type ComponentInput struct {
	Component catalog.FoodComponent
	Quantity  float64
	Unit      string
}

// MealInput is a meal as the aggregator sees it: either a recipe or components.
type MealInput struct {
	Portions   int
	Skipped    bool
	School     bool
	EatenOut   bool
	Guests     []GuestInput
	Recipe     *catalog.Recipe
	Components []ComponentInput
}

// PlanInput is a fully loaded plan.
type PlanInput struct {
	Meals     []MealInput
	Inventory []catalog.InventoryItem
	Diet      catalog.DietProfile
}

type itemKey struct {
	name, unit, category string
}

type stockKey struct {
	name, unit string
}

func newStockKey(name, unit string) stockKey {
	return stockKey{strings.ToLower(strings.TrimSpace(name)), strings.ToLower(strings.TrimSpace(unit))}
}

// Aggregate derives the shopping list of a plan. It is pure: the same input
// always yields the same list.
func Aggregate(in PlanInput) []Item {
	var items []*Item
	index := make(map[itemKey]*Item)

	add := func(name string, qty float64, unit, category, recipe string, gluten, lactose bool, alternatives []string) {
		name = strings.TrimSpace(name)
		category = DisplayCategory(category)
		key := itemKey{strings.ToLower(name), strings.ToLower(strings.TrimSpace(unit)), category}

		it, ok := index[key]
		if !ok {
			it = &Item{Name: name, Unit: strings.TrimSpace(unit), Category: category}
			index[key] = it
			items = append(items, it)
		}
		it.Quantity += qty
		it.containsGluten = it.containsGluten || gluten
		it.containsLactose = it.containsLactose || lactose
		it.RecipeNames = appendDistinct(it.RecipeNames, recipe)
		for _, a := range alternatives {
			it.Alternatives = appendDistinct(it.Alternatives, a)
		}
	}

	for _, m := range in.Meals {
		if m.Skipped || m.School || m.EatenOut {
			continue
		}
		portions := float64(max(m.Portions, 1))
		guests := totalGuests(m.Guests)

		switch {
		case m.Recipe != nil:
			servingFactor := 1.0
			if m.Recipe.Servings > 0 {
				servingFactor = portions / float64(m.Recipe.Servings)
			}
			factor := servingFactor * (1 + guests/portions)
			for _, ing := range m.Recipe.Ingredients {
				add(ing.Name, ing.Quantity*factor, ing.Unit, ing.Category, m.Recipe.Title,
					ing.ContainsGluten, ing.ContainsLactose, ing.Alternatives)
			}
		case len(m.Components) > 0:
			for _, c := range m.Components {
				category := c.Component.ShoppingCategory
				if category == "" {
					category = strings.ToLower(string(c.Component.Category))
				}
				add(c.Component.Name, c.Quantity*(portions+guests), c.Unit, category, "",
					c.Component.ContainsGluten, c.Component.ContainsLactose, nil)
			}
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})

	// Stock matches on name and unit. Rows naming the same product in the
	// same unit are summed; a unit mismatch never deducts.
	stock := make(map[stockKey]float64, len(in.Inventory))
	for _, inv := range in.Inventory {
		stock[newStockKey(inv.Name, inv.Unit)] += inv.Quantity
	}

	out := make([]Item, 0, len(items))
	for i, it := range items {
		var hints []string
		if in.Diet.GlutenFree && it.containsGluten {
			hints = append(hints, GlutenFreeHint)
		}
		if in.Diet.LactoseFree && it.containsLactose {
			hints = append(hints, LactoseFreeHint)
		}
		it.Alternatives = append(hints, it.Alternatives...)

		remaining := it.Quantity
		sk := newStockKey(it.Name, it.Unit)
		if available := stock[sk]; available > 0 {
			used := min(available, remaining)
			stock[sk] = available - used
			remaining -= used
			it.InStock = remaining == 0
		}
		it.Quantity = RoundQuantity(remaining, it.Unit)

		if it.Alternatives == nil {
			it.Alternatives = []string{}
		}
		if it.RecipeNames == nil {
			it.RecipeNames = []string{}
		}
		it.Order = i
		out = append(out, *it)
	}
	return out
}

func totalGuests(guests []GuestInput) float64 {
	var total float64
	for _, g := range guests {
		total += float64(g.Adults) + float64(g.Children)*childGuestWeight
	}
	return total
}

func appendDistinct(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
