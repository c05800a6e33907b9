// Package diet decides which catalog items a family may eat.
//
// Every active constraint of a DietProfile is a conjunctive predicate: an item
// passes only when it satisfies all of them. Output order is not guaranteed.
package diet

import (
	"strings"

	"family-meal-planner/internal/catalog"
)

// FilterRecipes returns the recipes compliant with the profile.
func FilterRecipes(profile catalog.DietProfile, recipes []catalog.Recipe) []catalog.Recipe {
	var out []catalog.Recipe
	for _, r := range recipes {
		if RecipeCompliant(profile, r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterComponents returns the food components compliant with the profile.
func FilterComponents(profile catalog.DietProfile, components []catalog.FoodComponent) []catalog.FoodComponent {
	var out []catalog.FoodComponent
	for _, c := range components {
		if ComponentCompliant(profile, c) {
			out = append(out, c)
		}
	}
	return out
}

// RecipeCompliant checks a recipe, including the allergens of its ingredients.
func RecipeCompliant(profile catalog.DietProfile, r catalog.Recipe) bool {
	if !flagsCompliant(profile, r.Compliance) {
		return false
	}
	if len(profile.Allergies) == 0 {
		return true
	}
	allergies := allergySet(profile.Allergies)
	if intersects(allergies, r.Allergens) {
		return false
	}
	for _, ing := range r.Ingredients {
		if intersects(allergies, ing.Allergens) {
			return false
		}
	}
	return true
}

// ComponentCompliant checks a single food component.
func ComponentCompliant(profile catalog.DietProfile, c catalog.FoodComponent) bool {
	if !flagsCompliant(profile, c.Compliance) {
		return false
	}
	return len(profile.Allergies) == 0 || !intersects(allergySet(profile.Allergies), c.Allergens)
}

func flagsCompliant(p catalog.DietProfile, c catalog.Compliance) bool {
	switch {
	case p.Kosher && c.KosherCategory == "":
		return false
	case p.Halal && !c.HalalFriendly:
		return false
	case p.Vegetarian && !c.Vegetarian:
		return false
	case p.Vegan && !c.Vegan:
		return false
	case p.Pescatarian && !c.Pescatarian:
		return false
	case p.GlutenFree && !c.GlutenFree:
		return false
	case p.LactoseFree && !c.LactoseFree:
		return false
	}
	return true
}

func allergySet(allergies []string) map[string]struct{} {
	set := make(map[string]struct{}, len(allergies))
	for _, a := range allergies {
		if key := normalize(a); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

func intersects(set map[string]struct{}, allergens []string) bool {
	for _, a := range allergens {
		if _, ok := set[normalize(a)]; ok {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
