package diet

import (
	"testing"

	"family-meal-planner/internal/catalog"
)

func TestRecipeCompliant(t *testing.T) {
	base := catalog.Recipe{
		ID:    "r1",
		Title: "Lentil soup",
		Compliance: catalog.Compliance{
			KosherCategory: "parve",
			HalalFriendly:  true,
			Vegetarian:     true,
			Vegan:          true,
			GlutenFree:     true,
			LactoseFree:    true,
		},
		Ingredients: []catalog.Ingredient{{Name: "Lentils", Allergens: []string{"Legumes"}}},
	}

	tests := []struct {
		name    string
		profile catalog.DietProfile
		recipe  func(r catalog.Recipe) catalog.Recipe
		want    bool
	}{
		{"NoConstraints", catalog.DietProfile{}, nil, true},
		{"KosherWithCategory", catalog.DietProfile{Kosher: true}, nil, true},
		{"KosherWithoutCategory", catalog.DietProfile{Kosher: true}, func(r catalog.Recipe) catalog.Recipe {
			r.KosherCategory = ""
			return r
		}, false},
		{"HalalRequired", catalog.DietProfile{Halal: true}, func(r catalog.Recipe) catalog.Recipe {
			r.HalalFriendly = false
			return r
		}, false},
		{"PescatarianRequired", catalog.DietProfile{Pescatarian: true}, nil, false},
		{"IngredientAllergenCaseInsensitive", catalog.DietProfile{Allergies: []string{" legumes "}}, nil, false},
		{"RecipeAllergen", catalog.DietProfile{Allergies: []string{"sesame"}}, func(r catalog.Recipe) catalog.Recipe {
			r.Allergens = []string{"Sesame"}
			return r
		}, false},
		{"UnrelatedAllergy", catalog.DietProfile{Allergies: []string{"peanut"}}, nil, true},
		{"AllFlags", catalog.DietProfile{Vegetarian: true, Vegan: true, GlutenFree: true, LactoseFree: true}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			if tt.recipe != nil {
				r = tt.recipe(r)
			}
			if got := RecipeCompliant(tt.profile, r); got != tt.want {
				t.Errorf("RecipeCompliant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterComponents(t *testing.T) {
	components := []catalog.FoodComponent{
		{ID: "chicken", Category: catalog.CategoryProtein, Compliance: catalog.Compliance{HalalFriendly: true, GlutenFree: true, LactoseFree: true}},
		{ID: "tofu", Category: catalog.CategoryProtein, Compliance: catalog.Compliance{HalalFriendly: true, Vegetarian: true, Vegan: true, GlutenFree: true, LactoseFree: true}, Allergens: []string{"soy"}},
		{ID: "rice", Category: catalog.CategoryCarb, Compliance: catalog.Compliance{HalalFriendly: true, Vegetarian: true, Vegan: true, GlutenFree: true, LactoseFree: true}},
	}

	got := FilterComponents(catalog.DietProfile{Vegetarian: true, Allergies: []string{"Soy"}}, components)
	if len(got) != 1 || got[0].ID != "rice" {
		t.Errorf("Expected only rice, got %+v", got)
	}

	if got := FilterComponents(catalog.DietProfile{}, components); len(got) != 3 {
		t.Errorf("Expected all components without constraints, got %d", len(got))
	}
}

func TestFilterRecipes(t *testing.T) {
	recipes := []catalog.Recipe{
		{ID: "a", Compliance: catalog.Compliance{GlutenFree: true}},
		{ID: "b"},
	}
	got := FilterRecipes(catalog.DietProfile{GlutenFree: true}, recipes)
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("Expected only gluten-free recipe, got %+v", got)
	}
}
