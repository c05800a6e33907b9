package planner

import (
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"family-meal-planner/internal/catalog"
	"family-meal-planner/internal/schedule"
	"family-meal-planner/internal/schoolmenu"
	"family-meal-planner/internal/shared"
)

var monday = time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)

func fullWeek() schedule.Template {
	t := schedule.Template{ID: "full-week", Name: "Full week"}
	for d := 1; d <= 7; d++ {
		t.Entries = append(t.Entries, schedule.Entry{DayOfWeek: d, MealTypes: []schedule.MealType{schedule.Lunch, schedule.Dinner}})
	}
	return t
}

func testCatalog() []catalog.Recipe {
	return []catalog.Recipe{
		rec("f-pasta", "pasta", true, false),
		rec("f-fish", "fish", true, false),
		rec("f-curry", "curry", true, false),
		rec("n-tagine", "stew", false, true),
		rec("n-ramen", "soup", false, true),
		rec("n-poke", "fish", false, true),
		rec("o-salad", "salad", false, false),
		rec("o-omelette", "eggs", false, false),
	}
}

func TestCompose(t *testing.T) {
	t.Run("SchoolLunchAndDinnerAvoidance", func(t *testing.T) {
		tmpl := schedule.Template{ID: "t", Name: "t", Entries: []schedule.Entry{
			{DayOfWeek: 1, MealTypes: []schedule.MealType{schedule.Lunch, schedule.Dinner}},
		}}
		menu := schoolmenu.NewMenu([]schoolmenu.Entry{
			{Date: monday, MealType: schedule.Lunch, Title: "Pasta bake", Category: "pasta"},
		})
		planned, err := Compose(ComposeInput{
			WeekStart:  monday,
			Template:   tmpl,
			Recipes:    []catalog.Recipe{rec("f-pasta", "pasta", true, false), rec("f-fish", "fish", true, false)},
			Profile:    catalog.DietProfile{FavoriteRatio: 1},
			SchoolMenu: menu,
			Random:     &scriptedRandom{floats: []float64{0.5}},
		})
		if err != nil {
			t.Fatalf("Compose failed: %v", err)
		}
		if len(planned) != 2 {
			t.Fatalf("Expected 2 meals, got %d", len(planned))
		}
		lunch, dinner := planned[0], planned[1]
		if lunch.Source != SourceSchool || lunch.SchoolMealTitle != "Pasta bake" || lunch.Recipe != nil {
			t.Errorf("Expected a school lunch, got %+v", lunch)
		}
		if dinner.Recipe == nil || dinner.Recipe.ID != "f-fish" {
			t.Errorf("Expected dinner to avoid the pasta category, got %+v", dinner.Recipe)
		}
	})

	t.Run("ComponentMeals", func(t *testing.T) {
		components := testComponentBuckets()
		var all []catalog.FoodComponent
		all = append(all, components.Proteins...)
		all = append(all, components.Vegetables...)
		all = append(all, components.Carbs...)

		planned, err := Compose(ComposeInput{
			WeekStart:            monday,
			Template:             fullWeek(),
			Recipes:              testCatalog(),
			Components:           all,
			Profile:              catalog.DefaultDietProfile(),
			ComponentProbability: 1,
			Random:               NewSeededRandom(7),
		})
		if err != nil {
			t.Fatalf("Compose failed: %v", err)
		}

		var recent []string
		for _, m := range planned {
			if m.Source != SourceComponents || m.Recipe != nil {
				t.Fatalf("Expected only component meals, got %+v", m)
			}
			protein := m.Components[0]
			if protein.Role != RoleMainProtein {
				t.Errorf("Expected the protein first, got %s", protein.Role)
			}
			if slices.Contains(recent, protein.Component.ID) {
				t.Errorf("Protein %s repeated within two meals", protein.Component.ID)
			}
			recent = PushRecentProtein(recent, protein.Component.ID)
		}
	})

	t.Run("DietFilterApplied", func(t *testing.T) {
		meat := rec("f-steak", "meat", true, false)
		veg := rec("f-veg", "veg", true, false)
		veg.Vegetarian = true
		planned, err := Compose(ComposeInput{
			WeekStart: monday,
			Template:  fullWeek(),
			Recipes:   []catalog.Recipe{meat, veg},
			Profile:   catalog.DietProfile{Vegetarian: true, FavoriteRatio: 0.6},
			Random:    NewSeededRandom(1),
		})
		if err != nil {
			t.Fatalf("Compose failed: %v", err)
		}
		for _, m := range planned {
			if m.Recipe.ID != "f-veg" {
				t.Errorf("Expected only vegetarian recipes, got %s", m.Recipe.ID)
			}
		}
	})

	t.Run("NoCompliantRecipes", func(t *testing.T) {
		_, err := Compose(ComposeInput{
			WeekStart: monday,
			Template:  fullWeek(),
			Recipes:   []catalog.Recipe{rec("f-steak", "meat", true, false)},
			Profile:   catalog.DietProfile{Vegan: true},
			Random:    NewSeededRandom(1),
		})
		if !errors.Is(err, ErrNoCompliantCatalog) {
			t.Errorf("Expected ErrNoCompliantCatalog, got %v", err)
		}
	})
}

func TestComposeNoveltyOnlyCatalog(t *testing.T) {
	novelties := []catalog.Recipe{rec("n-tagine", "stew", false, true), rec("n-ramen", "soup", false, true)}

	for _, maxNovelties := range []int{0, 1, 2} {
		t.Run(fmt.Sprintf("max%d", maxNovelties), func(t *testing.T) {
			profile := catalog.DefaultDietProfile()
			profile.MaxNovelties = maxNovelties
			planned, err := Compose(ComposeInput{
				WeekStart: monday,
				Template:  fullWeek(),
				Recipes:   novelties,
				Profile:   profile,
				Random:    NewSeededRandom(7),
			})
			if !errors.Is(err, ErrNoveltyCapReached) {
				t.Fatalf("Expected ErrNoveltyCapReached, got %v (%d meals)", err, len(planned))
			}
			if planned != nil {
				t.Errorf("Expected no partial plan, got %d meals", len(planned))
			}
		})
	}

	t.Run("CapCoversTemplate", func(t *testing.T) {
		profile := catalog.DefaultDietProfile()
		profile.MaxNovelties = 2
		tmpl := schedule.Template{ID: "two", Name: "Two dinners", Entries: []schedule.Entry{
			{DayOfWeek: 1, MealTypes: []schedule.MealType{schedule.Dinner}},
			{DayOfWeek: 2, MealTypes: []schedule.MealType{schedule.Dinner}},
		}}
		planned, err := Compose(ComposeInput{
			WeekStart: monday,
			Template:  tmpl,
			Recipes:   novelties,
			Profile:   profile,
			Random:    NewSeededRandom(7),
		})
		if err != nil {
			t.Fatalf("Compose failed: %v", err)
		}
		for _, p := range planned {
			if p.Source != SourceNovelty {
				t.Errorf("Expected novelty meals, got %+v", p)
			}
		}
	})
}

func TestComposeProperties(t *testing.T) {
	tmpl := fullWeek()
	for _, maxNovelties := range []int{0, 1, 2, 5} {
		for seed := uint64(0); seed < 25; seed++ {
			t.Run(fmt.Sprintf("max%d/seed%d", maxNovelties, seed), func(t *testing.T) {
				profile := catalog.DefaultDietProfile()
				profile.MaxNovelties = maxNovelties
				planned, err := Compose(ComposeInput{
					WeekStart:            monday,
					Template:             tmpl,
					Recipes:              testCatalog(),
					Profile:              profile,
					ComponentProbability: DefaultComponentProbability,
					Random:               NewSeededRandom(seed),
				})
				if err != nil {
					t.Fatalf("Compose failed: %v", err)
				}
				if len(planned) != len(tmpl.Slots()) {
					t.Fatalf("Expected %d meals, got %d", len(tmpl.Slots()), len(planned))
				}

				seen := make(map[string]bool)
				novelties := 0
				for _, m := range planned {
					key := fmt.Sprintf("%d|%s", m.DayOfWeek, m.MealType)
					if seen[key] {
						t.Errorf("Slot %s planned twice", key)
					}
					seen[key] = true
					if m.Recipe != nil && m.Recipe.IsNovelty {
						novelties++
					}
				}
				if limit := min(maxNovelties, MaxNoveltiesPerPlan); novelties > limit {
					t.Errorf("Expected at most %d novelties, got %d", limit, novelties)
				}
			})
		}
	}
}

func TestComposeExpress(t *testing.T) {
	t.Run("NoFavorites", func(t *testing.T) {
		_, err := ComposeExpress(ComposeInput{
			Template: fullWeek(),
			Recipes:  []catalog.Recipe{rec("o-salad", "salad", false, false)},
			Random:   NewSeededRandom(1),
		})
		if !errors.Is(err, ErrNoFavoritesAvailable) {
			t.Errorf("Expected ErrNoFavoritesAvailable, got %v", err)
		}
	})

	t.Run("OneNovelty", func(t *testing.T) {
		planned, err := ComposeExpress(ComposeInput{
			Template: fullWeek(),
			Recipes:  testCatalog(),
			Profile:  catalog.DefaultDietProfile(),
			Random:   &scriptedRandom{ints: []int{3, 1}},
		})
		if err != nil {
			t.Fatalf("ComposeExpress failed: %v", err)
		}
		if len(planned) != 14 {
			t.Fatalf("Expected 14 meals, got %d", len(planned))
		}
		novelties := 0
		for i, m := range planned {
			if m.Source == SourceNovelty {
				novelties++
				if i != 3 || m.Recipe.ID != "n-ramen" {
					t.Errorf("Expected n-ramen at position 3, got %s at %d", m.Recipe.ID, i)
				}
				continue
			}
			want := testCatalog()[i%3].ID
			if m.Recipe.ID != want {
				t.Errorf("Position %d: expected cyclic favorite %s, got %s", i, want, m.Recipe.ID)
			}
		}
		if novelties != 1 {
			t.Errorf("Expected exactly 1 novelty, got %d", novelties)
		}
	})

	t.Run("NoveltiesDisabled", func(t *testing.T) {
		planned, err := ComposeExpress(ComposeInput{
			Template: fullWeek(),
			Recipes:  testCatalog(),
			Profile:  catalog.DietProfile{MaxNovelties: 0},
			Random:   NewSeededRandom(3),
		})
		if err != nil {
			t.Fatalf("ComposeExpress failed: %v", err)
		}
		for _, m := range planned {
			if m.Source != SourceFavorite {
				t.Errorf("Expected only favorites, got %s", m.Source)
			}
		}
	})

	t.Run("SkipsOtherMealTypes", func(t *testing.T) {
		tmpl := schedule.Template{ID: "b", Name: "Breakfasts", Entries: []schedule.Entry{
			{DayOfWeek: 1, MealTypes: []schedule.MealType{schedule.Breakfast}},
		}}
		_, err := ComposeExpress(ComposeInput{Template: tmpl, Recipes: testCatalog(), Random: NewSeededRandom(1)})
		if !errors.Is(err, shared.ErrValidation) {
			t.Errorf("Expected a validation error, got %v", err)
		}
	})
}

func TestGetNextMonday(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2024, 9, 4, 15, 0, 0, 0, time.UTC), monday.AddDate(0, 0, 7)},
		{time.Date(2024, 9, 1, 23, 0, 0, 0, time.UTC), monday},
		{monday, monday.AddDate(0, 0, 7)},
	}
	for _, tt := range tests {
		if got := GetNextMonday(tt.in); !got.Equal(tt.want) {
			t.Errorf("GetNextMonday(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
