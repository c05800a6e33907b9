package shopping

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"family-meal-planner/internal/catalog"
	"family-meal-planner/internal/cutoff"
	"family-meal-planner/internal/database"
	"family-meal-planner/internal/planner"
	"family-meal-planner/internal/schedule"
	"family-meal-planner/internal/shared"
)

type fakeTranslator struct {
	calls int
	err   error
}

func (f *fakeTranslator) Translate(_ context.Context, names []string) (map[string]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]string, len(names))
	for _, n := range names {
		out[n] = "fr:" + n
	}
	return out, nil
}

type fixture struct {
	svc   *Service
	plans *planner.PlanRepository
	cat   *catalog.Repository
	plan  *planner.WeeklyPlan
}

func newFixture(t *testing.T, translator Translator) *fixture {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "shopping.db"))
	if err != nil {
		t.Fatalf("Failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	cat := catalog.NewRepository(db.SQL)
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}
	must(cat.SaveFamily(ctx, catalog.Family{ID: "fam-1", Name: "Levi", Diet: catalog.DietProfile{GlutenFree: true}}))
	must(cat.SaveRecipe(ctx, catalog.Recipe{
		ID: "r-stew", Title: "Stew", Servings: 4,
		Ingredients: []catalog.Ingredient{
			{Name: "Beef", Quantity: 400, Unit: "g", Category: "meat"},
			{Name: "Carrots", Quantity: 300, Unit: "g", Category: "produce"},
		},
	}))
	must(cat.SaveRecipe(ctx, catalog.Recipe{
		ID: "r-pasta", Title: "Pasta", Servings: 2,
		Ingredients: []catalog.Ingredient{
			{Name: "Spaghetti", Quantity: 250, Unit: "g", Category: "pantry", ContainsGluten: true},
			{Name: "Carrots", Quantity: 100, Unit: "g", Category: "produce"},
		},
	}))
	must(cat.SaveComponent(ctx, catalog.FoodComponent{
		ID: "c-chicken", Name: "Chicken breast", Category: catalog.CategoryProtein,
		DefaultQuantity: 150, Unit: "g", ShoppingCategory: "meat",
	}))
	must(cat.SaveInventoryItem(ctx, catalog.InventoryItem{ID: "inv-1", FamilyID: "fam-1", Name: "carrots", Quantity: 100, Unit: "g"}))

	plans := planner.NewPlanRepository(db.SQL)
	plan := &planner.WeeklyPlan{
		FamilyID:   "fam-1",
		WeekStart:  time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC),
		Status:     cutoff.StatusDraft,
		TemplateID: schedule.DefaultTemplateID,
		CreatedBy:  "m1",
		Meals: []planner.Meal{
			{DayOfWeek: 1, MealType: schedule.Dinner, RecipeID: "r-stew", Source: planner.SourceFavorite, Portions: 4},
			{DayOfWeek: 2, MealType: schedule.Dinner, RecipeID: "r-pasta", Source: planner.SourceOther, Portions: 4},
			{DayOfWeek: 3, MealType: schedule.Dinner, Source: planner.SourceComponents, Portions: 2, Components: []planner.MealComponent{
				{ComponentID: "c-chicken", Role: planner.RoleMainProtein, Quantity: 150, Unit: "g"},
			}},
			{DayOfWeek: 4, MealType: schedule.Dinner, RecipeID: "r-stew", IsSkipped: true, Portions: 4},
		},
	}
	must(plans.Create(ctx, plan))

	return &fixture{
		svc:   NewService(plans, cat, NewRepository(db.SQL), translator),
		plans: plans,
		cat:   cat,
		plan:  plan,
	}
}

func TestServiceRegenerate(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	list, err := f.svc.Regenerate(ctx, f.plan.ID)
	if err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}

	stored, err := f.svc.Get(ctx, f.plan.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stored.ID != list.ID || len(stored.Items) != len(list.Items) {
		t.Fatalf("Stored list differs from the returned one: %+v vs %+v", stored, list)
	}

	// Carrots: 300 (stew) + 200 (pasta at 4 of 2 servings) - 100 in stock.
	carrots := findItem(stored.Items, "Carrots", "g")
	if carrots == nil || carrots.Quantity != 400 || carrots.InStock {
		t.Errorf("Unexpected carrots: %+v", carrots)
	}
	if len(carrots.RecipeNames) != 2 {
		t.Errorf("Expected provenance from 2 recipes, got %v", carrots.RecipeNames)
	}

	// Beef only from the non-skipped stew.
	if beef := findItem(stored.Items, "Beef", "g"); beef == nil || beef.Quantity != 400 {
		t.Errorf("Unexpected beef: %+v", beef)
	}
	if chicken := findItem(stored.Items, "Chicken breast", "g"); chicken == nil || chicken.Quantity != 300 {
		t.Errorf("Unexpected chicken: %+v", chicken)
	}
	if pasta := findItem(stored.Items, "Spaghetti", "g"); pasta == nil || len(pasta.Alternatives) == 0 || pasta.Alternatives[0] != GlutenFreeHint {
		t.Errorf("Expected a gluten-free hint on spaghetti, got %+v", pasta)
	}
}

func TestRegenerationMatchesFreshAggregation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	if _, err := f.svc.Regenerate(ctx, f.plan.ID); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}

	stew := f.plan.Meals[0].ID
	skipped := f.plan.Meals[3].ID
	mutations := []struct {
		name string
		fn   func() error
	}{
		{"ChangePortions", func() error { return f.plans.SetPortions(ctx, stew, 8) }},
		{"SwapRecipe", func() error { return f.plans.SetRecipe(ctx, stew, "r-pasta", planner.SourceManual) }},
		{"RestoreMeal", func() error { return f.plans.SetSkipped(ctx, skipped, false, "", false) }},
		{"AddGuests", func() error {
			return f.plans.ReplaceGuests(ctx, skipped, []planner.Guest{{Adults: 1, Children: 2}})
		}},
		{"AddMeal", func() error {
			return f.plans.AddMeal(ctx, &planner.Meal{PlanID: f.plan.ID, DayOfWeek: 5, MealType: schedule.Dinner, RecipeID: "r-stew", Portions: 2})
		}},
	}

	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			if err := m.fn(); err != nil {
				t.Fatalf("Mutation failed: %v", err)
			}
			if _, err := f.svc.Regenerate(ctx, f.plan.ID); err != nil {
				t.Fatalf("Regenerate failed: %v", err)
			}
			stored, err := f.svc.Get(ctx, f.plan.ID)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}

			plan, err := f.plans.Get(ctx, f.plan.ID)
			if err != nil {
				t.Fatalf("Failed to load plan: %v", err)
			}
			input, err := f.svc.buildInput(ctx, plan)
			if err != nil {
				t.Fatalf("buildInput failed: %v", err)
			}
			fresh := Aggregate(input)

			if len(stored.Items) != len(fresh) {
				t.Fatalf("Expected %d items, stored list has %d", len(fresh), len(stored.Items))
			}
			for i := range fresh {
				s, w := stored.Items[i], fresh[i]
				if s.Name != w.Name || s.Unit != w.Unit || s.Category != w.Category || s.Quantity != w.Quantity || s.InStock != w.InStock {
					t.Errorf("Item %d: stored %+v, fresh %+v", i, s, w)
				}
			}
		})
	}
}

func TestRegenerateBestEffort(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	if outcome := f.svc.RegenerateBestEffort(ctx, "missing"); outcome != shared.OutcomeFailed {
		t.Errorf("Expected FAILED for a missing plan, got %s", outcome)
	}
	if outcome := f.svc.RegenerateBestEffort(ctx, f.plan.ID); outcome != shared.OutcomeApplied {
		t.Errorf("Expected APPLIED, got %s", outcome)
	}

	if _, err := f.svc.Get(ctx, "missing"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("Expected NotFound for a plan without a list, got %v", err)
	}
}

func TestTranslation(t *testing.T) {
	t.Run("FillsTranslatedNames", func(t *testing.T) {
		tr := &fakeTranslator{}
		f := newFixture(t, tr)
		list, err := f.svc.Regenerate(context.Background(), f.plan.ID)
		if err != nil {
			t.Fatalf("Regenerate failed: %v", err)
		}
		if tr.calls != 1 {
			t.Errorf("Expected one translation call, got %d", tr.calls)
		}
		for _, it := range list.Items {
			if it.TranslatedName != "fr:"+it.Name {
				t.Errorf("Expected translated name for %s, got %q", it.Name, it.TranslatedName)
			}
		}
	})

	t.Run("FailureKeepsList", func(t *testing.T) {
		f := newFixture(t, &fakeTranslator{err: errors.New("quota exceeded")})
		list, err := f.svc.Regenerate(context.Background(), f.plan.ID)
		if err != nil {
			t.Fatalf("Translation failure must not fail regeneration: %v", err)
		}
		if len(list.Items) == 0 || list.Items[0].TranslatedName != "" {
			t.Errorf("Expected untranslated items, got %+v", list.Items)
		}
	})
}
