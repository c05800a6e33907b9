package shopping

import (
	"math"
	"testing"

	"family-meal-planner/internal/catalog"
)

func recipe(title string, servings int, ings ...catalog.Ingredient) *catalog.Recipe {
	return &catalog.Recipe{ID: title, Title: title, Servings: servings, Ingredients: ings}
}

func ing(name string, qty float64, unit, category string) catalog.Ingredient {
	return catalog.Ingredient{Name: name, Quantity: qty, Unit: unit, Category: category}
}

func findItem(items []Item, name, unit string) *Item {
	for i := range items {
		if items[i].Name == name && items[i].Unit == unit {
			return &items[i]
		}
	}
	return nil
}

func TestAggregate(t *testing.T) {
	t.Run("SumsMatchingKeys", func(t *testing.T) {
		items := Aggregate(PlanInput{Meals: []MealInput{
			{Portions: 4, Recipe: recipe("Salad", 4, ing("Tomatoes", 200, "g", "produce"))},
			{Portions: 4, Recipe: recipe("Sauce", 4, ing("Tomatoes", 150, "g", "Produce"))},
			{Portions: 4, Recipe: recipe("Soup", 4, ing("Tomatoes", 100, "g", "produce"))},
		}})

		if len(items) != 1 {
			t.Fatalf("Expected 1 item, got %d: %+v", len(items), items)
		}
		it := items[0]
		if it.Quantity != 450 || it.Category != "Produce" {
			t.Errorf("Expected 450 g of Produce, got %v %s %s", it.Quantity, it.Unit, it.Category)
		}
		if len(it.RecipeNames) != 3 {
			t.Errorf("Expected 3 contributing recipes, got %v", it.RecipeNames)
		}
	})

	t.Run("DifferentUnitsStaySeparate", func(t *testing.T) {
		items := Aggregate(PlanInput{Meals: []MealInput{
			{Portions: 2, Recipe: recipe("Pancakes", 2, ing("Milk", 250, "ml", "dairy"))},
			{Portions: 2, Recipe: recipe("Porridge", 2, ing("Milk", 1, "L", "dairy"))},
		}})

		if len(items) != 2 {
			t.Fatalf("Expected 2 items, got %d: %+v", len(items), items)
		}
		if it := findItem(items, "Milk", "ml"); it == nil || it.Quantity != 250 {
			t.Errorf("Expected 250 ml of milk, got %+v", it)
		}
		if it := findItem(items, "Milk", "L"); it == nil || it.Quantity != 1 {
			t.Errorf("Expected 1 L of milk, got %+v", it)
		}
	})

	t.Run("ScalesForPortionsAndGuests", func(t *testing.T) {
		items := Aggregate(PlanInput{Meals: []MealInput{{
			Portions: 6,
			Guests:   []GuestInput{{Adults: 2}},
			Recipe:   recipe("Stew", 4, ing("Beef", 400, "g", "meat")),
		}}})

		if len(items) != 1 || items[0].Quantity != 800 || items[0].Category != "Butcher" {
			t.Errorf("Expected 800 g from Butcher, got %+v", items)
		}
	})

	t.Run("ChildrenCountAsSevenTenths", func(t *testing.T) {
		items := Aggregate(PlanInput{Meals: []MealInput{{
			Portions: 4,
			Guests:   []GuestInput{{Children: 1}},
			Components: []ComponentInput{{
				Component: catalog.FoodComponent{Name: "Rice", Category: catalog.CategoryCarb, ShoppingCategory: "pantry"},
				Quantity:  150,
				Unit:      "g",
			}},
		}}})

		// 150 g x (4 + 0.7) = 705 g, rounded up to the next 50 g.
		if len(items) != 1 || items[0].Quantity != 750 || items[0].Category != "Pantry" {
			t.Errorf("Expected 750 g of rice in Pantry, got %+v", items)
		}
		if len(items[0].RecipeNames) != 0 {
			t.Errorf("Expected no recipe provenance for components, got %v", items[0].RecipeNames)
		}
	})

	t.Run("SkipsNonPurchasedMeals", func(t *testing.T) {
		r := recipe("Pasta", 2, ing("Pasta", 500, "g", "pantry"))
		items := Aggregate(PlanInput{Meals: []MealInput{
			{Portions: 2, Skipped: true, Recipe: r},
			{Portions: 2, School: true},
			{Portions: 2, EatenOut: true, Recipe: r},
		}})
		if len(items) != 0 {
			t.Errorf("Expected an empty list, got %+v", items)
		}
	})

	t.Run("SortedByCategoryThenName", func(t *testing.T) {
		items := Aggregate(PlanInput{Meals: []MealInput{{
			Portions: 2,
			Recipe: recipe("Mix", 2,
				ing("Zucchini", 100, "g", "produce"),
				ing("Chicken", 500, "g", "meat"),
				ing("Apples", 3, "pcs", "produce"),
				ing("Butter", 100, "g", "dairy"),
			),
		}}})

		want := []string{"Chicken", "Butter", "Apples", "Zucchini"}
		for i, name := range want {
			if items[i].Name != name || items[i].Order != i {
				t.Errorf("Position %d: expected %s, got %s (order %d)", i, name, items[i].Name, items[i].Order)
			}
		}
	})

	t.Run("DietHintsArePrepended", func(t *testing.T) {
		flour := ing("Flour", 500, "g", "pantry")
		flour.ContainsGluten = true
		flour.Alternatives = []string{"rice flour"}
		cream := ing("Cream", 200, "ml", "dairy")
		cream.ContainsLactose = true

		items := Aggregate(PlanInput{
			Diet: catalog.DietProfile{GlutenFree: true},
			Meals: []MealInput{{Portions: 2, Recipe: recipe("Cake", 2, flour, cream)}},
		})

		f := findItem(items, "Flour", "g")
		if f == nil || len(f.Alternatives) != 2 || f.Alternatives[0] != GlutenFreeHint || f.Alternatives[1] != "rice flour" {
			t.Errorf("Expected gluten-free hint before existing alternatives, got %+v", f)
		}
		if f.Quantity != 500 {
			t.Errorf("Hints must not change quantities, got %v", f.Quantity)
		}
		c := findItem(items, "Cream", "ml")
		if c == nil || len(c.Alternatives) != 0 {
			t.Errorf("Expected no lactose hint for a family that is not lactose-free, got %+v", c)
		}
	})
}

func TestAggregateInventory(t *testing.T) {
	meals := []MealInput{{Portions: 4, Recipe: recipe("Bolognese", 4, ing("Ground beef", 400, "g", "meat"))}}

	tests := []struct {
		name      string
		available float64
		wantQty   float64
		wantStock bool
	}{
		{"PartiallyStocked", 200, 200, false},
		{"FullyStocked", 500, 0, true},
		{"EmptyStockIgnored", 0, 400, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := Aggregate(PlanInput{
				Meals:     meals,
				Inventory: []catalog.InventoryItem{{Name: "GROUND BEEF", Quantity: tt.available, Unit: "g"}},
			})
			if len(items) != 1 {
				t.Fatalf("Expected 1 item, got %d", len(items))
			}
			if items[0].Quantity != tt.wantQty || items[0].InStock != tt.wantStock {
				t.Errorf("Expected %v (inStock=%v), got %v (inStock=%v)", tt.wantQty, tt.wantStock, items[0].Quantity, items[0].InStock)
			}
		})
	}
}

func TestAggregateInventoryUnits(t *testing.T) {
	t.Run("DifferentUnitNotDeducted", func(t *testing.T) {
		items := Aggregate(PlanInput{
			Meals:     []MealInput{{Portions: 4, Recipe: recipe("Bread", 4, ing("Flour", 1, "kg", "pantry"))}},
			Inventory: []catalog.InventoryItem{{Name: "flour", Quantity: 300, Unit: "g"}},
		})
		flour := findItem(items, "Flour", "kg")
		if flour == nil {
			t.Fatalf("Expected flour in kg, got %+v", items)
		}
		if flour.Quantity != 1 || flour.InStock {
			t.Errorf("Expected 1 kg still to buy, got %v (inStock=%v)", flour.Quantity, flour.InStock)
		}
	})

	t.Run("StockConsumedOnce", func(t *testing.T) {
		items := Aggregate(PlanInput{
			Meals: []MealInput{
				{Portions: 4, Recipe: recipe("Pancakes", 4, ing("Milk", 500, "ml", "dairy"))},
				{Portions: 4, Recipe: recipe("Porridge", 4, ing("milk", 1, "L", "dairy"))},
			},
			Inventory: []catalog.InventoryItem{{Name: "Milk", Quantity: 2, Unit: "l"}},
		})
		ml := findItem(items, "Milk", "ml")
		liters := findItem(items, "milk", "L")
		if ml == nil || liters == nil {
			t.Fatalf("Expected milk in ml and in L, got %+v", items)
		}
		if ml.Quantity != 500 || ml.InStock {
			t.Errorf("Stock in liters must not cover ml, got %v (inStock=%v)", ml.Quantity, ml.InStock)
		}
		if liters.Quantity != 0 || !liters.InStock {
			t.Errorf("Expected liters covered by stock, got %v (inStock=%v)", liters.Quantity, liters.InStock)
		}
	})

	t.Run("DuplicateRowsSummed", func(t *testing.T) {
		items := Aggregate(PlanInput{
			Meals: []MealInput{{Portions: 4, Recipe: recipe("Omelette", 4, ing("Eggs", 6, "pcs", "dairy"))}},
			Inventory: []catalog.InventoryItem{
				{Name: "eggs", Quantity: 2, Unit: "pcs"},
				{Name: "Eggs", Quantity: 2, Unit: "PCS"},
			},
		})
		if eggs := findItem(items, "Eggs", "pcs"); eggs == nil || eggs.Quantity != 2 || eggs.InStock {
			t.Errorf("Expected 2 eggs left to buy, got %+v", eggs)
		}
	})
}

func TestDisplayCategory(t *testing.T) {
	tests := map[string]string{
		"meat":    "Butcher",
		"Produce": "Produce",
		"dairy":   "Dairy",
		"pantry":  "Pantry",
		"bakery":  "Bakery",
		"Hygiene": "Hygiene",
	}
	for in, want := range tests {
		if got := DisplayCategory(in); got != want {
			t.Errorf("DisplayCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRoundQuantity(t *testing.T) {
	literals := []struct {
		q    float64
		unit string
		want float64
	}{
		{0.3, "kg", 0.5},
		{5, "g", 10},
		{120, "g", 125},
		{480, "g", 500},
		{0.15, "L", 0.2},
		{35, "ml", 40},
		{2.3, "pcs", 3},
		{1.2, "tbsp", 1.2},
		{1.234, "tbsp", 1.24},
		{0, "g", 0},
		{-3, "g", 0},
	}
	for _, tt := range literals {
		if got := RoundQuantity(tt.q, tt.unit); got != tt.want {
			t.Errorf("RoundQuantity(%v, %q) = %v, want %v", tt.q, tt.unit, got, tt.want)
		}
	}

	t.Run("MillilitreBeforeLitre", func(t *testing.T) {
		for _, unit := range []string{"ml", "mL", "millilitre", "milliliters"} {
			if got := RoundQuantity(120, unit); got != 150 {
				t.Errorf("Expected %q to round like millilitres, got %v", unit, got)
			}
		}
		if got := RoundQuantity(0.6, "litre"); got != 0.75 {
			t.Errorf("Expected 0.6 litre to round to 0.75, got %v", got)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		for _, unit := range []string{"kg", "g", "ml", "L", "pcs", "tbsp"} {
			for x := 0.01; x < 1200; x = x*1.17 + 0.003 {
				once := RoundQuantity(x, unit)
				if twice := RoundQuantity(once, unit); twice != once {
					t.Errorf("%s: round(round(%v)) = %v, round(%v) = %v", unit, x, twice, x, once)
				}
				if once < x-1e-9 {
					t.Errorf("%s: round(%v) = %v rounds below the need", unit, x, once)
				}
			}
		}
	})

	t.Run("ExactMultiplesUnchanged", func(t *testing.T) {
		if got := RoundQuantity(0.3, "L"); math.Abs(got-0.3) > 1e-9 {
			t.Errorf("Expected 0.3 L to stay 0.3, got %v", got)
		}
	})
}
