package planner

import (
	"errors"
	"reflect"
	"testing"

	"family-meal-planner/internal/catalog"
)

func comp(id string, category catalog.ComponentCategory) catalog.FoodComponent {
	return catalog.FoodComponent{ID: id, Name: id, Category: category, DefaultQuantity: 100, Unit: "g"}
}

func testComponentBuckets() ComponentBuckets {
	return PartitionComponents([]catalog.FoodComponent{
		comp("chicken", catalog.CategoryProtein),
		comp("tofu", catalog.CategoryProtein),
		comp("salmon", catalog.CategoryProtein),
		comp("broccoli", catalog.CategoryVegetable),
		comp("carrot", catalog.CategoryVegetable),
		comp("pepper", catalog.CategoryVegetable),
		comp("rice", catalog.CategoryCarb),
		comp("ketchup", catalog.CategoryCondiment),
	})
}

func TestComposeComponents(t *testing.T) {
	b := testComponentBuckets()
	if len(b.Proteins) != 3 || len(b.Vegetables) != 3 || len(b.Carbs) != 1 {
		t.Fatalf("Unexpected partition: %+v", b)
	}

	t.Run("OneVegetable", func(t *testing.T) {
		rng := &scriptedRandom{floats: []float64{0.59}, ints: []int{1, 2, 0}}
		picks, err := ComposeComponents(b, nil, rng)
		if err != nil {
			t.Fatalf("ComposeComponents failed: %v", err)
		}
		got := roles(picks)
		want := []string{"tofu:MAIN_PROTEIN", "pepper:PRIMARY_VEGETABLE", "rice:MAIN_CARB"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})

	t.Run("TwoDistinctVegetables", func(t *testing.T) {
		// i=1, j=1 shifts past i to 2.
		rng := &scriptedRandom{floats: []float64{0.6}, ints: []int{0, 1, 1, 0}}
		picks, err := ComposeComponents(b, nil, rng)
		if err != nil {
			t.Fatalf("ComposeComponents failed: %v", err)
		}
		got := roles(picks)
		want := []string{"chicken:MAIN_PROTEIN", "carrot:PRIMARY_VEGETABLE", "pepper:SECONDARY_VEGETABLE", "rice:MAIN_CARB"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})

	t.Run("AvoidsRecentProteins", func(t *testing.T) {
		rng := &scriptedRandom{ints: []int{0}}
		picks, _ := ComposeComponents(b, []string{"chicken", "tofu"}, rng)
		if picks[0].Component.ID != "salmon" {
			t.Errorf("Expected salmon, got %s", picks[0].Component.ID)
		}
	})

	t.Run("FallsBackToAllProteins", func(t *testing.T) {
		single := b
		single.Proteins = single.Proteins[:1]
		picks, _ := ComposeComponents(single, []string{"chicken"}, &scriptedRandom{})
		if picks[0].Component.ID != "chicken" {
			t.Errorf("Expected chicken when every protein is recent, got %s", picks[0].Component.ID)
		}
	})

	t.Run("SingleVegetableNeverDuplicated", func(t *testing.T) {
		single := b
		single.Vegetables = single.Vegetables[:1]
		picks, _ := ComposeComponents(single, nil, &scriptedRandom{floats: []float64{0.99}})
		if len(picks) != 3 {
			t.Errorf("Expected one vegetable when only one exists, got %v", roles(picks))
		}
	})

	t.Run("Incomplete", func(t *testing.T) {
		_, err := ComposeComponents(ComponentBuckets{Proteins: b.Proteins}, nil, &scriptedRandom{})
		if !errors.Is(err, ErrIncompleteComponents) {
			t.Errorf("Expected ErrIncompleteComponents, got %v", err)
		}
	})
}

func TestPushRecentProtein(t *testing.T) {
	h := PushRecentProtein(nil, "a")
	h = PushRecentProtein(h, "b")
	h2 := PushRecentProtein(h, "c")
	if !reflect.DeepEqual(h2, []string{"b", "c"}) {
		t.Errorf("Expected [b c], got %v", h2)
	}
	if !reflect.DeepEqual(h, []string{"a", "b"}) {
		t.Errorf("Expected the previous history to be untouched, got %v", h)
	}
}

func roles(picks []ComponentPick) []string {
	var out []string
	for _, p := range picks {
		out = append(out, p.Component.ID+":"+string(p.Role))
	}
	return out
}
