package planner

import (
	"fmt"
	"slices"

	"family-meal-planner/internal/catalog"
	"family-meal-planner/internal/shared"
)

// ErrIncompleteComponents is returned when a protein, vegetable or carb is missing.
var ErrIncompleteComponents = fmt.Errorf("%w: component meals need at least one protein, vegetable and carb", shared.ErrInsufficientCatalog)

const (
	singleVegetableProbability = 0.6
	recentProteinLimit         = 2
)

type ComponentBuckets struct {
	Proteins   []catalog.FoodComponent
	Vegetables []catalog.FoodComponent
	Carbs      []catalog.FoodComponent
}

func PartitionComponents(components []catalog.FoodComponent) ComponentBuckets {
	var b ComponentBuckets
	for _, c := range components {
		switch c.Category {
		case catalog.CategoryProtein:
			b.Proteins = append(b.Proteins, c)
		case catalog.CategoryVegetable:
			b.Vegetables = append(b.Vegetables, c)
		case catalog.CategoryCarb:
			b.Carbs = append(b.Carbs, c)
		}
	}
	return b
}

// Ready reports whether a complete component meal can be built.
func (b ComponentBuckets) Ready() bool {
	return len(b.Proteins) > 0 && len(b.Vegetables) > 0 && len(b.Carbs) > 0
}

// ComponentPick is a component placed in a meal with its role.
type ComponentPick struct {
	Component catalog.FoodComponent
	Role      ComponentRole
}

// ComposeComponents builds one protein, one or two vegetables and one carb.
// Proteins listed in recentProteins are avoided when possible. The caller
// updates the history with PushRecentProtein.
func ComposeComponents(b ComponentBuckets, recentProteins []string, rng Random) ([]ComponentPick, error) {
	if !b.Ready() {
		return nil, ErrIncompleteComponents
	}

	proteins := make([]catalog.FoodComponent, 0, len(b.Proteins))
	for _, p := range b.Proteins {
		if !slices.Contains(recentProteins, p.ID) {
			proteins = append(proteins, p)
		}
	}
	if len(proteins) == 0 {
		proteins = b.Proteins
	}

	picks := []ComponentPick{{Component: proteins[rng.IntN(len(proteins))], Role: RoleMainProtein}}

	n := len(b.Vegetables)
	if n == 1 || rng.Float64() < singleVegetableProbability {
		picks = append(picks, ComponentPick{Component: b.Vegetables[rng.IntN(n)], Role: RolePrimaryVegetable})
	} else {
		i := rng.IntN(n)
		j := rng.IntN(n - 1)
		if j >= i {
			j++
		}
		picks = append(picks,
			ComponentPick{Component: b.Vegetables[i], Role: RolePrimaryVegetable},
			ComponentPick{Component: b.Vegetables[j], Role: RoleSecondaryVegetable},
		)
	}

	picks = append(picks, ComponentPick{Component: b.Carbs[rng.IntN(len(b.Carbs))], Role: RoleMainCarb})
	return picks, nil
}

// PushRecentProtein appends id to the history, keeping the last two.
func PushRecentProtein(history []string, id string) []string {
	out := append(slices.Clone(history), id)
	if len(out) > recentProteinLimit {
		out = out[len(out)-recentProteinLimit:]
	}
	return out
}
