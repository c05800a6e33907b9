package shopping

import (
	"context"
	"fmt"
	"log"

	"family-meal-planner/internal/catalog"
	"family-meal-planner/internal/planner"
	"family-meal-planner/internal/shared"
)

// PlanLoader loads a plan with its meals.
type PlanLoader interface {
	Get(ctx context.Context, id string) (*planner.WeeklyPlan, error)
}

// CatalogReader is the catalog data the aggregator needs.
type CatalogReader interface {
	GetFamily(ctx context.Context, id string) (*catalog.Family, error)
	GetRecipe(ctx context.Context, id string) (*catalog.Recipe, error)
	GetComponent(ctx context.Context, id string) (*catalog.FoodComponent, error)
	ListInventory(ctx context.Context, familyID string) ([]catalog.InventoryItem, error)
}

// Service keeps each plan's shopping list in sync with its meals.
type Service struct {
	plans      PlanLoader
	catalog    CatalogReader
	repo       *Repository
	translator Translator
}

// NewService creates a Service. translator may be nil.
func NewService(plans PlanLoader, cat CatalogReader, repo *Repository, translator Translator) *Service {
	return &Service{plans: plans, catalog: cat, repo: repo, translator: translator}
}

// Regenerate rebuilds the plan's list from its current meals and replaces the
// stored one.
func (s *Service) Regenerate(ctx context.Context, planID string) (*List, error) {
	plan, err := s.plans.Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, shared.NotFoundf("plan %s", planID)
	}

	input, err := s.buildInput(ctx, plan)
	if err != nil {
		return nil, err
	}
	items := Aggregate(input)

	if s.translator != nil {
		s.translate(ctx, items)
	}
	return s.repo.Replace(ctx, plan.ID, items)
}

// RegenerateBestEffort regenerates and reports the outcome instead of failing.
func (s *Service) RegenerateBestEffort(ctx context.Context, planID string) shared.Outcome {
	if _, err := s.Regenerate(ctx, planID); err != nil {
		log.Printf("Warning: failed to regenerate shopping list for plan %s: %v", planID, err)
		return shared.OutcomeFailed
	}
	return shared.OutcomeApplied
}

// Get returns the stored list of a plan.
func (s *Service) Get(ctx context.Context, planID string) (*List, error) {
	list, err := s.repo.GetByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, shared.NotFoundf("shopping list for plan %s", planID)
	}
	return list, nil
}

func (s *Service) buildInput(ctx context.Context, plan *planner.WeeklyPlan) (PlanInput, error) {
	family, err := s.catalog.GetFamily(ctx, plan.FamilyID)
	if err != nil {
		return PlanInput{}, err
	}
	if family == nil {
		return PlanInput{}, shared.NotFoundf("family %s", plan.FamilyID)
	}
	inventory, err := s.catalog.ListInventory(ctx, plan.FamilyID)
	if err != nil {
		return PlanInput{}, err
	}

	recipes := make(map[string]*catalog.Recipe)
	components := make(map[string]*catalog.FoodComponent)

	input := PlanInput{Inventory: inventory, Diet: family.Diet}
	for _, m := range plan.Meals {
		mi := MealInput{
			Portions: m.Portions,
			Skipped:  m.IsSkipped,
			School:   m.IsSchoolMeal,
			EatenOut: m.EatenOut,
		}
		for _, g := range m.Guests {
			mi.Guests = append(mi.Guests, GuestInput{Adults: g.Adults, Children: g.Children})
		}

		switch {
		case len(m.Components) > 0:
			for _, mc := range m.Components {
				c, ok := components[mc.ComponentID]
				if !ok {
					if c, err = s.catalog.GetComponent(ctx, mc.ComponentID); err != nil {
						return PlanInput{}, err
					}
					components[mc.ComponentID] = c
				}
				if c == nil {
					log.Printf("Warning: component %s of meal %s no longer exists", mc.ComponentID, m.ID)
					continue
				}
				mi.Components = append(mi.Components, ComponentInput{Component: *c, Quantity: mc.Quantity, Unit: mc.Unit})
			}
		case m.RecipeID != "":
			r, ok := recipes[m.RecipeID]
			if !ok {
				if r, err = s.catalog.GetRecipe(ctx, m.RecipeID); err != nil {
					return PlanInput{}, err
				}
				recipes[m.RecipeID] = r
			}
			if r == nil {
				log.Printf("Warning: recipe %s of meal %s no longer exists", m.RecipeID, m.ID)
				continue
			}
			mi.Recipe = r
		}
		input.Meals = append(input.Meals, mi)
	}
	return input, nil
}

func (s *Service) translate(ctx context.Context, items []Item) {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	translated, err := s.translator.Translate(ctx, names)
	if err != nil {
		log.Printf("Warning: shopping list translation skipped: %v", err)
		return
	}
	for i := range items {
		items[i].TranslatedName = translated[items[i].Name]
	}
}

// Summary renders a list as plain lines, one per item, for notifications and the CLI.
func Summary(list *List) []string {
	var lines []string
	for _, it := range list.Items {
		if it.InStock {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %g %s", it.Name, it.Quantity, it.Unit))
	}
	return lines
}
