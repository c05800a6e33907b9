package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"family-meal-planner/internal/database"
	"family-meal-planner/internal/shopping/shopping_db"

	"github.com/google/uuid"
)

// List is the shopping list of one plan.
type List struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"planId"`
	CreatedAt time.Time `json:"createdAt"`
	Items     []Item    `json:"items"`
}

// Repository handles persistence of shopping lists.
type Repository struct {
	queries *shoppingdb.Queries
	db      *sql.DB
}

// NewRepository creates a new shopping list repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: shoppingdb.New(d),
		db:      d,
	}
}

// Replace deletes the plan's list and stores a new one with items in order,
// all in one transaction.
func (r *Repository) Replace(ctx context.Context, planID string, items []Item) (*List, error) {
	list := &List{
		ID:        uuid.NewString(),
		PlanID:    planID,
		CreatedAt: time.Now().UTC(),
		Items:     items,
	}

	err := database.RunInTx(ctx, r.db, func(tx *sql.Tx) error {
		q := r.queries.WithTx(tx)
		if err := q.DeleteShoppingItemsForPlan(ctx, planID); err != nil {
			return fmt.Errorf("failed to delete shopping items: %w", err)
		}
		if err := q.DeleteShoppingListForPlan(ctx, planID); err != nil {
			return fmt.Errorf("failed to delete shopping list: %w", err)
		}
		err := q.InsertShoppingList(ctx, shoppingdb.InsertShoppingListParams{
			ID:        list.ID,
			PlanID:    planID,
			CreatedAt: list.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to insert shopping list: %w", err)
		}

		for i, it := range items {
			alternatives, err := json.Marshal(it.Alternatives)
			if err != nil {
				return fmt.Errorf("failed to marshal alternatives: %w", err)
			}
			recipeNames, err := json.Marshal(it.RecipeNames)
			if err != nil {
				return fmt.Errorf("failed to marshal recipe names: %w", err)
			}
			err = q.InsertShoppingItem(ctx, shoppingdb.InsertShoppingItemParams{
				ID:             uuid.NewString(),
				ListID:         list.ID,
				Name:           it.Name,
				TranslatedName: it.TranslatedName,
				Quantity:       it.Quantity,
				Unit:           it.Unit,
				Category:       it.Category,
				Alternatives:   string(alternatives),
				RecipeNames:    string(recipeNames),
				InStock:        it.InStock,
				SortOrder:      int64(i),
			})
			if err != nil {
				return fmt.Errorf("failed to insert shopping item %s: %w", it.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// GetByPlan retrieves the list of a plan. It returns nil, nil when none exists.
func (r *Repository) GetByPlan(ctx context.Context, planID string) (*List, error) {
	row, err := r.queries.GetShoppingListByPlan(ctx, planID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shopping list for plan %s: %w", planID, err)
	}

	rows, err := r.queries.ListShoppingItems(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping items: %w", err)
	}

	items := make([]Item, 0, len(rows))
	for _, it := range rows {
		item := Item{
			Name:           it.Name,
			TranslatedName: it.TranslatedName,
			Quantity:       it.Quantity,
			Unit:           it.Unit,
			Category:       it.Category,
			InStock:        it.InStock,
			Order:          int(it.SortOrder),
		}
		if err := json.Unmarshal([]byte(it.Alternatives), &item.Alternatives); err != nil {
			return nil, fmt.Errorf("failed to unmarshal alternatives of %s: %w", it.Name, err)
		}
		if err := json.Unmarshal([]byte(it.RecipeNames), &item.RecipeNames); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recipe names of %s: %w", it.Name, err)
		}
		items = append(items, item)
	}

	return &List{
		ID:        row.ID,
		PlanID:    row.PlanID,
		CreatedAt: row.CreatedAt,
		Items:     items,
	}, nil
}
