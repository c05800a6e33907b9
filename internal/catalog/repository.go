package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"family-meal-planner/internal/catalog/catalog_db"
)

// Repository is a database-backed read model over the family, recipe,
// component and inventory tables.
type Repository struct {
	queries *catalogdb.Queries
	db      *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: catalogdb.New(d),
		db:      d,
	}
}

// GetFamily retrieves a family and its diet profile.
func (r *Repository) GetFamily(ctx context.Context, id string) (*Family, error) {
	row, err := r.queries.GetFamily(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Family not found
		}
		return nil, fmt.Errorf("failed to get family by ID: %w", err)
	}

	diet := DefaultDietProfile()
	if row.DietProfile != "" {
		if err := json.Unmarshal([]byte(row.DietProfile), &diet); err != nil {
			return nil, fmt.Errorf("failed to unmarshal diet profile for family %s: %w", id, err)
		}
	}

	return &Family{
		ID:                row.ID,
		Name:              row.Name,
		Diet:              diet,
		DefaultTemplateID: row.DefaultTemplateID.String,
		TelegramChatID:    row.TelegramChatID.Int64,
		CreatedAt:         row.CreatedAt,
	}, nil
}

// SaveFamily inserts or updates a family.
func (r *Repository) SaveFamily(ctx context.Context, f Family) error {
	dietJSON, err := json.Marshal(f.Diet)
	if err != nil {
		return fmt.Errorf("failed to marshal diet profile: %w", err)
	}
	createdAt := f.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return r.queries.UpsertFamily(ctx, catalogdb.UpsertFamilyParams{
		ID:                f.ID,
		Name:              f.Name,
		DietProfile:       string(dietJSON),
		DefaultTemplateID: nullString(f.DefaultTemplateID),
		TelegramChatID:    sql.NullInt64{Int64: f.TelegramChatID, Valid: f.TelegramChatID != 0},
		CreatedAt:         createdAt,
	})
}

// SaveRecipe inserts or updates a recipe. The recipe is stored as JSON.
func (r *Repository) SaveRecipe(ctx context.Context, rec Recipe) error {
	recipeJSON, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe to JSON: %w", err)
	}

	return r.queries.UpsertRecipe(ctx, catalogdb.UpsertRecipeParams{
		ID:        rec.ID,
		FamilyID:  nullString(rec.FamilyID),
		Data:      string(recipeJSON),
		UpdatedAt: time.Now().UTC(),
	})
}

// GetRecipe retrieves a recipe by its ID.
func (r *Repository) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	row, err := r.queries.GetRecipe(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Recipe not found
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}

	var rec Recipe
	if err := json.Unmarshal([]byte(row.Data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe JSON: %w", err)
	}
	rec.ID = row.ID
	rec.FamilyID = row.FamilyID.String
	return &rec, nil
}

// ListRecipes returns the system recipes plus the family's own recipes.
func (r *Repository) ListRecipes(ctx context.Context, familyID string) ([]Recipe, error) {
	rows, err := r.queries.ListRecipesForFamily(ctx, nullString(familyID))
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	recipes := make([]Recipe, 0, len(rows))
	for _, row := range rows {
		var rec Recipe
		if err := json.Unmarshal([]byte(row.Data), &rec); err != nil {
			log.Printf("Warning: failed to unmarshal recipe JSON for ID %s: %v", row.ID, err)
			continue
		}
		rec.ID = row.ID
		rec.FamilyID = row.FamilyID.String
		recipes = append(recipes, rec)
	}
	return recipes, nil
}

// SaveComponent inserts or updates a food component.
func (r *Repository) SaveComponent(ctx context.Context, c FoodComponent) error {
	if !c.Category.Valid() {
		return fmt.Errorf("invalid component category %q for %s", c.Category, c.ID)
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal component to JSON: %w", err)
	}

	return r.queries.UpsertFoodComponent(ctx, catalogdb.UpsertFoodComponentParams{
		ID:        c.ID,
		FamilyID:  nullString(c.FamilyID),
		Category:  string(c.Category),
		Data:      string(data),
		UpdatedAt: time.Now().UTC(),
	})
}

// GetComponent retrieves a food component by its ID.
func (r *Repository) GetComponent(ctx context.Context, id string) (*FoodComponent, error) {
	row, err := r.queries.GetFoodComponent(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get component by ID: %w", err)
	}
	c, err := decodeComponent(row)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListComponents returns the system components plus the family's own ones.
func (r *Repository) ListComponents(ctx context.Context, familyID string) ([]FoodComponent, error) {
	rows, err := r.queries.ListFoodComponentsForFamily(ctx, nullString(familyID))
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}

	components := make([]FoodComponent, 0, len(rows))
	for _, row := range rows {
		c, err := decodeComponent(row)
		if err != nil {
			log.Printf("Warning: %v", err)
			continue
		}
		components = append(components, c)
	}
	return components, nil
}

// SaveInventoryItem inserts or updates an inventory entry.
func (r *Repository) SaveInventoryItem(ctx context.Context, item InventoryItem) error {
	return r.queries.UpsertInventoryItem(ctx, catalogdb.UpsertInventoryItemParams{
		ID:       item.ID,
		FamilyID: item.FamilyID,
		Name:     item.Name,
		Quantity: item.Quantity,
		Unit:     item.Unit,
	})
}

// ListInventory returns the family's on-hand stock.
func (r *Repository) ListInventory(ctx context.Context, familyID string) ([]InventoryItem, error) {
	rows, err := r.queries.ListInventoryItems(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	items := make([]InventoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, InventoryItem{
			ID:       row.ID,
			FamilyID: row.FamilyID,
			Name:     row.Name,
			Quantity: row.Quantity,
			Unit:     row.Unit,
		})
	}
	return items, nil
}

func decodeComponent(row catalogdb.FoodComponent) (FoodComponent, error) {
	var c FoodComponent
	if err := json.Unmarshal([]byte(row.Data), &c); err != nil {
		return FoodComponent{}, fmt.Errorf("failed to unmarshal component JSON for ID %s: %w", row.ID, err)
	}
	c.ID = row.ID
	c.FamilyID = row.FamilyID.String
	c.Category = ComponentCategory(row.Category)
	return c, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
