package catalog

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Seed is a YAML document describing catalog data to load into the store.
type Seed struct {
	Families   []FamilySeed    `yaml:"families"`
	Recipes    []Recipe        `yaml:"recipes"`
	Components []FoodComponent `yaml:"components"`
	Inventory  []InventoryItem `yaml:"inventory"`
}

// FamilySeed is the YAML shape of a family.
type FamilySeed struct {
	ID                string       `yaml:"id"`
	Name              string       `yaml:"name"`
	Diet              *DietProfile `yaml:"diet"`
	DefaultTemplateID string       `yaml:"defaultTemplate"`
	TelegramChatID    int64        `yaml:"telegramChatId"`
}

// ParseSeed decodes a seed document. Family diets default to DefaultDietProfile
// for any field the document leaves out.
func ParseSeed(r io.Reader) (*Seed, error) {
	var raw struct {
		Families []struct {
			ID                string    `yaml:"id"`
			Name              string    `yaml:"name"`
			Diet              yaml.Node `yaml:"diet"`
			DefaultTemplateID string    `yaml:"defaultTemplate"`
			TelegramChatID    int64     `yaml:"telegramChatId"`
		} `yaml:"families"`
		Recipes    []Recipe        `yaml:"recipes"`
		Components []FoodComponent `yaml:"components"`
		Inventory  []InventoryItem `yaml:"inventory"`
	}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode seed YAML: %w", err)
	}

	seed := &Seed{
		Recipes:    raw.Recipes,
		Components: raw.Components,
		Inventory:  raw.Inventory,
	}
	for _, f := range raw.Families {
		diet := DefaultDietProfile()
		if !f.Diet.IsZero() {
			if err := f.Diet.Decode(&diet); err != nil {
				return nil, fmt.Errorf("failed to decode diet for family %s: %w", f.ID, err)
			}
		}
		seed.Families = append(seed.Families, FamilySeed{
			ID:                f.ID,
			Name:              f.Name,
			Diet:              &diet,
			DefaultTemplateID: f.DefaultTemplateID,
			TelegramChatID:    f.TelegramChatID,
		})
	}
	return seed, nil
}

// Import writes every record of the seed. It stops at the first failure.
func (r *Repository) Import(ctx context.Context, seed *Seed) error {
	for _, f := range seed.Families {
		diet := DefaultDietProfile()
		if f.Diet != nil {
			diet = *f.Diet
		}
		if err := r.SaveFamily(ctx, Family{
			ID:                f.ID,
			Name:              f.Name,
			Diet:              diet,
			DefaultTemplateID: f.DefaultTemplateID,
			TelegramChatID:    f.TelegramChatID,
		}); err != nil {
			return fmt.Errorf("failed to import family %s: %w", f.ID, err)
		}
	}
	for _, rec := range seed.Recipes {
		if err := r.SaveRecipe(ctx, rec); err != nil {
			return fmt.Errorf("failed to import recipe %s: %w", rec.ID, err)
		}
	}
	for _, c := range seed.Components {
		if err := r.SaveComponent(ctx, c); err != nil {
			return fmt.Errorf("failed to import component %s: %w", c.ID, err)
		}
	}
	for _, item := range seed.Inventory {
		if err := r.SaveInventoryItem(ctx, item); err != nil {
			return fmt.Errorf("failed to import inventory item %s: %w", item.ID, err)
		}
	}
	return nil
}
