package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"family-meal-planner/internal/catalog"
	"family-meal-planner/internal/shared"
)

// SeedSummary counts the records written by a seed import.
type SeedSummary struct {
	Families   int
	Recipes    int
	Components int
	Inventory  int
}

// ImportSeed parses a catalog seed document and writes it to the store.
// Families naming an unknown default template are rejected before anything
// is written.
func (a *App) ImportSeed(ctx context.Context, r io.Reader) (SeedSummary, error) {
	seed, err := catalog.ParseSeed(r)
	if err != nil {
		return SeedSummary{}, shared.Validationf("%v", err)
	}

	for _, f := range seed.Families {
		if f.DefaultTemplateID == "" {
			continue
		}
		tpl, err := a.Templates.Get(ctx, f.ID, f.DefaultTemplateID)
		if err != nil {
			return SeedSummary{}, err
		}
		if tpl == nil {
			return SeedSummary{}, shared.Validationf("family %s uses unknown template %s", f.ID, f.DefaultTemplateID)
		}
	}

	if err := a.Catalog.Import(ctx, seed); err != nil {
		return SeedSummary{}, err
	}

	summary := SeedSummary{
		Families:   len(seed.Families),
		Recipes:    len(seed.Recipes),
		Components: len(seed.Components),
		Inventory:  len(seed.Inventory),
	}
	log.Printf("Imported %d families, %d recipes, %d components and %d inventory items",
		summary.Families, summary.Recipes, summary.Components, summary.Inventory)
	return summary, nil
}

// ImportSeedFile imports the seed document at path.
func (a *App) ImportSeedFile(ctx context.Context, path string) (SeedSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return SeedSummary{}, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return a.ImportSeed(ctx, f)
}
