package store

import (
	"context"

	"github.com/rcliao/pantrypal/internal/feasibility"
	"github.com/rcliao/pantrypal/internal/model"
)

// FindParams holds parameters for searching recipes.
type FindParams struct {
	Query         string // substring of the recipe name or any ingredient name
	AvailableOnly bool   // only recipes that can be made now
	Limit         int    // 0 means no limit
}

// FindRecipes searches recipes against a fresh snapshot and reports whether
// each can be made with the current pantry. Results are sorted by name.
func (s *SQLiteStore) FindRecipes(ctx context.Context, p FindParams) ([]RecipeSummary, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	found := feasibility.Filter(snap.Recipes, snap.Pantry, feasibility.FilterParams{
		Query:         p.Query,
		AvailableOnly: p.AvailableOnly,
	})
	if p.Limit > 0 && len(found) > p.Limit {
		found = found[:p.Limit]
	}

	results := make([]RecipeSummary, 0, len(found))
	for _, r := range found {
		results = append(results, summarize(r, snap.Pantry))
	}
	return results, nil
}

func summarize(r model.Recipe, pantry []model.PantryItem) RecipeSummary {
	sum := RecipeSummary{ID: r.ID, Name: r.Name, Category: r.Category, CanMake: true}
	if ing, missing := feasibility.FirstMissing(r, pantry); missing {
		sum.CanMake = false
		sum.Missing = ing.Name
	}
	return sum
}
