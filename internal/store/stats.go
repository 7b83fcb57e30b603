package store

import (
	"context"
	"os"

	"github.com/rcliao/pantrypal/internal/feasibility"
)

// Stats holds database statistics.
type Stats struct {
	DBPath          string `json:"db_path"`
	DBSizeBytes     int64  `json:"db_size_bytes"`
	PantryItems     int    `json:"pantry_items"`
	AvailableItems  int    `json:"available_items"`
	Recipes         int    `json:"recipes"`
	MakeableRecipes int    `json:"makeable_recipes"`
	ShoppingItems   int    `json:"shopping_items"`
	PlannedMeals    int    `json:"planned_meals"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return st, err
	}

	st.PantryItems = len(snap.Pantry)
	for _, p := range snap.Pantry {
		if p.Available {
			st.AvailableItems++
		}
	}
	st.Recipes = len(snap.Recipes)
	for _, r := range snap.Recipes {
		if feasibility.CanMake(r, snap.Pantry) {
			st.MakeableRecipes++
		}
	}
	st.ShoppingItems = len(snap.Shopping)
	st.PlannedMeals = len(snap.Planner)

	return st, nil
}
