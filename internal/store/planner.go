package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/pantrypal/internal/feasibility"
	"github.com/rcliao/pantrypal/internal/model"
	"github.com/rcliao/pantrypal/internal/planner"
)

// PlanSlot is one cell of the weekly planner.
type PlanSlot struct {
	Slot       string `json:"slot"`
	Date       string `json:"date"`
	Day        string `json:"day"`
	Meal       string `json:"meal"`
	RecipeID   string `json:"recipe_id,omitempty"`
	RecipeName string `json:"recipe_name,omitempty"`
	CanMake    *bool  `json:"can_make,omitempty"`
}

// PickerResult lists recipes for the planner picker, makeable ones first.
type PickerResult struct {
	Makeable    []RecipeSummary `json:"makeable"`
	NotMakeable []RecipeSummary `json:"not_makeable"`
}

// PlanMeal assigns a recipe to a slot, replacing any previous assignment.
func (s *SQLiteStore) PlanMeal(ctx context.Context, slot, recipeID string) (*model.PlannedMeal, error) {
	date, meal, err := planner.ParseSlot(slot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := getRecipe(ctx, s.db, recipeID); err != nil {
		return nil, err
	}

	pm := &model.PlannedMeal{Slot: planner.SlotKey(date, meal), RecipeID: recipeID}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO planner (slot, recipe_id) VALUES (?, ?)
		 ON CONFLICT(slot) DO UPDATE SET recipe_id = excluded.recipe_id`,
		pm.Slot, pm.RecipeID)
	if err != nil {
		return nil, fmt.Errorf("plan meal: %w", err)
	}
	s.log.Info("meal planned", zap.String("slot", pm.Slot), zap.String("recipe_id", recipeID))
	return pm, nil
}

// UnplanMeal clears a slot.
func (s *SQLiteStore) UnplanMeal(ctx context.Context, slot string) error {
	date, meal, err := planner.ParseSlot(slot)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	key := planner.SlotKey(date, meal)
	res, err := s.db.ExecContext(ctx, `DELETE FROM planner WHERE slot = ?`, key)
	if err != nil {
		return fmt.Errorf("unplan meal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("slot %s: %w", key, ErrNotFound)
	}
	return nil
}

// WeekPlan returns the 21 slots of the week containing now. Filled slots
// carry the recipe name and whether it can be made with the current pantry.
func (s *SQLiteStore) WeekPlan(ctx context.Context, now time.Time) ([]PlanSlot, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	planned := make(map[string]string, len(snap.Planner))
	for _, pm := range snap.Planner {
		planned[pm.Slot] = pm.RecipeID
	}
	recipes := make(map[string]model.Recipe, len(snap.Recipes))
	for _, r := range snap.Recipes {
		recipes[r.ID] = r
	}

	var out []PlanSlot
	for _, slot := range planner.Slots(now) {
		ps := PlanSlot{Slot: slot.Key, Date: slot.Date, Day: slot.Day, Meal: slot.Meal}
		if id, ok := planned[slot.Key]; ok {
			ps.RecipeID = id
			if r, ok := recipes[id]; ok {
				ps.RecipeName = r.Name
				can := feasibility.CanMake(r, snap.Pantry)
				ps.CanMake = &can
			}
		}
		out = append(out, ps)
	}
	return out, nil
}

// Picker lists recipes for choosing a meal: those that can be made first,
// each group sorted by name. query filters by recipe name.
func (s *SQLiteStore) Picker(ctx context.Context, query string) (*PickerResult, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	makeable, notMakeable := feasibility.Picker(snap.Recipes, snap.Pantry, query)

	res := &PickerResult{Makeable: []RecipeSummary{}, NotMakeable: []RecipeSummary{}}
	for _, r := range makeable {
		res.Makeable = append(res.Makeable, summarize(r, snap.Pantry))
	}
	for _, r := range notMakeable {
		res.NotMakeable = append(res.NotMakeable, summarize(r, snap.Pantry))
	}
	return res, nil
}

func listPlanner(ctx context.Context, q querier) ([]model.PlannedMeal, error) {
	rows, err := q.QueryContext(ctx, `SELECT slot, recipe_id FROM planner ORDER BY slot`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meals := []model.PlannedMeal{}
	for rows.Next() {
		var pm model.PlannedMeal
		if err := rows.Scan(&pm.Slot, &pm.RecipeID); err != nil {
			return nil, err
		}
		meals = append(meals, pm)
	}
	return meals, rows.Err()
}
