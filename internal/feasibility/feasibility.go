// Package feasibility decides which recipes can be made from a pantry snapshot.
//
// Every function here is pure: it reads the snapshots passed in, never
// mutates them, and never fails. Ambiguous input (an ingredient with a blank
// name) is treated as satisfied so that availability never blocks rendering.
package feasibility

import (
	"github.com/rcliao/pantrypal/internal/match"
	"github.com/rcliao/pantrypal/internal/model"
)

// IngredientStatus reports whether one recipe ingredient is covered.
type IngredientStatus struct {
	Ingredient model.Ingredient `json:"ingredient"`
	Satisfied  bool             `json:"satisfied"`
	MatchedBy  string           `json:"matched_by,omitempty"`
	Skipped    bool             `json:"skipped,omitempty"`
}

// CanMake reports whether every non-blank ingredient of r is satisfied by an
// available pantry item. A recipe without ingredients can always be made.
func CanMake(r model.Recipe, pantry []model.PantryItem) bool {
	_, missing := FirstMissing(r, pantry)
	return !missing
}

// FirstMissing returns the first ingredient, in recipe order, that no
// available pantry item satisfies.
func FirstMissing(r model.Recipe, pantry []model.PantryItem) (model.Ingredient, bool) {
	for _, ing := range r.Ingredients {
		if match.Normalize(ing.Name) == "" {
			continue
		}
		if _, ok := findAvailable(ing.Name, pantry); !ok {
			return ing, true
		}
	}
	return model.Ingredient{}, false
}

// Detail evaluates every ingredient of r, without stopping at the first
// missing one.
func Detail(r model.Recipe, pantry []model.PantryItem) []IngredientStatus {
	out := make([]IngredientStatus, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		st := IngredientStatus{Ingredient: ing}
		if match.Normalize(ing.Name) == "" {
			st.Satisfied = true
			st.Skipped = true
		} else if item, ok := findAvailable(ing.Name, pantry); ok {
			st.Satisfied = true
			st.MatchedBy = item.Name
		}
		out = append(out, st)
	}
	return out
}

// MissingForShopping returns the ingredients of r that the pantry does not
// cover and that are not already queued on the shopping list. The shopping
// check is exact normalized equality, stricter than pantry matching, so that
// near-duplicates are still added. An ingredient repeated within r is
// returned once.
func MissingForShopping(r model.Recipe, pantry []model.PantryItem, shopping []model.ShoppingItem) []model.Ingredient {
	queued := make(map[string]bool, len(shopping))
	for _, s := range shopping {
		queued[match.Normalize(s.Name)] = true
	}

	var out []model.Ingredient
	for _, ing := range r.Ingredients {
		name := match.Normalize(ing.Name)
		if name == "" {
			continue
		}
		if _, ok := findAvailable(ing.Name, pantry); ok {
			continue
		}
		if queued[name] {
			continue
		}
		queued[name] = true
		out = append(out, ing)
	}
	return out
}

func findAvailable(ingredient string, pantry []model.PantryItem) (model.PantryItem, bool) {
	for _, p := range pantry {
		if p.Available && match.Matches(p.Name, ingredient) {
			return p, true
		}
	}
	return model.PantryItem{}, false
}
