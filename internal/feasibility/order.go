package feasibility

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rcliao/pantrypal/internal/match"
	"github.com/rcliao/pantrypal/internal/model"
)

// FilterParams narrows a recipe list.
type FilterParams struct {
	Query         string // matched against recipe and ingredient names
	AvailableOnly bool   // keep only recipes that can be made
}

// Filter returns the recipes matching p, sorted by name.
func Filter(recipes []model.Recipe, pantry []model.PantryItem, p FilterParams) []model.Recipe {
	q := match.Normalize(p.Query)
	out := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if q != "" && !recipeContains(r, q) {
			continue
		}
		if p.AvailableOnly && !CanMake(r, pantry) {
			continue
		}
		out = append(out, r)
	}
	SortByName(out)
	return out
}

// Picker splits recipes into those that can be made and those that cannot,
// each sorted by name. A non-empty query keeps only recipes whose name
// contains it.
func Picker(recipes []model.Recipe, pantry []model.PantryItem, query string) (makeable, notMakeable []model.Recipe) {
	q := match.Normalize(query)
	for _, r := range recipes {
		if q != "" && !strings.Contains(match.Normalize(r.Name), q) {
			continue
		}
		if CanMake(r, pantry) {
			makeable = append(makeable, r)
		} else {
			notMakeable = append(notMakeable, r)
		}
	}
	SortByName(makeable)
	SortByName(notMakeable)
	return makeable, notMakeable
}

// SortByName orders recipes alphabetically using a locale-aware collator.
func SortByName(recipes []model.Recipe) {
	c := collate.New(language.Und)
	sort.SliceStable(recipes, func(i, j int) bool {
		return c.CompareString(recipes[i].Name, recipes[j].Name) < 0
	})
}

// CompareNames orders two display names the way recipe lists are ordered.
func CompareNames(a, b string) int {
	return collate.New(language.Und).CompareString(a, b)
}

func recipeContains(r model.Recipe, q string) bool {
	if strings.Contains(match.Normalize(r.Name), q) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(match.Normalize(ing.Name), q) {
			return true
		}
	}
	return false
}
