// Package model defines the core kitchen data types.
package model

import (
	"encoding/json"
	"strings"
	"time"
)

// PantryItem is a named ingredient the user owns.
// Available=false means known but out of stock.
type PantryItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// Ingredient is a named component of a recipe. Qty and Unit are free text.
type Ingredient struct {
	Name string `json:"name"`
	Qty  string `json:"qty"`
	Unit string `json:"unit"`
}

// Recipe represents a stored recipe.
type Recipe struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     string       `json:"category,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions Instructions `json:"instructions"`
	Created      time.Time    `json:"created"`
}

// ShoppingItem is an entry on the shopping list.
type ShoppingItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlannedMeal assigns a recipe to a planner slot ("2024-05-06_Dinner").
type PlannedMeal struct {
	Slot     string `json:"slot"`
	RecipeID string `json:"recipe_id"`
}

// Instructions is recipe instruction text. It decodes from either a JSON
// string or a list of strings; a list is joined with blank lines.
type Instructions string

// UnmarshalJSON accepts a string, a list of strings, or null.
func (in *Instructions) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*in = Instructions(s)
		return nil
	}
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	*in = Instructions(strings.Join(parts, "\n\n"))
	return nil
}

// String returns the instruction text.
func (in Instructions) String() string { return string(in) }
