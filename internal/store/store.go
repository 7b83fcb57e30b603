// Package store provides the kitchen storage interface and SQLite implementation.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/rcliao/pantrypal/internal/model"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a name already exists in a collection.
	ErrDuplicate = errors.New("already exists")
	// ErrInvalid is returned for malformed input.
	ErrInvalid = errors.New("invalid input")
)

// Collection names.
const (
	Pantry   = "pantry"
	Recipes  = "recipes"
	Shopping = "shopping"
	Planner  = "planner"
)

// Snapshot is a consistent read of every collection at one moment.
type Snapshot struct {
	Pantry   []model.PantryItem   `json:"pantry"`
	Recipes  []model.Recipe       `json:"recipes"`
	Shopping []model.ShoppingItem `json:"shopping"`
	Planner  []model.PlannedMeal  `json:"planner"`
}

// ListPantryParams holds parameters for listing pantry items.
type ListPantryParams struct {
	Query string // substring of the normalized name
	Sort  string // "", "alpha" or "available"
}

// SaveRecipeParams holds parameters for creating or updating a recipe.
type SaveRecipeParams struct {
	ID           string // empty creates a new recipe
	Name         string
	Category     string
	Ingredients  []model.Ingredient
	Instructions string
}

// ImportResult reports how many records an import added or skipped.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Store defines the kitchen storage interface.
type Store interface {
	// Snapshot reads all collections in one transaction.
	Snapshot(ctx context.Context) (*Snapshot, error)

	// Clear empties a collection.
	Clear(ctx context.Context, collection string) error

	AddPantryItem(ctx context.Context, name string) (*model.PantryItem, error)
	RenamePantryItem(ctx context.Context, id, name string) (*model.PantryItem, error)
	SetAvailable(ctx context.Context, id string, available bool) (*model.PantryItem, error)
	DeletePantryItem(ctx context.Context, id string) error
	ListPantry(ctx context.Context, p ListPantryParams) ([]model.PantryItem, error)

	AddShoppingItem(ctx context.Context, name string) (*model.ShoppingItem, error)
	DeleteShoppingItem(ctx context.Context, id string) error
	ListShopping(ctx context.Context) ([]model.ShoppingItem, error)
	MarkPurchased(ctx context.Context, id string) error

	SaveRecipe(ctx context.Context, p SaveRecipeParams) (*model.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error

	PlanMeal(ctx context.Context, slot, recipeID string) (*model.PlannedMeal, error)
	UnplanMeal(ctx context.Context, slot string) error

	// Close closes the store.
	Close() error
}

var _ Store = (*SQLiteStore)(nil)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
