package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/pantrypal/internal/feasibility"
	"github.com/rcliao/pantrypal/internal/match"
	"github.com/rcliao/pantrypal/internal/model"
)

// RecipeView is a recipe with its availability against the current pantry.
type RecipeView struct {
	model.Recipe
	CanMake      bool                           `json:"can_make"`
	Availability []feasibility.IngredientStatus `json:"availability"`
}

// RecipeSummary is a list entry with a feasibility badge.
type RecipeSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	CanMake  bool   `json:"can_make"`
	Missing  string `json:"first_missing,omitempty"`
}

// SaveRecipe creates a recipe, or replaces the recipe with p.ID. The created
// timestamp is refreshed on every save.
func (s *SQLiteStore) SaveRecipe(ctx context.Context, p SaveRecipeParams) (*model.Recipe, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: recipe name is required", ErrInvalid)
	}

	r := &model.Recipe{
		ID:           p.ID,
		Name:         name,
		Category:     strings.TrimSpace(p.Category),
		Ingredients:  p.Ingredients,
		Instructions: model.Instructions(strings.TrimSpace(p.Instructions)),
		Created:      s.now().UTC().Truncate(time.Second),
	}
	if r.Ingredients == nil {
		r.Ingredients = []model.Ingredient{}
	}

	if r.ID == "" {
		r.ID = s.newID()
		if err := insertRecipe(ctx, s.db, r); err != nil {
			return nil, err
		}
		s.log.Info("recipe created", zap.String("id", r.ID), zap.String("name", r.Name))
		return r, nil
	}

	ingredientsJSON, err := json.Marshal(r.Ingredients)
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE recipes SET name = ?, category = ?, ingredients = ?, instructions = ?, created_at = ?
		 WHERE id = ?`,
		r.Name, r.Category, string(ingredientsJSON), string(r.Instructions), formatTime(r.Created), r.ID)
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("recipe %s: %w", r.ID, ErrNotFound)
	}
	s.log.Info("recipe updated", zap.String("id", r.ID), zap.String("name", r.Name))
	return r, nil
}

// GetRecipe returns one recipe by id.
func (s *SQLiteStore) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	return getRecipe(ctx, s.db, id)
}

// DeleteRecipe removes a recipe and any planner slots that used it.
func (s *SQLiteStore) DeleteRecipe(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM planner WHERE recipe_id = ?`, id); err != nil {
		return fmt.Errorf("unplan recipe: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.log.Info("recipe deleted", zap.String("id", id))
	return nil
}

// ListRecipes returns every recipe with its feasibility badge, sorted by name.
func (s *SQLiteStore) ListRecipes(ctx context.Context) ([]RecipeSummary, error) {
	return s.FindRecipes(ctx, FindParams{})
}

// RecipeDetail returns a recipe with per-ingredient availability.
func (s *SQLiteStore) RecipeDetail(ctx context.Context, id string) (*RecipeView, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range snap.Recipes {
		if r.ID == id {
			return &RecipeView{
				Recipe:       r,
				CanMake:      feasibility.CanMake(r, snap.Pantry),
				Availability: feasibility.Detail(r, snap.Pantry),
			}, nil
		}
	}
	return nil, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
}

// ImportRecipes stores decoded recipes, skipping any whose normalized name
// matches an existing recipe (including earlier ones in the same batch).
func (s *SQLiteStore) ImportRecipes(ctx context.Context, recipes []model.Recipe) (*ImportResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	existing, err := listRecipes(ctx, tx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for _, r := range existing {
		seen[match.Normalize(r.Name)] = true
	}

	result := &ImportResult{}
	for _, r := range recipes {
		key := match.Normalize(r.Name)
		if seen[key] {
			result.Skipped++
			continue
		}
		seen[key] = true

		r.ID = s.newID()
		r.Created = s.now().UTC().Truncate(time.Second)
		if err := insertRecipe(ctx, tx, &r); err != nil {
			return nil, err
		}
		result.Imported++
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	s.log.Info("recipes imported", zap.Int("imported", result.Imported), zap.Int("skipped", result.Skipped))
	return result, nil
}

// AddMissingToShopping queues every ingredient of a recipe that the pantry
// does not cover and that is not already on the list. It returns the added
// entries; an empty result means everything missing was already queued.
func (s *SQLiteStore) AddMissingToShopping(ctx context.Context, recipeID string) ([]model.ShoppingItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	r, err := getRecipe(ctx, tx, recipeID)
	if err != nil {
		return nil, err
	}
	pantry, err := listPantry(ctx, tx)
	if err != nil {
		return nil, err
	}
	shopping, err := listShopping(ctx, tx)
	if err != nil {
		return nil, err
	}

	added := []model.ShoppingItem{}
	for _, ing := range feasibility.MissingForShopping(*r, pantry, shopping) {
		item, err := s.insertShopping(ctx, tx, ing.Name)
		if err != nil {
			return nil, err
		}
		added = append(added, *item)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	s.log.Info("missing ingredients queued", zap.String("recipe_id", recipeID), zap.Int("added", len(added)))
	return added, nil
}

func insertRecipe(ctx context.Context, q querier, r *model.Recipe) error {
	if r.Ingredients == nil {
		r.Ingredients = []model.Ingredient{}
	}
	ingredientsJSON, err := json.Marshal(r.Ingredients)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx,
		`INSERT INTO recipes (id, name, category, ingredients, instructions, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Category, string(ingredientsJSON), string(r.Instructions), formatTime(r.Created))
	if err != nil {
		return fmt.Errorf("insert recipe: %w", err)
	}
	return nil
}

func getRecipe(ctx context.Context, q querier, id string) (*model.Recipe, error) {
	r, err := scanRecipe(q.QueryRowContext(ctx,
		`SELECT id, name, category, ingredients, instructions, created_at FROM recipes WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func listRecipes(ctx context.Context, q querier) ([]model.Recipe, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, name, category, ingredients, instructions, created_at FROM recipes ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := []model.Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}
