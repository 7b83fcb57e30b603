package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rcliao/pantrypal/internal/model"
)

func ingredients(names ...string) []model.Ingredient {
	var out []model.Ingredient
	for _, n := range names {
		out = append(out, model.Ingredient{Name: n})
	}
	return out
}

func TestSaveAndGetRecipe(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r, err := s.SaveRecipe(ctx, SaveRecipeParams{
		Name:         " Pancakes ",
		Category:     "Breakfast",
		Ingredients:  []model.Ingredient{{Name: "flour", Qty: "2", Unit: "cups"}, {Name: "egg"}},
		Instructions: "Mix.\n\nFry.",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if r.ID == "" || r.Name != "Pancakes" {
		t.Errorf("unexpected recipe %+v", r)
	}

	got, err := s.GetRecipe(ctx, r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Ingredients) != 2 || got.Ingredients[0].Unit != "cups" {
		t.Errorf("ingredients not persisted: %+v", got.Ingredients)
	}
	if got.Instructions != "Mix.\n\nFry." || got.Category != "Breakfast" {
		t.Errorf("unexpected recipe %+v", got)
	}
}

func TestSaveRecipeUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r, _ := s.SaveRecipe(ctx, SaveRecipeParams{Name: "Soup"})
	_, err := s.SaveRecipe(ctx, SaveRecipeParams{ID: r.ID, Name: "Tomato soup", Ingredients: ingredients("tomato")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := s.GetRecipe(ctx, r.ID)
	if got.Name != "Tomato soup" || len(got.Ingredients) != 1 {
		t.Errorf("update not persisted: %+v", got)
	}

	if _, err := s.SaveRecipe(ctx, SaveRecipeParams{ID: "missing", Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.SaveRecipe(ctx, SaveRecipeParams{Name: " "}); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestDeleteRecipeUnplans(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r, _ := s.SaveRecipe(ctx, SaveRecipeParams{Name: "Curry"})
	if _, err := s.PlanMeal(ctx, "2024-05-06_Dinner", r.ID); err != nil {
		t.Fatalf("plan: %v", err)
	}
	if err := s.DeleteRecipe(ctx, r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	snap, _ := s.Snapshot(ctx)
	if len(snap.Planner) != 0 {
		t.Errorf("expected planner slot removed, got %+v", snap.Planner)
	}
	if _, err := s.GetRecipe(ctx, r.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecipeDetail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.AddPantryItem(ctx, "Flour")
	egg, _ := s.AddPantryItem(ctx, "Egg")
	s.SetAvailable(ctx, egg.ID, false)

	cake, _ := s.SaveRecipe(ctx, SaveRecipeParams{Name: "Cake", Ingredients: ingredients("flour", "egg")})
	view, err := s.RecipeDetail(ctx, cake.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if view.CanMake {
		t.Error("expected cake to be infeasible (egg unavailable)")
	}
	if len(view.Availability) != 2 || !view.Availability[0].Satisfied || view.Availability[1].Satisfied {
		t.Errorf("unexpected availability %+v", view.Availability)
	}

	if _, err := s.RecipeDetail(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListAndFindRecipes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.AddPantryItem(ctx, "Flour")
	s.SaveRecipe(ctx, SaveRecipeParams{Name: "Roux", Ingredients: ingredients("flour")})
	s.SaveRecipe(ctx, SaveRecipeParams{Name: "Cake", Ingredients: ingredients("flour", "egg")})
	s.SaveRecipe(ctx, SaveRecipeParams{Name: "Water"})

	all, err := s.ListRecipes(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Cake" || all[2].Name != "Water" {
		t.Fatalf("expected recipes sorted by name, got %+v", all)
	}
	if all[0].CanMake || all[0].Missing != "egg" {
		t.Errorf("expected Cake missing egg, got %+v", all[0])
	}
	if !all[2].CanMake {
		t.Error("expected recipe without ingredients to be makeable")
	}

	avail, _ := s.FindRecipes(ctx, FindParams{AvailableOnly: true})
	if len(avail) != 2 {
		t.Errorf("expected 2 makeable recipes, got %+v", avail)
	}

	byIngredient, _ := s.FindRecipes(ctx, FindParams{Query: "EGG"})
	if len(byIngredient) != 1 || byIngredient[0].Name != "Cake" {
		t.Errorf("expected search by ingredient to find Cake, got %+v", byIngredient)
	}

	limited, _ := s.FindRecipes(ctx, FindParams{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("expected limit 1, got %d", len(limited))
	}
}

func TestImportRecipes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.SaveRecipe(ctx, SaveRecipeParams{Name: "Soup"})
	res, err := s.ImportRecipes(ctx, []model.Recipe{
		{Name: "soup "},
		{Name: "Salad", Ingredients: ingredients("lettuce")},
		{Name: "SALAD"},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Imported != 1 || res.Skipped != 2 {
		t.Errorf("expected 1 imported, 2 skipped, got %+v", res)
	}
	all, _ := s.ListRecipes(ctx)
	if len(all) != 2 {
		t.Errorf("expected 2 recipes, got %d", len(all))
	}
}

func TestAddMissingToShopping(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.AddPantryItem(ctx, "onion")
	s.AddShoppingItem(ctx, "tomato")
	r, _ := s.SaveRecipe(ctx, SaveRecipeParams{
		Name:        "Salsa",
		Ingredients: ingredients("tomato", "red onion", "cilantro", "", "Cilantro"),
	})

	added, err := s.AddMissingToShopping(ctx, r.ID)
	if err != nil {
		t.Fatalf("add missing: %v", err)
	}
	if len(added) != 1 || added[0].Name != "cilantro" {
		t.Fatalf("expected only cilantro added, got %+v", added)
	}

	again, _ := s.AddMissingToShopping(ctx, r.ID)
	if len(again) != 0 {
		t.Errorf("expected nothing added the second time, got %+v", again)
	}

	shopping, _ := s.ListShopping(ctx)
	if len(shopping) != 2 {
		t.Errorf("expected 2 shopping entries, got %+v", shopping)
	}

	if _, err := s.AddMissingToShopping(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
