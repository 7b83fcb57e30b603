package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rcliao/pantrypal/internal/model"
)

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)

	egg, _ := src.AddPantryItem(ctx, "Egg")
	src.SetAvailable(ctx, egg.ID, false)
	src.AddPantryItem(ctx, "Flour")
	src.AddShoppingItem(ctx, "Milk")
	cake, _ := src.SaveRecipe(ctx, SaveRecipeParams{Name: "Cake", Ingredients: ingredients("flour", "egg")})
	src.PlanMeal(ctx, "2024-05-06_Dinner", cake.ID)

	doc, err := src.ExportAll(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	decoded, err := DecodeDocument(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	dst := newTestStore(t)
	dst.AddPantryItem(ctx, "stale")
	sum, err := dst.ImportAll(ctx, decoded)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if sum.Pantry != 2 || sum.Recipes != 1 || sum.Shopping != 1 || sum.Planner != 1 {
		t.Errorf("unexpected summary %+v", sum)
	}

	snap, _ := dst.Snapshot(ctx)
	if len(snap.Pantry) != 2 || snap.Pantry[0].Name != "Egg" || snap.Pantry[0].Available {
		t.Errorf("pantry not restored: %+v", snap.Pantry)
	}
	if snap.Recipes[0].ID == cake.ID {
		t.Error("expected fresh recipe id")
	}
	if snap.Planner[0].RecipeID != snap.Recipes[0].ID {
		t.Errorf("planner not rewired: %+v vs %s", snap.Planner[0], snap.Recipes[0].ID)
	}
}

func TestDecodeDocumentLegacy(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	data := `{
		"pantry": [{"id": 1, "name": "Rice", "available": true}, {"id": 2, "name": ""}],
		"recipes": [{"id": 7, "name": "Rice bowl", "ingredients": [{"name": "rice", "qty": "1", "unit": "cup"}],
		             "instructions": ["Rinse.", "Cook."], "created": "2024-05-01T10:00:00.000Z"}],
		"shopping": [{"id": 3, "name": "Nori"}],
		"planner": [{"slot": "2024-05-06_Lunch", "recipeId": 7}, {"slot": "2024-05-06_Dinner", "recipeId": 99}],
		"exported": "2024-05-02T10:00:00.000Z"
	}`
	doc, err := DecodeDocument([]byte(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Recipes[0].ID != "7" || doc.Planner[0].RecipeID != "7" {
		t.Errorf("expected numeric ids as strings, got %+v %+v", doc.Recipes[0], doc.Planner[0])
	}
	if doc.Recipes[0].Created.IsZero() {
		t.Error("expected created time to be parsed")
	}

	sum, err := s.ImportAll(ctx, doc)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if sum.Pantry != 1 || sum.Recipes != 1 || sum.Shopping != 1 || sum.Planner != 1 {
		t.Errorf("unexpected summary %+v", sum)
	}

	all, _ := s.ListRecipes(ctx)
	r, _ := s.GetRecipe(ctx, all[0].ID)
	if r.Instructions != "Rinse.\n\nCook." {
		t.Errorf("expected joined instructions, got %q", r.Instructions)
	}
	if !all[0].CanMake {
		t.Error("expected rice bowl to be makeable")
	}
}

func TestDecodeDocumentInvalid(t *testing.T) {
	if _, err := DecodeDocument([]byte(`{"pantry": "nope"}`)); err == nil {
		t.Error("expected error for malformed export")
	}
}

func TestImportAllSkipsInvalidSlots(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	doc := &Document{
		Recipes: []model.Recipe{{ID: "r1", Name: "Toast"}},
		Planner: []model.PlannedMeal{
			{Slot: "2024-05-06_dinner", RecipeID: "r1"},
			{Slot: "monday-dinner", RecipeID: "r1"},
			{Slot: "2024-05-06_Brunch", RecipeID: "r1"},
		},
	}
	sum, err := s.ImportAll(ctx, doc)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if sum.Planner != 1 {
		t.Errorf("expected 1 planner entry, got %d", sum.Planner)
	}

	snap, _ := s.Snapshot(ctx)
	if len(snap.Planner) != 1 || snap.Planner[0].Slot != "2024-05-06_Dinner" {
		t.Fatalf("expected canonical slot, got %+v", snap.Planner)
	}
	if err := s.UnplanMeal(ctx, snap.Planner[0].Slot); err != nil {
		t.Errorf("imported slot should be removable: %v", err)
	}
}
