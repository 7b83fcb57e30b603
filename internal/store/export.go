package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/pantrypal/internal/model"
	"github.com/rcliao/pantrypal/internal/planner"
)

// Document is the full export format.
type Document struct {
	Pantry   []model.PantryItem   `json:"pantry"`
	Recipes  []model.Recipe       `json:"recipes"`
	Shopping []model.ShoppingItem `json:"shopping"`
	Planner  []model.PlannedMeal  `json:"planner"`
	Exported time.Time            `json:"exported"`
}

// ImportSummary reports how many records of each collection were restored.
type ImportSummary struct {
	Pantry   int `json:"pantry"`
	Recipes  int `json:"recipes"`
	Shopping int `json:"shopping"`
	Planner  int `json:"planner"`
}

// looseID accepts string or numeric JSON ids.
type looseID string

func (id *looseID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = looseID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = looseID(n.String())
	return nil
}

type rawDocument struct {
	Pantry []struct {
		ID        looseID `json:"id"`
		Name      string  `json:"name"`
		Available bool    `json:"available"`
	} `json:"pantry"`
	Recipes []struct {
		ID           looseID            `json:"id"`
		Name         string             `json:"name"`
		Category     string             `json:"category"`
		Ingredients  []model.Ingredient `json:"ingredients"`
		Instructions model.Instructions `json:"instructions"`
		Created      string             `json:"created"`
	} `json:"recipes"`
	Shopping []struct {
		ID   looseID `json:"id"`
		Name string  `json:"name"`
	} `json:"shopping"`
	Planner []struct {
		Slot     string  `json:"slot"`
		RecipeID looseID `json:"recipe_id"`
		// Older exports used camelCase.
		LegacyRecipeID looseID `json:"recipeId"`
	} `json:"planner"`
}

// DecodeDocument parses an export. It accepts documents written by
// ExportAll as well as older exports with numeric ids.
func DecodeDocument(data []byte) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse export: %v", ErrInvalid, err)
	}

	doc := &Document{}
	for _, p := range raw.Pantry {
		doc.Pantry = append(doc.Pantry, model.PantryItem{ID: string(p.ID), Name: p.Name, Available: p.Available})
	}
	for _, r := range raw.Recipes {
		created, _ := time.Parse(time.RFC3339, r.Created)
		doc.Recipes = append(doc.Recipes, model.Recipe{
			ID:           string(r.ID),
			Name:         r.Name,
			Category:     r.Category,
			Ingredients:  r.Ingredients,
			Instructions: r.Instructions,
			Created:      created,
		})
	}
	for _, it := range raw.Shopping {
		doc.Shopping = append(doc.Shopping, model.ShoppingItem{ID: string(it.ID), Name: it.Name})
	}
	for _, pm := range raw.Planner {
		id := pm.RecipeID
		if id == "" {
			id = pm.LegacyRecipeID
		}
		doc.Planner = append(doc.Planner, model.PlannedMeal{Slot: pm.Slot, RecipeID: string(id)})
	}
	return doc, nil
}

// ExportAll returns every collection as one document.
func (s *SQLiteStore) ExportAll(ctx context.Context) (*Document, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &Document{
		Pantry:   snap.Pantry,
		Recipes:  snap.Recipes,
		Shopping: snap.Shopping,
		Planner:  snap.Planner,
		Exported: s.now().UTC().Truncate(time.Second),
	}, nil
}

// ImportAll replaces all data with the contents of doc. Records get fresh
// ids; planner entries are rewired to the new recipe ids and dropped when
// their recipe is not part of doc. Records without a name are skipped.
func (s *SQLiteStore) ImportAll(ctx context.Context, doc *Document) (*ImportSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for _, c := range []string{Planner, Shopping, Recipes, Pantry} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+c); err != nil {
			return nil, fmt.Errorf("clear %s: %w", c, err)
		}
	}

	sum := &ImportSummary{}
	for _, p := range doc.Pantry {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		if _, err := s.insertPantry(ctx, tx, p.Name, p.Available); err != nil {
			return nil, err
		}
		sum.Pantry++
	}

	recipeIDs := make(map[string]string, len(doc.Recipes))
	for _, r := range doc.Recipes {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		oldID := r.ID
		r.ID = s.newID()
		if r.Created.IsZero() {
			r.Created = s.now().UTC().Truncate(time.Second)
		}
		if err := insertRecipe(ctx, tx, &r); err != nil {
			return nil, err
		}
		if oldID != "" {
			recipeIDs[oldID] = r.ID
		}
		sum.Recipes++
	}

	for _, it := range doc.Shopping {
		if strings.TrimSpace(it.Name) == "" {
			continue
		}
		if _, err := s.insertShopping(ctx, tx, it.Name); err != nil {
			return nil, err
		}
		sum.Shopping++
	}

	for _, pm := range doc.Planner {
		date, meal, err := planner.ParseSlot(pm.Slot)
		if err != nil {
			s.log.Warn("dropping planner entry with invalid slot",
				zap.String("slot", pm.Slot), zap.Error(err))
			continue
		}
		newID, ok := recipeIDs[pm.RecipeID]
		if !ok {
			s.log.Warn("dropping planner entry with unknown recipe",
				zap.String("slot", pm.Slot), zap.String("recipe_id", pm.RecipeID))
			continue
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO planner (slot, recipe_id) VALUES (?, ?)
			 ON CONFLICT(slot) DO UPDATE SET recipe_id = excluded.recipe_id`,
			planner.SlotKey(date, meal), newID)
		if err != nil {
			return nil, fmt.Errorf("insert planner entry: %w", err)
		}
		sum.Planner++
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	s.log.Info("data imported",
		zap.Int("pantry", sum.Pantry), zap.Int("recipes", sum.Recipes),
		zap.Int("shopping", sum.Shopping), zap.Int("planner", sum.Planner))
	return sum, nil
}
