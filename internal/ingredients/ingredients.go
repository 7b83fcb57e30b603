// Package ingredients parses free-text ingredient lines and recipe JSON.
package ingredients

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rcliao/pantrypal/internal/model"
)

// quantityLine matches "2 cups flour", "1/2 tsp salt", "3 eggs".
var quantityLine = regexp.MustCompile(`^([\d/.]+)\s*([a-zA-Z]+)?\s+(.*)$`)

// ParseLine parses one ingredient line. Two forms are understood:
// "name|qty|unit" and "<qty> [unit] name". Anything else is a bare name.
// Blank lines return false.
func ParseLine(line string) (model.Ingredient, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return model.Ingredient{}, false
	}

	if strings.Contains(line, "|") {
		parts := strings.Split(line, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		ing := model.Ingredient{Name: parts[0]}
		if len(parts) > 1 {
			ing.Qty = parts[1]
		}
		if len(parts) > 2 {
			ing.Unit = parts[2]
		}
		return ing, true
	}

	if m := quantityLine.FindStringSubmatch(line); m != nil {
		name := m[3]
		if name == "" {
			name = line
		}
		return model.Ingredient{Name: name, Qty: m[1], Unit: m[2]}, true
	}

	return model.Ingredient{Name: line}, true
}

// ParseLines parses one ingredient per non-blank line.
func ParseLines(text string) []model.Ingredient {
	var out []model.Ingredient
	for _, l := range strings.Split(text, "\n") {
		if ing, ok := ParseLine(l); ok {
			out = append(out, ing)
		}
	}
	return out
}

// Format renders an ingredient in the "name|qty|unit" editing form.
func Format(ing model.Ingredient) string {
	return ing.Name + "|" + ing.Qty + "|" + ing.Unit
}

// rawRecipe is the loose shape accepted by DecodeRecipes.
type rawRecipe struct {
	Title        string            `json:"title"`
	Name         string            `json:"name"`
	Category     string            `json:"category"`
	Ingredients  []json.RawMessage `json:"ingredients"`
	Directions   json.RawMessage   `json:"directions"`
	Instructions json.RawMessage   `json:"instructions"`
}

type rawIngredient struct {
	Name       string `json:"name"`
	Ingredient string `json:"ingredient"`
	Qty        any    `json:"qty"`
	Quantity   any    `json:"quantity"`
	Amount     any    `json:"amount"`
	Unit       string `json:"unit"`
}

// DecodeRecipes decodes a single recipe object or an array of them from
// loosely structured JSON. Returned recipes have no ID or Created time.
func DecodeRecipes(data []byte) ([]model.Recipe, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, fmt.Errorf("empty recipe json")
	}

	var raws []rawRecipe
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &raws); err != nil {
			return nil, fmt.Errorf("parse recipe json: %w", err)
		}
	} else {
		var one rawRecipe
		if err := json.Unmarshal([]byte(trimmed), &one); err != nil {
			return nil, fmt.Errorf("parse recipe json: %w", err)
		}
		raws = []rawRecipe{one}
	}

	out := make([]model.Recipe, 0, len(raws))
	for _, raw := range raws {
		out = append(out, raw.recipe())
	}
	return out, nil
}

func (raw rawRecipe) recipe() model.Recipe {
	r := model.Recipe{
		Name:        firstNonEmpty(raw.Title, raw.Name, "Untitled Recipe"),
		Category:    raw.Category,
		Ingredients: []model.Ingredient{},
	}

	for _, msg := range raw.Ingredients {
		if ing := decodeIngredient(msg); ing.Name != "" {
			r.Ingredients = append(r.Ingredients, ing)
		}
	}

	// Lists win over strings; within each form, directions wins.
	if parts, ok := decodeList(raw.Directions); ok {
		r.Instructions = model.Instructions(strings.Join(parts, "\n\n"))
	} else if parts, ok := decodeList(raw.Instructions); ok {
		r.Instructions = model.Instructions(strings.Join(parts, "\n\n"))
	} else if text, ok := decodeString(raw.Directions); ok {
		r.Instructions = model.Instructions(text)
	} else if text, ok := decodeString(raw.Instructions); ok {
		r.Instructions = model.Instructions(text)
	}
	return r
}

func decodeIngredient(msg json.RawMessage) model.Ingredient {
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		if ing, ok := ParseLine(s); ok {
			return ing
		}
		return model.Ingredient{Name: s}
	}

	var obj rawIngredient
	if err := json.Unmarshal(msg, &obj); err != nil {
		return model.Ingredient{}
	}
	return model.Ingredient{
		Name: firstNonEmpty(obj.Name, obj.Ingredient),
		Qty:  firstNonEmpty(scalar(obj.Qty), scalar(obj.Quantity), scalar(obj.Amount)),
		Unit: obj.Unit,
	}
}

func decodeList(msg json.RawMessage) ([]string, bool) {
	if len(msg) == 0 {
		return nil, false
	}
	var parts []string
	if err := json.Unmarshal(msg, &parts); err != nil || parts == nil {
		return nil, false
	}
	return parts, true
}

func decodeString(msg json.RawMessage) (string, bool) {
	if len(msg) == 0 || string(msg) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(msg, &s); err != nil {
		return "", false
	}
	return s, true
}

// scalar renders a JSON quantity ("2", 2, 0.5) as text.
func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return fmt.Sprintf("%g", x)
	case bool:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
