package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/pantrypal/internal/ingredients"
	"github.com/rcliao/pantrypal/internal/model"
	"github.com/rcliao/pantrypal/internal/store"
)

// run executes the root command against a scratch database and returns stdout.
func run(t *testing.T, dir string, args ...string) []byte {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(append([]string{
		"--db", filepath.Join(dir, "pantry.db"),
		"--config", filepath.Join(dir, "config.yaml"),
		"--format", "json",
	}, args...))
	require.NoError(t, RootCmd.Execute())
	return out.Bytes()
}

func TestPantryRecipeFlow(t *testing.T) {
	t.Setenv("PANTRYPAL_DB", "")
	t.Setenv("PANTRYPAL_LOG_LEVEL", "")
	t.Setenv("PANTRYPAL_FORMAT", "")
	dir := t.TempDir()

	var flour model.PantryItem
	require.NoError(t, json.Unmarshal(run(t, dir, "pantry", "add", "Flour"), &flour))
	assert.Equal(t, "Flour", flour.Name)
	assert.True(t, flour.Available)
	run(t, dir, "pantry", "add", "Eggs")

	var r model.Recipe
	require.NoError(t, json.Unmarshal(run(t, dir, "recipe", "add", "Pancakes",
		"-i", "2 cups flour", "-i", "egg", "-i", "milk|1|cup"), &r))
	require.Len(t, r.Ingredients, 3)
	assert.Equal(t, model.Ingredient{Name: "flour", Qty: "2", Unit: "cups"}, r.Ingredients[0])

	lines := string(run(t, dir, "recipe", "ingredients", r.ID))
	assert.Equal(t, "flour|2|cups\negg||\nmilk|1|cup\n", lines)
	assert.Equal(t, r.Ingredients, ingredients.ParseLines(lines))

	var list []store.RecipeSummary
	require.NoError(t, json.Unmarshal(run(t, dir, "recipe", "list"), &list))
	require.Len(t, list, 1)
	assert.False(t, list[0].CanMake)
	assert.Equal(t, "milk", list[0].Missing)

	var added []model.ShoppingItem
	require.NoError(t, json.Unmarshal(run(t, dir, "recipe", "shop-missing", r.ID), &added))
	require.Len(t, added, 1)
	assert.Equal(t, "milk", added[0].Name)

	run(t, dir, "shop", "bought", added[0].ID)

	list = nil
	require.NoError(t, json.Unmarshal(run(t, dir, "recipe", "list"), &list))
	require.Len(t, list, 1)
	assert.True(t, list[0].CanMake)

	var st store.Stats
	require.NoError(t, json.Unmarshal(run(t, dir, "stats"), &st))
	assert.Equal(t, 3, st.PantryItems)
	assert.Equal(t, 1, st.MakeableRecipes)
	assert.Equal(t, 0, st.ShoppingItems)
}

func TestUnknownFormatRejected(t *testing.T) {
	t.Setenv("PANTRYPAL_FORMAT", "")
	dir := t.TempDir()

	var out, errOut bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&errOut)
	RootCmd.SetArgs([]string{
		"--db", filepath.Join(dir, "pantry.db"),
		"--config", filepath.Join(dir, "config.yaml"),
		"--format", "yaml",
		"stats",
	})
	err := RootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "yaml"`)
	assert.Empty(t, out.String())
}
