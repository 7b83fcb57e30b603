package feasibility

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/pantrypal/internal/model"
)

func recipe(name string, ingredients ...string) model.Recipe {
	r := model.Recipe{ID: name, Name: name}
	for _, n := range ingredients {
		r.Ingredients = append(r.Ingredients, model.Ingredient{Name: n})
	}
	return r
}

var flourEgg = []model.PantryItem{
	{ID: "1", Name: "Flour", Available: true},
	{ID: "2", Name: "Egg", Available: false},
}

func TestCanMake_Scenarios(t *testing.T) {
	assert.False(t, CanMake(recipe("cake", "flour", "egg"), flourEgg), "egg is out of stock")
	assert.True(t, CanMake(recipe("roux", "flour"), flourEgg))
}

func TestCanMake_EmptyIngredients(t *testing.T) {
	assert.True(t, CanMake(model.Recipe{Name: "water"}, nil))
	assert.True(t, CanMake(model.Recipe{Name: "water", Ingredients: []model.Ingredient{}}, flourEgg))
}

func TestCanMake_BlankNamesAreSatisfied(t *testing.T) {
	r := recipe("odd", "", "   ", "\t")
	assert.True(t, CanMake(r, nil))

	r.Ingredients = append(r.Ingredients, model.Ingredient{Name: "flour"})
	assert.True(t, CanMake(r, flourEgg))
}

func TestCanMake_UnavailableNeverSatisfies(t *testing.T) {
	pantry := []model.PantryItem{{Name: "egg", Available: false}}
	assert.False(t, CanMake(recipe("omelette", "egg"), pantry))
}

func TestCanMake_OverMatching(t *testing.T) {
	pantry := []model.PantryItem{{Name: "onion", Available: true}, {Name: "Tomato", Available: true}}
	assert.True(t, CanMake(recipe("salsa", "red onion", "tomatoes"), pantry))
}

func TestCanMake_Idempotent(t *testing.T) {
	r := recipe("cake", "flour", "egg")
	before := append([]model.PantryItem(nil), flourEgg...)
	first := CanMake(r, flourEgg)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, CanMake(r, flourEgg))
	}
	assert.Equal(t, before, flourEgg, "pantry snapshot must not be mutated")
}

func TestFirstMissing(t *testing.T) {
	pantry := []model.PantryItem{{Name: "flour", Available: true}}
	ing, missing := FirstMissing(recipe("cake", "flour", "sugar", "egg"), pantry)
	require.True(t, missing)
	assert.Equal(t, "sugar", ing.Name)

	_, missing = FirstMissing(recipe("roux", "flour"), pantry)
	assert.False(t, missing)
}

func TestDetail_EvaluatesEveryIngredient(t *testing.T) {
	pantry := []model.PantryItem{
		{Name: "Flour", Available: true},
		{Name: "Butter", Available: true},
	}
	got := Detail(recipe("pastry", "sugar", "flour", "", "butter"), pantry)

	want := []IngredientStatus{
		{Ingredient: model.Ingredient{Name: "sugar"}},
		{Ingredient: model.Ingredient{Name: "flour"}, Satisfied: true, MatchedBy: "Flour"},
		{Ingredient: model.Ingredient{Name: ""}, Satisfied: true, Skipped: true},
		{Ingredient: model.Ingredient{Name: "butter"}, Satisfied: true, MatchedBy: "Butter"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Detail mismatch (-want +got):\n%s", diff)
	}
}

func TestDetail_AgreesWithCanMake(t *testing.T) {
	r := recipe("cake", "flour", "egg", "milk")
	all := true
	for _, st := range Detail(r, flourEgg) {
		all = all && st.Satisfied
	}
	assert.Equal(t, CanMake(r, flourEgg), all)
}

func TestMissingForShopping_AlreadyQueued(t *testing.T) {
	shopping := []model.ShoppingItem{{ID: "s1", Name: "tomato"}}
	got := MissingForShopping(recipe("sauce", "tomato"), nil, shopping)
	assert.Empty(t, got)
}

func TestMissingForShopping_ExactEqualityOnly(t *testing.T) {
	shopping := []model.ShoppingItem{{Name: " Tomato "}, {Name: "onion"}}
	pantry := []model.PantryItem{{Name: "salt", Available: true}}
	got := MissingForShopping(recipe("sauce", "tomato", "red onion", "salt", "", "basil", "Basil"), pantry, shopping)

	want := []model.Ingredient{{Name: "red onion"}, {Name: "basil"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MissingForShopping mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingForShopping_DoesNotMutate(t *testing.T) {
	shopping := []model.ShoppingItem{{Name: "milk"}}
	MissingForShopping(recipe("cake", "flour", "egg"), flourEgg, shopping)
	assert.Len(t, shopping, 1)
}
