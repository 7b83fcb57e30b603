package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/pantrypal/internal/ingredients"
	"github.com/rcliao/pantrypal/internal/model"
	"github.com/rcliao/pantrypal/internal/steps"
	"github.com/rcliao/pantrypal/internal/store"
)

func init() {
	recipeCmd := &cobra.Command{
		Use:     "recipe",
		Aliases: []string{"recipes"},
		Short:   "Manage recipes and check what you can cook",
	}

	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a recipe",
		Long: `Add a recipe. Ingredients are given one per -i flag, either as
"name|qty|unit" or as a free-text line like "2 cups flour".`,
		Args: cobra.MinimumNArgs(1),
		Run:  runRecipeAdd,
	}
	addRecipeFlags(addCmd)

	editCmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a recipe; only the flags given are changed",
		Args:  cobra.ExactArgs(1),
		Run:   runRecipeEdit,
	}
	addRecipeFlags(editCmd)
	editCmd.Flags().String("name", "", "New name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes with whether each can be made",
		Run:   runRecipeList,
	}
	listCmd.Flags().StringP("search", "s", "", "Filter by recipe or ingredient name")
	listCmd.Flags().BoolP("available", "a", false, "Only recipes you can make now")
	listCmd.Flags().IntP("limit", "l", 0, "Max results (0 = all)")

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a recipe with per-ingredient availability",
		Args:  cobra.ExactArgs(1),
		Run:   runRecipeShow,
	}

	ingredientsCmd := &cobra.Command{
		Use:   "ingredients [id]",
		Short: "Print ingredients as name|qty|unit lines",
		Long: `Print a recipe's ingredients one per line in name|qty|unit form.
The output can be edited and passed back with recipe edit --ingredients-file.`,
		Args: cobra.ExactArgs(1),
		Run:  runRecipeIngredients,
	}

	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a recipe",
		Args:  cobra.ExactArgs(1),
		Run:   runRecipeRm,
	}

	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import recipes from JSON",
		Long: `Import one recipe object or an array of them from a file or stdin.
Recipes whose name already exists are skipped.`,
		Args: cobra.MaximumNArgs(1),
		Run:  runRecipeImport,
	}

	shopMissingCmd := &cobra.Command{
		Use:   "shop-missing [id]",
		Short: "Add the recipe's missing ingredients to the shopping list",
		Args:  cobra.ExactArgs(1),
		Run:   runRecipeShopMissing,
	}

	recipeCmd.AddCommand(addCmd, editCmd, listCmd, showCmd, ingredientsCmd, rmCmd, importCmd, shopMissingCmd)
	RootCmd.AddCommand(recipeCmd)
}

func addRecipeFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("ingredient", "i", nil, "Ingredient (repeatable)")
	cmd.Flags().String("ingredients-file", "", "Read ingredients from a file, one per line")
	cmd.Flags().StringP("category", "c", "", "Category")
	cmd.Flags().StringP("instructions", "t", "", "Instruction text")
	cmd.Flags().String("instructions-file", "", "Read instructions from a file")
}

// recipeIngredients collects ingredients from -i flags and --ingredients-file.
// changed is false when neither flag was given.
func recipeIngredients(cmd *cobra.Command) (ings []model.Ingredient, changed bool, err error) {
	lines, _ := cmd.Flags().GetStringArray("ingredient")
	for _, l := range lines {
		if ing, ok := ingredients.ParseLine(l); ok {
			ings = append(ings, ing)
		}
	}
	if path, _ := cmd.Flags().GetString("ingredients-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, false, err
		}
		ings = append(ings, ingredients.ParseLines(string(data))...)
	}
	changed = cmd.Flags().Changed("ingredient") || cmd.Flags().Changed("ingredients-file")
	return ings, changed, nil
}

func recipeInstructions(cmd *cobra.Command) (string, bool, error) {
	if path, _ := cmd.Flags().GetString("instructions-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", false, err
		}
		return string(data), true, nil
	}
	text, _ := cmd.Flags().GetString("instructions")
	return text, cmd.Flags().Changed("instructions"), nil
}

func runRecipeAdd(cmd *cobra.Command, args []string) {
	ings, _, err := recipeIngredients(cmd)
	if err != nil {
		exitErr("read ingredients", err)
	}
	instructions, _, err := recipeInstructions(cmd)
	if err != nil {
		exitErr("read instructions", err)
	}
	category, _ := cmd.Flags().GetString("category")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	r, err := s.SaveRecipe(cmd.Context(), store.SaveRecipeParams{
		Name:         strings.Join(args, " "),
		Category:     category,
		Ingredients:  ings,
		Instructions: instructions,
	})
	if err != nil {
		exitErr("recipe add", err)
	}
	emit(cmd, r, func(w io.Writer) { fmt.Fprintf(w, "Saved %s  %s\n", r.Name, r.ID) })
}

func runRecipeEdit(cmd *cobra.Command, args []string) {
	ings, ingsChanged, err := recipeIngredients(cmd)
	if err != nil {
		exitErr("read ingredients", err)
	}
	instructions, instrChanged, err := recipeInstructions(cmd)
	if err != nil {
		exitErr("read instructions", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	cur, err := s.GetRecipe(cmd.Context(), args[0])
	if err != nil {
		exitErr("recipe edit", err)
	}

	p := store.SaveRecipeParams{
		ID:           cur.ID,
		Name:         cur.Name,
		Category:     cur.Category,
		Ingredients:  cur.Ingredients,
		Instructions: cur.Instructions.String(),
	}
	if cmd.Flags().Changed("name") {
		p.Name, _ = cmd.Flags().GetString("name")
	}
	if cmd.Flags().Changed("category") {
		p.Category, _ = cmd.Flags().GetString("category")
	}
	if ingsChanged {
		p.Ingredients = ings
	}
	if instrChanged {
		p.Instructions = instructions
	}

	r, err := s.SaveRecipe(cmd.Context(), p)
	if err != nil {
		exitErr("recipe edit", err)
	}
	emit(cmd, r, func(w io.Writer) { fmt.Fprintf(w, "Saved %s  %s\n", r.Name, r.ID) })
}

func runRecipeList(cmd *cobra.Command, args []string) {
	search, _ := cmd.Flags().GetString("search")
	available, _ := cmd.Flags().GetBool("available")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	results, err := s.FindRecipes(cmd.Context(), store.FindParams{
		Query:         search,
		AvailableOnly: available,
		Limit:         limit,
	})
	if err != nil {
		exitErr("recipe list", err)
	}

	emit(cmd, results, func(w io.Writer) {
		if len(results) == 0 {
			fmt.Fprintln(w, "No recipes.")
			return
		}
		for _, r := range results {
			writeRecipeSummary(w, r)
		}
	})
}

func writeRecipeSummary(w io.Writer, r store.RecipeSummary) {
	badge := "✓ can make"
	if !r.CanMake {
		badge = "✗ missing " + r.Missing
	}
	fmt.Fprintf(w, "%s  [%s]  %s\n", r.Name, badge, r.ID)
}

func runRecipeShow(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	v, err := s.RecipeDetail(cmd.Context(), args[0])
	if err != nil {
		exitErr("recipe show", err)
	}

	emit(cmd, v, func(w io.Writer) {
		fmt.Fprintln(w, v.Name)
		if v.Category != "" {
			fmt.Fprintf(w, "Category: %s\n", v.Category)
		}
		if v.CanMake {
			fmt.Fprintln(w, "You can make this.")
		} else {
			fmt.Fprintln(w, "Missing ingredients.")
		}

		fmt.Fprintln(w, "\nIngredients:")
		for _, st := range v.Availability {
			if st.Skipped {
				continue
			}
			mark := "✗"
			if st.Satisfied {
				mark = "✓"
			}
			amount := strings.TrimSpace(st.Ingredient.Qty + " " + st.Ingredient.Unit)
			if amount != "" {
				amount = " (" + amount + ")"
			}
			fmt.Fprintf(w, "  %s %s%s\n", mark, st.Ingredient.Name, amount)
		}

		if ss := steps.Split(v.Instructions.String()); len(ss) > 0 {
			fmt.Fprintln(w, "\nSteps:")
			for _, st := range ss {
				fmt.Fprintf(w, "  %d. %s\n", st.Number, st.Text)
			}
		}
	})
}

func runRecipeIngredients(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	r, err := s.GetRecipe(cmd.Context(), args[0])
	if err != nil {
		exitErr("recipe ingredients", err)
	}
	w := cmd.OutOrStdout()
	for _, ing := range r.Ingredients {
		fmt.Fprintln(w, ingredients.Format(ing))
	}
}

func runRecipeRm(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.DeleteRecipe(cmd.Context(), args[0]); err != nil {
		exitErr("recipe rm", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", args[0])
}

func runRecipeImport(cmd *cobra.Command, args []string) {
	data, err := readInput(cmd, args)
	if err != nil {
		exitErr("read input", err)
	}
	recipes, err := ingredients.DecodeRecipes(data)
	if err != nil {
		exitErr("parse json", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	res, err := s.ImportRecipes(cmd.Context(), recipes)
	if err != nil {
		exitErr("recipe import", err)
	}
	emit(cmd, res, func(w io.Writer) {
		fmt.Fprintf(w, "Imported: %d recipes\nSkipped (already exist): %d recipes\n", res.Imported, res.Skipped)
	})
}

func runRecipeShopMissing(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	added, err := s.AddMissingToShopping(cmd.Context(), args[0])
	if err != nil {
		exitErr("recipe shop-missing", err)
	}
	emit(cmd, added, func(w io.Writer) {
		if len(added) == 0 {
			fmt.Fprintln(w, "Nothing to add.")
			return
		}
		for _, it := range added {
			fmt.Fprintf(w, "+ %s\n", it.Name)
		}
	})
}
