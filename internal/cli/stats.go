package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), getDBPath())
	if err != nil {
		exitErr("stats", err)
	}

	emit(cmd, stats, func(w io.Writer) {
		fmt.Fprintf(w, "Database:  %s (%d bytes)\n", stats.DBPath, stats.DBSizeBytes)
		fmt.Fprintf(w, "Pantry:    %d items, %d in stock\n", stats.PantryItems, stats.AvailableItems)
		fmt.Fprintf(w, "Recipes:   %d, %d can be made\n", stats.Recipes, stats.MakeableRecipes)
		fmt.Fprintf(w, "Shopping:  %d entries\n", stats.ShoppingItems)
		fmt.Fprintf(w, "Planned:   %d meals\n", stats.PlannedMeals)
	})
}
