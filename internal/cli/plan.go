package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/pantrypal/internal/store"
)

func init() {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Weekly meal planner",
		Long:  "Plan breakfast, lunch and dinner for a Monday-to-Sunday week. Slots are written YYYY-MM-DD_Meal, e.g. 2024-05-06_Dinner.",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the week",
		Run:   runPlanShow,
	}
	showCmd.Flags().String("date", "", "Any date in the week to show (YYYY-MM-DD, default today)")

	setCmd := &cobra.Command{
		Use:   "set [slot] [recipe-id]",
		Short: "Assign a recipe to a slot",
		Args:  cobra.ExactArgs(2),
		Run:   runPlanSet,
	}

	rmCmd := &cobra.Command{
		Use:   "rm [slot]",
		Short: "Clear a slot",
		Args:  cobra.ExactArgs(1),
		Run:   runPlanRm,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear every planned meal",
		Run:   func(cmd *cobra.Command, args []string) { runClear(cmd, store.Planner) },
	}

	pickCmd := &cobra.Command{
		Use:   "pick [query]",
		Short: "List recipes to choose from, makeable ones first",
		Args:  cobra.ArbitraryArgs,
		Run:   runPlanPick,
	}

	planCmd.AddCommand(showCmd, setCmd, rmCmd, clearCmd, pickCmd)
	RootCmd.AddCommand(planCmd)
}

func runPlanShow(cmd *cobra.Command, args []string) {
	now := time.Now()
	if date, _ := cmd.Flags().GetString("date"); date != "" {
		t, err := time.ParseInLocation(time.DateOnly, date, time.Local)
		if err != nil {
			exitErr("parse date", err)
		}
		now = t
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	week, err := s.WeekPlan(cmd.Context(), now)
	if err != nil {
		exitErr("plan show", err)
	}

	emit(cmd, week, func(w io.Writer) {
		day := ""
		for _, ps := range week {
			if ps.Date != day {
				day = ps.Date
				fmt.Fprintf(w, "%s %s\n", ps.Day, ps.Date)
			}
			switch {
			case ps.RecipeID == "":
				fmt.Fprintf(w, "  %-9s -\n", ps.Meal)
			case ps.CanMake == nil:
				fmt.Fprintf(w, "  %-9s (deleted recipe %s)\n", ps.Meal, ps.RecipeID)
			case *ps.CanMake:
				fmt.Fprintf(w, "  %-9s %s ✓\n", ps.Meal, ps.RecipeName)
			default:
				fmt.Fprintf(w, "  %-9s %s ✗\n", ps.Meal, ps.RecipeName)
			}
		}
	})
}

func runPlanSet(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	pm, err := s.PlanMeal(cmd.Context(), args[0], args[1])
	if err != nil {
		exitErr("plan set", err)
	}
	emit(cmd, pm, func(w io.Writer) { fmt.Fprintf(w, "Planned %s: %s\n", pm.Slot, pm.RecipeID) })
}

func runPlanRm(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.UnplanMeal(cmd.Context(), args[0]); err != nil {
		exitErr("plan rm", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"slot":%q}`+"\n", args[0])
}

func runPlanPick(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	res, err := s.Picker(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		exitErr("plan pick", err)
	}

	emit(cmd, res, func(w io.Writer) {
		if len(res.Makeable)+len(res.NotMakeable) == 0 {
			fmt.Fprintln(w, "No recipes.")
			return
		}
		for _, r := range res.Makeable {
			writeRecipeSummary(w, r)
		}
		for _, r := range res.NotMakeable {
			writeRecipeSummary(w, r)
		}
	})
}
