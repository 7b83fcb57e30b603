package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/pantrypal/internal/match"
	"github.com/rcliao/pantrypal/internal/model"
	"github.com/rcliao/pantrypal/internal/store"
)

func init() {
	pantryCmd := &cobra.Command{
		Use:   "pantry",
		Short: "Manage pantry items",
	}

	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add an item (in stock)",
		Args:  cobra.MinimumNArgs(1),
		Run:   runPantryAdd,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List pantry items",
		Run:   runPantryList,
	}
	listCmd.Flags().StringP("search", "s", "", "Filter by name")
	listCmd.Flags().String("sort", "", "Sort: alpha or available")

	renameCmd := &cobra.Command{
		Use:   "rename [id] [name]",
		Short: "Rename an item",
		Args:  cobra.MinimumNArgs(2),
		Run:   runPantryRename,
	}

	haveCmd := &cobra.Command{
		Use:   "have [id]",
		Short: "Mark an item in stock",
		Args:  cobra.ExactArgs(1),
		Run:   func(cmd *cobra.Command, args []string) { runPantrySetAvailable(cmd, args[0], true) },
	}

	outCmd := &cobra.Command{
		Use:   "out [id]",
		Short: "Mark an item out of stock",
		Args:  cobra.ExactArgs(1),
		Run:   func(cmd *cobra.Command, args []string) { runPantrySetAvailable(cmd, args[0], false) },
	}

	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		Run:   runPantryRm,
	}

	shopCmd := &cobra.Command{
		Use:   "shop [id]",
		Short: "Put an item on the shopping list",
		Args:  cobra.ExactArgs(1),
		Run:   runPantryShop,
	}

	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import items from a text file",
		Long:  "Import pantry items, one name per line, from a file or stdin. Existing names are skipped.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runPantryImport,
	}

	pantryCmd.AddCommand(addCmd, listCmd, renameCmd, haveCmd, outCmd, rmCmd, shopCmd, importCmd)
	RootCmd.AddCommand(pantryCmd)
}

func runPantryAdd(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	item, err := s.AddPantryItem(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		exitErr("pantry add", err)
	}
	emit(cmd, item, func(w io.Writer) { writePantryItem(w, *item); fmt.Fprintln(w) })
}

func runPantryList(cmd *cobra.Command, args []string) {
	search, _ := cmd.Flags().GetString("search")
	sortBy, _ := cmd.Flags().GetString("sort")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	items, err := s.ListPantry(cmd.Context(), store.ListPantryParams{Query: search, Sort: sortBy})
	if err != nil {
		exitErr("pantry list", err)
	}
	shopping, err := s.ListShopping(cmd.Context())
	if err != nil {
		exitErr("pantry list", err)
	}

	emit(cmd, items, func(w io.Writer) {
		if len(items) == 0 {
			fmt.Fprintln(w, "No pantry items.")
			return
		}
		queued := map[string]bool{}
		for _, sh := range shopping {
			queued[match.Normalize(sh.Name)] = true
		}
		for _, it := range items {
			writePantryItem(w, it)
			if queued[match.Normalize(it.Name)] {
				fmt.Fprint(w, "  (in shopping)")
			}
			fmt.Fprintln(w)
		}
	})
}

func runPantryRename(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	item, err := s.RenamePantryItem(cmd.Context(), args[0], strings.Join(args[1:], " "))
	if err != nil {
		exitErr("pantry rename", err)
	}
	emit(cmd, item, func(w io.Writer) { writePantryItem(w, *item); fmt.Fprintln(w) })
}

func runPantrySetAvailable(cmd *cobra.Command, id string, available bool) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	item, err := s.SetAvailable(cmd.Context(), id, available)
	if err != nil {
		exitErr("pantry update", err)
	}
	emit(cmd, item, func(w io.Writer) { writePantryItem(w, *item); fmt.Fprintln(w) })
}

func runPantryRm(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.DeletePantryItem(cmd.Context(), args[0]); err != nil {
		exitErr("pantry rm", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", args[0])
}

func runPantryShop(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	added, err := s.AddPantryToShopping(cmd.Context(), args[0])
	if err != nil {
		exitErr("pantry shop", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"added":%t}`+"\n", added != nil)
}

func runPantryImport(cmd *cobra.Command, args []string) {
	data, err := readInput(cmd, args)
	if err != nil {
		exitErr("read input", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	res, err := s.ImportPantryList(cmd.Context(), bytes.NewReader(data))
	if err != nil {
		exitErr("pantry import", err)
	}
	emit(cmd, res, func(w io.Writer) {
		fmt.Fprintf(w, "Imported: %d items\nSkipped (already exist): %d items\n", res.Imported, res.Skipped)
	})
}

func writePantryItem(w io.Writer, it model.PantryItem) {
	mark := "[ ]"
	if it.Available {
		mark = "[x]"
	}
	fmt.Fprintf(w, "%s %s  %s", mark, it.Name, it.ID)
}
