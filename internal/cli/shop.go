package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/pantrypal/internal/store"
)

func init() {
	shopCmd := &cobra.Command{
		Use:   "shop",
		Short: "Manage the shopping list",
	}

	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add an entry",
		Args:  cobra.MinimumNArgs(1),
		Run:   runShopAdd,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List entries",
		Run:   runShopList,
	}

	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Remove an entry without buying it",
		Args:  cobra.ExactArgs(1),
		Run:   runShopRm,
	}

	boughtCmd := &cobra.Command{
		Use:   "bought [id]",
		Short: "Mark an entry purchased and restock the pantry",
		Args:  cobra.ExactArgs(1),
		Run:   runShopBought,
	}

	boughtAllCmd := &cobra.Command{
		Use:   "bought-all",
		Short: "Mark every entry purchased",
		Run:   runShopBoughtAll,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the list",
		Run:   func(cmd *cobra.Command, args []string) { runClear(cmd, store.Shopping) },
	}

	shopCmd.AddCommand(addCmd, listCmd, rmCmd, boughtCmd, boughtAllCmd, clearCmd)
	RootCmd.AddCommand(shopCmd)
}

func runShopAdd(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	item, err := s.AddShoppingItem(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		exitErr("shop add", err)
	}
	emit(cmd, item, func(w io.Writer) { fmt.Fprintf(w, "- %s  %s\n", item.Name, item.ID) })
}

func runShopList(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	items, err := s.ListShopping(cmd.Context())
	if err != nil {
		exitErr("shop list", err)
	}
	emit(cmd, items, func(w io.Writer) {
		if len(items) == 0 {
			fmt.Fprintln(w, "Shopping list is empty.")
			return
		}
		for _, it := range items {
			fmt.Fprintf(w, "- %s  %s\n", it.Name, it.ID)
		}
	})
}

func runShopRm(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.DeleteShoppingItem(cmd.Context(), args[0]); err != nil {
		exitErr("shop rm", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", args[0])
}

func runShopBought(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.MarkPurchased(cmd.Context(), args[0]); err != nil {
		exitErr("shop bought", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", args[0])
}

func runShopBoughtAll(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := s.MarkAllPurchased(cmd.Context())
	if err != nil {
		exitErr("shop bought-all", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"purchased":%d}`+"\n", n)
}

// runClear empties one collection. Shared by the shop and plan commands.
func runClear(cmd *cobra.Command, collection string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.Clear(cmd.Context(), collection); err != nil {
		exitErr("clear "+collection, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"cleared":%q}`+"\n", collection)
}
