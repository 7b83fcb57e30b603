package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/pantrypal/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace all data from an export",
		Long: `Import a JSON document produced by export, from a file or stdin.
This replaces ALL existing data and requires --yes.`,
		Args: cobra.MaximumNArgs(1),
		Run:  runImport,
	}

	cmd.Flags().BoolP("yes", "y", false, "Confirm replacing all data")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		exitErr("import", fmt.Errorf("this replaces all data; re-run with --yes"))
	}

	data, err := readInput(cmd, args)
	if err != nil {
		exitErr("read input", err)
	}
	doc, err := store.DecodeDocument(data)
	if err != nil {
		exitErr("parse export", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sum, err := s.ImportAll(cmd.Context(), doc)
	if err != nil {
		exitErr("import", err)
	}
	emit(cmd, sum, func(w io.Writer) {
		fmt.Fprintf(w, "Imported %d pantry items, %d recipes, %d shopping entries, %d planned meals\n",
			sum.Pantry, sum.Recipes, sum.Shopping, sum.Planner)
	})
}
