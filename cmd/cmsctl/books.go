package main

import (
	"fmt"
	"os"

	bookRepo "portfolio-backend/internal/domains/book/repository"
	bookService "portfolio-backend/internal/domains/book/service"

	"github.com/spf13/cobra"
)

func (a *cli) newBooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Book catalogue tasks",
	}

	var out string
	export := &cobra.Command{
		Use:   "export",
		Short: "Export all books to an .xlsx file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.connectDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			defer f.Close()

			n, err := bookService.NewExporter(bookRepo.NewPostgresRepository(db.Pool)).Export(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d books to %s\n", n, out)
			return nil
		},
	}
	export.Flags().StringVarP(&out, "out", "o", "books.xlsx", "output file")

	cmd.AddCommand(export)
	return cmd
}
