package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"dictionary/internal/domain"
	"dictionary/internal/service"

	"github.com/spf13/cobra"
)

func addCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <word> <meaning> <category>",
		Short: "Add a word to the dictionary",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := a.store.Add(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added: %s\n", describe(entry))
			return nil
		},
	}
}

func listCmd(a *app) *cobra.Command {
	var search, category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List words, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			// Numbers are positions in the full list so they can be passed to delete.
			matched := 0
			for i, e := range a.store.GetAll() {
				if !service.Matches(e, search, category) {
					continue
				}
				matched++
				fmt.Fprintf(out, "%d. %s\n", i+1, describe(e))
			}
			if matched == 0 {
				fmt.Fprintln(out, "No words found.")
			}

			progress := service.NewStatsService(a.store).Progress(search, category)
			fmt.Fprintf(out, "\nTotal words: %d\n%s %d%%\n", progress.Total, progress.Bar(), progress.Percent())
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive substring of the word")
	cmd.Flags().StringVarP(&category, "category", "c", "", "exact category")
	return cmd
}

func deleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <number>",
		Short: "Delete the word at the number shown by list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid number %q", args[0])
			}

			confirm := service.Confirmer(service.Confirmed)
			if !yes {
				confirm = promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
			}

			removed, err := a.store.DeleteAt(cmd.Context(), n-1, confirm)
			var rangeErr *domain.IndexOutOfRangeError
			switch {
			case errors.Is(err, domain.ErrDeleteNotConfirmed):
				fmt.Fprintln(cmd.OutOrStdout(), "Kept.")
				return nil
			case errors.As(err, &rangeErr):
				return fmt.Errorf("no word number %d, the dictionary has %d", n, rangeErr.Len)
			case err != nil:
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", describe(removed))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

func categoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories in first-use order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, counts := service.NewStatsService(a.store).CategoryCounts()
			for _, c := range categories {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", c, counts[c])
			}
			return nil
		},
	}
}

// promptConfirmer asks on out and approves only a "y" or "yes" answer from in
func promptConfirmer(in io.Reader, out io.Writer) service.Confirmer {
	return func(entry domain.WordEntry) bool {
		fmt.Fprintf(out, "Delete %s? [y/N]: ", describe(entry))

		scanner := bufio.NewScanner(in)
		if !scanner.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return answer == "y" || answer == "yes"
	}
}

func describe(e domain.WordEntry) string {
	return fmt.Sprintf("%s - %s [%s]", e.Word, e.Meaning, e.Category)
}
