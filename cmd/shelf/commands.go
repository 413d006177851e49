package main

import (
	"fmt"
	"strings"

	"bookshelf/internal/book"
	"bookshelf/internal/filter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List books in the order they were added",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printBooks(cmd.OutOrStdout(), "Books", current.Books())
		return nil
	},
}

var arrangeCmd = &cobra.Command{
	Use:   "arrange",
	Short: "List books sorted by title or publication date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		by, _ := cmd.Flags().GetString("by")
		desc, _ := cmd.Flags().GetBool("desc")

		cmp, err := comparator(by, desc)
		if err != nil {
			return err
		}
		printBooks(cmd.OutOrStdout(), "Arranged by "+by, current.Arrange(cmp))
		return nil
	},
}

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Group books by publication year, author or status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		by, _ := cmd.Flags().GetString("by")
		out := cmd.OutOrStdout()

		switch strings.ToLower(by) {
		case "year":
			printGroups(out, current.GroupByPublicationYear())
		case "author":
			printGroups(out, current.GroupByAuthor())
		case "status":
			printGroups(out, current.GroupByStatus())
		default:
			return fmt.Errorf("invalid --by %q: use year, author or status", by)
		}
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show reading progress percentages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printProgress(cmd.OutOrStdout(), current.Progress())
		return nil
	},
}

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Find books whose title contains query",
	Long: `Find books whose title contains query, ignoring case. Optional filters
narrow the result by publication year and reading status.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		after, _ := cmd.Flags().GetInt("after")
		before, _ := cmd.Flags().GetInt("before")
		status, _ := cmd.Flags().GetString("status")

		f, err := findFilter(cmd.Flags().Changed("after"), after, cmd.Flags().Changed("before"), before, status)
		if err != nil {
			return err
		}
		printBooks(cmd.OutOrStdout(), fmt.Sprintf("Matching %q", args[0]), current.FindBooksByTitle(strings.ToLower(args[0]), f))
		return nil
	},
}

func init() {
	arrangeCmd.Flags().String("by", "title", "sort key: title, published or author")
	arrangeCmd.Flags().Bool("desc", false, "reverse the order")

	groupCmd.Flags().String("by", "year", "group key: year, author or status")

	findCmd.Flags().Int("after", 0, "only books published after this year")
	findCmd.Flags().Int("before", 0, "only books published before this year")
	findCmd.Flags().String("status", "", "only books with this status: TO_READ, READING or FINISHED")
}

func comparator(by string, desc bool) (func(a, b *book.Book) int, error) {
	var cmp func(a, b *book.Book) int
	switch strings.ToLower(by) {
	case "title":
		cmp = book.Compare
	case "published":
		cmp = book.ComparePublishedOn
	case "author":
		cmp = book.CompareAuthor
	default:
		return nil, fmt.Errorf("invalid --by %q: use title, published or author", by)
	}
	if desc {
		cmp = book.Reverse(cmp)
	}
	return cmp, nil
}

func findFilter(hasAfter bool, after int, hasBefore bool, before int, status string) (filter.Filter, error) {
	f := filter.NewComposite()
	if hasAfter {
		f.Add(filter.After(after))
	}
	if hasBefore {
		f.Add(filter.Before(before))
	}
	if status != "" {
		s, err := book.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		f.Add(filter.ByStatus(s))
	}
	return f, nil
}
