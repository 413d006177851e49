package main

import (
	"fmt"
	"io"

	"bookshelf/internal/book"
	"bookshelf/internal/shelf"

	"github.com/fatih/color"
)

func statusColor(status string) func(a ...interface{}) string {
	switch status {
	case book.StatusFinished:
		return color.New(color.FgGreen).SprintFunc()
	case book.StatusReading:
		return color.New(color.FgYellow).SprintFunc()
	default:
		return color.New(color.FgHiBlack).SprintFunc()
	}
}

func printBook(w io.Writer, b *book.Book) {
	status := b.Status()
	fmt.Fprintf(w, "  %-8s %s by %s (%s)\n",
		statusColor(status)(status),
		b.Title(),
		b.Author(),
		b.PublishedOn().Format("2006-01-02"))
}

func printBooks(w io.Writer, title string, books []*book.Book) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s\n", cyan(title))

	if len(books) == 0 {
		gray := color.New(color.FgHiBlack).SprintFunc()
		fmt.Fprintf(w, "  %s\n", gray("No books"))
		return
	}
	for _, b := range books {
		printBook(w, b)
	}
}

func printGroups[K comparable](w io.Writer, groups *shelf.Groups[K]) {
	yellow := color.New(color.FgYellow).SprintFunc()
	for key, books := range groups.All() {
		fmt.Fprintf(w, "%s (%d)\n", yellow(fmt.Sprint(key)), len(books))
		for _, b := range books {
			printBook(w, b)
		}
	}
}

func printProgress(w io.Writer, p shelf.Progress) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Fprintf(w, "%s\n", cyan("Reading progress"))
	fmt.Fprintf(w, "  Completed:   %s\n", green(fmt.Sprintf("%d%%", p.Completed())))
	fmt.Fprintf(w, "  In progress: %s\n", yellow(fmt.Sprintf("%d%%", p.InProgress())))
	fmt.Fprintf(w, "  To read:     %s\n", gray(fmt.Sprintf("%d%%", p.ToRead())))
}
