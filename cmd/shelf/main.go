package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"bookshelf/internal/bootstrap"
	"bookshelf/internal/config"
	"bookshelf/internal/logging"
	"bookshelf/internal/shelf"

	"github.com/spf13/cobra"
)

var (
	sourceFlag   string
	fileFlag     string
	subjectFlag  string
	capacityFlag int

	// current is loaded by the root PersistentPreRunE before any subcommand runs.
	current *shelf.Shelf
)

var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Arrange, group and search a personal bookshelf",
	Long: `shelf loads books from a YAML file, a library database or Open Library
and answers questions about them: arrangement, grouping, reading progress
and title search.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		// Logs go to stderr.
		log := logging.NewWithOutput(cfg.LogLevel, os.Stderr)

		s, _, err := bootstrap.LoadShelf(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		current = s
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "book source: file, postgres or openlibrary")
	rootCmd.PersistentFlags().StringVar(&fileFlag, "file", "", "YAML file to load when --source=file")
	rootCmd.PersistentFlags().StringVar(&subjectFlag, "subject", "", "Open Library subject when --source=openlibrary")
	rootCmd.PersistentFlags().IntVar(&capacityFlag, "capacity", 0, "maximum number of books on the shelf")

	rootCmd.AddCommand(listCmd, arrangeCmd, groupCmd, progressCmd, findCmd)
}

// loadConfig reads the environment and lets explicit flags win.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source = sourceFlag
	}
	if flags.Changed("file") {
		cfg.File = fileFlag
	}
	if flags.Changed("subject") {
		cfg.OpenLibrarySubject = subjectFlag
	}
	if flags.Changed("capacity") {
		c := capacityFlag
		cfg.Capacity = &c
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
