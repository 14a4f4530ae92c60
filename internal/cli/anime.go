// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taibuivan/animetrack/internal/anime"
	pgstore "github.com/taibuivan/animetrack/internal/platform/postgres"
)

func newAnimeCmd(deps Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anime",
		Short: "Manage the anime catalog",
	}

	cmd.AddCommand(newAnimeImportCmd(deps))

	return cmd
}

func newAnimeImportCmd(deps Dependencies) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Upsert catalog titles from a YAML file",
		Long: `Upsert every title of a YAML catalog file.

Titles without an id get a new UUIDv7, titles without a slug get one derived
from the title. Existing ids are updated in place.

Examples:
  animetrack-admin anime import data/seed/anime.yaml
  animetrack-admin anime import catalog.yaml --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open catalog file: %w", err)
			}
			defer file.Close()

			titles, err := anime.DecodeImport(file)
			if err != nil {
				return err
			}

			if dryRun {
				return printTitles(cmd, titles)
			}

			cfg, err := deps.LoadConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			pool, err := pgstore.NewPool(cmd.Context(), cfg.DatabaseURL, pgstore.Options{
				MaxConns: cfg.DatabaseMaxConn,
				MinConns: cfg.DatabaseMinConn,
			}, deps.Logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			service := anime.NewService(anime.NewPostgresRepository(pool), deps.Logger)

			imported := 0
			for _, title := range titles {
				if _, err := service.Upsert(cmd.Context(), title); err != nil {
					return fmt.Errorf("import %q: %w", title.Title, err)
				}
				imported++
			}

			deps.Logger.Info("anime_import_finished",
				slog.String("file", args[0]),
				slog.Int("count", imported),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d titles.\n", imported)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "decode and list titles without writing")

	return cmd
}

func printTitles(cmd *cobra.Command, titles []*anime.Anime) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintln(writer, "TITLE\tGENRES\tRELEASED")
	for _, title := range titles {
		released := "-"
		if title.ReleaseDate != nil {
			released = title.ReleaseDate.Format("2006-01-02")
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\n", title.Title, strings.Join(anime.NormalizeGenres(title.Genres), ","), released)
	}
	fmt.Fprintf(writer, "\n%d titles (dry run)\n", len(titles))

	return writer.Flush()
}
