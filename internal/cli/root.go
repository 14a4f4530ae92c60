// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli implements the animetrack-admin command tree.

Commands only load configuration and open connections when they need them, so
read-only commands such as "achievements" run without a database.
*/
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/animetrack/internal/platform/config"
)

// Dependencies are the lazily used collaborators of every command.
type Dependencies struct {
	Logger *slog.Logger

	// LoadConfig reads the environment. It is only called by commands that need it.
	LoadConfig func() (*config.Config, error)
}

// NewRootCmd creates the root command for animetrack-admin.
func NewRootCmd(deps Dependencies) *cobra.Command {
	if deps.LoadConfig == nil {
		deps.LoadConfig = config.Load
	}

	root := &cobra.Command{
		Use:   "animetrack-admin",
		Short: "Maintain the Animetrack catalog and development tooling",
		Long: `Administrative tasks for the Animetrack API.

animetrack-admin provides tools to:
- Import anime catalog files into PostgreSQL
- Inspect the built-in achievement catalog
- Mint development access tokens`,
		SilenceUsage: true,
	}

	root.AddCommand(newAnimeCmd(deps))
	root.AddCommand(newAchievementsCmd())
	root.AddCommand(newTokenCmd(deps))

	return root
}
