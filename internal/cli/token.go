// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/animetrack/internal/platform/constants"
	"github.com/taibuivan/animetrack/internal/platform/sec"
)

func newTokenCmd(deps Dependencies) *cobra.Command {
	var (
		role           string
		username       string
		ttl            time.Duration
		privateKeyPath string
		publicKeyPath  string
	)

	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Mint a development access token",
		Long: `Sign an RS256 access token accepted by the API.

Key paths default to JWT_PRIVATE_KEY_PATH and JWT_PUBLIC_KEY_PATH.

Examples:
  animetrack-admin token 0190a6d2-7c1e-7b3a-9f00-000000000001
  animetrack-admin token ops --role admin --ttl 1h`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedRole, err := sec.ParseRole(role)
			if err != nil {
				return err
			}

			if privateKeyPath == "" || publicKeyPath == "" {
				cfg, err := deps.LoadConfig()
				if err != nil {
					return fmt.Errorf("load configuration: %w", err)
				}
				if privateKeyPath == "" {
					privateKeyPath = cfg.JWTPrivKeyPath
				}
				if publicKeyPath == "" {
					publicKeyPath = cfg.JWTPubKeyPath
				}
			}

			tokens, err := sec.NewTokenService(privateKeyPath, publicKeyPath, constants.AuthIssuer)
			if err != nil {
				return err
			}

			token, err := tokens.GenerateAccessToken(args[0], username, string(parsedRole), ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", string(sec.RoleMember), "role claim: member or admin")
	cmd.Flags().StringVar(&username, "username", "", "username claim")
	cmd.Flags().DurationVar(&ttl, "ttl", constants.DevTokenTTL, "token lifetime")
	cmd.Flags().StringVar(&privateKeyPath, "private-key", "", "PEM private key path")
	cmd.Flags().StringVar(&publicKeyPath, "public-key", "", "PEM public key path")

	return cmd
}
