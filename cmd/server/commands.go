package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/artem13815/microbridge/pkg/config"
	"github.com/artem13815/microbridge/pkg/registry"
	"github.com/artem13815/microbridge/pkg/security/jwt"
)

var registryCmd = &cobra.Command{
	Use:   "registry [field]",
	Short: "Print the option sets of the profile fields",
	Args:  cobra.MaximumNArgs(1),
	Example: `  microbridge registry
  microbridge registry currency`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var out any = registry.All()
		if len(args) == 1 {
			opts, ok := registry.Options(args[0])
			if !ok {
				return fmt.Errorf("unknown field %q, known: %v", args[0], registry.Fields())
			}
			out = opts
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign a bearer token for local development",
	Long: `Sign an HS256 token with the configured JWT secret. In production tokens come
from the identity provider; this command is for local testing only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if cfg.Production() {
			return fmt.Errorf("refusing to sign tokens in production")
		}
		userFlag, _ := cmd.Flags().GetString("user")
		email, _ := cmd.Flags().GetString("email")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		id := uuid.New()
		if userFlag != "" {
			if id, err = uuid.Parse(userFlag); err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
		}
		tok, err := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, ttl).Generate(cmd.Context(), id, email)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "user %s\n", id)
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("user", "", "user id (random when empty)")
	tokenCmd.Flags().String("email", "", "email claim")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")
}
