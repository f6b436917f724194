package cmd

import (
	"errors"
	"fmt"
	"time"

	"hud-newsfeed/internal/auth"

	"github.com/spf13/cobra"
)

// tokenCmd mints a JWT for local testing against the API.
var tokenCmd = &cobra.Command{
	Use:   "token <email>",
	Short: "Mint a JWT for the given email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg.Auth.Secret == "" {
			return errors.New("auth.secret must be configured")
		}
		ttl, err := time.ParseDuration(cfg.Auth.TokenTTL)
		if err != nil {
			return err
		}
		token, err := auth.New(cfg.Auth.Secret, ttl).Issue(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
