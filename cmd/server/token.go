package main

import (
	"fmt"
	"time"

	"github.com/Mikemeister8/octogon-home-app/internal/auth"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	tokenUser      string
	tokenHousehold string
	tokenTTL       time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token signed with JWT_SECRET for local testing",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		householdID, err := uuid.Parse(tokenHousehold)
		if err != nil {
			return fmt.Errorf("invalid --household: %w", err)
		}
		userID, err := uuid.Parse(tokenUser)
		if err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}

		jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer).WithTTL(tokenTTL)
		token, err := jwtService.GenerateToken(userID, householdID)
		if err != nil {
			return fmt.Errorf("failed to sign token: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id (sub claim)")
	tokenCmd.Flags().StringVar(&tokenHousehold, "household", "", "household id")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	tokenCmd.MarkFlagRequired("user")
	tokenCmd.MarkFlagRequired("household")
	rootCmd.AddCommand(tokenCmd)
}
