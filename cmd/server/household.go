package main

import (
	"fmt"
	"time"

	"github.com/Mikemeister8/octogon-home-app/internal/models"
	"github.com/spf13/cobra"
)

var householdReq models.HouseholdCreateRequest

var householdCmd = &cobra.Command{
	Use:   "household",
	Short: "Manage households",
}

var householdCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a household and print its id",
	RunE: func(cmd *cobra.Command, args []string) error {
		if householdReq.Name == "" {
			return fmt.Errorf("--name is required")
		}
		if householdReq.Timezone != "" {
			if _, err := time.LoadLocation(householdReq.Timezone); err != nil {
				return fmt.Errorf("invalid --timezone: %w", err)
			}
		}

		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx := cmd.Context()
		store, err := openStore(ctx, cfg, log, true)
		if err != nil {
			return err
		}
		defer store.Close()

		household := models.NewHousehold(householdReq)
		if err := store.CreateHousehold(ctx, household); err != nil {
			return fmt.Errorf("failed to create household: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), household.ID)
		return nil
	},
}

func init() {
	householdCreateCmd.Flags().StringVar(&householdReq.Name, "name", "", "display name")
	householdCreateCmd.Flags().StringVar(&householdReq.TokenName, "token-name", models.DefaultTokenName, "points label")
	householdCreateCmd.Flags().StringVar(&householdReq.ThemeColor, "theme-color", "", "primary color, e.g. #7c3aed")
	householdCreateCmd.Flags().StringVar(&householdReq.Timezone, "timezone", "UTC", "IANA time zone used for days and months")
	householdCmd.AddCommand(householdCreateCmd)
	rootCmd.AddCommand(householdCmd)
}
