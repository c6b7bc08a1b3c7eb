// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-migrate/internal/catalog"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the pretty and compact catalogs hold the same cards",
	Long: `Verify reads migrated_data.json and migrated_data.min.json from the
output directory and checks that both decode to the same card list, in the
same order.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		n, err := catalog.Verify(cfg.OutputDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d cards match\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
