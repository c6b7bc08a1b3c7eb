// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the catalog-migrate CLI.
//
// Running catalog-migrate with no arguments migrates ./teams/*.htm into
// ./migrated_data.json and ./migrated_data.min.json, resolving instruction
// PDFs through ./drivePdfMap.json.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/catalog-migrate/internal/console"
	"github.com/pdiddy/catalog-migrate/internal/migrate"
	"github.com/pdiddy/catalog-migrate/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd migrates the legacy team pages when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "catalog-migrate",
	Short: "Migrate legacy team pages into the model card catalog",
	Long: `catalog-migrate reads the legacy UTF-16 team pages in teams/, extracts
every model card, resolves instruction PDFs against drivePdfMap.json, and
writes the catalog as migrated_data.json (indented) and
migrated_data.min.json (compact). A UTF-8 copy of each page is saved as
converted_<name>.

Pages that cannot be decoded or parsed are reported and skipped. A missing
or malformed PDF map aborts the run.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := console.EnableUTF8(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	},
	RunE:         runMigrate,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./catalog-migrate.yaml or ~/.config/catalog-migrate/catalog-migrate.yaml)")
	pf.String("output-dir", types.DefaultOutputDir, "directory for converted pages and catalog files")

	f := rootCmd.Flags()
	f.String("teams-dir", types.DefaultTeamsDir, "directory holding the legacy .htm pages")
	f.String("map-file", types.DefaultMapFile, "JSON file mapping PDF filenames to drive-file IDs")
	f.String("updated-at", types.DefaultUpdatedAt, "timestamp stamped on every card")
	f.String("report", "", "write a YAML run report to this file")
}

// configKeys maps command-line flags to MigrationConfig keys.
var configKeys = map[string]string{
	"output-dir": "output_dir",
	"teams-dir":  "teams_dir",
	"map-file":   "map_file",
	"updated-at": "updated_at",
	"report":     "report_file",
}

// loadConfig resolves the flags of cmd, CATALOG_MIGRATE_* environment
// variables and the optional config file into a MigrationConfig. Keys the
// config file sets that MigrationConfig does not know are an error.
func loadConfig(cmd *cobra.Command) (types.MigrationConfig, error) {
	v := viper.New()
	for name, key := range configKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return types.MigrationConfig{}, fmt.Errorf("binding --%s: %w", name, err)
		}
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("catalog-migrate")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "catalog-migrate"))
		}
	}
	v.SetEnvPrefix("CATALOG_MIGRATE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return types.MigrationConfig{}, fmt.Errorf("reading config: %w", err)
		}
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	}

	var cfg types.MigrationConfig
	if err := v.UnmarshalExact(&cfg); err != nil {
		return types.MigrationConfig{}, fmt.Errorf("config %s: %w", v.ConfigFileUsed(), err)
	}
	return cfg.WithDefaults(), nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	summary, err := migrate.Run(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d page(s) skipped\n", summary.Failed)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
