// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Default locations, relative to the working directory.
const (
	DefaultTeamsDir  = "teams"
	DefaultMapFile   = "drivePdfMap.json"
	DefaultOutputDir = "."
)

// MigrationConfig holds settings for a migration run.
type MigrationConfig struct {
	// TeamsDir is the directory scanned for legacy .htm section pages.
	TeamsDir string `json:"teams_dir" yaml:"teams_dir" mapstructure:"teams_dir"`

	// MapFile is the JSON file mapping legacy PDF filenames to drive-file IDs.
	MapFile string `json:"map_file" yaml:"map_file" mapstructure:"map_file"`

	// OutputDir receives converted_<name> copies and the catalog files.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// UpdatedAt is stamped on every card (default DefaultUpdatedAt).
	UpdatedAt string `json:"updated_at" yaml:"updated_at" mapstructure:"updated_at"`

	// ReportFile, when set, receives a YAML summary of the run.
	ReportFile string `json:"report_file,omitempty" yaml:"report_file,omitempty" mapstructure:"report_file"`
}

// WithDefaults returns a copy of c with empty fields set to their defaults.
func (c MigrationConfig) WithDefaults() MigrationConfig {
	if c.TeamsDir == "" {
		c.TeamsDir = DefaultTeamsDir
	}
	if c.MapFile == "" {
		c.MapFile = DefaultMapFile
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.UpdatedAt == "" {
		c.UpdatedAt = DefaultUpdatedAt
	}
	return c
}
