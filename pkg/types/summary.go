// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FileResult records how one source page was migrated.
type FileResult struct {
	File     string `json:"file" yaml:"file"`
	Section  string `json:"section" yaml:"section"`
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	Cards    int    `json:"cards" yaml:"cards"`

	// Error is the reason the file was skipped, empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary holds the outcome of a migration run.
type Summary struct {
	Processed int          `json:"processed" yaml:"processed"`
	Failed    int          `json:"failed" yaml:"failed"`
	Cards     int          `json:"cards" yaml:"cards"`
	Files     []FileResult `json:"files" yaml:"files"`
}

// Total returns the number of source files seen.
func (s Summary) Total() int {
	return s.Processed + s.Failed
}

// HasFailures reports whether any source file was skipped.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}
