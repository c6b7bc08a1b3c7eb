// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog writes the migrated card list and reads it back.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/catalog-migrate/pkg/types"
)

const (
	// PrettyFile is the indented catalog, for people.
	PrettyFile = "migrated_data.json"
	// CompactFile is the same catalog without whitespace, for production.
	CompactFile = "migrated_data.min.json"
)

// Write serializes cards to dir/PrettyFile (2-space indent) and
// dir/CompactFile. Non-ASCII and HTML characters are written as-is and
// neither file ends with a newline. A nil slice is written as [].
func Write(dir string, cards []types.Card) error {
	if cards == nil {
		cards = []types.Card{}
	}

	pretty, err := marshal(cards, "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, PrettyFile), pretty, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", PrettyFile, err)
	}

	compact, err := marshal(cards, "")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, CompactFile), compact, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", CompactFile, err)
	}
	return nil
}

func marshal(cards []types.Card, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(cards); err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators writes U+2028 and U+2029 as raw characters.
// encoding/json always escapes them, even with SetEscapeHTML(false). An
// escape only counts when preceded by an even number of backslashes, so an
// escaped backslash followed by "u2028" text is left alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		switch rest := data[i:]; {
		case rest[0] != '\\':
			out = append(out, rest[0])
		case bytes.HasPrefix(rest, []byte(`\\`)):
			out = append(out, rest[:2]...)
			i++
		case bytes.HasPrefix(rest, []byte(`\u2028`)):
			out = append(out, "\u2028"...)
			i += 5
		case bytes.HasPrefix(rest, []byte(`\u2029`)):
			out = append(out, "\u2029"...)
			i += 5
		default:
			out = append(out, rest[0])
		}
	}
	return out
}

// Read loads a catalog file written by Write.
func Read(path string) ([]types.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	var cards []types.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return cards, nil
}

// Verify checks that the pretty and compact catalogs in dir hold the same
// cards in the same order. It returns the number of cards.
func Verify(dir string) (int, error) {
	pretty, err := Read(filepath.Join(dir, PrettyFile))
	if err != nil {
		return 0, err
	}
	compact, err := Read(filepath.Join(dir, CompactFile))
	if err != nil {
		return 0, err
	}
	if len(pretty) != len(compact) {
		return 0, fmt.Errorf("%s has %d cards, %s has %d", PrettyFile, len(pretty), CompactFile, len(compact))
	}
	for i := range pretty {
		if !reflect.DeepEqual(pretty[i], compact[i]) {
			return 0, fmt.Errorf("card %d differs: %q in %s, %q in %s",
				i+1, pretty[i].ID, PrettyFile, compact[i].ID, CompactFile)
		}
	}
	return len(pretty), nil
}

// WriteReport writes a YAML summary of a migration run to path.
func WriteReport(path string, summary types.Summary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
