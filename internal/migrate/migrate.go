// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package migrate runs the section page to card catalog migration.
//
// A run loads the PDF map, lists the legacy .htm pages, and for each page
// decodes it, saves a UTF-8 copy next to the outputs and extracts its
// cards. Pages that fail are reported and skipped. The cards of all pages
// are then written as one catalog.
package migrate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/catalog-migrate/internal/catalog"
	"github.com/pdiddy/catalog-migrate/internal/decode"
	"github.com/pdiddy/catalog-migrate/internal/extract"
	"github.com/pdiddy/catalog-migrate/internal/ident"
	"github.com/pdiddy/catalog-migrate/internal/pdfmap"
	"github.com/pdiddy/catalog-migrate/pkg/types"
)

const (
	pageExt         = ".htm"
	convertedPrefix = "converted_"
)

// Run migrates every page under cfg.TeamsDir and writes the catalog to
// cfg.OutputDir. A missing or malformed PDF map, an unreadable teams
// directory and a failed catalog write are returned as errors; per-page
// failures are counted in the summary.
func Run(cfg types.MigrationConfig, w io.Writer) (types.Summary, error) {
	cfg = cfg.WithDefaults()
	fmt.Fprintln(w, ">>> START MIGRATION <<<")

	pdfs, err := pdfmap.Load(cfg.MapFile)
	if err != nil {
		return types.Summary{}, err
	}
	fmt.Fprintf(w, "[OK] PDF map loaded: %d files.\n", len(pdfs))

	files, err := Discover(cfg.TeamsDir)
	if err != nil {
		return types.Summary{}, err
	}
	fmt.Fprintf(w, "[SCAN] found %s files: %d\n", pageExt, len(files))

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return types.Summary{}, fmt.Errorf("creating output directory: %w", err)
	}

	summary := types.Summary{Files: make([]types.FileResult, 0, len(files))}
	all := []types.Card{}

	for _, name := range files {
		section := ident.SectionID(strings.TrimSuffix(name, pageExt))
		fmt.Fprintf(w, "\n--- %s (section: %s) ---\n", name, section)

		res := types.FileResult{File: name, Section: section}
		cards, variant, err := migratePage(name, section, pdfs, cfg, w)
		res.Encoding = variant
		if err != nil {
			fmt.Fprintf(w, "  ERROR: %v\n", err)
			res.Error = err.Error()
			summary.Failed++
			summary.Files = append(summary.Files, res)
			continue
		}

		res.Cards = len(cards)
		all = append(all, cards...)
		summary.Processed++
		summary.Cards += len(cards)
		summary.Files = append(summary.Files, res)
	}

	if err := catalog.Write(cfg.OutputDir, all); err != nil {
		fmt.Fprintf(w, "save failed: %v\n", err)
		return summary, err
	}
	fmt.Fprintf(w, "\n[DONE] Total cards: %d\n", len(all))
	fmt.Fprintf(w, "catalog saved to %s\n", catalog.PrettyFile)
	fmt.Fprintf(w, "compact catalog saved to %s\n", catalog.CompactFile)

	if cfg.ReportFile != "" {
		if err := catalog.WriteReport(cfg.ReportFile, summary); err != nil {
			fmt.Fprintf(w, "save failed: %v\n", err)
			return summary, err
		}
		fmt.Fprintf(w, "report saved to %s\n", cfg.ReportFile)
	}

	fmt.Fprintf(w, "\nBatch summary: %d processed, %d failed (total: %d)\n",
		summary.Processed, summary.Failed, summary.Total())
	return summary, nil
}

// migratePage decodes one page, saves its UTF-8 copy and extracts its
// cards. The returned encoding is empty when the page could not be decoded.
func migratePage(name, section string, pdfs pdfmap.Map, cfg types.MigrationConfig, w io.Writer) ([]types.Card, string, error) {
	content, variant, err := decode.ReadFile(filepath.Join(cfg.TeamsDir, name))
	if err != nil {
		return nil, "", err
	}
	fmt.Fprintf(w, "  encoding: %s\n", variant)

	converted := convertedPrefix + name
	if err := os.WriteFile(filepath.Join(cfg.OutputDir, converted), []byte(content), 0o644); err != nil {
		return nil, variant.String(), fmt.Errorf("writing %s: %w", converted, err)
	}
	fmt.Fprintf(w, "  saved UTF-8 copy: %s\n", converted)

	cards, err := extract.Cards(content, extract.Options{
		Section:   section,
		UpdatedAt: cfg.UpdatedAt,
		PDFs:      pdfs,
	}, w)
	if err != nil {
		return nil, variant.String(), err
	}
	return cards, variant.String(), nil
}

// Discover lists the page files in dir whose names end in .htm, sorted by
// name. Subdirectories are ignored.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading teams directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), pageExt) {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}
