// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package migrate

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/encoding/unicode"

	"github.com/pdiddy/catalog-migrate/internal/catalog"
	"github.com/pdiddy/catalog-migrate/pkg/types"
)

const avtomobilPage = `<html><body>
<div class="model-card">
  <img class="model-image" src="img/x.jpg">
  <h3 class="model-title">Модель X</h3>
  <a class="video-btn" href="https://youtu.be/x">Видео</a>
  <a class="instruction-btn" href="pdf/avtomobil-288.pdf">PDF</a>
</div>
</body></html>`

const gruzovikPage = `<html><body>
<div class="model-card">
  <h3 class="model-title">Тягач</h3>
  <a class="instruction-btn" href="pdf/gruzovik-17.pdf">PDF</a>
</div>
</body></html>`

// workspace lays out a migration working directory and returns a config
// pointing at it.
type workspace struct {
	t   *testing.T
	dir string
	cfg types.MigrationConfig
}

func newWorkspace(t *testing.T, pdfMap string) *workspace {
	t.Helper()
	dir := t.TempDir()
	teams := filepath.Join(dir, "teams")
	require.NoError(t, os.MkdirAll(teams, 0o755))
	out := filepath.Join(dir, "out")

	mapPath := filepath.Join(dir, "drivePdfMap.json")
	if pdfMap != "" {
		require.NoError(t, os.WriteFile(mapPath, []byte(pdfMap), 0o644))
	}

	return &workspace{
		t:   t,
		dir: dir,
		cfg: types.MigrationConfig{
			TeamsDir:  teams,
			MapFile:   mapPath,
			OutputDir: out,
		},
	}
}

func (ws *workspace) page(name string, raw []byte) {
	ws.t.Helper()
	require.NoError(ws.t, os.WriteFile(filepath.Join(ws.cfg.TeamsDir, name), raw, 0o644))
}

func utf16LE(t *testing.T, bom unicode.BOMPolicy, s string) []byte {
	t.Helper()
	out, err := unicode.UTF16(unicode.LittleEndian, bom).NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return out
}

func TestRun(t *testing.T) {
	ws := newWorkspace(t, `{"avtomobil-288.pdf": "drive123"}`)
	ws.page("avtomobil.htm", utf16LE(t, unicode.UseBOM, avtomobilPage))
	ws.page("gruzovik.htm", utf16LE(t, unicode.IgnoreBOM, gruzovikPage))
	ws.page("notes.txt", []byte("ignored"))

	var log bytes.Buffer
	summary, err := Run(ws.cfg, &log)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 2, summary.Cards)
	assert.False(t, summary.HasFailures())

	cards, err := catalog.Read(filepath.Join(ws.cfg.OutputDir, catalog.PrettyFile))
	require.NoError(t, err)
	require.Len(t, cards, 2)

	first := cards[0]
	assert.Equal(t, "avtomobil-модель-x-288-c94b", first.ID)
	assert.Equal(t, "avtomobil", first.Section)
	assert.Equal(t, "Модель X", first.Title)
	assert.Equal(t, "img/x.jpg", first.ImageURL)
	assert.Equal(t, "https://youtu.be/x", first.VideoURL)
	require.NotNil(t, first.PDF.ID)
	assert.Equal(t, "drive123", *first.PDF.ID)
	assert.Equal(t, "avtomobil-288.pdf", first.PDF.Name)
	assert.Equal(t, types.DefaultUpdatedAt, first.UpdatedAt)

	second := cards[1]
	assert.Equal(t, "gruzovik", second.Section)
	assert.Nil(t, second.PDF.ID)
	assert.Equal(t, "gruzovik-17.pdf (not found)", second.PDF.Name)

	converted, err := os.ReadFile(filepath.Join(ws.cfg.OutputDir, "converted_avtomobil.htm"))
	require.NoError(t, err)
	assert.Equal(t, avtomobilPage, string(converted))

	assert.Contains(t, log.String(), "--- avtomobil.htm (section: avtomobil) ---")
	assert.Contains(t, log.String(), "encoding: utf-16le-bom")
	assert.Contains(t, log.String(), "encoding: utf-16le\n")
	assert.Contains(t, log.String(), "[DONE] Total cards: 2")
	assert.NotContains(t, log.String(), "notes.txt")
}

func TestRun_SkipsBrokenPage(t *testing.T) {
	ws := newWorkspace(t, `{}`)
	broken := append(utf16LE(t, unicode.UseBOM, "<p>x</p>"), 0x00)
	ws.page("a-broken.htm", broken)
	ws.page("b-good.htm", utf16LE(t, unicode.UseBOM, gruzovikPage))

	var log bytes.Buffer
	summary, err := Run(ws.cfg, &log)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Failed)
	assert.True(t, summary.HasFailures())
	require.Len(t, summary.Files, 2)
	assert.Equal(t, "a-broken.htm", summary.Files[0].File)
	assert.Contains(t, summary.Files[0].Error, "invalid UTF-16")
	assert.Equal(t, 1, summary.Files[1].Cards)
	assert.Contains(t, log.String(), "  ERROR: ")

	_, err = os.Stat(filepath.Join(ws.cfg.OutputDir, "converted_a-broken.htm"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	cards, err := catalog.Read(filepath.Join(ws.cfg.OutputDir, catalog.CompactFile))
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "b-good", cards[0].Section)
}

func TestRun_PageWithoutCards(t *testing.T) {
	ws := newWorkspace(t, `{}`)
	ws.page("empty.htm", utf16LE(t, unicode.UseBOM, "<html><body><p>none</p></body></html>"))
	ws.page("gruzovik.htm", utf16LE(t, unicode.UseBOM, gruzovikPage))

	summary, err := Run(ws.cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 0, summary.Files[0].Cards)
	assert.Equal(t, 1, summary.Cards)
}

func TestRun_PlainUTF8Fallback(t *testing.T) {
	ws := newWorkspace(t, `{}`)
	// Odd byte count, so the UTF-16 attempt fails.
	page := `<div class="model-card"><h3 class="model-title">Plain</h3></div>` + "\n"
	require.Equal(t, 1, len(page)%2)
	ws.page("plain.htm", []byte(page))

	summary, err := Run(ws.cfg, &bytes.Buffer{})
	require.NoError(t, err)
	require.Len(t, summary.Files, 1)
	assert.Equal(t, "null-stripped-utf-8", summary.Files[0].Encoding)
	assert.Equal(t, 1, summary.Cards)

	converted, err := os.ReadFile(filepath.Join(ws.cfg.OutputDir, "converted_plain.htm"))
	require.NoError(t, err)
	assert.Equal(t, page, string(converted))
}

func TestRun_Idempotent(t *testing.T) {
	ws := newWorkspace(t, `{"avtomobil-288.pdf": "drive123"}`)
	ws.page("avtomobil.htm", utf16LE(t, unicode.UseBOM, avtomobilPage))
	ws.page("gruzovik.htm", utf16LE(t, unicode.UseBOM, gruzovikPage))

	read := func() []byte {
		data, err := os.ReadFile(filepath.Join(ws.cfg.OutputDir, catalog.PrettyFile))
		require.NoError(t, err)
		return data
	}

	_, err := Run(ws.cfg, &bytes.Buffer{})
	require.NoError(t, err)
	first := read()

	_, err = Run(ws.cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, first, read())

	n, err := catalog.Verify(ws.cfg.OutputDir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRun_Fatal(t *testing.T) {
	tests := []struct {
		name   string
		pdfMap string
		setup  func(ws *workspace)
		errMsg string
	}{
		{
			name:   "missing map",
			pdfMap: "",
			errMsg: "reading PDF map",
		},
		{
			name:   "malformed map",
			pdfMap: `{"a.pdf": `,
			errMsg: "parsing PDF map",
		},
		{
			name:   "missing teams directory",
			pdfMap: `{}`,
			setup: func(ws *workspace) {
				ws.cfg.TeamsDir = filepath.Join(ws.dir, "absent")
			},
			errMsg: "reading teams directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := newWorkspace(t, tt.pdfMap)
			ws.page("gruzovik.htm", utf16LE(t, unicode.UseBOM, gruzovikPage))
			if tt.setup != nil {
				tt.setup(ws)
			}

			_, err := Run(ws.cfg, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)

			_, statErr := os.Stat(filepath.Join(ws.cfg.OutputDir, catalog.PrettyFile))
			assert.ErrorIs(t, statErr, os.ErrNotExist)
		})
	}
}

func TestRun_Report(t *testing.T) {
	ws := newWorkspace(t, `{}`)
	ws.page("gruzovik.htm", utf16LE(t, unicode.UseBOM, gruzovikPage))
	ws.cfg.ReportFile = filepath.Join(ws.dir, "report.yaml")

	summary, err := Run(ws.cfg, &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(ws.cfg.ReportFile)
	require.NoError(t, err)
	var got types.Summary
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, summary, got)
}

func TestRun_CatalogWriteFailure(t *testing.T) {
	ws := newWorkspace(t, `{}`)
	require.NoError(t, os.MkdirAll(filepath.Join(ws.cfg.OutputDir, catalog.PrettyFile), 0o755))

	var log bytes.Buffer
	_, err := Run(ws.cfg, &log)
	require.Error(t, err)
	assert.Contains(t, log.String(), "save failed")
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.htm", "a.htm", "c.html", "readme.md", "d.HTM"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.htm"), 0o755))

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.htm", "b.htm"}, files)
}
