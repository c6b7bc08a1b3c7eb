// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfmap loads the legacy PDF filename to drive-file ID mapping and
// resolves card instruction links against it.
package pdfmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pdiddy/catalog-migrate/pkg/types"
)

// NotFoundSuffix marks the name of a PDF the map does not know.
const NotFoundSuffix = " (not found)"

// ErrInvalidUTF8 reports a mapping file that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Map associates a legacy PDF filename with its external identifier. A nil
// value corresponds to a JSON null in the mapping file.
type Map map[string]*string

// Load reads the mapping file at path. The file is UTF-8 JSON and may start
// with a byte-order mark. A missing file, invalid UTF-8 or malformed JSON
// is an error.
func Load(path string) (Map, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading PDF map %s: %w", path, err)
	}
	// The decoder replaces invalid sequences; a malformed map must fail.
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("reading PDF map %s: %w", path, ErrInvalidUTF8)
	}
	data, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("reading PDF map %s: %w", path, err)
	}
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing PDF map %s: %w", path, err)
	}
	if m == nil {
		return nil, fmt.Errorf("parsing PDF map %s: top-level value must be an object", path)
	}
	return m, nil
}

// Lookup returns the identifier for filename. Unknown filenames, null
// values and empty identifiers all report false.
func (m Map) Lookup(filename string) (string, bool) {
	id, ok := m[filename]
	if !ok || id == nil || *id == "" {
		return "", false
	}
	return *id, true
}

// Resolve turns an instruction link into a PDF reference. The filename is
// the last "/"-separated segment of href.
func (m Map) Resolve(href string) (filename string, ref types.PDFRef) {
	filename = href[strings.LastIndex(href, "/")+1:]
	if id, ok := m.Lookup(filename); ok {
		return filename, types.PDFRef{ID: &id, Name: filename}
	}
	return filename, types.PDFRef{ID: nil, Name: filename + NotFoundSuffix}
}
