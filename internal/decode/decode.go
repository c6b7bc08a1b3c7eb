// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package decode transcodes legacy section pages into UTF-8 text.
//
// Most pages were saved as UTF-16LE, some with a byte-order mark and some
// without. Decode tries, in order: an explicit little-endian BOM, an explicit
// big-endian BOM, an assumed little-endian body, and finally a lossy
// null-stripping fallback that always succeeds.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// ErrInvalidUTF16 is returned when bytes are not well-formed UTF-16.
var ErrInvalidUTF16 = errors.New("invalid UTF-16 data")

// Variant identifies which decode attempt produced the text.
type Variant int

const (
	VariantLEBOM Variant = iota
	VariantBEBOM
	VariantLEAssumed
	VariantNullStripped
)

func (v Variant) String() string {
	switch v {
	case VariantLEBOM:
		return "utf-16le-bom"
	case VariantBEBOM:
		return "utf-16be-bom"
	case VariantLEAssumed:
		return "utf-16le"
	case VariantNullStripped:
		return "null-stripped-utf-8"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

var (
	bomLE = []byte{0xFF, 0xFE}
	bomBE = []byte{0xFE, 0xFF}
)

// Decode converts raw page bytes to text and reports the variant used.
// A leading U+FEFF is removed from the result. An error is returned only
// when a page announces UTF-16 with a BOM but its body is malformed.
func Decode(raw []byte) (string, Variant, error) {
	var (
		text    string
		variant Variant
		err     error
	)
	switch {
	case bytes.HasPrefix(raw, bomLE):
		variant = VariantLEBOM
		text, err = decodeUTF16(raw, unicode.LittleEndian)
	case bytes.HasPrefix(raw, bomBE):
		variant = VariantBEBOM
		text, err = decodeUTF16(raw, unicode.BigEndian)
	default:
		variant = VariantLEAssumed
		text, err = decodeUTF16(raw, unicode.LittleEndian)
		if err != nil {
			variant = VariantNullStripped
			text, err = stripNulls(raw), nil
		}
	}
	if err != nil {
		return "", variant, fmt.Errorf("decoding %s: %w", variant, err)
	}
	return strings.TrimPrefix(text, "\ufeff"), variant, nil
}

// ReadFile reads the page at path and decodes it.
func ReadFile(path string) (string, Variant, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(raw)
}

// decodeUTF16 decodes raw strictly. Any BOM is kept as U+FEFF in the output.
// The x/text decoder substitutes U+FFFD for malformed input, so the code
// units are validated first.
func decodeUTF16(raw []byte, order unicode.Endianness) (string, error) {
	if err := validateUTF16(raw, order); err != nil {
		return "", err
	}
	out, err := unicode.UTF16(order, unicode.IgnoreBOM).NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func validateUTF16(raw []byte, order unicode.Endianness) error {
	if len(raw)%2 != 0 {
		return fmt.Errorf("%w: odd length %d", ErrInvalidUTF16, len(raw))
	}
	units := len(raw) / 2
	for i := 0; i < units; i++ {
		u := codeUnit(raw, i, order)
		switch {
		case u >= 0xD800 && u < 0xDC00:
			if i+1 >= units {
				return fmt.Errorf("%w: truncated surrogate pair at byte %d", ErrInvalidUTF16, 2*i)
			}
			next := codeUnit(raw, i+1, order)
			if utf16.DecodeRune(rune(u), rune(next)) == utf8.RuneError {
				return fmt.Errorf("%w: unpaired high surrogate at byte %d", ErrInvalidUTF16, 2*i)
			}
			i++
		case u >= 0xDC00 && u < 0xE000:
			return fmt.Errorf("%w: unpaired low surrogate at byte %d", ErrInvalidUTF16, 2*i)
		}
	}
	return nil
}

func codeUnit(raw []byte, i int, order unicode.Endianness) uint16 {
	lo, hi := raw[2*i], raw[2*i+1]
	if order == unicode.BigEndian {
		lo, hi = hi, lo
	}
	return uint16(hi)<<8 | uint16(lo)
}

// stripNulls drops every zero byte and decodes the rest as UTF-8, silently
// discarding invalid sequences. Non-ASCII text can be mangled on this path.
func stripNulls(raw []byte) string {
	return strings.ToValidUTF8(string(bytes.ReplaceAll(raw, []byte{0}, nil)), "")
}
