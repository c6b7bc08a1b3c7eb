// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ident derives readable identifiers for catalog sections and cards.
package ident

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxBaseLen is the maximum length, in characters, of a card ID before the
// hash suffix is appended.
const MaxBaseLen = 80

// hashLen is the number of hex characters of the MD5 digest kept in card IDs.
const hashLen = 4

var (
	sectionInvalid = regexp.MustCompile(`[^a-z0-9а-я-]`)
	firstNumber    = regexp.MustCompile(`\p{Nd}+`)

	sectionSeparators = strings.NewReplacer(" ", "-", "_", "-")

	titleSeparators = strings.NewReplacer(
		" ", "-", "[", "-", "]", "-", "(", "-", ")", "-", "{", "-", "}", "-",
		".", "-", ",", "-", "!", "-", "?", "-", ";", "-", ":", "-",
		`"`, "-", "'", "-", "«", "-", "»", "-", "—", "-",
	)
)

// SectionID derives a section identifier from a source page filename:
// lower-case, without .htm, spaces and underscores turned into hyphens,
// and only Latin letters, Cyrillic а-я, digits and hyphens kept.
//
// ".htm" is removed before ".html", so "x.html" becomes "xl". Existing
// section IDs depend on this order.
func SectionID(filename string) string {
	s := lower(filename)
	s = strings.ReplaceAll(s, ".htm", "")
	s = strings.ReplaceAll(s, ".html", "")
	s = sectionSeparators.Replace(s)
	return sectionInvalid.ReplaceAllString(s, "")
}

// CardID derives a card identifier of the form
//
//	<section>-<title slug>[-<first number in pdfName>]-<hash4>
//
// The part before the hash is cut to MaxBaseLen characters. The hash covers
// the raw inputs and the card's 1-based index, so equal titles at different
// positions get different IDs. Collisions are possible and not checked.
func CardID(section, title, pdfName string, index int) string {
	base := section + "-" + Slug(title)
	if n := firstNumber.FindString(pdfName); n != "" {
		base += "-" + n
	}
	base = truncate(base, MaxBaseLen)

	sum := md5.Sum([]byte(section + title + pdfName + strconv.Itoa(index)))
	return base + "-" + hex.EncodeToString(sum[:])[:hashLen]
}

// Slug lower-cases text, turns whitespace and punctuation separators into
// single hyphens and trims hyphens from both ends.
func Slug(text string) string {
	s := titleSeparators.Replace(lower(text))
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

// lower applies full Unicode lower-casing, including the final sigma and
// the dotted capital I special cases.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
