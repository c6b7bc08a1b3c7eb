// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls model cards out of decoded section pages.
//
// A section page holds zero or more div.model-card elements. Each card may
// carry an h3.model-title heading, an img.model-image picture, an
// a.video-btn link and an a.instruction-btn link to its instruction PDF.
// Missing parts fall back to defaults; they never fail the card.
package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pdiddy/catalog-migrate/internal/ident"
	"github.com/pdiddy/catalog-migrate/pkg/types"
)

// CSS selectors for the legacy page markup.
const (
	selCard        = "div.model-card"
	selTitle       = "h3.model-title"
	selImage       = "img.model-image"
	selVideo       = "a.video-btn"
	selInstruction = "a.instruction-btn"
)

// Resolver maps an instruction link to the PDF filename it names and the
// reference stored on the card.
type Resolver interface {
	Resolve(href string) (filename string, ref types.PDFRef)
}

// Options configures card extraction for one section page.
type Options struct {
	// Section is the identifier stamped on every card of the page.
	Section string

	// UpdatedAt is stamped on every card (default types.DefaultUpdatedAt).
	UpdatedAt string

	// PDFs resolves instruction links.
	PDFs Resolver
}

// Cards parses content and returns its model cards in document order,
// numbered from 1. Progress lines are written to w.
func Cards(content string, opts Options, w io.Writer) ([]types.Card, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	updatedAt := opts.UpdatedAt
	if updatedAt == "" {
		updatedAt = types.DefaultUpdatedAt
	}

	sel := doc.Find(selCard)
	fmt.Fprintf(w, "  model-card found: %d\n", sel.Length())

	cards := make([]types.Card, 0, sel.Length())
	sel.Each(func(i int, s *goquery.Selection) {
		idx := i + 1
		card, pdfName := parseCard(s, opts.PDFs)
		card.Section = opts.Section
		card.UpdatedAt = updatedAt
		card.ID = ident.CardID(opts.Section, card.Title, pdfName, idx)
		cards = append(cards, card)

		fmt.Fprintf(w, "    %d. %s -> %s\n", idx, card.Title, card.ID)
	})
	return cards, nil
}

// parseCard reads the fields of one card. It also returns the raw PDF
// filename, which feeds the card ID.
func parseCard(s *goquery.Selection, pdfs Resolver) (types.Card, string) {
	card := types.Card{
		Title: types.UntitledCard,
		PDF:   types.NoPDF(),
	}

	if h := s.Find(selTitle).First(); h.Length() > 0 {
		card.Title = strippedText(h)
	}
	card.ImageURL = s.Find(selImage).First().AttrOr("src", "")
	card.VideoURL = s.Find(selVideo).First().AttrOr("href", "")

	var pdfName string
	if href, ok := s.Find(selInstruction).First().Attr("href"); ok && pdfs != nil {
		pdfName, card.PDF = pdfs.Resolve(href)
	}
	return card, pdfName
}

// strippedText joins every text node under s after trimming surrounding
// whitespace from each, with no separator. "<h3> Model <b>X</b> </h3>"
// yields "ModelX".
func strippedText(s *goquery.Selection) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return b.String()
}
