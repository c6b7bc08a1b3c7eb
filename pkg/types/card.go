// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultUpdatedAt is the timestamp stamped on every migrated card. It is a
// fixed value so that repeated runs over the same input are byte-identical.
const DefaultUpdatedAt = "2023-10-27T10:00:00.000Z"

// UntitledCard is the title used when a card has no model-title heading.
const UntitledCard = "Untitled"

// Card is one vehicle model entry in the migrated catalog. Field order is
// the order of keys in the emitted JSON.
type Card struct {
	// ID is the synthesized card identifier (slug plus 4-char hash suffix).
	ID string `json:"id" yaml:"id"`

	// Section is the owning section's identifier, derived from the source filename.
	Section string `json:"section" yaml:"section"`

	// Title is the model title text, or UntitledCard.
	Title string `json:"title" yaml:"title"`

	ImageURL string `json:"imageUrl" yaml:"image_url"`

	// PDF is the resolved instruction document reference.
	PDF PDFRef `json:"pdf" yaml:"pdf"`

	VideoURL string `json:"videoUrl" yaml:"video_url"`

	UpdatedAt string `json:"updatedAt" yaml:"updated_at"`
}

// PDFRef points a card at its instruction PDF in external storage.
//
// ID has three states: a non-empty identifier when the filename resolved
// against the PDF map, nil (JSON null) when the card links a PDF that the
// map does not know, and an empty string when the card has no PDF link.
type PDFRef struct {
	ID   *string `json:"id" yaml:"id"`
	Name string  `json:"name" yaml:"name"`
}

// NoPDF returns the reference used for cards without an instruction link.
func NoPDF() PDFRef {
	empty := ""
	return PDFRef{ID: &empty}
}

// Resolved reports whether the reference carries an external identifier.
func (r PDFRef) Resolved() bool {
	return r.ID != nil && *r.ID != ""
}
