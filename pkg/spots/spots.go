// Package spots defines the record types the pipeline moves between:
// enrichment records scraped from the map source, the canonical spot
// records served to the app, and the on-disk image folder inventory.
package spots

import (
	"bytes"
	"encoding/json"
)

// Spot is one canonical drone spot as served to the app. Field order
// matches the published file layout, so it must not be rearranged.
type Spot struct {
	ID          int      `json:"id"`          // Sequential, 1-based, dense
	Name        string   `json:"name"`        // Place name or generated fallback
	Lat         float64  `json:"lat"`         // Decimal degrees, 0 when unknown
	Lng         float64  `json:"lng"`         // Decimal degrees, 0 when unknown
	Description string   `json:"description"` // Free text
	Category    string   `json:"category"`    // e.g. "Nature"
	Images      []string `json:"images"`      // Web paths under images/spots/
	Rating      *float64 `json:"rating"`      // Source rating; null when absent
	Address     string   `json:"address"`     // Postal address, may be empty
	Notes       string   `json:"notes"`       // Flight reminder text
}

// EncodeJSON marshals records the way the published files are written:
// two-space indent, HTML characters left unescaped, trailing newline.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
