package editor

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/drivecanvas/designer-backend/internal/entity"
)

// signatureDoc is the subset of state that defines the visual document.
// Selection, tool, inline-edit and draw-to-edit state are transient and
// deliberately excluded. Struct marshalling keeps field order fixed, so
// equal documents always serialize identically.
type signatureDoc struct {
	BackgroundURL  string         `json:"backgroundUrl"`
	MaskURL        string         `json:"maskUrl"`
	MaskHidden     bool           `json:"maskHidden"`
	MaskOffsetXPct float64        `json:"maskOffsetXPct"`
	MaskOffsetYPct float64        `json:"maskOffsetYPct"`
	Layers         []entity.Layer `json:"layers"`
}

// Signature returns the document signature used for dirty tracking: a hash of
// the canonical serialization of the persisted fields.
func Signature(state entity.EditorState) string {
	doc := signatureDoc{
		BackgroundURL:  state.BackgroundURL,
		MaskURL:        state.MaskURL,
		MaskHidden:     state.MaskHidden,
		MaskOffsetXPct: state.MaskOffsetXPct,
		MaskOffsetYPct: state.MaskOffsetYPct,
		Layers:         state.Layers,
	}
	if doc.Layers == nil {
		doc.Layers = []entity.Layer{}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		// every signatureDoc field is marshallable, this cannot happen
		return ""
	}

	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
