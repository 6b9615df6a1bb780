package text

import "errors"

var (
	// ErrAtlasFull is returned when a glyph does not fit into the space
	// left in the atlas.
	ErrAtlasFull = errors.New("text: atlas full")

	// ErrGlyphTooLarge is returned when a glyph is larger than the whole
	// atlas.
	ErrGlyphTooLarge = errors.New("text: glyph larger than atlas")

	// ErrNilFace is returned when a nil face is passed to layout.
	ErrNilFace = errors.New("text: nil face")

	// ErrInvalidSize is returned for a non-positive face size or atlas
	// dimension.
	ErrInvalidSize = errors.New("text: invalid size")
)
